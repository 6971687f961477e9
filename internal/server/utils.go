package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hudhousing/internal/catalog"
	"hudhousing/internal/fetchers"
	"hudhousing/internal/tabular"
	"hudhousing/internal/transforms"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response with the status implied by the
// error kind
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{
		"error": err.Error(),
	})
}

// statusForError maps connector error kinds to HTTP status codes: unknown
// dataset is 404, upstream failures are 502, malformed or invalid data is 422
func statusForError(err error) int {
	var netErr *fetchers.NetworkError
	var parseErr *tabular.ParseError
	var validationErr *transforms.ValidationError

	switch {
	case errors.Is(err, catalog.ErrUnknownDataset):
		return http.StatusNotFound
	case errors.As(err, &netErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr), errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseLimit reads a limit query parameter with a default and an upper cap
func parseLimit(value string, defaultLimit, maxLimit int) int {
	if value == "" {
		return defaultLimit
	}
	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
