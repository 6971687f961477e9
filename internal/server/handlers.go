package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"hudhousing/internal/catalog"
	"hudhousing/internal/config"
	"hudhousing/internal/models"
	"hudhousing/internal/storage"
)

// HandleHealth provides the liveness endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleDatasets lists the catalog
func (s *Server) HandleDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	datasets := s.Catalog.Datasets()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"datasets": datasets,
		"count":    len(datasets),
	})
}

// HandleDataset fetches and returns one dataset. The default response
// carries normalized records; ?raw=true returns the parsed tabular rows
// without normalization.
func (s *Server) HandleDataset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := strings.TrimPrefix(r.URL.Path, "/datasets/")
	if key == "" || strings.Contains(key, "/") {
		http.Error(w, "Dataset key required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if r.URL.Query().Get("raw") == "true" {
		rows, err := s.Fetcher.FetchRows(ctx, key)
		if err != nil {
			s.log.Errorf("Raw fetch failed for %s: %v", key, err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"dataset": key,
			"rows":    rows,
			"count":   len(rows),
		})
		return
	}

	payload, err := s.Fetcher.FetchDataset(ctx, key)
	if err != nil {
		s.log.Errorf("Fetch failed for %s: %v", key, err)
		writeError(w, err)
		return
	}

	data, errs := s.Normalizer.BuildSnapshot(s.Catalog, map[string]*models.DatasetPayload{key: payload})
	if err := errs[key]; err != nil {
		s.log.Errorf("Normalization failed for %s: %v", key, err)
		writeError(w, err)
		return
	}

	records := recordsForKey(data, key)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset": key,
		"records": records,
	})
}

// recordsForKey selects one dataset's record slice from a snapshot
func recordsForKey(data *models.HousingData, key string) interface{} {
	switch key {
	case catalog.FairMarketRents:
		return data.FairMarketRents
	case catalog.IncomeLimits:
		return data.IncomeLimits
	case catalog.HousingAffordability:
		return data.Affordability
	case catalog.HomelessCounts:
		return data.HomelessCounts
	default:
		return nil
	}
}

// HandleIngest fetches all datasets concurrently, builds a snapshot and
// stores it with its report artifacts
func (s *Server) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.ingestMutex.TryLock() {
		s.log.Warn("Ingest already in progress, rejecting new request")
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "ingest already in progress",
		})
		return
	}
	defer s.ingestMutex.Unlock()

	ctx := r.Context()
	s.log.Info("Starting ingest...")

	payloads, fetchErrs := s.Fetcher.FetchAll(ctx)
	if len(payloads) == 0 {
		s.log.Errorf("Ingest failed: no dataset could be fetched")
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"error":  "no dataset could be fetched",
			"errors": errorStrings(fetchErrs),
		})
		return
	}

	data, normErrs := s.Normalizer.BuildSnapshot(s.Catalog, payloads)
	allErrs := make(map[string]error, len(fetchErrs)+len(normErrs))
	for key, err := range fetchErrs {
		allErrs[key] = err
	}
	for key, err := range normErrs {
		allErrs[key] = err
	}

	files, err := s.Generator.GenerateReport(data, allErrs)
	if err != nil {
		s.log.Errorf("Report generation failed: %v", err)
		writeError(w, err)
		return
	}

	folder, err := s.storeSnapshot(ctx, data, payloads, files, allErrs)
	if err != nil {
		s.log.Errorf("Snapshot storage failed: %v", err)
		writeError(w, err)
		return
	}

	if s.Config.RetentionDays > 0 {
		retention := time.Duration(s.Config.RetentionDays) * 24 * time.Hour
		if err := s.Storage.DeleteOldSnapshots(ctx, retention); err != nil {
			s.log.Warnf("Snapshot retention pruning failed: %v", err)
		}
	}

	s.log.Infof("Ingest completed: %d records in %s", data.TotalRecords(), folder)
	writeJSON(w, http.StatusOK, ingestSummary(data, folder, allErrs))
}

// ingestSummary builds the JSON body returned by POST /ingest and stored as
// the snapshot marker file
func ingestSummary(data *models.HousingData, folder string, errs map[string]error) map[string]interface{} {
	return map[string]interface{}{
		"timestamp":     data.Timestamp.Format(time.RFC3339),
		"snapshot":      folder,
		"record_counts": data.RecordCounts(),
		"total_records": data.TotalRecords(),
		"errors":        errorStrings(errs),
	}
}

// errorStrings converts an error map to a JSON-encodable form
func errorStrings(errs map[string]error) map[string]string {
	out := make(map[string]string, len(errs))
	for key, err := range errs {
		out[key] = err.Error()
	}
	return out
}

// HandleSnapshots lists stored snapshots, newest first
func (s *Server) HandleSnapshots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"), 10, 100)

	snapshots, err := s.Storage.ListSnapshots(r.Context(), limit)
	if err != nil {
		s.log.Errorf("Failed to list snapshots: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "failed to list snapshots",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": snapshots,
		"count":     len(snapshots),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleFileProxy serves snapshot files from the storage backend
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Debugf("File not found in storage: %s (%v)", filePath, err)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(fileData)
}

// HandleUpdates returns recent HUD USER announcements
func (s *Server) HandleUpdates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	updates, err := s.Feed.FetchUpdates(r.Context(), s.Config.UpdatesFeedURL)
	if err != nil {
		s.log.Errorf("Failed to fetch updates feed: %v", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updates": updates,
		"count":   len(updates),
	})
}

// HandleRoot redirects to the latest snapshot report, or serves the landing
// page if no snapshot exists yet
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if latest, err := s.findLatestReportURL(r.Context()); err == nil {
		w.Header().Set("Location", latest)
		w.WriteHeader(http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, landingPage)
}

// findLatestReportURL resolves the proxy URL of the newest snapshot report
func (s *Server) findLatestReportURL(ctx context.Context) (string, error) {
	snapshots, err := s.Storage.ListSnapshots(ctx, 1)
	if err != nil || len(snapshots) == 0 {
		return "", fmt.Errorf("no snapshots available")
	}
	return "/files/" + snapshots[0] + "/index.html", nil
}

const landingPage = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>HUD Housing Data Connector</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
               max-width: 800px; margin: 40px auto; padding: 0 20px; color: #333; }
        code { background: #f1f3f5; padding: 2px 6px; border-radius: 4px; }
        li { margin: 8px 0; }
    </style>
</head>
<body>
    <h1>HUD Housing Data Connector</h1>
    <p>No snapshots yet. Trigger one with <code>POST /ingest</code>.</p>
    <ul>
        <li><code>GET /datasets</code> &mdash; available datasets</li>
        <li><code>GET /datasets/{key}</code> &mdash; fetch one dataset (<code>?raw=true</code> for unnormalized rows)</li>
        <li><code>POST /ingest</code> &mdash; fetch everything and store a snapshot</li>
        <li><code>GET /snapshots</code> &mdash; stored snapshots</li>
        <li><code>GET /updates</code> &mdash; HUD USER announcements</li>
        <li><code>GET /health</code> &mdash; liveness</li>
    </ul>
</body>
</html>
`
