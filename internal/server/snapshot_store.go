package server

import (
	"context"
	"encoding/json"
	"fmt"

	"hudhousing/internal/models"
	"hudhousing/internal/reports"
	"hudhousing/internal/storage"
)

// storeSnapshot writes all artifacts of one ingest into a snapshot folder.
// The summary.json marker goes in last so a listed snapshot is always
// complete.
func (s *Server) storeSnapshot(ctx context.Context, data *models.HousingData, payloads map[string]*models.DatasetPayload, files *reports.GeneratedFiles, errs map[string]error) (string, error) {
	timestamp := data.Timestamp
	folder := storage.GenerateSnapshotFolderPath(timestamp)

	normalized, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot data: %w", err)
	}
	if err := s.Storage.StoreFile(ctx, normalized, "housing_data.json", timestamp); err != nil {
		return "", err
	}

	if err := s.Storage.StoreFile(ctx, []byte(files.MarkdownSummary), "summary.md", timestamp); err != nil {
		return "", err
	}
	if err := s.Storage.StoreFile(ctx, []byte(files.HTML), "index.html", timestamp); err != nil {
		return "", err
	}
	for name, png := range files.Charts {
		if err := s.Storage.StoreFile(ctx, png, name, timestamp); err != nil {
			return "", err
		}
	}

	// Raw source files for reproducibility
	for _, payload := range payloads {
		for _, raw := range payload.RawFiles {
			if err := s.Storage.StoreFile(ctx, raw.Data, raw.Name, timestamp); err != nil {
				return "", err
			}
		}
	}

	summary, err := json.MarshalIndent(ingestSummary(data, folder, errs), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal ingest summary: %w", err)
	}
	if err := s.Storage.StoreFile(ctx, summary, "summary.json", timestamp); err != nil {
		return "", err
	}

	return folder, nil
}
