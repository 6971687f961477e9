package storage

import (
	"fmt"
	"strings"
	"time"
)

// snapshotMarker is the file whose presence identifies a snapshot folder
const snapshotMarker = "summary.json"

// GenerateSnapshotFolderPath generates a consistent folder path for snapshots
// Format: YYYY/MM/DD/HousingSnapshot-YYYY-MM-DD-HH-MM-SS
func GenerateSnapshotFolderPath(timestamp time.Time) string {
	return fmt.Sprintf("%04d/%02d/%02d/HousingSnapshot-%04d-%02d-%02d-%02d-%02d-%02d",
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Year(), timestamp.Month(), timestamp.Day(),
		timestamp.Hour(), timestamp.Minute(), timestamp.Second())
}

// ParseSnapshotFolderTime recovers the timestamp from a snapshot folder path
func ParseSnapshotFolderTime(folderPath string) (time.Time, error) {
	parts := strings.Split(folderPath, "/")
	name := parts[len(parts)-1]
	const prefix = "HousingSnapshot-"
	if !strings.HasPrefix(name, prefix) {
		return time.Time{}, fmt.Errorf("not a snapshot folder: %s", folderPath)
	}
	return time.Parse("2006-01-02-15-04-05", strings.TrimPrefix(name, prefix))
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".json"):
		return "application/json"
	case strings.HasSuffix(filename, ".csv"):
		return "text/csv"
	case strings.HasSuffix(filename, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case strings.HasSuffix(filename, ".txt"):
		return "text/plain"
	case strings.HasSuffix(filename, ".html"):
		return "text/html"
	case strings.HasSuffix(filename, ".css"):
		return "text/css"
	case strings.HasSuffix(filename, ".md"):
		return "text/markdown"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
