package storage

import (
	"testing"
	"time"
)

func TestGenerateSnapshotFolderPath(t *testing.T) {
	ts := time.Date(2025, 8, 25, 10, 30, 45, 0, time.UTC)

	got := GenerateSnapshotFolderPath(ts)
	want := "2025/08/25/HousingSnapshot-2025-08-25-10-30-45"
	if got != want {
		t.Errorf("GenerateSnapshotFolderPath = %q, want %q", got, want)
	}
}

func TestParseSnapshotFolderTime(t *testing.T) {
	ts := time.Date(2025, 8, 25, 10, 30, 45, 0, time.UTC)
	folder := GenerateSnapshotFolderPath(ts)

	parsed, err := ParseSnapshotFolderTime(folder)
	if err != nil {
		t.Fatalf("ParseSnapshotFolderTime returned error: %v", err)
	}
	if !parsed.Equal(ts) {
		t.Errorf("Round-trip mismatch: %v != %v", parsed, ts)
	}

	if _, err := ParseSnapshotFolderTime("2025/08/25/not-a-snapshot"); err == nil {
		t.Error("Expected error for non-snapshot folder")
	}
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"summary.json", "application/json"},
		{"rows.csv", "text/csv"},
		{"fair_market_rents_2024.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"index.html", "text/html"},
		{"chart.png", "image/png"},
		{"notes.md", "text/markdown"},
		{"blob.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := GetContentType(tt.filename); got != tt.expected {
			t.Errorf("GetContentType(%q) = %q, want %q", tt.filename, got, tt.expected)
		}
	}
}
