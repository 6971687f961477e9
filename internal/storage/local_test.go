package storage

import (
	"context"
	"testing"
	"time"
)

func TestLocalStoreAndGet(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	ts := time.Date(2025, 8, 25, 10, 30, 0, 0, time.UTC)

	if err := client.StoreFile(ctx, []byte(`{"datasets":4}`), "summary.json", ts); err != nil {
		t.Fatalf("StoreFile returned error: %v", err)
	}

	path := GenerateSnapshotFolderPath(ts) + "/summary.json"
	data, err := client.GetFile(ctx, path)
	if err != nil {
		t.Fatalf("GetFile returned error: %v", err)
	}
	if string(data) != `{"datasets":4}` {
		t.Errorf("Round-trip mismatch: %s", data)
	}

	exists, err := client.FileExists(ctx, path)
	if err != nil || !exists {
		t.Errorf("FileExists = %v, %v; want true", exists, err)
	}

	exists, err = client.FileExists(ctx, "2099/01/01/HousingSnapshot-2099-01-01-00-00-00/summary.json")
	if err != nil || exists {
		t.Errorf("FileExists for missing file = %v, %v; want false", exists, err)
	}
}

func TestLocalListSnapshots(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	timestamps := []time.Time{
		time.Date(2025, 8, 23, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 24, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC),
	}
	for _, ts := range timestamps {
		if err := client.StoreFile(ctx, []byte("{}"), "summary.json", ts); err != nil {
			t.Fatal(err)
		}
		// Files without the marker name must not register as snapshots
		if err := client.StoreFile(ctx, []byte("raw"), "fair_market_rents_2024.xlsx", ts); err != nil {
			t.Fatal(err)
		}
	}

	snapshots, err := client.ListSnapshots(ctx, 0)
	if err != nil {
		t.Fatalf("ListSnapshots returned error: %v", err)
	}
	if len(snapshots) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d: %v", len(snapshots), snapshots)
	}

	// Newest first
	first, err := ParseSnapshotFolderTime(snapshots[0])
	if err != nil {
		t.Fatal(err)
	}
	if !first.Equal(timestamps[2]) {
		t.Errorf("Expected newest snapshot first, got %v", first)
	}

	limited, err := client.ListSnapshots(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected limit of 2 snapshots, got %d", len(limited))
	}
}

func TestLocalDeleteOldSnapshots(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	ctx := context.Background()
	old := time.Now().UTC().Add(-60 * 24 * time.Hour)
	recent := time.Now().UTC().Add(-1 * time.Hour)

	for _, ts := range []time.Time{old, recent} {
		if err := client.StoreFile(ctx, []byte("{}"), "summary.json", ts); err != nil {
			t.Fatal(err)
		}
	}

	if err := client.DeleteOldSnapshots(ctx, 30*24*time.Hour); err != nil {
		t.Fatalf("DeleteOldSnapshots returned error: %v", err)
	}

	snapshots, err := client.ListSnapshots(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("Expected 1 surviving snapshot, got %d", len(snapshots))
	}
	ts, err := ParseSnapshotFolderTime(snapshots[0])
	if err != nil {
		t.Fatal(err)
	}
	if ts.Before(time.Now().Add(-24 * time.Hour)) {
		t.Errorf("Old snapshot survived pruning: %v", ts)
	}
}

func TestLocalGetFileRejectsEscape(t *testing.T) {
	client, err := NewLocalStorageClient(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	if _, err := client.GetFile(context.Background(), "../../../etc/passwd"); err == nil {
		t.Error("Expected error for path escaping the storage directory")
	}
}
