package storage

import (
	"context"
	"time"
)

// StorageClient defines the interface for snapshot storage operations
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file inside the snapshot folder for the timestamp
	StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error

	// GetFile retrieves a file by its storage-relative path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// FileExists checks whether a file exists at the given path
	FileExists(ctx context.Context, filePath string) (bool, error)

	// ListSnapshots lists snapshot folders, newest first
	ListSnapshots(ctx context.Context, limit int) ([]string, error)

	// DeleteOldSnapshots removes snapshots older than the retention window
	DeleteOldSnapshots(ctx context.Context, olderThan time.Duration) error
}
