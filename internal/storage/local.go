package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"hudhousing/internal/logger"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
	log     *logger.Logger
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalStorageClient{
		baseDir: baseDir,
		log:     logger.WithComponent("storage"),
	}, nil
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// StoreFile stores a file in the snapshot folder for the given timestamp
func (l *LocalStorageClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	filePath := filepath.Join(l.baseDir, GenerateSnapshotFolderPath(timestamp), filename)

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(filePath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filePath, err)
	}

	return nil
}

// GetFile retrieves a file by its path relative to the base directory
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	fullPath, err := l.resolve(filePath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return data, nil
}

// FileExists checks whether a file exists at the given relative path
func (l *LocalStorageClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	fullPath, err := l.resolve(filePath)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

// ListSnapshots lists snapshot folders, newest first
func (l *LocalStorageClient) ListSnapshots(ctx context.Context, limit int) ([]string, error) {
	var folders []string

	err := filepath.Walk(l.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if info.Name() == snapshotMarker {
			relPath, _ := filepath.Rel(l.baseDir, filepath.Dir(path))
			folders = append(folders, filepath.ToSlash(relPath))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk snapshot directory: %w", err)
	}

	// Folder names embed the timestamp, so lexical order is time order
	sort.Sort(sort.Reverse(sort.StringSlice(folders)))

	if limit > 0 && limit < len(folders) {
		folders = folders[:limit]
	}

	return folders, nil
}

// DeleteOldSnapshots removes snapshot folders older than the retention window
func (l *LocalStorageClient) DeleteOldSnapshots(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)

	folders, err := l.ListSnapshots(ctx, 0)
	if err != nil {
		return err
	}

	for _, folder := range folders {
		ts, err := ParseSnapshotFolderTime(folder)
		if err != nil {
			l.log.Warnf("Skipping unparseable snapshot folder %s: %v", folder, err)
			continue
		}
		if ts.Before(cutoff) {
			fullPath := filepath.Join(l.baseDir, filepath.FromSlash(folder))
			if err := os.RemoveAll(fullPath); err != nil {
				return fmt.Errorf("failed to delete snapshot %s: %w", folder, err)
			}
			l.log.Infof("Deleted old snapshot %s", folder)
		}
	}

	return nil
}

// resolve joins a relative path to the base directory, rejecting escapes
func (l *LocalStorageClient) resolve(filePath string) (string, error) {
	fullPath := filepath.Join(l.baseDir, filepath.FromSlash(filePath))

	absBase, err := filepath.Abs(l.baseDir)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", err
	}
	if absPath != absBase && !strings.HasPrefix(absPath, absBase+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %s escapes storage directory", filePath)
	}

	return fullPath, nil
}
