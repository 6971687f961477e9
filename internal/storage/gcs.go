package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"hudhousing/internal/logger"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *logger.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    logger.WithComponent("storage"),
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile stores a file in the snapshot folder for the given timestamp
func (g *GCSClient) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	objectPath := GenerateSnapshotFolderPath(timestamp) + "/" + filename

	g.log.Debugf("Storing file to GCS: gs://%s/%s", g.bucket, objectPath)

	obj := g.client.Bucket(g.bucket).Object(objectPath)
	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(filename)

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write object %s: %w", objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize object %s: %w", objectPath, err)
	}

	return nil
}

// GetFile retrieves an object by its bucket-relative path
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	reader, err := g.client.Bucket(g.bucket).Object(filePath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object %s: %w", filePath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", filePath, err)
	}
	return data, nil
}

// FileExists checks whether an object exists at the given path
func (g *GCSClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(filePath).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", filePath, err)
	}
	return true, nil
}

// ListSnapshots lists snapshot folders in the bucket, newest first
func (g *GCSClient) ListSnapshots(ctx context.Context, limit int) ([]string, error) {
	var folders []string

	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list bucket objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/"+snapshotMarker) {
			folders = append(folders, strings.TrimSuffix(attrs.Name, "/"+snapshotMarker))
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(folders)))

	if limit > 0 && limit < len(folders) {
		folders = folders[:limit]
	}

	return folders, nil
}

// DeleteOldSnapshots removes objects in snapshot folders older than the
// retention window
func (g *GCSClient) DeleteOldSnapshots(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan)
	bucket := g.client.Bucket(g.bucket)

	it := bucket.Objects(ctx, &storage.Query{})
	deleted := 0
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to list bucket objects: %w", err)
		}
		if attrs.Created.Before(cutoff) {
			if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
				return fmt.Errorf("failed to delete object %s: %w", attrs.Name, err)
			}
			deleted++
		}
	}

	if deleted > 0 {
		g.log.Infof("Deleted %d expired snapshot objects", deleted)
	}
	return nil
}
