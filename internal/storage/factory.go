package storage

import (
	"context"
	"fmt"

	"hudhousing/internal/config"
)

// DeploymentMode represents the deployment environment
type DeploymentMode string

const (
	DeploymentLocal DeploymentMode = "local"
	DeploymentGCS   DeploymentMode = "gcs"
)

// NewStorageClient creates a storage client based on deployment mode and
// configuration
func NewStorageClient(ctx context.Context, deploymentMode DeploymentMode, cfg *config.Config) (StorageClient, error) {
	switch deploymentMode {
	case DeploymentLocal:
		dataDir := cfg.LocalDataDir
		if dataDir == "" {
			dataDir = "data"
		}

		localClient, err := NewLocalStorageClient(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case DeploymentGCS:
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS deployment requires GCS_BUCKET")
		}
		gcsClient, err := NewGCSClient(ctx, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported deployment mode: %s", deploymentMode)
	}
}
