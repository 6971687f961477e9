package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the housing data connector
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8980"`

	// Deployment configuration
	Environment string `env:"ENVIRONMENT,default=local"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`

	// Local storage configuration
	LocalDataDir string `env:"LOCAL_DATA_DIR,default=./data"`

	// GCP configuration (only used when ENVIRONMENT=gcs)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// HTTP client configuration
	HTTPTimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS,default=120"`

	// Snapshot retention
	RetentionDays int `env:"RETENTION_DAYS,default=90"`

	// HUD USER dataset source URLs
	FMR2024URL       string `env:"FMR_2024_URL,default=https://www.huduser.gov/portal/datasets/fmr/fmr2024/FY24_FMRs.xlsx"`
	FMR2025URL       string `env:"FMR_2025_URL,default=https://www.huduser.gov/portal/datasets/fmr/fmr2025/FY25_FMRs.xlsx"`
	IncomeLimitsURL  string `env:"INCOME_LIMITS_URL,default=https://www.huduser.gov/portal/datasets/il/il24/Section8-FY24.xlsx"`
	AffordabilityURL string `env:"AFFORDABILITY_URL,default=https://www.huduser.gov/portal/sites/default/files/csv/location_affordability_index.csv"`
	PITCountsURL     string `env:"PIT_COUNTS_URL,default=https://www.huduser.gov/portal/sites/default/files/xls/2007-2024-PIT-Counts-by-CoC.xlsx"`

	// HUD USER announcements feed
	UpdatesFeedURL string `env:"UPDATES_FEED_URL,default=https://www.huduser.gov/portal/rss/whats-new.xml"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
