package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"hudhousing/internal/catalog"
	"hudhousing/internal/config"
	"hudhousing/internal/fetchers"
	"hudhousing/internal/logger"
	"hudhousing/internal/reports"
	"hudhousing/internal/storage"
	"hudhousing/internal/transforms"
)

// Server wires the connector components behind the HTTP API
type Server struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Fetcher    *fetchers.DataFetcher
	Feed       *fetchers.FeedFetcher
	Normalizer *transforms.Normalizer
	Generator  *reports.Generator
	Storage    storage.StorageClient

	log         *logger.Logger
	ingestMutex sync.Mutex
}

// NewServer creates a new server instance
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	storageClient, err := storage.NewStorageClient(ctx, storage.DeploymentMode(cfg.Environment), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	cat := catalog.New(cfg)
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	return &Server{
		Config:     cfg,
		Catalog:    cat,
		Fetcher:    fetchers.NewDataFetcher(cat, timeout),
		Feed:       fetchers.NewFeedFetcher(),
		Normalizer: transforms.NewNormalizer(),
		Generator:  reports.NewGenerator(),
		Storage:    storageClient,
		log:        logger.WithComponent("server"),
	}, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/datasets", s.HandleDatasets)
	mux.HandleFunc("/datasets/", s.HandleDataset)
	mux.HandleFunc("/ingest", s.HandleIngest)
	mux.HandleFunc("/snapshots", s.HandleSnapshots)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.HandleFunc("/updates", s.HandleUpdates)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
