package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hudhousing/internal/config"
	"hudhousing/internal/logger"
	"hudhousing/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logger.SetGlobalLogger(logger.New(logger.Config{
		Level:  logger.ParseLogLevel(cfg.LogLevel),
		Format: logger.ParseLogFormat(cfg.LogFormat),
	}))

	log := logger.WithComponent("main")
	log.Infof("Starting HUD housing data connector %s on port %s", config.GetVersion(), cfg.Port)
	log.Infof("Environment: %s", cfg.Environment)
	if cfg.Environment == "local" {
		log.Infof("Local data dir: %s", cfg.LocalDataDir)
	} else {
		log.Infof("GCS bucket: %s", cfg.GCSBucket)
	}

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to create server", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // ingest downloads large workbooks
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", err)
	}

	log.Info("Server stopped")
}
