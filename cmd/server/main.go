package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/openingroi/internal/api"
	"github.com/vytor/openingroi/internal/chesscom"
	"github.com/vytor/openingroi/internal/config"
	"github.com/vytor/openingroi/internal/db"
	"github.com/vytor/openingroi/internal/jobs"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/repository/sqlite"
	"github.com/vytor/openingroi/internal/services"
	"github.com/vytor/openingroi/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Opening ROI Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("games_csv_path=%s", cfg.GamesCSVPath)
	log.Debug("seed_sample_games=%t sample_seed=%d", cfg.SeedSampleGames, cfg.SampleSeed)
	log.Debug("import_worker_count=%d", cfg.ImportWorkerCount)
	log.Debug("import_queue_size=%d", cfg.ImportQueueSize)
	log.Debug("archive_limit=%d", cfg.ArchiveLimit)
	log.Debug("max_concurrent_archive=%d", cfg.MaxConcurrentArchive)
	log.Debug("http_client_timeout=%s", cfg.HTTPClientTimeout)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	gameRepo := sqlite.NewGameRepository(database.DB)
	snapshotRepo := sqlite.NewSnapshotRepository(database.DB)

	importPool := worker.NewPool(cfg.ImportWorkerCount, cfg.ImportQueueSize)
	chessClient := chesscom.New(chesscom.WithTimeout(cfg.HTTPClientTimeout))
	jobQueue := jobs.NewWorkerQueue(importPool, gameRepo, chessClient, cfg.ArchiveLimit, cfg.MaxConcurrentArchive)

	gameService := services.NewGameService(gameRepo, jobQueue)
	metricsService := services.NewMetricsService(gameRepo, snapshotRepo)

	ctx, cancel := context.WithCancel(context.Background())
	importPool.Start(ctx)

	seedCtx := logger.NewContext(ctx, log.WithPrefix("seed"))
	if cfg.GamesCSVPath != "" {
		if err := importCSVFile(seedCtx, gameService, cfg.GamesCSVPath); err != nil {
			log.Error("failed to import %s: %v", cfg.GamesCSVPath, err)
			os.Exit(1)
		}
	}
	if cfg.SeedSampleGames {
		n, err := gameService.SeedSample(seedCtx, uint64(cfg.SampleSeed))
		if err != nil {
			log.Error("failed to seed sample games: %v", err)
			os.Exit(1)
		}
		log.Info("seeded %d sample games", n)
	}

	srv := &api.Server{
		MetricsService: metricsService,
		GameService:    gameService,
		DB:             database,
		SampleSeed:     uint64(cfg.SampleSeed),
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Cancel worker context
	log.Debug("stopping import pool")
	cancel()
	importPool.Stop()

	log.Info("===========================================")
	log.Info("Opening ROI Server Stopped")
	log.Info("===========================================")
}

func importCSVFile(ctx context.Context, gameService services.GameService, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := gameService.ImportCSV(ctx, f)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info("imported %d games from %s", n, path)
	return nil
}
