package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coilgen/coilgen/internal/api"
	"github.com/coilgen/coilgen/internal/api/handlers"
	"github.com/coilgen/coilgen/internal/config"
	"github.com/coilgen/coilgen/internal/export"
	"github.com/coilgen/coilgen/internal/processing"
	"github.com/coilgen/coilgen/internal/repository"
	"github.com/coilgen/coilgen/internal/repository/memory"
	"github.com/coilgen/coilgen/internal/repository/postgres"
	"github.com/coilgen/coilgen/internal/storage"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure zerolog for structured logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Server.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.Server.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Export records
	exportRepo, db, err := openRepository(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open export repository")
	}
	if db != nil {
		defer db.Close()
	}

	// Object storage
	store, err := openObjectStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise object storage")
	}

	opts := export.DefaultOptions()
	opts.Precision = cfg.Export.CSVPrecision
	opts.Plot.Width = cfg.Export.PlotWidth
	opts.Plot.Height = cfg.Export.PlotHeight

	exportSvc := processing.NewExportService(store, exportRepo, opts)

	webHandler, err := handlers.NewWebHandler(opts.Plot)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create web handler")
	}

	router := api.NewRouter(
		cfg.Server.AllowedOrigins,
		handlers.NewCoilHandler(opts),
		handlers.NewExportHandler(exportSvc, cfg.Storage.URLExpiry),
		webHandler,
	)

	// Start server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Backend).Msg("Starting coil generator server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// openRepository connects to PostgreSQL when a URL is configured and falls back to memory otherwise
func openRepository(ctx context.Context, url string) (repository.ExportRepository, *sql.DB, error) {
	if url == "" {
		log.Info().Msg("DATABASE_URL not set, keeping export records in memory")
		return memory.NewExportRepository(), nil, nil
	}

	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Info().Msg("Connected to PostgreSQL")
	return postgres.NewPostgresExportRepository(db), db, nil
}

// openObjectStore returns nil when exports are disabled
func openObjectStore(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	switch cfg.Backend {
	case "", "none":
		log.Info().Msg("Object storage disabled, export endpoints will answer 503")
		return nil, nil
	case "s3":
		return storage.NewS3Service(storage.S3Config{
			Bucket:    cfg.Bucket,
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: cfg.AccessKeyID,
			SecretKey: cfg.SecretAccessKey,
			URLExpiry: cfg.URLExpiry,
		})
	case "minio":
		return storage.NewMinioService(ctx, storage.MinioConfig{
			Endpoint:  cfg.Endpoint,
			Bucket:    cfg.Bucket,
			AccessKey: cfg.AccessKeyID,
			SecretKey: cfg.SecretAccessKey,
			UseSSL:    cfg.UseSSL,
			URLExpiry: cfg.URLExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
