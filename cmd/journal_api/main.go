package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/agriscience/journal-api/internal/auth"
	"github.com/agriscience/journal-api/internal/router"
	"github.com/agriscience/journal-api/internal/search"
	"github.com/agriscience/journal-api/internal/server"
	"github.com/agriscience/journal-api/internal/storage/pg"
	"github.com/agriscience/journal-api/internal/uploads"
)

func main() {
	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := pg.NewStore(pool)

	searchCfg := search.DefaultConfig()
	if cfg.SearchConfigPath != "" {
		f, err := os.Open(cfg.SearchConfigPath)
		if err != nil {
			slog.Error("Failed to open search config", "path", cfg.SearchConfigPath, "error", err)
			os.Exit(1)
		}
		loaded, err := search.LoadConfig(f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse search config", "path", cfg.SearchConfigPath, "error", err)
			os.Exit(1)
		}
		searchCfg = *loaded
	}
	aggregator := search.NewAggregator(store, searchCfg)

	verifier, err := auth.NewRemoteVerifier(cfg.Auth)
	if err != nil {
		slog.Error("Failed to create auth verifier", "error", err)
		os.Exit(1)
	}

	var images uploads.ImageStore
	if cfg.S3.Configured() {
		s3store, err := uploads.NewS3ImageStore(cfg.S3)
		if err != nil {
			slog.Error("Failed to create S3 image store", "error", err)
			os.Exit(1)
		}
		images = s3store
	} else {
		slog.Warn("S3 not configured, image uploads disabled")
	}

	pdfs := uploads.NewPDFStore(cfg.PDFDir, cfg.PublicBaseURL)

	e := echo.New()
	s := server.NewServer(e, sCfg)
	s.SetupHealthChecks(pg.NewHealthChecker(pool))

	router.NewIssueRouter(e, store).Bind()
	router.NewEditorialRouter(e, store).Bind()
	router.NewProductRouter(e, store).Bind()
	router.NewSearchRouter(e, aggregator).Bind()
	router.NewAdminRouter(e, store, cfg.Auth, verifier, images, pdfs).Bind()

	slog.Info("Journal API starting", "port", sCfg.Port)
	if err := s.Start(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
