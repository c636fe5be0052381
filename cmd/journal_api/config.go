package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/agriscience/journal-api/internal/auth"
	"github.com/agriscience/journal-api/internal/uploads"
	"github.com/agriscience/journal-api/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type JournalConfig struct {
	DatabaseURL      string
	Auth             auth.Config
	S3               uploads.S3Config
	PDFDir           string
	PublicBaseURL    string
	SearchConfigPath string
}

func (ac *AppConfig) Load() (*JournalConfig, error) {
	err := env.LoadDotEnv(ac.ENV, "cmd/journal_api/.env")
	if err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	pdfDir := os.Getenv("PDF_DIR")
	if pdfDir == "" {
		pdfDir = "public/pdfs"
	}

	cfg := &JournalConfig{
		DatabaseURL: dbURL,
		Auth: auth.Config{
			AuthURL: os.Getenv("AUTH_URL"),
			AnonKey: os.Getenv("ANON_KEY"),
		},
		S3: uploads.S3Config{
			Region:        os.Getenv("AWS_REGION"),
			Bucket:        os.Getenv("AWS_BUCKET"),
			AccessKey:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
			PublicBaseURL: os.Getenv("ASSET_BASE_URL"),
		},
		PDFDir:           pdfDir,
		PublicBaseURL:    os.Getenv("PUBLIC_BASE_URL"),
		SearchConfigPath: os.Getenv("SEARCH_CONFIG_PATH"),
	}

	if !cfg.Auth.Configured() {
		// The admin login route reports this as a diagnostic; the
		// public site still serves without it.
		slog.Warn("AUTH_URL/ANON_KEY not set, admin login is disabled")
	}

	return cfg, nil
}
