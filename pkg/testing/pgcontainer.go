package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const pgImage = "postgres:17.5"

type PGConfig struct {
	Database string
	Username string
	Password string
}

// PGContainer is a disposable Postgres with this repo's migrations
// already applied.
type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	initScript, err := collectMigrations()
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "journal-migrations-*.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to create init script: %w", err)
	}
	if _, err := tmp.WriteString(initScript); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("failed to write init script: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("failed to close init script: %w", err)
	}

	container, err := postgres.Run(ctx,
		pgImage,
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		postgres.WithInitScripts(tmp.Name()),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	return &PGContainer{Container: container, ConnString: connStr}, nil
}

// NewPGContainerWithCleanup ties container teardown to the test.
func NewPGContainerWithCleanup(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	container, err := NewPGContainer(ctx, PGConfig{
		Database: "journal_test_db",
		Username: "test",
		Password: "test",
	})
	if err != nil {
		tb.Fatalf("failed to create postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container.Container); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	return container
}

// collectMigrations concatenates db/migrations/*.up.sql in name order.
// The path is resolved relative to this source file so tests can run
// from any package directory.
func collectMigrations() (string, error) {
	_, self, _, _ := runtime.Caller(0)
	dir := filepath.Join(filepath.Dir(self), "..", "..", "db", "migrations")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", fmt.Errorf("failed to read migration %s: %w", entry.Name(), err)
		}
		b.Write(content)
		b.WriteString(";\n")
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no migrations found in %s", dir)
	}
	return b.String(), nil
}
