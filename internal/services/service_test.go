// filepath: internal/services/service_test.go
package services

import (
	"os"
	"testing"
	"time"

	"github.com/pressly/goose/v3"

	"kpihub/internal/config"
	"kpihub/internal/db/migrations"
	"kpihub/internal/repository"
)

func setupServiceTest(t *testing.T) (*repository.Repository, func()) {
	t.Helper()
	const dbPath = "test_kpihub_services.db"

	os.Remove(dbPath)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: dbPath},
	}
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("Failed to set goose dialect: %v", err)
	}
	if err := goose.Up(repo.DB, "."); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	cleanup := func() {
		repo.Close()
		os.Remove(dbPath)
	}
	return repo, cleanup
}

func maxExpiry(t *testing.T) time.Time {
	t.Helper()
	return time.Now().Add(time.Hour)
}
