// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	_ "modernc.org/sqlite" // SQLite driver

	"kpihub/internal/config"
	"kpihub/internal/logging"
)

// Errors surfaced by the storage layer. Handlers map these to HTTP codes.
var (
	// ErrUserExists is returned when trying to create a user that already exists.
	ErrUserExists = errors.New("user already exists")
	// ErrNotFound is returned when the targeted row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrWeightBudgetExceeded is returned when an indicator write would push a
	// template's weight sum above 100%.
	ErrWeightBudgetExceeded = errors.New("indicator weights may not sum above 100%")
)

// Repository provides access to the SQLite store.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL Query Builder
}

// NewRepository opens (or creates) the SQLite database and verifies its
// integrity. Transactions are opened in immediate mode so the weight-budget
// read-check-write sequence is serialized against concurrent writers.
func NewRepository(cfg *config.Config) (*Repository, error) {
	dsn := fmt.Sprintf(
		"file:%s?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=foreign_keys(1)",
		cfg.Database.Path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", cfg.Database.Path, err)
	}

	var integrity string
	if err := db.QueryRow("PRAGMA integrity_check;").Scan(&integrity); err != nil {
		db.Close()
		return nil, fmt.Errorf("integrity check failed for %s: %w; restore the database from backup or delete it to reinitialize", cfg.Database.Path, err)
	}
	if integrity != "ok" {
		db.Close()
		return nil, fmt.Errorf("database %s is corrupt (%s); restore the database from backup or delete it to reinitialize", cfg.Database.Path, integrity)
	}

	logging.Log.Debugf("NewRepository: Opened database at %s", cfg.Database.Path)

	return &Repository{
		DB:      db,
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close closes the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}
