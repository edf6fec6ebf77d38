// filepath: internal/repository/migrate.go
package repository

import (
	"fmt"

	"github.com/pressly/goose/v3"

	"kpihub/internal/db/migrations"
	"kpihub/internal/logging"
)

// configureGoose points goose at the embedded migration files.
func configureGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// EnsureSchemaBootstrapped migrates a fresh database to the latest schema.
// A database that already carries a goose version table is left untouched so
// that an operator-driven migration flow is never bypassed.
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'",
	).Scan(&name)
	if err == nil {
		logging.Log.Debug("EnsureSchemaBootstrapped: Version table present, skipping auto-migration.")
		return nil
	}

	logging.Log.Info("Fresh database detected, applying migrations...")
	return s.MigrateUp()
}

// ValidateSchema verifies the database is at the latest known migration.
func (s *Repository) ValidateSchema() error {
	if err := configureGoose(); err != nil {
		return err
	}
	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	latest, err := latestMigrationVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("database schema is outdated (have %d, want %d): run 'kpihub migrate up'", current, latest)
	}
	return nil
}

// MigrateUp migrates the database to the most recent version.
func (s *Repository) MigrateUp() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Up(s.DB, ".")
}

// MigrateDown rolls the database back by one version.
func (s *Repository) MigrateDown() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Down(s.DB, ".")
}

// MigrationStatus prints the migration status for the current database.
func (s *Repository) MigrationStatus() error {
	if err := configureGoose(); err != nil {
		return err
	}
	return goose.Status(s.DB, ".")
}

// latestMigrationVersion returns the highest version among the embedded
// migration files.
func latestMigrationVersion() (int64, error) {
	migs, err := goose.CollectMigrations(".", 0, goose.MaxVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to collect migrations: %w", err)
	}
	last, err := migs.Last()
	if err != nil {
		return 0, fmt.Errorf("no embedded migrations found: %w", err)
	}
	return last.Version, nil
}
