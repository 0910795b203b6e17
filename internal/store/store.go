// Package store performs the one-time schema initialization against
// the Postgres store. The migration set is embedded in the binary and
// applied with golang-migrate, so initialization is idempotent and safe
// on every process start, including restarts and scale-out replicas
// (golang-migrate takes a Postgres advisory lock around the run).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for golang-migrate

	"github.com/salahapp/salat-bootstrap/internal/logger"
	"github.com/salahapp/salat-bootstrap/internal/store/migrations"
)

// MigrationsTable is the bookkeeping table golang-migrate maintains.
const MigrationsTable = "schema_migrations"

// Initialize applies all pending migrations to the database reachable
// through databaseURL. A database that is already at the latest version
// is success, not an error; anything else is fatal to the caller.
func Initialize(ctx context.Context, databaseURL string) error {
	logger.Info("initializing store schema")

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("opening database connection: %w", err)
	}
	defer db.Close() //nolint:errcheck

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: MigrationsTable,
	})
	if err != nil {
		return fmt.Errorf("creating postgres migration driver: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("reading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("store schema already up to date")
	case err != nil:
		return fmt.Errorf("applying migrations: %w", err)
	default:
		logger.Info("store schema migrations applied")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("reading migration version: %w", err)
	}
	if err == nil {
		logger.Info("store schema version", "version", version, "dirty", dirty)
		if dirty {
			logger.Warn("store schema is dirty, manual intervention may be required")
		}
	}

	return nil
}
