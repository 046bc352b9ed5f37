package db

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsTable records the applied version of the ordering schema. It is
// kept apart from the default table so the database can be shared.
const MigrationsTable = "ordering_schema_migrations"

const migrationSource = "ordering-schema"

// ErrDirtySchema means a previous migration stopped halfway. The schema has
// to be repaired and the version forced before the API can start.
var ErrDirtySchema = errors.New("ordering schema is dirty")

// RunMigrations brings the users, categories, products, orders and items
// tables up to the version embedded in this build.
func RunMigrations(dsn string, logger *log.Logger) error {
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	target, err := latestVersion(src)
	if err != nil {
		return err
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance(migrationSource, src, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		current = 0
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case dirty:
		return fmt.Errorf("%w at version %d", ErrDirtySchema, current)
	case current > target:
		// a newer build already migrated; this one still reads the tables it knows
		logger.Printf("schema: version %d is ahead of this build (%d), skipping migrations", current, target)
		return nil
	case current == target:
		logger.Printf("schema: version %d, up to date", current)
		return nil
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate schema from version %d: %w", current, err)
	}
	logger.Printf("schema: migrated from version %d to %d", current, target)
	return nil
}

// latestVersion walks the migration source to its last up migration.
func latestVersion(src source.Driver) (uint, error) {
	v, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("first migration: %w", err)
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, fmt.Errorf("next migration after %d: %w", v, err)
		}
		v = next
	}
}
