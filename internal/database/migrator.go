package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"expense-tracker-api/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	migrationsPath = "db/migrations"
	seedsPath      = "db/seeds"
)

var (
	maxRetries    = 30
	retryInterval = 2 * time.Second
)

// MigrationRunner applies the versioned schema under db/migrations and the
// system-category catalog under db/seeds
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
}

// NewMigrationRunner creates a runner over the default migration and seed
// directories
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return &MigrationRunner{
		db:             db,
		migrationsPath: migrationsPath,
		seedsPath:      seedsPath,
	}
}

// WaitForDatabase polls the connection until the database answers, so the
// server can start before postgres does (container orchestration ordering)
func (mr *MigrationRunner) WaitForDatabase() error {
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := mr.db.Ping()
		if err == nil {
			slog.Info("Database is ready", "attempts", attempt)
			return nil
		}

		slog.Warn("Database not ready", "attempt", attempt, "max_attempts", maxRetries, "error", err)
		time.Sleep(retryInterval)
	}

	return fmt.Errorf("database not ready after %d attempts", maxRetries)
}

// newMigrate builds a migrate instance over the file source and the shared
// *sql.DB
func (mr *MigrationRunner) newMigrate() (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(mr.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	driver, err := postgres.WithInstance(mr.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return m, nil
}

// RunMigrations applies all pending migrations. A missing migrations
// directory is not an error; deployments that rely on AutoMigrate alone
// ship without one.
func (mr *MigrationRunner) RunMigrations() error {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		slog.Info("No migrations directory, skipping", "path", mr.migrationsPath)
		return nil
	}

	m, err := mr.newMigrate()
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		// A previous run died mid-migration; clear the dirty flag so Up
		// can proceed
		slog.Warn("Database in dirty migration state, forcing version", "version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err == migrate.ErrNoChange {
		slog.Info("Schema already current", "version", version)
		return nil
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}
	slog.Info("Migrations applied", "from_version", version, "to_version", newVersion)

	return nil
}

// LoadSeeds executes the seed SQL files in name order. The seed files use
// ON CONFLICT DO NOTHING, so re-running is a no-op and one bad file does
// not block the rest.
func (mr *MigrationRunner) LoadSeeds() error {
	if _, err := os.Stat(mr.seedsPath); os.IsNotExist(err) {
		slog.Info("No seeds directory, skipping", "path", mr.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to find seed files: %w", err)
	}

	if len(files) == 0 {
		slog.Info("No seed files found", "path", mr.seedsPath)
		return nil
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := mr.db.Exec(string(content)); err != nil {
			slog.Warn("Seed file failed", "file", filepath.Base(file), "error", err)
			continue
		}

		slog.Info("Seed file applied", "file", filepath.Base(file))
	}

	return nil
}

// GetMigrationStatus reports the current schema version and dirty flag
func (mr *MigrationRunner) GetMigrationStatus() (version uint, dirty bool, err error) {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		return 0, false, fmt.Errorf("migrations directory not found")
	}

	m, err := mr.newMigrate()
	if err != nil {
		return 0, false, err
	}

	return m.Version()
}

// RunMigrationsIfEnabled runs the full migrate-and-seed sequence when
// automatic migration is configured on
func RunMigrationsIfEnabled(db *sql.DB, cfg *config.DatabaseConfig) error {
	if !cfg.AutoMigrate {
		slog.Info("Auto-migration disabled")
		return nil
	}

	runner := NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := runner.RunMigrations(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if cfg.SeedCatalog {
		if err := runner.LoadSeeds(); err != nil {
			slog.Warn("Seed loading failed", "error", err)
		}
	}

	if version, dirty, err := runner.GetMigrationStatus(); err != nil {
		slog.Warn("Failed to read migration status", "error", err)
	} else {
		slog.Info("Migration status", "version", version, "dirty", dirty)
	}

	return nil
}
