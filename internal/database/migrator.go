package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	migrationsPath = "db/migrations"
	seedsPath      = "db/seeds"

	defaultWaitAttempts = 30
	defaultWaitInterval = 2 * time.Second
)

// MigrationRunner applies schema migrations and seed data at startup
type MigrationRunner struct {
	db             *sql.DB
	migrationsPath string
	seedsPath      string
	waitAttempts   int
	waitInterval   time.Duration
}

// NewMigrationRunner creates a runner over the default db/ layout
func NewMigrationRunner(db *sql.DB) *MigrationRunner {
	return NewMigrationRunnerWithPaths(db, migrationsPath, seedsPath)
}

// NewMigrationRunnerWithPaths creates a runner with explicit directories
func NewMigrationRunnerWithPaths(db *sql.DB, migrations, seeds string) *MigrationRunner {
	return &MigrationRunner{
		db:             db,
		migrationsPath: migrations,
		seedsPath:      seeds,
		waitAttempts:   defaultWaitAttempts,
		waitInterval:   defaultWaitInterval,
	}
}

// WaitForDatabase pings until the store answers or the attempt budget
// runs out. Startup ordering against the database container is not
// guaranteed, so the first pings routinely fail.
func (mr *MigrationRunner) WaitForDatabase() error {
	slog.Info("waiting for database")

	for attempt := 1; attempt <= mr.waitAttempts; attempt++ {
		if err := mr.db.Ping(); err == nil {
			slog.Info("database is ready", "attempts", attempt)
			return nil
		} else {
			slog.Warn("database not ready",
				"attempt", attempt,
				"max_attempts", mr.waitAttempts,
				"error", err.Error(),
			)
		}
		time.Sleep(mr.waitInterval)
	}

	return fmt.Errorf("database not ready after %d attempts", mr.waitAttempts)
}

func (mr *MigrationRunner) migrateInstance() (*migrate.Migrate, error) {
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

// RunMigrations applies all pending schema migrations. A missing
// migrations directory is not an error so the binary can run against a
// pre-provisioned schema.
func (mr *MigrationRunner) RunMigrations() error {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		slog.Info("migrations directory not found, skipping", "path", mr.migrationsPath)
		return nil
	}

	m, err := mr.migrateInstance()
	if err != nil {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d, resolve manually before starting", version)
	}

	slog.Info("running migrations", "path", mr.migrationsPath, "current_version", version)

	switch err := m.Up(); err {
	case nil:
		newVersion, _, versionErr := m.Version()
		if versionErr != nil {
			return fmt.Errorf("failed to get new migration version: %w", versionErr)
		}
		slog.Info("migrations applied", "version", newVersion)
	case migrate.ErrNoChange:
		slog.Info("schema is up to date", "version", version)
	default:
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// LoadSeeds executes the seed scripts in lexical order. Gated behind
// SEED_DATABASE=true; seed scripts must be idempotent (ON CONFLICT DO
// NOTHING) since the gate does not track what already ran.
func (mr *MigrationRunner) LoadSeeds() error {
	if os.Getenv("SEED_DATABASE") != "true" {
		slog.Info("seed loading disabled")
		return nil
	}

	if _, err := os.Stat(mr.seedsPath); os.IsNotExist(err) {
		slog.Info("seeds directory not found, skipping", "path", mr.seedsPath)
		return nil
	}

	files, err := filepath.Glob(filepath.Join(mr.seedsPath, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list seed files: %w", err)
	}
	if len(files) == 0 {
		slog.Info("no seed files found", "path", mr.seedsPath)
		return nil
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", file, err)
		}

		if _, err := mr.db.Exec(string(content)); err != nil {
			slog.Warn("seed file failed, continuing",
				"file", filepath.Base(file),
				"error", err.Error(),
			)
			continue
		}

		slog.Info("seed file applied", "file", filepath.Base(file))
	}

	return nil
}

// MigrationStatus reports the current schema version
func (mr *MigrationRunner) MigrationStatus() (version uint, dirty bool, err error) {
	if _, err := os.Stat(mr.migrationsPath); os.IsNotExist(err) {
		return 0, false, fmt.Errorf("migrations directory not found")
	}

	m, err := mr.migrateInstance()
	if err != nil {
		return 0, false, err
	}

	return m.Version()
}

// RunMigrationsIfEnabled waits for the store, migrates and seeds it,
// gated behind AUTO_MIGRATE=true
func RunMigrationsIfEnabled(db *sql.DB) error {
	if os.Getenv("AUTO_MIGRATE") != "true" {
		slog.Info("auto-migration disabled")
		return nil
	}

	runner := NewMigrationRunner(db)

	if err := runner.WaitForDatabase(); err != nil {
		return fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := runner.RunMigrations(); err != nil {
		return fmt.Errorf("migration execution failed: %w", err)
	}

	if err := runner.LoadSeeds(); err != nil {
		slog.Warn("seed loading failed", "error", err.Error())
	}

	return nil
}
