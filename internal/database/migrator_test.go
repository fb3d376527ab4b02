package database

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, opts ...sqlmock.SqlMockOption) (*MigrationRunner, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := NewMigrationRunner(db)
	runner.waitInterval = 10 * time.Millisecond
	return runner, mock
}

func TestNewMigrationRunner_Defaults(t *testing.T) {
	runner, _ := newTestRunner(t)

	assert.Equal(t, migrationsPath, runner.migrationsPath)
	assert.Equal(t, seedsPath, runner.seedsPath)
	assert.Equal(t, defaultWaitAttempts, runner.waitAttempts)
}

func TestNewMigrationRunnerWithPaths(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunnerWithPaths(db, "custom/migrations", "custom/seeds")

	assert.Equal(t, "custom/migrations", runner.migrationsPath)
	assert.Equal(t, "custom/seeds", runner.seedsPath)
}

func TestWaitForDatabase_Success(t *testing.T) {
	runner, mock := newTestRunner(t, sqlmock.MonitorPingsOption(true))

	mock.ExpectPing().WillReturnError(nil)

	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_FailureThenSuccess(t *testing.T) {
	runner, mock := newTestRunner(t, sqlmock.MonitorPingsOption(true))
	runner.waitAttempts = 2

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(nil)

	assert.NoError(t, runner.WaitForDatabase())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWaitForDatabase_AlwaysFails(t *testing.T) {
	runner, mock := newTestRunner(t, sqlmock.MonitorPingsOption(true))
	runner.waitAttempts = 3

	for i := 0; i < runner.waitAttempts; i++ {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	err := runner.WaitForDatabase()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database not ready after")
}

func TestRunMigrations_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunnerWithPaths(db, "/nonexistent/path/to/migrations", seedsPath)

	// Missing directory means a pre-provisioned schema, not a failure
	assert.NoError(t, runner.RunMigrations())
}

func TestLoadSeeds_DisabledByEnvironment(t *testing.T) {
	runner, _ := newTestRunner(t)

	t.Setenv("SEED_DATABASE", "false")

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("SEED_DATABASE", "true")

	runner := NewMigrationRunnerWithPaths(db, migrationsPath, "/nonexistent/seeds/path")

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_NoSeedFiles(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("SEED_DATABASE", "true")

	runner := NewMigrationRunnerWithPaths(db, migrationsPath, t.TempDir())

	assert.NoError(t, runner.LoadSeeds())
}

func TestLoadSeeds_ExecutesFilesInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("SEED_DATABASE", "true")

	seedsDir := t.TempDir()
	first := "INSERT INTO expense_categories (id, name) VALUES ('a', 'Food') ON CONFLICT (name) DO NOTHING;"
	second := "INSERT INTO expense_categories (id, name) VALUES ('b', 'Travel') ON CONFLICT (name) DO NOTHING;"
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, "001_categories.sql"), []byte(first), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, "002_more_categories.sql"), []byte(second), 0644))

	// Expectations are ordered; lexical file order must match
	mock.ExpectExec("Food").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("Travel").WillReturnResult(sqlmock.NewResult(0, 1))

	runner := NewMigrationRunnerWithPaths(db, migrationsPath, seedsDir)

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadSeeds_ContinuesAfterFailedFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("SEED_DATABASE", "true")

	seedsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, "001_bad.sql"), []byte("NOT SQL"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(seedsDir, "002_good.sql"), []byte("SELECT 1;"), 0644))

	mock.ExpectExec("NOT SQL").WillReturnError(errors.New("syntax error"))
	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))

	runner := NewMigrationRunnerWithPaths(db, migrationsPath, seedsDir)

	assert.NoError(t, runner.LoadSeeds())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationStatus_DirectoryNotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	runner := NewMigrationRunnerWithPaths(db, "/nonexistent/path", seedsPath)

	_, _, err = runner.MigrationStatus()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations directory not found")
}

func TestRunMigrationsIfEnabled_Disabled(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Setenv("AUTO_MIGRATE", "false")

	assert.NoError(t, RunMigrationsIfEnabled(db))
}
