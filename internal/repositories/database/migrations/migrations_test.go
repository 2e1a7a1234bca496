package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLiteDriver(t *testing.T) (*sql.DB, database.Driver) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	require.NoError(t, err)
	return db, driver
}

func TestNewMigrateClosesDatabaseOnSourceError(t *testing.T) {
	db, driver := openSQLiteDriver(t)

	_, err := newMigrate(fstest.MapFS{}, "missing", driver)
	require.Error(t, err)
	assert.ErrorContains(t, db.Ping(), "database is closed")
}

func TestNewMigrateClosesDatabaseOnBadPath(t *testing.T) {
	db, driver := openSQLiteDriver(t)

	_, err := newMigrate(migrationsFS, "../outside", driver)
	require.Error(t, err)
	assert.ErrorContains(t, db.Ping(), "database is closed")
}

func TestRunUpAndDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duebook.db")
	require.NoError(t, Run("sqlite", path, Up, nil))
	require.NoError(t, Run("sqlite", path, Up, nil), "second run is a no-op")
	require.NoError(t, Run("sqlite", path, Down, nil))
}

func TestRunRejectsUnknownDriver(t *testing.T) {
	assert.ErrorContains(t, Run("mysql", "x", Up, nil), `unsupported store driver "mysql"`)
}
