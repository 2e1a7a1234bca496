package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// Direction selects whether migrations are applied or rolled back.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Run applies (or rolls back) the embedded migrations for the given store driver.
// dsn is the PostgreSQL URL or the SQLite file path. It opens its own connection
// so the application's pool is left untouched.
func Run(storeDriver, dsn string, dir Direction, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		sqlDriverName string
		dbName        string
		open          func(*sql.DB) (database.Driver, error)
	)
	switch storeDriver {
	case "postgres":
		// pgx stdlib keeps the migration connection on the same driver as the pool
		sqlDriverName, dbName = "pgx", "postgres"
		open = func(db *sql.DB) (database.Driver, error) {
			return postgres.WithInstance(db, &postgres.Config{})
		}
	case "sqlite":
		sqlDriverName, dbName = "sqlite", "sqlite"
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
		open = func(db *sql.DB) (database.Driver, error) {
			return sqlite.WithInstance(db, &sqlite.Config{})
		}
	default:
		return fmt.Errorf("unsupported store driver %q", storeDriver)
	}

	migrationDB, err := sql.Open(sqlDriverName, dsn)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return fmt.Errorf("ping migration database: %w", err)
	}

	driver, err := open(migrationDB)
	if err != nil {
		migrationDB.Close()
		return fmt.Errorf("create %s migration driver: %w", dbName, err)
	}

	m, err := newMigrate(migrationsFS, dbName, driver)
	if err != nil {
		return err
	}

	logger.Info("Running database migrations", slog.String("driver", dbName), slog.String("direction", string(dir)))
	if dir == Down {
		err = m.Down()
	} else {
		err = m.Up()
	}

	// closing the migrate instance also closes migrationDB
	sourceErr, dbErr := m.Close()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied successfully")
	}
	return nil
}

// newMigrate builds a migrate instance over the SQL files under fsys/dir.
// The driver, and with it the underlying *sql.DB, is closed on failure.
func newMigrate(fsys fs.FS, dir string, driver database.Driver) (m *migrate.Migrate, err error) {
	defer func() {
		if err != nil {
			driver.Close()
		}
	}()

	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("locate %s migrations: %w", dir, err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("create iofs source: %w", err)
	}

	m, err = migrate.NewWithInstance("iofs", source, dir, driver)
	if err != nil {
		source.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return m, nil
}
