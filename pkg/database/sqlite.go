package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteTimeLayout is fixed width so that TEXT ordering matches time ordering.
const SQLiteTimeLayout = "2006-01-02 15:04:05.000000000+00:00"

// SQLiteLowerFunc is registered on every SQLite connection and lowercases
// text with Unicode case mapping.
const SQLiteLowerFunc = "unicode_lower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(SQLiteLowerFunc, 1, unicodeLower); err != nil {
		panic(fmt.Sprintf("register %s: %v", SQLiteLowerFunc, err))
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		// numbers are returned as-is, like LOWER does
		return v, nil
	}
}

// SQLGateway is the Gateway for database/sql drivers. It is used with the
// pure-Go SQLite driver for local mode and tests.
type SQLGateway struct {
	db *sql.DB
}

var _ Gateway = (*SQLGateway)(nil)

// OpenSQLite opens (creating if needed) the SQLite database file at path with
// foreign keys enforced.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Info("Opened SQLite database", slog.String("path", path))
	return db, nil
}

// NewSQLGateway wraps an open *sql.DB.
func NewSQLGateway(db *sql.DB) *SQLGateway {
	return &SQLGateway{db: db}
}

func (g *SQLGateway) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	normalized, err := normalizeArgs(args)
	if err != nil {
		return nil, err
	}
	rows, err := g.db.QueryContext(ctx, query, normalized...)
	if err != nil {
		return nil, normalizeSQLiteError(err)
	}
	return sqlRows{rows: rows}, nil
}

func (g *SQLGateway) QueryRow(ctx context.Context, query string, args ...any) Row {
	normalized, err := normalizeArgs(args)
	if err != nil {
		return errRow{err: err}
	}
	return sqlRow{row: g.db.QueryRowContext(ctx, query, normalized...)}
}

func (g *SQLGateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	normalized, err := normalizeArgs(args)
	if err != nil {
		return 0, err
	}
	res, err := g.db.ExecContext(ctx, query, normalized...)
	if err != nil {
		return 0, normalizeSQLiteError(err)
	}
	return res.RowsAffected()
}

func (g *SQLGateway) Ping(ctx context.Context) error {
	return g.db.PingContext(ctx)
}

func (g *SQLGateway) Dialect() Dialect { return SQLite }

func (g *SQLGateway) Close() {
	if g.db != nil {
		if err := g.db.Close(); err != nil {
			slog.Error("Failed to close SQLite database", slog.String("error", err.Error()))
			return
		}
		slog.Info("SQLite database closed")
	}
}

// normalizeArgs resolves driver.Valuer arguments and renders times in
// SQLiteTimeLayout, UTC.
func normalizeArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		if v, ok := arg.(driver.Valuer); ok {
			val, err := v.Value()
			if err != nil {
				return nil, fmt.Errorf("convert argument %d: %w", i+1, err)
			}
			arg = val
		}
		if t, ok := arg.(time.Time); ok {
			arg = t.UTC().Format(SQLiteTimeLayout)
		}
		out[i] = arg
	}
	return out, nil
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool             { return r.rows.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r sqlRows) Err() error             { return normalizeSQLiteError(r.rows.Err()) }

// Close releases the connection; the close error is reported through Err.
func (r sqlRows) Close() { _ = r.rows.Close() }

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	return normalizeSQLiteError(r.row.Scan(dest...))
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

func normalizeSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE")) {
			return fmt.Errorf("%w: %s", ErrUniqueViolation, sqliteErr.Error())
		}
	}
	return err
}
