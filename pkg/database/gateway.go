package database

import (
	"context"
	"errors"
	"regexp"
	"strconv"
)

// ErrNoRows is returned by Row.Scan when a query matched nothing, regardless of driver.
var ErrNoRows = errors.New("no rows in result set")

// ErrUniqueViolation is returned when a write breaks a unique constraint.
var ErrUniqueViolation = errors.New("unique constraint violation")

// Rows is a forward-only cursor over a result set. Close must be called on every path.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Row is the result of QueryRow. Scan returns ErrNoRows when nothing matched.
type Row interface {
	Scan(dest ...any) error
}

// Dialect captures the SQL differences the repositories care about.
type Dialect interface {
	Name() string
	// Placeholder returns the marker for the n-th (1-based) bound parameter.
	Placeholder(n int) string
	// Lower wraps expr in the dialect's Unicode-aware lowercase function.
	Lower(expr string) string
}

// Gateway executes parameterized statements against the record store.
// Values are only ever passed as bound parameters.
type Gateway interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	// Exec runs a statement and reports the number of affected rows.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Ping(ctx context.Context) error
	Dialect() Dialect
	Close()
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return "postgres" }
func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }
func (postgresDialect) Lower(expr string) string { return "LOWER(" + expr + ")" }

// sqlite numbered parameters (?NNN) may be referenced more than once, like $n.
type sqliteDialect struct{}

func (sqliteDialect) Name() string             { return "sqlite" }
func (sqliteDialect) Placeholder(n int) string { return "?" + strconv.Itoa(n) }

// SQLite's built-in LOWER only folds ASCII.
func (sqliteDialect) Lower(expr string) string { return SQLiteLowerFunc + "(" + expr + ")" }

// Postgres and SQLite are the supported dialects.
var (
	Postgres Dialect = postgresDialect{}
	SQLite   Dialect = sqliteDialect{}
)

var numberedParam = regexp.MustCompile(`\$(\d+)`)

// Rebind rewrites a statement written with $n parameters into the dialect's style.
func Rebind(d Dialect, query string) string {
	if d.Name() == Postgres.Name() {
		return query
	}
	return numberedParam.ReplaceAllStringFunc(query, func(m string) string {
		n, _ := strconv.Atoi(m[1:])
		return d.Placeholder(n)
	})
}
