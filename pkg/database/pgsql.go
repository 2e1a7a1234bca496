package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

// PgxGateway is the PostgreSQL Gateway backed by a pgx connection pool.
type PgxGateway struct {
	pool *pgxpool.Pool
}

var _ Gateway = (*PgxGateway)(nil)

// NewPgxPool creates a new PostgreSQL connection pool and verifies it with a ping.
func NewPgxPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	// pgxpool.ParseConfig also honours PGHOST, PGUSER, etc.
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Successfully connected to PostgreSQL database")
	return pool, nil
}

// NewPgxGateway wraps an existing pool.
func NewPgxGateway(pool *pgxpool.Pool) *PgxGateway {
	return &PgxGateway{pool: pool}
}

func (g *PgxGateway) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := g.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, normalizePgError(err)
	}
	return rows, nil
}

func (g *PgxGateway) QueryRow(ctx context.Context, query string, args ...any) Row {
	return pgxRow{row: g.pool.QueryRow(ctx, query, args...)}
}

func (g *PgxGateway) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := g.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, normalizePgError(err)
	}
	return tag.RowsAffected(), nil
}

func (g *PgxGateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

func (g *PgxGateway) Dialect() Dialect { return Postgres }

// Close closes the PostgreSQL connection pool.
func (g *PgxGateway) Close() {
	if g.pool != nil {
		g.pool.Close()
		slog.Info("PostgreSQL connection pool closed")
	}
}

type pgxRow struct {
	row pgx.Row
}

func (r pgxRow) Scan(dest ...any) error {
	return normalizePgError(r.row.Scan(dest...))
}

func normalizePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", ErrUniqueViolation, pgErr.ConstraintName)
	}
	return err
}
