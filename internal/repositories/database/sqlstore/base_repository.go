package sqlstore

import (
	"context"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/pkg/database"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB database.Gateway
}

// q rewrites a statement written with $n parameters for the active dialect.
func (r *BaseRepository) q(query string) string {
	return database.Rebind(r.DB.Dialect(), query)
}

// scanner is satisfied by both database.Row and database.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryList runs a multi-row query and collects every row with scan.
// rows is closed on every path.
func queryList[T any](ctx context.Context, db database.Gateway, what string, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to query "+what, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, apperrors.NewStoreError("failed to scan "+what, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("error iterating "+what, err)
	}
	return items, nil
}
