package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	"github.com/SscSPs/duebook/internal/models"
	"github.com/SscSPs/duebook/internal/repositories/database/filter"
	"github.com/SscSPs/duebook/internal/utils/mapping"
	"github.com/SscSPs/duebook/internal/utils/pagination"
	"github.com/SscSPs/duebook/pkg/database"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	BaseRepository
}

// newAccountRepository creates a new repository for account data.
func newAccountRepository(db database.Gateway) portsrepo.AccountRepositoryFacade {
	return &AccountRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure AccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func scanAccount(s scanner) (domain.Account, error) {
	var m models.Account
	if err := s.Scan(m.ScanTargets()...); err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// scanOne maps a single-row result, turning "no row" into NotFound.
func scanOne(row database.Row, action string) (*domain.Account, error) {
	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("Account not found")
		}
		return nil, apperrors.NewStoreError("failed to "+action+" account", err)
	}
	return &acc, nil
}

// SaveAccount inserts a new account and returns the stored row.
func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := r.q(`
		INSERT INTO accounts (id, owner_id, title, description, amount, type, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + models.AccountColumns)

	row := r.DB.QueryRow(ctx, query,
		m.ID,
		m.OwnerID,
		m.Title,
		m.Description,
		m.Amount,
		m.Type,
		m.DueDate,
		m.Status,
		m.CreatedAt.Time,
		m.UpdatedAt.Time,
	)
	saved, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, database.ErrUniqueViolation) {
			return nil, fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.ID)
		}
		return nil, apperrors.NewStoreError("failed to save account", err)
	}
	return &saved, nil
}

// FindAccountByID retrieves one of the owner's accounts.
func (r *AccountRepository) FindAccountByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	query := r.q(`SELECT ` + models.AccountColumns + ` FROM accounts WHERE id = $1 AND owner_id = $2`)
	return scanOne(r.DB.QueryRow(ctx, query, accountID, ownerID), "find")
}

// UpdateAccount replaces the mutable fields; ownership is part of the same statement.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := r.q(`
		UPDATE accounts
		SET title = $3, description = $4, amount = $5, type = $6, due_date = $7, status = $8, updated_at = $9
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + models.AccountColumns)

	row := r.DB.QueryRow(ctx, query,
		m.ID,
		m.OwnerID,
		m.Title,
		m.Description,
		m.Amount,
		m.Type,
		m.DueDate,
		m.Status,
		m.UpdatedAt.Time,
	)
	return scanOne(row, "update")
}

// MarkAccountPaid sets status to paid. An account that is already paid keeps its updated_at.
func (r *AccountRepository) MarkAccountPaid(ctx context.Context, ownerID, accountID string, now time.Time) (*domain.Account, error) {
	query := r.q(`
		UPDATE accounts
		SET updated_at = CASE WHEN status = 'paid' THEN updated_at ELSE $3 END,
		    status = 'paid'
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + models.AccountColumns)
	return scanOne(r.DB.QueryRow(ctx, query, accountID, ownerID, now), "mark paid")
}

// DeleteAccount permanently removes an owned account.
func (r *AccountRepository) DeleteAccount(ctx context.Context, ownerID, accountID string) error {
	query := r.q(`DELETE FROM accounts WHERE id = $1 AND owner_id = $2`)
	n, err := r.DB.Exec(ctx, query, accountID, ownerID)
	if err != nil {
		return apperrors.NewStoreError("failed to delete account", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError("Account not found")
	}
	return nil
}

// ListAccounts retrieves one page of the filtered accounts.
func (r *AccountRepository) ListAccounts(ctx context.Context, ownerID string, f domain.AccountFilter) ([]domain.Account, error) {
	page := pagination.Clamp(f.Page, f.PageSize)
	query, args := filter.Build(f, ownerID).ListQuery(r.DB.Dialect(), models.AccountColumns, page.Size, page.Offset())
	return queryList(ctx, r.DB, "accounts", scanAccount, query, args...)
}

// CountAccounts counts the filtered accounts with the same predicate ListAccounts uses.
func (r *AccountRepository) CountAccounts(ctx context.Context, ownerID string, f domain.AccountFilter) (int64, error) {
	query, args := filter.Build(f, ownerID).CountQuery(r.DB.Dialect())
	var total int64
	if err := r.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.NewStoreError("failed to count accounts", err)
	}
	return total, nil
}

// SummarizeAccounts computes every dashboard total in a single statement.
func (r *AccountRepository) SummarizeAccounts(ctx context.Context, ownerID string) (*domain.DashboardSummary, error) {
	query := r.q(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN type = 'payable' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'receivable' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'payable' AND status = 'pending' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'receivable' AND status = 'pending' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'payable' AND status = 'paid' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN type = 'receivable' AND status = 'paid' THEN amount ELSE 0 END), 0)
		FROM accounts
		WHERE owner_id = $1`)

	var s domain.DashboardSummary
	err := r.DB.QueryRow(ctx, query, ownerID).Scan(
		&s.TotalAccounts,
		&s.TotalPayable,
		&s.TotalReceivable,
		&s.PendingPayable,
		&s.PendingReceivable,
		&s.PaidPayable,
		&s.PaidReceivable,
	)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to summarize accounts", err)
	}

	// SQLite sums NUMERIC as floating point
	for _, d := range []*decimal.Decimal{
		&s.TotalPayable, &s.TotalReceivable,
		&s.PendingPayable, &s.PendingReceivable,
		&s.PaidPayable, &s.PaidReceivable,
	} {
		*d = d.Round(2)
	}
	return &s, nil
}

// ListRecentAccounts returns the newest accounts first.
func (r *AccountRepository) ListRecentAccounts(ctx context.Context, ownerID string, limit int) ([]domain.Account, error) {
	query := r.q(`SELECT ` + models.AccountColumns + `
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`)
	return queryList(ctx, r.DB, "recent accounts", scanAccount, query, ownerID, limit)
}

// ListOverdueAccounts returns pending accounts due strictly before today, oldest due first.
func (r *AccountRepository) ListOverdueAccounts(ctx context.Context, ownerID string, today domain.Date) ([]domain.Account, error) {
	query := r.q(`SELECT ` + models.AccountColumns + `
		FROM accounts
		WHERE owner_id = $1 AND status = 'pending' AND due_date < $2
		ORDER BY due_date ASC, created_at DESC`)
	return queryList(ctx, r.DB, "overdue accounts", scanAccount, query, ownerID, today)
}
