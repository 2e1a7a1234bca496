package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/duebook/internal/core/domain"
)

// Every method is scoped to an owner. A row that exists but belongs to someone
// else is indistinguishable from a missing row.

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves one of the owner's accounts.
	FindAccountByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error)

	// ListAccounts retrieves the page of accounts selected by the filter.
	// Page and PageSize must already be normalized.
	ListAccounts(ctx context.Context, ownerID string, filter domain.AccountFilter) ([]domain.Account, error)

	// CountAccounts counts every account the filter selects, ignoring paging.
	CountAccounts(ctx context.Context, ownerID string, filter domain.AccountFilter) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account and returns the stored row.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount replaces the mutable fields of an owned account in one statement.
	UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// MarkAccountPaid sets status to paid. updated_at only changes if the status did.
	MarkAccountPaid(ctx context.Context, ownerID, accountID string, now time.Time) (*domain.Account, error)

	// DeleteAccount permanently removes an owned account.
	DeleteAccount(ctx context.Context, ownerID, accountID string) error
}

// AccountAggregator defines the read-only dashboard queries.
type AccountAggregator interface {
	// SummarizeAccounts computes counts and sums over all of the owner's accounts.
	SummarizeAccounts(ctx context.Context, ownerID string) (*domain.DashboardSummary, error)

	// ListRecentAccounts returns the most recently created accounts, newest first.
	ListRecentAccounts(ctx context.Context, ownerID string, limit int) ([]domain.Account, error)

	// ListOverdueAccounts returns pending accounts due strictly before today.
	ListOverdueAccounts(ctx context.Context, ownerID string, today domain.Date) ([]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountAggregator
}
