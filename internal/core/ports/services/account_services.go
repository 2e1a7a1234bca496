package services

import (
	"context"

	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves one of the owner's accounts.
	GetAccount(ctx context.Context, ownerID, accountID string) (*domain.Account, error)

	// ListAccounts returns the requested page of the owner's filtered accounts.
	ListAccounts(ctx context.Context, ownerID string, filter domain.AccountFilter) (*domain.AccountPage, error)
}

// AccountWriterSvc defines the account lifecycle
type AccountWriterSvc interface {
	// CreateAccount validates and stores a new pending account.
	CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount validates and replaces every mutable field.
	UpdateAccount(ctx context.Context, ownerID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// MarkAccountPaid settles an account. Repeating it has no further effect.
	MarkAccountPaid(ctx context.Context, ownerID, accountID string) (*domain.Account, error)

	// DeleteAccount permanently removes an account.
	DeleteAccount(ctx context.Context, ownerID, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

// DashboardSvc exposes the read-only aggregation views.
type DashboardSvc interface {
	GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error)
	Summarize(ctx context.Context, ownerID string) (*domain.DashboardSummary, error)
	Recent(ctx context.Context, ownerID string) ([]domain.Account, error)
	Overdue(ctx context.Context, ownerID string) ([]domain.Account, error)
}
