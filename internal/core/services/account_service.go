package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/dto"
	"github.com/SscSPs/duebook/internal/utils/pagination"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
		now:         time.Now,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// errAccountNotFound is returned for malformed ids without touching the store.
func errAccountNotFound() error {
	return apperrors.NewNotFoundError("Account not found")
}

func isAccountID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *accountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(req); err != nil {
		s.LogDebug(ctx, "Rejected account input", slog.String("error", err.Error()))
		return nil, err
	}
	if err := checkAmount(req.Amount); err != nil {
		return nil, err
	}

	now := s.timestamp()
	account := domain.Account{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		DueDate:     req.DueDate,
		Status:      domain.Pending,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account in repository",
			slog.String("account_id", account.ID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", saved.ID),
		slog.String("type", string(saved.Type)))
	return saved, nil
}

func (s *accountService) GetAccount(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	if !isAccountID(accountID) {
		return nil, errAccountNotFound()
	}

	account, err := s.accountRepo.FindAccountByID(ctx, ownerID, accountID)
	if err != nil {
		// Not found is an expected outcome and is not logged
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID in repository",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, ownerID string, filter domain.AccountFilter) (*domain.AccountPage, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	page := pagination.Clamp(filter.Page, filter.PageSize)
	filter.Page, filter.PageSize = page.Number, page.Size

	accounts, err := s.accountRepo.ListAccounts(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts from repository",
			slog.Int("page", page.Number), slog.Int("page_size", page.Size))
		return nil, err
	}

	total, err := s.accountRepo.CountAccounts(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts in repository")
		return nil, err
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	s.LogDebug(ctx, "Accounts listed successfully",
		slog.Int("count", len(accounts)), slog.Int64("total", total))
	return &domain.AccountPage{
		Accounts: accounts,
		Pagination: domain.Pagination{
			Page:     page.Number,
			PageSize: page.Size,
			Total:    total,
			Pages:    pagination.TotalPages(total, page.Size),
		},
	}, nil
}

// validateFilter rejects unknown enum values instead of silently ignoring them.
func validateFilter(filter domain.AccountFilter) error {
	fields := map[string]string{}
	if err := validate.Var(string(filter.Type), "omitempty,oneof=payable receivable"); err != nil {
		fields["type"] = "must be one of: payable, receivable"
	}
	if err := validate.Var(string(filter.Status), "omitempty,oneof=pending paid"); err != nil {
		fields["status"] = "must be one of: pending, paid"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

func (s *accountService) UpdateAccount(ctx context.Context, ownerID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validateStruct(req); err != nil {
		s.LogDebug(ctx, "Rejected account update", slog.String("error", err.Error()))
		return nil, err
	}
	if err := checkAmount(req.Amount); err != nil {
		return nil, err
	}
	if !isAccountID(accountID) {
		return nil, errAccountNotFound()
	}

	account := domain.Account{
		ID:          accountID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		DueDate:     req.DueDate,
		Status:      req.Status,
		Timestamps:  domain.Timestamps{UpdatedAt: s.timestamp()},
	}

	updated, err := s.accountRepo.UpdateAccount(ctx, account)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account in repository",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return updated, nil
}

func (s *accountService) MarkAccountPaid(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	if !isAccountID(accountID) {
		return nil, errAccountNotFound()
	}

	account, err := s.accountRepo.MarkAccountPaid(ctx, ownerID, accountID, s.timestamp())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark account paid in repository",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Account marked as paid", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, ownerID, accountID string) error {
	if !isAccountID(accountID) {
		return errAccountNotFound()
	}

	if err := s.accountRepo.DeleteAccount(ctx, ownerID, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account in repository",
				slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}
