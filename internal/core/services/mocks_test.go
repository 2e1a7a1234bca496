package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/duebook/internal/core/domain"
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func accountOrNil(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func accountsOrNil(args mock.Arguments) ([]domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, ownerID, accountID string) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, ownerID, accountID))
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, ownerID string, filter domain.AccountFilter) ([]domain.Account, error) {
	return accountsOrNil(m.Called(ctx, ownerID, filter))
}

func (m *MockAccountRepository) CountAccounts(ctx context.Context, ownerID string, filter domain.AccountFilter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// echoAccount lets a test return the account it was given.
type echoAccount func(domain.Account) *domain.Account

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if fn, ok := args.Get(0).(echoAccount); ok {
		return fn(account), args.Error(1)
	}
	return accountOrNil(args)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if fn, ok := args.Get(0).(echoAccount); ok {
		return fn(account), args.Error(1)
	}
	return accountOrNil(args)
}

func echo() echoAccount {
	return func(a domain.Account) *domain.Account { return &a }
}

func (m *MockAccountRepository) MarkAccountPaid(ctx context.Context, ownerID, accountID string, now time.Time) (*domain.Account, error) {
	return accountOrNil(m.Called(ctx, ownerID, accountID, now))
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, ownerID, accountID string) error {
	return m.Called(ctx, ownerID, accountID).Error(0)
}

func (m *MockAccountRepository) SummarizeAccounts(ctx context.Context, ownerID string) (*domain.DashboardSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSummary), args.Error(1)
}

func (m *MockAccountRepository) ListRecentAccounts(ctx context.Context, ownerID string, limit int) ([]domain.Account, error) {
	return accountsOrNil(m.Called(ctx, ownerID, limit))
}

func (m *MockAccountRepository) ListOverdueAccounts(ctx context.Context, ownerID string, today domain.Date) ([]domain.Account, error) {
	return accountsOrNil(m.Called(ctx, ownerID, today))
}

// MockUserRepository is a mock type for the UserRepositoryFacade interface
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func portsRepos() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: new(MockAccountRepository),
		UserRepo:    new(MockUserRepository),
	}
}
