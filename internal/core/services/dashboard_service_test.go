package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/duebook/internal/apperrors"
	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/SscSPs/duebook/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	repo := new(MockAccountRepository)
	// 23:30 in UTC-3 is already the next day in UTC
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.FixedZone("BRT", -3*60*60))
	svc := services.NewDashboardService(repo, services.WithDashboardClock(func() time.Time { return now }))

	summary := &domain.DashboardSummary{
		TotalAccounts:  3,
		PaidPayable:    decimal.RequireFromString("40"),
		PaidReceivable: decimal.RequireFromString("100"),
	}
	recent := []domain.Account{{ID: "r1"}}
	overdue := []domain.Account{{ID: "o1"}}

	repo.On("SummarizeAccounts", mock.Anything, "owner").Return(summary, nil).Once()
	repo.On("ListRecentAccounts", mock.Anything, "owner", domain.RecentAccountsLimit).Return(recent, nil).Once()
	repo.On("ListOverdueAccounts", mock.Anything, "owner", domain.NewDate(2025, time.June, 2)).Return(overdue, nil).Once()

	dashboard, err := svc.GetDashboard(context.Background(), "owner")

	require.NoError(t, err)
	assert.Equal(t, *summary, dashboard.Summary)
	assert.True(t, decimal.RequireFromString("60").Equal(dashboard.Summary.Balance()))
	assert.Equal(t, recent, dashboard.Recent)
	assert.Equal(t, overdue, dashboard.Overdue)
	repo.AssertExpectations(t)
}

func TestGetDashboard_EmptyListsAreNotNil(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewDashboardService(repo)

	repo.On("SummarizeAccounts", mock.Anything, "owner").Return(&domain.DashboardSummary{}, nil)
	repo.On("ListRecentAccounts", mock.Anything, "owner", mock.Anything).Return(nil, nil)
	repo.On("ListOverdueAccounts", mock.Anything, "owner", mock.Anything).Return(nil, nil)

	dashboard, err := svc.GetDashboard(context.Background(), "owner")

	require.NoError(t, err)
	assert.NotNil(t, dashboard.Recent)
	assert.NotNil(t, dashboard.Overdue)
	assert.True(t, dashboard.Summary.Balance().IsZero())
}

func TestGetDashboard_PropagatesStoreError(t *testing.T) {
	repo := new(MockAccountRepository)
	svc := services.NewDashboardService(repo)

	repo.On("SummarizeAccounts", mock.Anything, "owner").
		Return(nil, apperrors.NewStoreError("failed to summarize accounts", assert.AnError))
	repo.On("ListRecentAccounts", mock.Anything, "owner", mock.Anything).Return([]domain.Account{}, nil).Maybe()
	repo.On("ListOverdueAccounts", mock.Anything, "owner", mock.Anything).Return([]domain.Account{}, nil).Maybe()

	dashboard, err := svc.GetDashboard(context.Background(), "owner")

	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, apperrors.ErrStore)
}

func TestDashboardParts(t *testing.T) {
	repo := new(MockAccountRepository)
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := services.NewDashboardService(repo, services.WithDashboardClock(func() time.Time { return now }))
	ctx := context.Background()

	repo.On("SummarizeAccounts", ctx, "owner").Return(&domain.DashboardSummary{TotalAccounts: 1}, nil).Once()
	repo.On("ListRecentAccounts", ctx, "owner", 5).Return([]domain.Account{{ID: "a"}}, nil).Once()
	repo.On("ListOverdueAccounts", ctx, "owner", domain.NewDate(2025, time.January, 15)).Return([]domain.Account{}, nil).Once()

	summary, err := svc.Summarize(ctx, "owner")
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.TotalAccounts)

	recent, err := svc.Recent(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, recent, 1)

	overdue, err := svc.Overdue(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, overdue)

	repo.AssertExpectations(t)
}
