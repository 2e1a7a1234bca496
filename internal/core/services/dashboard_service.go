package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/duebook/internal/core/domain"
	portsrepo "github.com/SscSPs/duebook/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// dashboardService computes the read-only overview. It never writes.
type dashboardService struct {
	BaseService
	aggregator portsrepo.AccountAggregator
	now        func() time.Time
}

// DashboardOption configures the dashboard service.
type DashboardOption func(*dashboardService)

// WithDashboardClock sets the clock that decides what "today" is for overdue checks.
func WithDashboardClock(now func() time.Time) DashboardOption {
	return func(s *dashboardService) {
		s.now = now
	}
}

func NewDashboardService(aggregator portsrepo.AccountAggregator, options ...DashboardOption) portssvc.DashboardSvc {
	svc := &dashboardService{
		aggregator: aggregator,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

// today is the server's UTC calendar date.
func (s *dashboardService) today() domain.Date {
	return domain.DateOf(s.now().UTC())
}

// GetDashboard runs the summary, recent and overdue reads concurrently.
// Each read is a single statement; the three are not one snapshot.
func (s *dashboardService) GetDashboard(ctx context.Context, ownerID string) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	today := s.today()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.aggregator.SummarizeAccounts(gCtx, ownerID)
		if err != nil {
			return err
		}
		dashboard.Summary = *summary
		return nil
	})
	g.Go(func() error {
		recent, err := s.aggregator.ListRecentAccounts(gCtx, ownerID, domain.RecentAccountsLimit)
		dashboard.Recent = recent
		return err
	})
	g.Go(func() error {
		overdue, err := s.aggregator.ListOverdueAccounts(gCtx, ownerID, today)
		dashboard.Overdue = overdue
		return err
	})

	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build dashboard")
		return nil, err
	}

	if dashboard.Recent == nil {
		dashboard.Recent = []domain.Account{}
	}
	if dashboard.Overdue == nil {
		dashboard.Overdue = []domain.Account{}
	}

	s.LogDebug(ctx, "Dashboard computed",
		slog.Int64("total_accounts", dashboard.Summary.TotalAccounts),
		slog.Int("overdue", len(dashboard.Overdue)))
	return &dashboard, nil
}

func (s *dashboardService) Summarize(ctx context.Context, ownerID string) (*domain.DashboardSummary, error) {
	summary, err := s.aggregator.SummarizeAccounts(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize accounts")
		return nil, err
	}
	return summary, nil
}

func (s *dashboardService) Recent(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.aggregator.ListRecentAccounts(ctx, ownerID, domain.RecentAccountsLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent accounts")
		return nil, err
	}
	return accounts, nil
}

func (s *dashboardService) Overdue(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.aggregator.ListOverdueAccounts(ctx, ownerID, s.today())
	if err != nil {
		s.LogError(ctx, err, "Failed to list overdue accounts")
		return nil, err
	}
	return accounts, nil
}
