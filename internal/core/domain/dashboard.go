package domain

import "github.com/shopspring/decimal"

// RecentAccountsLimit is how many accounts the dashboard shows as recently created.
const RecentAccountsLimit = 5

// DashboardSummary aggregates every account of one owner. Sums are never null.
type DashboardSummary struct {
	TotalAccounts     int64
	TotalPayable      decimal.Decimal
	TotalReceivable   decimal.Decimal
	PendingPayable    decimal.Decimal
	PendingReceivable decimal.Decimal
	PaidPayable       decimal.Decimal
	PaidReceivable    decimal.Decimal
}

// Balance is what has actually moved: paid receivables minus paid payables.
func (s DashboardSummary) Balance() decimal.Decimal {
	return s.PaidReceivable.Sub(s.PaidPayable)
}

// Dashboard is the read-only overview for one owner.
type Dashboard struct {
	Summary DashboardSummary
	Recent  []Account
	Overdue []Account
}
