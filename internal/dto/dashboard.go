package dto

import (
	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse holds the owner's aggregated totals.
type DashboardSummaryResponse struct {
	TotalAccounts     int64           `json:"total_accounts"`
	TotalPayable      decimal.Decimal `json:"total_payable" swaggertype:"string"`
	TotalReceivable   decimal.Decimal `json:"total_receivable" swaggertype:"string"`
	PendingPayable    decimal.Decimal `json:"pending_payable" swaggertype:"string"`
	PendingReceivable decimal.Decimal `json:"pending_receivable" swaggertype:"string"`
	PaidPayable       decimal.Decimal `json:"paid_payable" swaggertype:"string"`
	PaidReceivable    decimal.Decimal `json:"paid_receivable" swaggertype:"string"`
	Balance           decimal.Decimal `json:"balance" swaggertype:"string"`
}

// DashboardResponse is the dashboard payload.
type DashboardResponse struct {
	Summary         DashboardSummaryResponse `json:"summary"`
	RecentAccounts  []AccountResponse        `json:"recent_accounts"`
	OverdueAccounts []AccountResponse        `json:"overdue_accounts"`
}

func ToDashboardResponse(d *domain.Dashboard) DashboardResponse {
	s := d.Summary
	return DashboardResponse{
		Summary: DashboardSummaryResponse{
			TotalAccounts:     s.TotalAccounts,
			TotalPayable:      s.TotalPayable,
			TotalReceivable:   s.TotalReceivable,
			PendingPayable:    s.PendingPayable,
			PendingReceivable: s.PendingReceivable,
			PaidPayable:       s.PaidPayable,
			PaidReceivable:    s.PaidReceivable,
			Balance:           s.Balance(),
		},
		RecentAccounts:  ToListAccountResponse(d.Recent),
		OverdueAccounts: ToListAccountResponse(d.Overdue),
	}
}
