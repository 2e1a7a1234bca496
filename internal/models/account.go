package models

import (
	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Account is the row layout of the accounts table.
type Account struct {
	ID          string          `db:"id"`
	OwnerID     string          `db:"owner_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"type"`
	DueDate     domain.Date     `db:"due_date"`
	Status      string          `db:"status"`
	Timestamps
}

// ScanTargets lists destinations in AccountColumns order.
func (a *Account) ScanTargets() []any {
	return []any{
		&a.ID,
		&a.OwnerID,
		&a.Title,
		&a.Description,
		&a.Amount,
		&a.Type,
		&a.DueDate,
		&a.Status,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

// AccountColumns is the select list matching ScanTargets.
const AccountColumns = "id, owner_id, title, description, amount, type, due_date, status, created_at, updated_at"
