package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType distinguishes money owed by the owner from money owed to the owner.
type AccountType string

const (
	Payable    AccountType = "payable"
	Receivable AccountType = "receivable"
)

// AccountStatus is the settlement state of an account.
type AccountStatus string

const (
	Pending AccountStatus = "pending"
	Paid    AccountStatus = "paid"
)

// Account is a single bill to pay or amount to receive, owned by exactly one user.
type Account struct {
	ID          string
	OwnerID     string // immutable after creation
	Title       string
	Description string
	Amount      decimal.Decimal
	Type        AccountType
	DueDate     Date
	Status      AccountStatus
	Timestamps
}

// IsOverdue reports whether the account is still pending with a due date before today.
func (a Account) IsOverdue(today Date) bool {
	return a.Status == Pending && a.DueDate.Before(today)
}
