package dto

import (
	"time"

	"github.com/SscSPs/duebook/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// New accounts always start as pending.
type CreateAccountRequest struct {
	Title       string             `json:"title" validate:"required,max=255"`
	Description string             `json:"description" validate:"max=2000"`
	Amount      decimal.Decimal    `json:"amount" validate:"required,gt=0" swaggertype:"string" example:"150.75"`
	Type        domain.AccountType `json:"type" validate:"required,oneof=payable receivable" example:"payable"`
	DueDate     domain.Date        `json:"due_date" validate:"required" swaggertype:"string" example:"2025-01-10"`
}

// UpdateAccountRequest replaces every mutable field of an account.
type UpdateAccountRequest struct {
	Title       string               `json:"title" validate:"required,max=255"`
	Description string               `json:"description" validate:"max=2000"`
	Amount      decimal.Decimal      `json:"amount" validate:"required,gt=0" swaggertype:"string" example:"150.75"`
	Type        domain.AccountType   `json:"type" validate:"required,oneof=payable receivable" example:"receivable"`
	DueDate     domain.Date          `json:"due_date" validate:"required" swaggertype:"string" example:"2025-01-10"`
	Status      domain.AccountStatus `json:"status" validate:"required,oneof=pending paid" example:"pending"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID          string               `json:"id"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount" swaggertype:"string"`
	Type        domain.AccountType   `json:"type"`
	DueDate     domain.Date          `json:"due_date" swaggertype:"string"`
	Status      domain.AccountStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		ID:          acc.ID,
		Title:       acc.Title,
		Description: acc.Description,
		Amount:      acc.Amount,
		Type:        acc.Type,
		DueDate:     acc.DueDate,
		Status:      acc.Status,
		CreatedAt:   acc.CreatedAt,
		UpdatedAt:   acc.UpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account; never returns nil so JSON gets [].
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
// Limit is accepted as an alias of PageSize.
type ListAccountsParams struct {
	Type     string `form:"type"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	Page     string `form:"page"`
	PageSize string `form:"page_size"`
	Limit    string `form:"limit"`
}

// PaginationResponse describes the position of a page in the whole result.
type PaginationResponse struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Pages    int64 `json:"pages"`
}

// ListAccountsResponse wraps one page of accounts.
type ListAccountsResponse struct {
	Accounts   []AccountResponse  `json:"accounts"`
	Pagination PaginationResponse `json:"pagination"`
}

func ToListAccountsResponse(page *domain.AccountPage) ListAccountsResponse {
	return ListAccountsResponse{
		Accounts: ToListAccountResponse(page.Accounts),
		Pagination: PaginationResponse{
			Page:     page.Pagination.Page,
			PageSize: page.Pagination.PageSize,
			Total:    page.Pagination.Total,
			Pages:    page.Pagination.Pages,
		},
	}
}

// AccountMessageResponse is returned by mutations that yield the account.
type AccountMessageResponse struct {
	Message string          `json:"message"`
	Account AccountResponse `json:"account"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
