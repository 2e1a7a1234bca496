package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/duebook/internal/core/domain"
	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/dto"
	"github.com/SscSPs/duebook/internal/middleware"
	"github.com/SscSPs/duebook/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	showDetails    bool
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, showDetails bool) *accountHandler {
	return &accountHandler{
		accountService: as,
		showDetails:    showDetails,
	}
}

// registerAccountRoutes registers routes related to accounts.
// The dashboard lives under the same group and must be registered before /:id.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, showDetails bool) {
	h := newAccountHandler(services.Account, showDetails)
	dh := newDashboardHandler(services.Dashboard, showDetails)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/dashboard", dh.getDashboard)
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.PATCH("/:id/pay", h.markAccountPaid)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a pending payable or receivable for the logged-in user
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountMessageResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}

	c.JSON(http.StatusCreated, dto.AccountMessageResponse{
		Message: "Account created successfully",
		Account: dto.ToAccountResponse(account),
	})
}

// getAccount godoc
// @Summary Get an account by ID
// @Description Retrieves one of the logged-in user's accounts
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the logged-in user's accounts ordered by due date, with optional filters
// @Tags accounts
// @Produce  json
// @Param   type query string false "payable or receivable"
// @Param   status query string false "pending or paid"
// @Param   search query string false "Case-insensitive text matched against title and description"
// @Param   page query int false "Page number (default 1)"
// @Param   page_size query int false "Page size (default 10)"
// @Param   limit query int false "Alias of page_size"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} ErrorResponse "Unknown type or status"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadBody(c, err)
		return
	}

	rawSize := params.PageSize
	if rawSize == "" {
		rawSize = params.Limit
	}
	page := pagination.Normalize(params.Page, rawSize)

	result, err := h.accountService.ListAccounts(c.Request.Context(), ownerID, domain.AccountFilter{
		Type:     domain.AccountType(params.Type),
		Status:   domain.AccountStatus(params.Status),
		Search:   params.Search,
		Page:     page.Number,
		PageSize: page.Size,
	})
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Listed accounts",
		slog.Int("count", len(result.Accounts)), slog.Int64("total", result.Pagination.Total))
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(result))
}

// updateAccount godoc
// @Summary Update an account
// @Description Replaces every mutable field of an account, including its status
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Account details"
// @Success 200 {object} dto.AccountMessageResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}

	c.JSON(http.StatusOK, dto.AccountMessageResponse{
		Message: "Account updated successfully",
		Account: dto.ToAccountResponse(account),
	})
}

// markAccountPaid godoc
// @Summary Mark an account as paid
// @Description Sets the status to paid. Repeating the call has no further effect.
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountMessageResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id}/pay [patch]
func (h *accountHandler) markAccountPaid(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	account, err := h.accountService.MarkAccountPaid(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}

	c.JSON(http.StatusOK, dto.AccountMessageResponse{
		Message: "Account marked as paid",
		Account: dto.ToAccountResponse(account),
	})
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Permanently removes an account
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to delete account"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Account deleted successfully"})
}
