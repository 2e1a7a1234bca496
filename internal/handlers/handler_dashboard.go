package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/duebook/internal/core/ports/services"
	"github.com/SscSPs/duebook/internal/dto"
	"github.com/gin-gonic/gin"
)

type dashboardHandler struct {
	dashboardService portssvc.DashboardSvc
	showDetails      bool
}

func newDashboardHandler(ds portssvc.DashboardSvc, showDetails bool) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds, showDetails: showDetails}
}

// getDashboard godoc
// @Summary Account dashboard
// @Description Totals by type and status, the five newest accounts and the overdue pending ones
// @Tags accounts
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build dashboard"
// @Security BearerAuth
// @Router /accounts/dashboard [get]
func (h *dashboardHandler) getDashboard(c *gin.Context) {
	ownerID, ok := ownerFromContext(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, err, h.showDetails)
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}
