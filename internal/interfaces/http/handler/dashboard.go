package handler

import (
	"github.com/gin-gonic/gin"
	schedulingapp "github.com/shopdesk/backend/internal/application/scheduling"
)

// DashboardHandler serves the front desk summary
type DashboardHandler struct {
	BaseHandler
	dashboardService *schedulingapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *schedulingapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats godoc
// @Summary      Dashboard statistics
// @Description  Appointment counts by status, today's bookings, staff totals and the five latest appointments
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=schedulingapp.DashboardStats}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}
