package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/noracond/noracond-backend/internal/common"
	"github.com/noracond/noracond-backend/internal/service"
)

// DashboardHandler handles dashboard requests
type DashboardHandler struct {
	service service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetStats handles GET /api/dashboard
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to compute dashboard stats")
		return
	}

	common.SuccessResponse(c, stats, nil)
}
