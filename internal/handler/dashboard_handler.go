package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/datasec-api/internal/middleware"
	"github.com/yourusername/datasec-api/internal/service"
)

// DashboardHandler serves the per-user dashboard and the records view.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	overview, err := h.dashboardService.Overview(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard."})
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) Records(c *gin.Context) {
	records, err := h.dashboardService.Records()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records."})
		return
	}
	c.JSON(http.StatusOK, records)
}
