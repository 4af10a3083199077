package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spicevault/traders-billing/internal/dashboard/service"
	"github.com/spicevault/traders-billing/internal/platform/logger"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(ds service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetSummary)
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.Summarize(c.Request.Context())
	if err != nil {
		logger.Error("GetSummary: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
