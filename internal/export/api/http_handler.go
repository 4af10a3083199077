package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spicevault/traders-billing/internal/export/service"
	"github.com/spicevault/traders-billing/internal/platform/logger"
)

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(es service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: es}
}

func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/exports", h.ExportMonth)
}

type exportMonthRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=1"`
}

func (h *ExportHandler) ExportMonth(c *gin.Context) {
	var req exportMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filename, err := h.exportService.ExportMonth(c.Request.Context(), time.Month(req.Month), req.Year)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrWriteFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			logger.Error("ExportMonth: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export month"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"filename": filename})
}
