package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spicevault/traders-billing/internal/billing/domain"
	"github.com/spicevault/traders-billing/internal/billing/repository"
	"github.com/spicevault/traders-billing/internal/billing/service"
	"github.com/spicevault/traders-billing/internal/platform/logger"
	"github.com/spicevault/traders-billing/internal/platform/storage"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(bs service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: bs}
}

func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	billRoutes := router.Group("/bills")
	{
		billRoutes.GET("", h.ListBills)
		billRoutes.POST("", h.CreateBill)
		billRoutes.GET("/:id", h.GetBill)
		billRoutes.POST("/:id/payments", h.RecordPayment)
	}
}

func (h *BillingHandler) ListBills(c *gin.Context) {
	bills, err := h.billingService.ListBills(c.Request.Context())
	if err != nil {
		logger.Error("ListBills: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bills"})
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *BillingHandler) GetBill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bill id must be an integer"})
		return
	}
	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("GetBill: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bill"})
		return
	}
	c.JSON(http.StatusOK, bill)
}

func (h *BillingHandler) CreateBill(c *gin.Context) {
	var req domain.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidBill):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownProduct):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Bill could not be saved"})
		default:
			logger.Error("CreateBill: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bill"})
		}
		return
	}
	c.JSON(http.StatusCreated, bill)
}

func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bill id must be an integer"})
		return
	}

	var req domain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := h.billingService.RecordPayment(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBillNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrOverpayment), errors.Is(err, service.ErrDuplicatePayment):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment could not be saved"})
		default:
			logger.Error("RecordPayment: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}
	c.JSON(http.StatusOK, bill)
}
