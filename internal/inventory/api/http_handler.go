package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spicevault/traders-billing/internal/inventory/domain"
	"github.com/spicevault/traders-billing/internal/inventory/service"
	"github.com/spicevault/traders-billing/internal/platform/logger"
	"github.com/spicevault/traders-billing/internal/platform/storage"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(is service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.POST("", h.AddProduct)
		productRoutes.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	products, err := h.inventoryService.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *InventoryHandler) AddProduct(c *gin.Context) {
	var req domain.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.inventoryService.AddProduct(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, storage.ErrPersistence):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Product could not be saved"})
		default:
			logger.Error("AddProduct: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		}
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	if err := h.inventoryService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		logger.Error("DeleteProduct: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.Status(http.StatusNoContent)
}
