package main

import (
	"github.com/gin-gonic/gin"
	billingAPI "github.com/spicevault/traders-billing/internal/billing/api"
	billingRepo "github.com/spicevault/traders-billing/internal/billing/repository"
	billingService "github.com/spicevault/traders-billing/internal/billing/service"
	dashboardAPI "github.com/spicevault/traders-billing/internal/dashboard/api"
	dashboardService "github.com/spicevault/traders-billing/internal/dashboard/service"
	exportAPI "github.com/spicevault/traders-billing/internal/export/api"
	exportService "github.com/spicevault/traders-billing/internal/export/service"
	"github.com/spicevault/traders-billing/internal/export/xlsx"
	inventoryAPI "github.com/spicevault/traders-billing/internal/inventory/api"
	inventoryRepo "github.com/spicevault/traders-billing/internal/inventory/repository"
	inventoryService "github.com/spicevault/traders-billing/internal/inventory/service"
	"github.com/spicevault/traders-billing/internal/platform/config"
	"github.com/spicevault/traders-billing/internal/platform/logger"
	"github.com/spicevault/traders-billing/internal/platform/storage"
)

func main() {
	// Load Config
	config.LoadDotEnv()
	storeCfg := config.LoadStoreConfig()
	exportCfg := config.LoadExportConfig()
	serverCfg := config.LoadServerConfig("8090")

	logger.Info("Starting Billing Service...")

	// Setup Snapshot Store
	store, err := storage.Open(storeCfg.Path)
	if err != nil {
		logger.Error("Failed to open snapshot store", err)
		return
	}
	defer store.Close()

	// Setup Repositories
	productRepository, err := inventoryRepo.NewSnapshotProductRepository(store)
	if err != nil {
		logger.Error("Failed to load inventory snapshot", err)
		return
	}
	billRepository, err := billingRepo.NewSnapshotBillRepository(store)
	if err != nil {
		logger.Error("Failed to load bill snapshot", err)
		return
	}

	// Setup Services
	invService := inventoryService.NewInventoryService(productRepository)
	billService := billingService.NewBillingService(billRepository, invService)
	dashService := dashboardService.NewDashboardService(invService, billService)
	expService := exportService.NewExportService(billService, xlsx.NewWriter(exportCfg.Dir))

	// Setup Handlers
	inventoryHandler := inventoryAPI.NewInventoryHandler(invService)
	billingHandler := billingAPI.NewBillingHandler(billService)
	dashboardHandler := dashboardAPI.NewDashboardHandler(dashService)
	exportHandler := exportAPI.NewExportHandler(expService)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	inventoryHandler.RegisterRoutes(apiV1)
	billingHandler.RegisterRoutes(apiV1)
	dashboardHandler.RegisterRoutes(apiV1)
	exportHandler.RegisterRoutes(apiV1)

	logger.Info("Billing Service running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Billing Service server", err)
	}
}
