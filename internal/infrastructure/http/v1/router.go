// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"

	"droppos/internal/core/clock"
	"droppos/internal/domain/billing"
	"droppos/internal/domain/cart"
	"droppos/internal/domain/catalog"
	"droppos/internal/domain/shop"
	"droppos/internal/infrastructure/http/v1/handlers"
	"droppos/internal/infrastructure/http/v1/middleware"
	"droppos/internal/infrastructure/storage/postgres"
	"droppos/internal/infrastructure/storage/postgres/billing_repo"
	"droppos/internal/infrastructure/storage/postgres/catalog_repo"
	"droppos/internal/infrastructure/storage/postgres/shop_repo"
	"droppos/pkg/logger"
	"droppos/pkg/numerator"
	"droppos/pkg/receipt"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// TxManager coordinates transactions for all repositories.
	TxManager *postgres.TxManager

	// Logger for request logging.
	Logger *logger.Logger

	// ScannerQuiet is the barcode debounce window; zero selects the default.
	ScannerQuiet time.Duration

	// Renderer and Printer dispatch receipts after checkout. Nil disables
	// printing.
	Renderer receipt.Renderer
	Printer  receipt.Printer
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()
	clk := clock.System{}

	// Services
	catalogService := catalog.NewService(catalog_repo.NewItemRepo(cfg.TxManager))
	shopService := shop.NewService(shop_repo.NewShopRepo(cfg.TxManager))

	numbers := numerator.New(cfg.TxManager, numerator.DefaultConfig(), numerator.StrategyAtomic)
	billingService := billing.NewService(billing_repo.NewBillRepo(cfg.TxManager), numbers, cfg.TxManager, clk)

	cartService := cart.NewService(catalogService)
	registry := cart.NewRegistry(cartService, cfg.ScannerQuiet)

	// Handlers
	itemHandler := handlers.NewItemHandler(baseHandler, catalogService)
	sessionHandler := handlers.NewSessionHandler(baseHandler, registry, billingService, shopService, cfg.Renderer, cfg.Printer)
	billHandler := handlers.NewBillHandler(baseHandler, billingService, clk)
	shopHandler := handlers.NewShopHandler(baseHandler, shopService)

	// API v1
	api := router.Group("/api/v1")
	{
		items := api.Group("/items")
		{
			items.GET("", itemHandler.List)
			items.POST("", itemHandler.Create)
			items.GET("/barcode/:barcode", itemHandler.GetByBarcode)
			items.GET("/:code", itemHandler.GetByCode)
			items.PUT("/:id", itemHandler.Update)
			items.DELETE("/:id", itemHandler.Delete)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Open)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.DELETE("/:id", sessionHandler.Close)
			sessions.POST("/:id/items", sessionHandler.AddItem)
			sessions.POST("/:id/scan", sessionHandler.Scan)
			sessions.DELETE("/:id/lines", sessionHandler.ClearCart)
			sessions.DELETE("/:id/lines/:index", sessionHandler.RemoveLine)
			sessions.POST("/:id/checkout", sessionHandler.Checkout)
		}

		bills := api.Group("/bills")
		{
			bills.GET("", billHandler.List)
			bills.GET("/:id", billHandler.Get)
			bills.DELETE("", billHandler.ClearAll)
		}

		api.GET("/shop", shopHandler.GetInfo)
		api.PUT("/shop", shopHandler.UpdateInfo)
		api.GET("/settings/:key", shopHandler.GetSetting)
		api.PUT("/settings/:key", shopHandler.SetSetting)
	}

	return router
}
