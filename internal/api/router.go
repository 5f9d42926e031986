package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/api/handlers"
	"github.com/azanlabs/supplysync/internal/api/middleware"
	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/repository"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Stock push authenticates itself via the x-api-key header, which is
		// what resolves the tenant. No shop domain header required.
		v1.POST("/stock/push", handlers.HandleStockPush(cfg, repos, logger))

		// Provisioning creates the tenant record, so it cannot sit behind
		// the tenant middleware. Deployment fronts it with the platform's
		// app session auth.
		v1.POST("/tenants", handlers.HandleUpsertTenant(repos, logger))

		// Tenant routes (resolved from the shop domain header)
		tenantRoutes := v1.Group("")
		tenantRoutes.Use(middleware.TenantMiddleware(repos, logger))
		{
			tenantRoutes.POST("/orders/inbound", handlers.HandleInboundOrder(cfg, repos, logger))
			tenantRoutes.POST("/imports", handlers.HandleRunImport(cfg, repos, logger))
			tenantRoutes.GET("/supplier/products", handlers.HandleListSupplierProducts(cfg, repos, logger))
			tenantRoutes.GET("/order-log", handlers.HandleListOrderLog(repos, logger))
			tenantRoutes.GET("/debug-log", handlers.HandleListDebugLog(repos, logger))
			tenantRoutes.GET("/catalog-mirror", handlers.HandleListCatalogMirror(repos, logger))
			tenantRoutes.POST("/tenants/token/rotate", handlers.HandleRotateToken(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
