package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/api/middleware"
	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/service"
	"github.com/azanlabs/supplysync/pkg/errors"
)

// ImportResponse represents the reconciliation batch response
type ImportResponse struct {
	Success  bool                    `json:"success"`
	Message  string                  `json:"message"`
	Created  int                     `json:"created"`
	Updated  int                     `json:"updated"`
	Failures []service.ImportFailure `json:"failures"`
}

// HandleRunImport handles POST /v1/imports
func HandleRunImport(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req service.ImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		factory := service.NewClientFactory(cfg, logger)
		importService := service.NewImportService(repos, factory.Supplier(tenant), factory.Storefront(tenant), logger)

		outcome, err := importService.Run(c.Request.Context(), tenant, req)
		if err != nil {
			if _, ok := err.(*errors.ErrNotConfigured); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to run import batch", zap.String("shop_domain", tenant.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run import"})
			return
		}

		c.JSON(http.StatusOK, ImportResponse{
			Success:  outcome.Success(),
			Message:  outcome.Summary(),
			Created:  outcome.Created,
			Updated:  outcome.Updated,
			Failures: outcome.Failures,
		})
	}
}

// HandleListSupplierProducts handles GET /v1/supplier/products. It proxies
// one supplier listing page so callers can pick identifiers for an import.
func HandleListSupplierProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if !tenant.IsConfigured() {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "tenant has no supplier credentials configured"})
			return
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "28"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 28
		}

		factory := service.NewClientFactory(cfg, logger)
		client := factory.Supplier(tenant)

		listing, err := client.ListProducts(c.Request.Context(), page, perPage, tenant.ProductsManagement)
		if err != nil {
			logger.Error("Failed to fetch supplier products", zap.String("shop_domain", tenant.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   listing.Data,
			"pagination": listing.Meta,
		})
	}
}
