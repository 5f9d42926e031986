package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/pkg/errors"
)

const TenantContextKey = "tenant"

// ShopHeader carries the storefront's shop domain on inbound calls
const ShopHeader = "X-Shopify-Shop-Domain"

// TenantMiddleware resolves the tenant configuration for the shop named in
// the request header
func TenantMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		shopDomain := c.GetHeader(ShopHeader)
		if shopDomain == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing shop domain header"})
			c.Abort()
			return
		}

		tenant, err := repos.TenantConfig.GetByShopDomain(c.Request.Context(), shopDomain)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown shop"})
				c.Abort()
				return
			}
			logger.Error("Failed to resolve tenant", zap.String("shop_domain", shopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}

		c.Set(TenantContextKey, tenant)
		c.Next()
	}
}

// GetTenantFromContext retrieves the tenant from the Gin context
func GetTenantFromContext(c *gin.Context) (*domain.TenantConfig, bool) {
	tenant, exists := c.Get(TenantContextKey)
	if !exists {
		return nil, false
	}

	t, ok := tenant.(*domain.TenantConfig)
	return t, ok
}
