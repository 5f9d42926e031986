package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/api/middleware"
	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/service"
)

// TenantUpsertRequest carries a shop's supplier credentials and feature flags
type TenantUpsertRequest struct {
	ShopDomain         string `json:"shop_domain" binding:"required"`
	AppID              string `json:"app_id" binding:"required"`
	SecretKey          string `json:"secret_key" binding:"required"`
	StorefrontToken    string `json:"storefront_token"`
	SandboxManage      bool   `json:"sandbox_manage"`
	OrderManage        bool   `json:"order_manage"`
	FullOrderManage    bool   `json:"full_order_manage"`
	ProductsManagement bool   `json:"products_management"`
	DebugManagement    bool   `json:"debug_management"`
	IsActive           *bool  `json:"is_active"`
}

// TenantResponse echoes the stored configuration without secrets
type TenantResponse struct {
	ID                 string `json:"id"`
	ShopDomain         string `json:"shop_domain"`
	SandboxManage      bool   `json:"sandbox_manage"`
	OrderManage        bool   `json:"order_manage"`
	FullOrderManage    bool   `json:"full_order_manage"`
	ProductsManagement bool   `json:"products_management"`
	DebugManagement    bool   `json:"debug_management"`
	IsActive           bool   `json:"is_active"`
}

// HandleUpsertTenant handles POST /v1/tenants. Provisions or updates a shop's
// configuration; the stock-push token hash is never touched here, rotation
// has its own endpoint.
func HandleUpsertTenant(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TenantUpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		cfg := &domain.TenantConfig{
			ShopDomain:         req.ShopDomain,
			AppID:              req.AppID,
			SecretKey:          req.SecretKey,
			StorefrontToken:    req.StorefrontToken,
			SandboxManage:      req.SandboxManage,
			OrderManage:        req.OrderManage,
			FullOrderManage:    req.FullOrderManage,
			ProductsManagement: req.ProductsManagement,
			DebugManagement:    req.DebugManagement,
			IsActive:           active,
		}

		if err := repos.TenantConfig.Upsert(c.Request.Context(), cfg); err != nil {
			logger.Error("Failed to upsert tenant config", zap.String("shop_domain", req.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save configuration"})
			return
		}

		c.JSON(http.StatusOK, TenantResponse{
			ID:                 cfg.ID.String(),
			ShopDomain:         cfg.ShopDomain,
			SandboxManage:      cfg.SandboxManage,
			OrderManage:        cfg.OrderManage,
			FullOrderManage:    cfg.FullOrderManage,
			ProductsManagement: cfg.ProductsManagement,
			DebugManagement:    cfg.DebugManagement,
			IsActive:           cfg.IsActive,
		})
	}
}

// CatalogMirrorResponse is one imported product row
type CatalogMirrorResponse struct {
	ID                  string `json:"id"`
	StorefrontProductID *int64 `json:"storefront_product_id"`
	SKU                 string `json:"sku"`
	SupplierProductID   int64  `json:"supplier_product_id"`
	Name                string `json:"name"`
	WholesalePrice      string `json:"wholesale_price"`
	MRPPrice            string `json:"mrp_price"`
	Stock               int    `json:"stock"`
	Picture             string `json:"picture,omitempty"`
	Supplier            string `json:"supplier"`
	UpdatedAt           string `json:"updated_at"`
}

// HandleListCatalogMirror handles GET /v1/catalog-mirror, paging through the
// tenant's imported products newest-change-first.
func HandleListCatalogMirror(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		limit, offset := pageParams(c)
		entries, err := repos.CatalogMirror.ListByShopDomain(c.Request.Context(), tenant.ShopDomain, limit, offset)
		if err != nil {
			logger.Error("Failed to list catalog mirror", zap.String("shop_domain", tenant.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]CatalogMirrorResponse, len(entries))
		for i, e := range entries {
			responses[i] = CatalogMirrorResponse{
				ID:                  e.ID.String(),
				StorefrontProductID: e.StorefrontProductID,
				SKU:                 e.SKU,
				SupplierProductID:   e.SupplierProductID,
				Name:                e.Name,
				WholesalePrice:      e.WholesalePrice.String(),
				MRPPrice:            e.MRPPrice.String(),
				Stock:               e.Stock,
				Picture:             e.Picture,
				Supplier:            e.Supplier,
				UpdatedAt:           e.UpdatedAt.Format(time.RFC3339),
			}
		}

		c.JSON(http.StatusOK, gin.H{"products": responses})
	}
}

// HandleRotateToken handles POST /v1/tenants/token/rotate. The plaintext
// token is only returned from this call.
func HandleRotateToken(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		tokenService := service.NewTokenService(repos, logger)
		token, err := tokenService.Rotate(c.Request.Context(), tenant.ShopDomain)
		if err != nil {
			logger.Error("Failed to rotate token", zap.String("shop_domain", tenant.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// DebugLogResponse is one debug trace row
type DebugLogResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"created_at"`
}

// HandleListDebugLog handles GET /v1/debug-log. Rows only exist for tenants
// with debug management enabled.
func HandleListDebugLog(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		limit, offset := pageParams(c)
		entries, err := repos.DebugLog.ListByShopDomain(c.Request.Context(), tenant.ShopDomain, limit, offset)
		if err != nil {
			logger.Error("Failed to list debug log", zap.String("shop_domain", tenant.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]DebugLogResponse, len(entries))
		for i, e := range entries {
			responses[i] = DebugLogResponse{
				ID:        e.ID.String(),
				Type:      e.Type,
				Message:   e.Message,
				URL:       e.URL,
				CreatedAt: e.CreatedAt.Format(time.RFC3339),
			}
		}

		c.JSON(http.StatusOK, gin.H{"logs": responses})
	}
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit < 1 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// OrderLogResponse is one order log row
type OrderLogResponse struct {
	ID              string  `json:"id"`
	ShopDomain      string  `json:"shop_domain"`
	OrderID         int64   `json:"order_id"`
	SupplierOrderID *string `json:"supplier_order_id"`
	CreatedAt       string  `json:"created_at"`
}

// HandleListOrderLog handles GET /v1/order-log
func HandleListOrderLog(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		limit, offset := pageParams(c)
		entries, err := repos.OrderLog.ListByShopDomain(c.Request.Context(), tenant.ShopDomain, limit, offset)
		if err != nil {
			logger.Error("Failed to list order log", zap.String("shop_domain", tenant.ShopDomain), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		responses := make([]OrderLogResponse, len(entries))
		for i, e := range entries {
			responses[i] = OrderLogResponse{
				ID:              e.ID.String(),
				ShopDomain:      e.ShopDomain,
				OrderID:         e.OrderID,
				SupplierOrderID: e.SupplierOrderID,
				CreatedAt:       e.CreatedAt.Format(time.RFC3339),
			}
		}

		c.JSON(http.StatusOK, gin.H{"orders": responses})
	}
}
