package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/api/middleware"
	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/pkg/errors"
)

type stubTenantRepo struct {
	upserted []*domain.TenantConfig
}

func (s *stubTenantRepo) GetByShopDomain(ctx context.Context, shopDomain string) (*domain.TenantConfig, error) {
	return nil, &errors.ErrNotFound{Resource: "tenant", ID: shopDomain}
}

func (s *stubTenantRepo) GetByAuthToken(ctx context.Context, token string) (*domain.TenantConfig, error) {
	return nil, &errors.ErrUnauthorized{}
}

func (s *stubTenantRepo) Upsert(ctx context.Context, cfg *domain.TenantConfig) error {
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	s.upserted = append(s.upserted, cfg)
	return nil
}

func (s *stubTenantRepo) UpdateAuthTokenHash(ctx context.Context, shopDomain, hash string) error {
	return nil
}

type stubMirrorRepo struct {
	entries   []*domain.CatalogMirrorEntry
	gotLimit  int
	gotOffset int
}

func (s *stubMirrorRepo) GetBySKUAndSupplier(ctx context.Context, shopDomain, sku, supplier string) (*domain.CatalogMirrorEntry, error) {
	return nil, &errors.ErrNotFound{Resource: "catalog_mirror_entry", ID: sku}
}

func (s *stubMirrorRepo) GetBySKUs(ctx context.Context, shopDomain string, skus []string) ([]*domain.CatalogMirrorEntry, error) {
	return nil, nil
}

func (s *stubMirrorRepo) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.CatalogMirrorEntry, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.entries, nil
}

func (s *stubMirrorRepo) UpsertBatch(ctx context.Context, shopDomain string, entries []*domain.CatalogMirrorEntry) error {
	return nil
}

func (s *stubMirrorRepo) ApplyStockPush(ctx context.Context, id uuid.UUID, applied *domain.ResolvedStockPush) error {
	return nil
}

func withTenant(tenant *domain.TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.TenantContextKey, tenant)
		c.Next()
	}
}

func TestHandleUpsertTenant(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tenants := &stubTenantRepo{}
	repos := &repository.Repositories{TenantConfig: tenants}

	router := gin.New()
	router.POST("/v1/tenants", HandleUpsertTenant(repos, zap.NewNop()))

	body := `{
		"shop_domain": "new-shop.myshopify.com",
		"app_id": "app-1",
		"secret_key": "secret-1",
		"storefront_token": "shpat_x",
		"order_manage": true,
		"debug_management": true
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/tenants", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, tenants.upserted, 1)
	saved := tenants.upserted[0]
	assert.Equal(t, "new-shop.myshopify.com", saved.ShopDomain)
	assert.Equal(t, "app-1", saved.AppID)
	assert.True(t, saved.OrderManage)
	assert.True(t, saved.DebugManagement)
	assert.True(t, saved.IsActive)

	// Secrets never echo back
	assert.NotContains(t, w.Body.String(), "secret-1")
	assert.NotContains(t, w.Body.String(), "shpat_x")
}

func TestHandleUpsertTenantValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tenants := &stubTenantRepo{}
	repos := &repository.Repositories{TenantConfig: tenants}

	router := gin.New()
	router.POST("/v1/tenants", HandleUpsertTenant(repos, zap.NewNop()))

	// Missing app_id and secret_key
	req := httptest.NewRequest(http.MethodPost, "/v1/tenants", strings.NewReader(`{"shop_domain": "x.myshopify.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, tenants.upserted)
}

func TestHandleListCatalogMirror(t *testing.T) {
	gin.SetMode(gin.TestMode)
	productID := int64(5001)
	mirror := &stubMirrorRepo{
		entries: []*domain.CatalogMirrorEntry{
			{
				ID:                  uuid.New(),
				ShopDomain:          "test-shop.myshopify.com",
				StorefrontProductID: &productID,
				SKU:                 "AZ-100",
				SupplierProductID:   1,
				Name:                "Steel Bottle",
				WholesalePrice:      decimal.RequireFromString("7.50"),
				MRPPrice:            decimal.RequireFromString("15.00"),
				Stock:               10,
				Supplier:            domain.DefaultSupplier,
			},
		},
	}
	repos := &repository.Repositories{CatalogMirror: mirror}

	router := gin.New()
	router.GET("/v1/catalog-mirror",
		withTenant(&domain.TenantConfig{ShopDomain: "test-shop.myshopify.com"}),
		HandleListCatalogMirror(repos, zap.NewNop()),
	)

	req := httptest.NewRequest(http.MethodGet, "/v1/catalog-mirror?limit=10&offset=20", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 10, mirror.gotLimit)
	assert.Equal(t, 20, mirror.gotOffset)

	var resp struct {
		Products []CatalogMirrorResponse `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "AZ-100", resp.Products[0].SKU)
	assert.Equal(t, "15", resp.Products[0].MRPPrice)
	require.NotNil(t, resp.Products[0].StorefrontProductID)
	assert.Equal(t, int64(5001), *resp.Products[0].StorefrontProductID)
}
