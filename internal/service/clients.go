package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/storefront"
	"github.com/azanlabs/supplysync/internal/supplier"
)

// SupplierAPI is the supplier client surface the services depend on
type SupplierAPI interface {
	ListProducts(ctx context.Context, page, perPage int, selectedOnly bool) (*supplier.ProductListResponse, error)
	CheckStock(ctx context.Context, skus []string) ([]supplier.StockEntry, error)
	CreateOrder(ctx context.Context, payload *supplier.OrderPayload) (*supplier.OrderCreateResponse, error)
}

// StorefrontAPI is the storefront client surface the services depend on
type StorefrontAPI interface {
	FindProductBySKU(ctx context.Context, sku string) (*storefront.ProductMatch, error)
	PrimaryLocationID(ctx context.Context) (int64, error)
	GetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64) (int, error)
	SetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error
	CreateProduct(ctx context.Context, input storefront.ProductInput) (int64, error)
	UpdateProduct(ctx context.Context, productID int64, input storefront.ProductUpdateInput) error
}

// ClientFactory builds tenant-scoped API clients
type ClientFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClientFactory creates a client factory
func NewClientFactory(cfg *config.Config, logger *zap.Logger) *ClientFactory {
	return &ClientFactory{cfg: cfg, logger: logger}
}

// Supplier builds a supplier client from the tenant's credentials and
// sandbox flag
func (f *ClientFactory) Supplier(tenant *domain.TenantConfig) SupplierAPI {
	return supplier.NewClient(
		f.cfg.Supplier.BaseURL(tenant.SandboxManage),
		tenant.AppID,
		tenant.SecretKey,
		f.logger,
	)
}

// Storefront builds a storefront Admin client for the tenant's shop
func (f *ClientFactory) Storefront(tenant *domain.TenantConfig) StorefrontAPI {
	return storefront.NewClient(
		tenant.ShopDomain,
		tenant.StorefrontToken,
		f.cfg.Storefront.APIVersion,
		f.logger,
	)
}
