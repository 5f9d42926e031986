package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/azanlabs/supplysync/internal/domain"
)

// TenantConfigRepository defines tenant configuration data access methods
type TenantConfigRepository interface {
	GetByShopDomain(ctx context.Context, shopDomain string) (*domain.TenantConfig, error)
	GetByAuthToken(ctx context.Context, token string) (*domain.TenantConfig, error)
	Upsert(ctx context.Context, cfg *domain.TenantConfig) error
	UpdateAuthTokenHash(ctx context.Context, shopDomain, hash string) error
}

// CatalogMirrorRepository defines catalog mirror data access methods.
// Writes are single-row upserts keyed on (shop_domain, sku, supplier).
type CatalogMirrorRepository interface {
	GetBySKUAndSupplier(ctx context.Context, shopDomain, sku, supplier string) (*domain.CatalogMirrorEntry, error)
	GetBySKUs(ctx context.Context, shopDomain string, skus []string) ([]*domain.CatalogMirrorEntry, error)
	ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.CatalogMirrorEntry, error)
	UpsertBatch(ctx context.Context, shopDomain string, entries []*domain.CatalogMirrorEntry) error
	ApplyStockPush(ctx context.Context, id uuid.UUID, applied *domain.ResolvedStockPush) error
}

// OrderLogRepository defines order log data access methods. Rows are
// append-only.
type OrderLogRepository interface {
	Create(ctx context.Context, entry *domain.OrderLogEntry) error
	GetByOrderID(ctx context.Context, shopDomain string, orderID int64) (*domain.OrderLogEntry, error)
	ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.OrderLogEntry, error)
}

// DebugLogRepository defines debug trace data access methods
type DebugLogRepository interface {
	Create(ctx context.Context, entry *domain.DebugLogEntry) error
	ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.DebugLogEntry, error)
}

// Repositories aggregates all repositories
type Repositories struct {
	TenantConfig  TenantConfigRepository
	CatalogMirror CatalogMirrorRepository
	OrderLog      OrderLogRepository
	DebugLog      DebugLogRepository
}
