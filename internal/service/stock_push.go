package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/storefront"
	"github.com/azanlabs/supplysync/pkg/errors"
)

// StorefrontFactory builds a storefront client for a resolved tenant. The
// stock push resolves its tenant from the presented token, so the client
// cannot be constructed up front.
type StorefrontFactory func(tenant *domain.TenantConfig) StorefrontAPI

type stockPushService struct {
	repos       *repository.Repositories
	storefronts StorefrontFactory
	logger      *zap.Logger
}

// NewStockPushService creates a stock push service
func NewStockPushService(repos *repository.Repositories, storefronts StorefrontFactory, logger *zap.Logger) *stockPushService {
	return &stockPushService{
		repos:       repos,
		storefronts: storefronts,
		logger:      logger,
	}
}

// Apply validates a supplier-originated stock/price push and applies it to
// the storefront listing, then to the catalog mirror. The mirror is only
// updated after the storefront write succeeds, so it always reflects the
// last successfully applied values.
func (s *stockPushService) Apply(ctx context.Context, token string, req StockPushRequest) (*domain.ResolvedStockPush, error) {
	tenant, err := s.repos.TenantConfig.GetByAuthToken(ctx, token)
	if err != nil {
		return nil, err
	}

	entry, err := s.repos.CatalogMirror.GetBySKUAndSupplier(ctx, tenant.ShopDomain, req.SKU, req.Supplier)
	if err != nil {
		return nil, err
	}
	if entry.StorefrontProductID == nil {
		return nil, &errors.ErrNotFound{Resource: "storefront_product", ID: req.SKU}
	}

	applied := &domain.ResolvedStockPush{
		SKU:      entry.SKU,
		Supplier: entry.Supplier,
		Name:     entry.Name,
		Price:    entry.MRPPrice,
		Cost:     entry.WholesalePrice,
		Stock:    req.Stock,
	}
	if req.Name != nil && *req.Name != "" {
		applied.Name = *req.Name
	}
	if req.Price != nil {
		applied.Price = *req.Price
	}
	if req.Cost != nil {
		applied.Cost = *req.Cost
	}

	store := s.storefronts(tenant)
	update := storefront.ProductUpdateInput{
		Title: applied.Name,
		Variants: []storefront.VariantInput{
			{
				InventoryQuantity: applied.Stock,
				SKU:               entry.SKU,
				Price:             applied.Price.String(),
				Cost:              applied.Cost.String(),
			},
		},
	}
	if err := store.UpdateProduct(ctx, *entry.StorefrontProductID, update); err != nil {
		logDebug(ctx, s.repos, s.logger, tenant, "warning", "Stock push: storefront update failed", "")
		return nil, fmt.Errorf("storefront update failed: %w", err)
	}

	if err := s.repos.CatalogMirror.ApplyStockPush(ctx, entry.ID, applied); err != nil {
		return nil, fmt.Errorf("failed to update catalog mirror: %w", err)
	}

	s.logger.Info("Stock push applied",
		zap.String("shop_domain", tenant.ShopDomain),
		zap.String("sku", entry.SKU),
		zap.Int("stock", applied.Stock),
	)
	logDebug(ctx, s.repos, s.logger, tenant, "success", "Stock push applied", "")
	return applied, nil
}
