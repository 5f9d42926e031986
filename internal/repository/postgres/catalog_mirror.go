package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/pkg/errors"
)

type catalogMirrorRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCatalogMirrorRepository creates a new catalog mirror repository
func NewCatalogMirrorRepository(db *sql.DB, logger *zap.Logger) *catalogMirrorRepository {
	return &catalogMirrorRepository{
		db:     db,
		logger: logger,
	}
}

const mirrorColumns = `
	id, shop_domain, storefront_product_id, sku, supplier_product_id, name,
	wholesale_price, mrp_price, stock, picture, supplier, created_at, updated_at
`

func scanMirrorEntry(row interface{ Scan(...interface{}) error }) (*domain.CatalogMirrorEntry, error) {
	var e domain.CatalogMirrorEntry
	var storefrontProductID sql.NullInt64
	err := row.Scan(
		&e.ID,
		&e.ShopDomain,
		&storefrontProductID,
		&e.SKU,
		&e.SupplierProductID,
		&e.Name,
		&e.WholesalePrice,
		&e.MRPPrice,
		&e.Stock,
		&e.Picture,
		&e.Supplier,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if storefrontProductID.Valid {
		e.StorefrontProductID = &storefrontProductID.Int64
	}
	return &e, nil
}

func (r *catalogMirrorRepository) GetBySKUAndSupplier(ctx context.Context, shopDomain, sku, supplier string) (*domain.CatalogMirrorEntry, error) {
	query := `
		SELECT ` + mirrorColumns + `
		FROM catalog_mirror
		WHERE shop_domain = $1 AND sku = $2 AND supplier = $3
	`

	entry, err := scanMirrorEntry(r.db.QueryRowContext(ctx, query, shopDomain, sku, supplier))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "catalog_mirror_entry", ID: sku}
	}
	if err != nil {
		r.logger.Error("Failed to get mirror entry", zap.Error(err))
		return nil, err
	}

	return entry, nil
}

func (r *catalogMirrorRepository) GetBySKUs(ctx context.Context, shopDomain string, skus []string) ([]*domain.CatalogMirrorEntry, error) {
	query := `
		SELECT ` + mirrorColumns + `
		FROM catalog_mirror
		WHERE shop_domain = $1 AND sku = ANY($2)
	`

	rows, err := r.db.QueryContext(ctx, query, shopDomain, pq.Array(skus))
	if err != nil {
		r.logger.Error("Failed to get mirror entries by SKUs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.CatalogMirrorEntry
	for rows.Next() {
		entry, err := scanMirrorEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *catalogMirrorRepository) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.CatalogMirrorEntry, error) {
	query := `
		SELECT ` + mirrorColumns + `
		FROM catalog_mirror
		WHERE shop_domain = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, shopDomain, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list mirror entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.CatalogMirrorEntry
	for rows.Next() {
		entry, err := scanMirrorEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// UpsertBatch writes successfully processed import items in one transaction.
// Each row is a single-statement upsert keyed on (shop_domain, sku, supplier)
// so re-imports update the existing row instead of duplicating it.
func (r *catalogMirrorRepository) UpsertBatch(ctx context.Context, shopDomain string, entries []*domain.CatalogMirrorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin mirror batch", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO catalog_mirror (
			id, shop_domain, storefront_product_id, sku, supplier_product_id, name,
			wholesale_price, mrp_price, stock, picture, supplier, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (shop_domain, sku, supplier) DO UPDATE SET
			storefront_product_id = COALESCE(EXCLUDED.storefront_product_id, catalog_mirror.storefront_product_id),
			supplier_product_id = EXCLUDED.supplier_product_id,
			name = EXCLUDED.name,
			wholesale_price = EXCLUDED.wholesale_price,
			mrp_price = EXCLUDED.mrp_price,
			stock = EXCLUDED.stock,
			picture = EXCLUDED.picture,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	for _, e := range entries {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.UpdatedAt = now
		e.ShopDomain = shopDomain

		var storefrontProductID sql.NullInt64
		if e.StorefrontProductID != nil {
			storefrontProductID = sql.NullInt64{Int64: *e.StorefrontProductID, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, query,
			e.ID,
			e.ShopDomain,
			storefrontProductID,
			e.SKU,
			e.SupplierProductID,
			e.Name,
			e.WholesalePrice,
			e.MRPPrice,
			e.Stock,
			e.Picture,
			e.Supplier,
			e.CreatedAt,
			e.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to upsert mirror entry", zap.String("sku", e.SKU), zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

// ApplyStockPush commits the values a stock push applied to the storefront
func (r *catalogMirrorRepository) ApplyStockPush(ctx context.Context, id uuid.UUID, applied *domain.ResolvedStockPush) error {
	query := `
		UPDATE catalog_mirror
		SET stock = $2, mrp_price = $3, wholesale_price = $4, name = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		id,
		applied.Stock,
		applied.Price,
		applied.Cost,
		applied.Name,
		time.Now(),
	)
	if err != nil {
		r.logger.Error("Failed to apply stock push to mirror", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "catalog_mirror_entry", ID: id.String()}
	}
	return nil
}
