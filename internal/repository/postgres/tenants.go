package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/pkg/errors"
)

type tenantConfigRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTenantConfigRepository creates a new tenant configuration repository
func NewTenantConfigRepository(db *sql.DB, logger *zap.Logger) *tenantConfigRepository {
	return &tenantConfigRepository{
		db:     db,
		logger: logger,
	}
}

const tenantColumns = `
	id, shop_domain, app_id, secret_key, auth_token_hash, storefront_token,
	sandbox_manage, order_manage, full_order_manage, products_management,
	debug_management, is_active, created_at, updated_at
`

func scanTenant(row interface{ Scan(...interface{}) error }) (*domain.TenantConfig, error) {
	var t domain.TenantConfig
	err := row.Scan(
		&t.ID,
		&t.ShopDomain,
		&t.AppID,
		&t.SecretKey,
		&t.AuthTokenHash,
		&t.StorefrontToken,
		&t.SandboxManage,
		&t.OrderManage,
		&t.FullOrderManage,
		&t.ProductsManagement,
		&t.DebugManagement,
		&t.IsActive,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantConfigRepository) GetByShopDomain(ctx context.Context, shopDomain string) (*domain.TenantConfig, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenant_configs
		WHERE shop_domain = $1 AND is_active = true
	`

	tenant, err := scanTenant(r.db.QueryRowContext(ctx, query, shopDomain))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "tenant", ID: shopDomain}
	}
	if err != nil {
		r.logger.Error("Failed to get tenant by shop domain", zap.Error(err))
		return nil, err
	}

	return tenant, nil
}

// GetByAuthToken resolves the tenant owning a stock-push token. Hashes are
// salted so there is no direct lookup; active tenants are iterated and the
// token is verified against each stored hash.
func (r *tenantConfigRepository) GetByAuthToken(ctx context.Context, token string) (*domain.TenantConfig, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenant_configs
		WHERE is_active = true AND auth_token_hash <> ''
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query tenants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(tenant.AuthTokenHash), []byte(token)) == nil {
			return tenant, nil
		}
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
}

func (r *tenantConfigRepository) Upsert(ctx context.Context, cfg *domain.TenantConfig) error {
	query := `
		INSERT INTO tenant_configs (
			id, shop_domain, app_id, secret_key, auth_token_hash, storefront_token,
			sandbox_manage, order_manage, full_order_manage, products_management,
			debug_management, is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (shop_domain) DO UPDATE SET
			app_id = EXCLUDED.app_id,
			secret_key = EXCLUDED.secret_key,
			storefront_token = EXCLUDED.storefront_token,
			sandbox_manage = EXCLUDED.sandbox_manage,
			order_manage = EXCLUDED.order_manage,
			full_order_manage = EXCLUDED.full_order_manage,
			products_management = EXCLUDED.products_management,
			debug_management = EXCLUDED.debug_management,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if cfg.ID == uuid.Nil {
		cfg.ID = uuid.New()
	}
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.ShopDomain,
		cfg.AppID,
		cfg.SecretKey,
		cfg.AuthTokenHash,
		cfg.StorefrontToken,
		cfg.SandboxManage,
		cfg.OrderManage,
		cfg.FullOrderManage,
		cfg.ProductsManagement,
		cfg.DebugManagement,
		cfg.IsActive,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to upsert tenant config", zap.Error(err))
		return err
	}

	return nil
}

func (r *tenantConfigRepository) UpdateAuthTokenHash(ctx context.Context, shopDomain, hash string) error {
	query := `
		UPDATE tenant_configs
		SET auth_token_hash = $2, updated_at = $3
		WHERE shop_domain = $1
	`

	result, err := r.db.ExecContext(ctx, query, shopDomain, hash, time.Now())
	if err != nil {
		r.logger.Error("Failed to update auth token hash", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &errors.ErrNotFound{Resource: "tenant", ID: shopDomain}
	}
	return nil
}
