package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/pkg/errors"
)

type orderLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderLogRepository creates a new order log repository
func NewOrderLogRepository(db *sql.DB, logger *zap.Logger) *orderLogRepository {
	return &orderLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderLogRepository) Create(ctx context.Context, entry *domain.OrderLogEntry) error {
	query := `
		INSERT INTO order_log (id, shop_domain, order_id, supplier_order_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var supplierOrderID sql.NullString
	if entry.SupplierOrderID != nil {
		supplierOrderID = sql.NullString{String: *entry.SupplierOrderID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ShopDomain,
		entry.OrderID,
		supplierOrderID,
		entry.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order log entry", zap.Error(err))
		return err
	}

	return nil
}

func scanOrderLogEntry(row interface{ Scan(...interface{}) error }) (*domain.OrderLogEntry, error) {
	var e domain.OrderLogEntry
	var supplierOrderID sql.NullString
	err := row.Scan(&e.ID, &e.ShopDomain, &e.OrderID, &supplierOrderID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if supplierOrderID.Valid {
		e.SupplierOrderID = &supplierOrderID.String
	}
	return &e, nil
}

func (r *orderLogRepository) GetByOrderID(ctx context.Context, shopDomain string, orderID int64) (*domain.OrderLogEntry, error) {
	query := `
		SELECT id, shop_domain, order_id, supplier_order_id, created_at
		FROM order_log
		WHERE shop_domain = $1 AND order_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	entry, err := scanOrderLogEntry(r.db.QueryRowContext(ctx, query, shopDomain, orderID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order_log_entry", ID: shopDomain}
	}
	if err != nil {
		r.logger.Error("Failed to get order log entry", zap.Error(err))
		return nil, err
	}

	return entry, nil
}

func (r *orderLogRepository) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.OrderLogEntry, error) {
	query := `
		SELECT id, shop_domain, order_id, supplier_order_id, created_at
		FROM order_log
		WHERE shop_domain = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, shopDomain, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list order log entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.OrderLogEntry
	for rows.Next() {
		entry, err := scanOrderLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
