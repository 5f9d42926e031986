package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
)

type debugLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDebugLogRepository creates a new debug log repository
func NewDebugLogRepository(db *sql.DB, logger *zap.Logger) *debugLogRepository {
	return &debugLogRepository{
		db:     db,
		logger: logger,
	}
}

func (r *debugLogRepository) Create(ctx context.Context, entry *domain.DebugLogEntry) error {
	query := `
		INSERT INTO debug_log (id, shop_domain, type, message, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.ShopDomain,
		entry.Type,
		entry.Message,
		entry.URL,
		entry.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create debug log entry", zap.Error(err))
		return err
	}

	return nil
}

func (r *debugLogRepository) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.DebugLogEntry, error) {
	query := `
		SELECT id, shop_domain, type, message, url, created_at
		FROM debug_log
		WHERE shop_domain = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, shopDomain, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list debug log entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.DebugLogEntry
	for rows.Next() {
		var e domain.DebugLogEntry
		if err := rows.Scan(&e.ID, &e.ShopDomain, &e.Type, &e.Message, &e.URL, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
