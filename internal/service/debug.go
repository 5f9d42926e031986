package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
)

// logDebug appends a trace row when the tenant has debug management enabled.
// Failures to write a trace row never fail the calling operation.
func logDebug(ctx context.Context, repos *repository.Repositories, logger *zap.Logger, tenant *domain.TenantConfig, typ, message, url string) {
	if !tenant.DebugManagement {
		return
	}
	entry := &domain.DebugLogEntry{
		ShopDomain: tenant.ShopDomain,
		Type:       typ,
		Message:    message,
		URL:        url,
	}
	if err := repos.DebugLog.Create(ctx, entry); err != nil {
		logger.Warn("Failed to write debug log entry", zap.Error(err))
	}
}
