package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/api/middleware"
	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/service"
	"github.com/azanlabs/supplysync/pkg/errors"
)

// InboundOrderResponse represents the relay response
type InboundOrderResponse struct {
	Received        bool    `json:"received"`
	Outcome         string  `json:"outcome"`
	SupplierOrderID *string `json:"supplier_order_id,omitempty"`
	Message         string  `json:"message"`
}

// HandleInboundOrder handles POST /v1/orders/inbound
func HandleInboundOrder(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, ok := middleware.GetTenantFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var order service.InboundOrder
		if err := c.ShouldBindJSON(&order); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		factory := service.NewClientFactory(cfg, logger)
		relay := service.NewOrderRelay(repos, factory.Supplier(tenant), logger)

		result, err := relay.Relay(c.Request.Context(), tenant, &order)
		if err != nil {
			if _, ok := err.(*errors.ErrNotConfigured); ok {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			logger.Error("Failed to relay order", zap.Int64("order_id", order.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to relay order"})
			return
		}

		c.JSON(http.StatusOK, InboundOrderResponse{
			Received:        true,
			Outcome:         string(result.Outcome),
			SupplierOrderID: result.SupplierOrderID,
			Message:         result.Message,
		})
	}
}
