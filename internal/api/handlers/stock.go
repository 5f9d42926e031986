package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/config"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/service"
	"github.com/azanlabs/supplysync/pkg/errors"
)

// APIKeyHeader authenticates supplier-originated stock pushes
const APIKeyHeader = "x-api-key"

// StockPushResponse carries the applied field values
type StockPushResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    StockPushData `json:"data"`
}

type StockPushData struct {
	SKU      string `json:"sku"`
	Supplier string `json:"supplier"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
}

// HandleStockPush handles POST /v1/stock/push
func HandleStockPush(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(APIKeyHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req service.StockPushRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		factory := service.NewClientFactory(cfg, logger)
		pushService := service.NewStockPushService(repos, factory.Storefront, logger)

		applied, err := pushService.Apply(c.Request.Context(), token, req)
		if err != nil {
			switch err.(type) {
			case *errors.ErrUnauthorized:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			case *errors.ErrNotFound:
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			default:
				logger.Error("Failed to apply stock push", zap.String("sku", req.SKU), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply stock push"})
			}
			return
		}

		c.JSON(http.StatusOK, StockPushResponse{
			Success: true,
			Message: "Product updated successfully",
			Data: StockPushData{
				SKU:      applied.SKU,
				Supplier: applied.Supplier,
				Name:     applied.Name,
				Price:    applied.Price.String(),
				Stock:    applied.Stock,
			},
		})
	}
}
