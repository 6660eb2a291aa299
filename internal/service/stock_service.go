package service

import (
	"context"

	"inventory-service/internal/apperror"
	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"go.uber.org/zap"
)

// StockService applies quantity deltas to products. Subtraction clamps at
// zero; overselling records the sale and floors the stock rather than
// failing the request.
type StockService struct {
	store  *store.Store
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(store *store.Store, redis *redisclient.Client) *StockService {
	return &StockService{
		store:  store,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// AdjustStock applies a quantity delta and returns the updated product
func (s *StockService) AdjustStock(ctx context.Context, productID string, quantity int, direction string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "StockService.AdjustStock")
	defer span.End()

	if quantity <= 0 {
		return nil, apperror.Validation("quantity must be greater than 0")
	}
	if direction != models.StockAdd && direction != models.StockSubtract {
		return nil, apperror.Validation("direction must be add or subtract")
	}

	product, err := s.store.AdjustProductStock(ctx, productID, quantity, direction)
	if err != nil {
		return nil, err
	}

	util.StockAdjustmentsTotal.WithLabelValues(direction).Inc()

	if product.Quantity <= product.MinQuantity {
		s.logger.Warn("Product at or below reorder threshold",
			zap.String("product_id", product.ID),
			zap.String("sku", product.SKU),
			zap.Int("quantity", product.Quantity),
			zap.Int("min_quantity", product.MinQuantity))
	}

	// Stock levels feed the low-stock dashboard counter
	if err := s.redis.Invalidate(ctx, redisclient.KeyDashboardMetrics); err != nil {
		s.logger.Warn("Failed to invalidate dashboard cache", zap.Error(err))
	}

	return product, nil
}
