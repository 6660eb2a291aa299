package service

import (
	"context"
	"time"

	"inventory-service/config"
	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MetricsService serves the dashboard read side. Both aggregates are cached
// in Redis with a short TTL; transaction writes invalidate the cache.
type MetricsService struct {
	store    *store.Store
	redis    *redisclient.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewMetricsService creates a new metrics service
func NewMetricsService(store *store.Store, redis *redisclient.Client, cfg config.BusinessConfig) *MetricsService {
	return &MetricsService{
		store:    store,
		redis:    redis,
		cacheTTL: time.Duration(cfg.MetricsCacheTTL) * time.Second,
		logger:   util.GetLogger(),
	}
}

// GetDashboardMetrics returns the dashboard counters
func (s *MetricsService) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	ctx, span := util.StartSpan(ctx, "MetricsService.GetDashboardMetrics")
	defer span.End()

	var cached models.DashboardMetrics
	hit, err := s.redis.GetJSON(ctx, redisclient.KeyDashboardMetrics, &cached)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	metrics, err := s.store.GetDashboardMetrics(ctx)
	if err != nil {
		return nil, err
	}

	util.LowStockProducts.Set(float64(metrics.LowStockCount))

	if err := s.redis.SetJSON(ctx, redisclient.KeyDashboardMetrics, metrics, s.cacheTTL); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.Error(err))
	}
	return metrics, nil
}

// GetMonthlySales returns the trailing 12-month sales series, oldest month
// first, with empty months as zero buckets.
func (s *MetricsService) GetMonthlySales(ctx context.Context) ([]models.MonthlySalesPoint, error) {
	ctx, span := util.StartSpan(ctx, "MetricsService.GetMonthlySales")
	defer span.End()

	var cached []models.MonthlySalesPoint
	hit, err := s.redis.GetJSON(ctx, redisclient.KeyMonthlySales, &cached)
	if err != nil {
		s.logger.Warn("Monthly sales cache read failed", zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	now := time.Now().UTC()
	windowStart := monthStart(now).AddDate(0, -11, 0)

	txns, err := s.store.GetCompletedTransactionsSince(ctx, windowStart)
	if err != nil {
		return nil, err
	}

	points := bucketMonthlySales(txns, now)

	if err := s.redis.SetJSON(ctx, redisclient.KeyMonthlySales, points, s.cacheTTL); err != nil {
		s.logger.Warn("Monthly sales cache write failed", zap.Error(err))
	}
	return points, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// bucketMonthlySales sums transaction totals into 12 calendar-month buckets
// ending with the current month. Transactions outside the window are ignored.
// Both sides bucket in UTC so a month-boundary transaction lands the same
// way regardless of the host zone.
func bucketMonthlySales(txns []models.Transaction, now time.Time) []models.MonthlySalesPoint {
	points := make([]models.MonthlySalesPoint, 0, 12)
	index := make(map[string]int, 12)

	for i := 11; i >= 0; i-- {
		m := monthStart(now.UTC()).AddDate(0, -i, 0)
		key := m.Format("2006-01")
		index[key] = len(points)
		points = append(points, models.MonthlySalesPoint{
			Month:     key,
			MonthName: m.Month().String(),
			Sales:     decimal.Zero,
		})
	}

	for _, txn := range txns {
		key := txn.CreatedAt.UTC().Format("2006-01")
		if i, ok := index[key]; ok {
			points[i].Sales = points[i].Sales.Add(txn.Total)
		}
	}
	return points
}
