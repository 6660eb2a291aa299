package store

import (
	"context"
	"fmt"

	"inventory-service/internal/models"
)

// GetDashboardMetrics aggregates the dashboard counters in one round trip.
// Debt-collection transactions are bookkeeping entries, not sales, so they
// are excluded from the sales sum and order counts. A NULL transaction_type
// predates the type column and counts as a sale.
func (s *Store) GetDashboardMetrics(ctx context.Context) (*models.DashboardMetrics, error) {
	var m models.DashboardMetrics

	query := `
		SELECT
			COALESCE((SELECT SUM(total) FROM transactions
				WHERE status = 'completed'
				AND (transaction_type IS NULL OR transaction_type != 'debt_collection')), 0) AS total_sales,
			(SELECT COUNT(*) FROM transactions
				WHERE transaction_type IS NULL OR transaction_type != 'debt_collection') AS total_orders,
			(SELECT COUNT(*) FROM products WHERE is_active = true) AS active_products,
			(SELECT COUNT(*) FROM customers
				WHERE created_at >= DATE_TRUNC('month', NOW())) AS new_customers,
			(SELECT COUNT(*) FROM products WHERE quantity <= min_quantity) AS low_stock_count,
			(SELECT COUNT(*) FROM transactions WHERE status = 'pending') AS pending_orders,
			(SELECT COUNT(DISTINCT customer_id) FROM transactions
				WHERE customer_id IS NOT NULL
				AND created_at >= DATE_TRUNC('month', NOW())) AS active_customers,
			(SELECT COUNT(*) FROM transactions WHERE status = 'cancelled') AS returns`

	row := s.db.QueryRowxContext(ctx, query)
	err := row.Scan(&m.TotalSales, &m.TotalOrders, &m.ActiveProducts, &m.NewCustomers,
		&m.LowStockCount, &m.PendingOrders, &m.ActiveCustomers, &m.Returns)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dashboard metrics: %w", err)
	}
	return &m, nil
}
