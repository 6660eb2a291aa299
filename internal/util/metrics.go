package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_created_total",
		Help: "Total number of transactions created",
	}, []string{"payment_type"})

	TransactionsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "transactions_failed_total",
		Help: "Total number of failed transaction creations",
	}, []string{"reason"})

	PaymentsCollectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payments_collected_total",
		Help: "Total number of debt-collection payments recorded",
	})

	DebtAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "debt_adjustments_total",
		Help: "Total number of customer debt adjustments",
	}, []string{"direction"})

	StockAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Total number of product stock adjustments",
	}, []string{"direction"})

	LowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "low_stock_products",
		Help: "Number of products at or below their reorder threshold",
	})

	TransactionCreateLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "transaction_create_latency_seconds",
		Help:    "Latency of the transaction creation sequence",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
