package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"inventory-service/internal/apperror"
	"inventory-service/internal/service"
	"inventory-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog      *service.CatalogService
	ledger       *service.LedgerService
	stock        *service.StockService
	transactions *service.TransactionService
	metrics      *service.MetricsService
	shipments    *service.ShipmentService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	ledger *service.LedgerService,
	stock *service.StockService,
	transactions *service.TransactionService,
	metrics *service.MetricsService,
	shipments *service.ShipmentService,
) *Handler {
	return &Handler{
		catalog:      catalog,
		ledger:       ledger,
		stock:        stock,
		transactions: transactions,
		metrics:      metrics,
		shipments:    shipments,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/dashboard/metrics", h.getDashboardMetrics)
		api.GET("/dashboard/monthly-sales", h.getMonthlySales)

		api.GET("/products", h.getProducts)
		api.POST("/products", h.createProduct)
		api.GET("/products/low-stock", h.getLowStockProducts)
		api.GET("/products/barcode/:barcode", h.getProductByBarcode)
		api.GET("/products/:id", h.getProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)
		api.GET("/products/:id/sales-history", h.getProductSalesHistory)
		api.POST("/products/:id/stock", h.adjustStock)

		api.GET("/customers", h.getCustomers)
		api.POST("/customers", h.createCustomer)
		api.GET("/customers/:id", h.getCustomer)
		api.PUT("/customers/:id", h.updateCustomer)
		api.DELETE("/customers/:id", h.deleteCustomer)
		api.GET("/customers/:id/debt", h.getCustomerDebtStatus)
		api.POST("/customers/:id/payment", h.collectPayment)

		api.GET("/suppliers", h.getSuppliers)
		api.POST("/suppliers", h.createSupplier)
		api.GET("/suppliers/:id", h.getSupplier)
		api.PUT("/suppliers/:id", h.updateSupplier)
		api.DELETE("/suppliers/:id", h.deleteSupplier)
		api.GET("/suppliers/:id/products", h.getSupplierProducts)

		api.GET("/transactions", h.getTransactions)
		api.POST("/transactions", h.createTransaction)
		api.PATCH("/transactions/:id", h.updateTransaction)
		api.GET("/transactions/:id/items", h.getTransactionItems)
		api.PUT("/transactions/:id/items", h.replaceTransactionItems)

		api.POST("/payments", h.recordPayment)

		api.GET("/shipments", h.getShipments)
		api.POST("/shipments", h.createShipment)
		api.PATCH("/shipments/:id", h.updateShipmentStatus)
		api.DELETE("/shipments/:id", h.deleteShipment)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError maps the error taxonomy onto status codes. Internal errors
// never leak their cause to the client.
func respondError(c *gin.Context, err error) {
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		body := gin.H{"message": ve.Message}
		if len(ve.Fields) > 0 {
			body["errors"] = ve.Fields
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	if apperror.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	if apperror.IsConflict(err) {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	util.GetLogger().Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request body",
		"errors":  gin.H{"body": err.Error()},
	})
}

// getDashboardMetrics returns the dashboard counters
func (h *Handler) getDashboardMetrics(c *gin.Context) {
	metrics, err := h.metrics.GetDashboardMetrics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// getMonthlySales returns the trailing 12-month sales series
func (h *Handler) getMonthlySales(c *gin.Context) {
	points, err := h.metrics.GetMonthlySales(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
