package api

import (
	"net/http"

	"inventory-service/internal/models"
	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// getProducts lists products, optionally filtered by ?search=
func (h *Handler) getProducts(c *gin.Context) {
	products, err := h.catalog.GetProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// createProduct creates a product
func (h *Handler) createProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// getProduct retrieves a product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// getProductByBarcode retrieves a product by barcode or SKU
func (h *Handler) getProductByBarcode(c *gin.Context) {
	product, err := h.catalog.GetProductByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// getLowStockProducts lists products at or below their reorder threshold
func (h *Handler) getLowStockProducts(c *gin.Context) {
	products, err := h.catalog.GetLowStockProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// updateProduct applies a partial update to a product
func (h *Handler) updateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// deleteProduct removes a product
func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getProductSalesHistory returns a product's sales history with totals
func (h *Handler) getProductSalesHistory(c *gin.Context) {
	history, err := h.catalog.GetProductSalesHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// adjustStockRequest is the body for manual stock corrections
type adjustStockRequest struct {
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction"`
}

// adjustStock applies a manual stock correction
func (h *Handler) adjustStock(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Direction == "" {
		req.Direction = models.StockAdd
	}

	product, err := h.stock.AdjustStock(c.Request.Context(), c.Param("id"), req.Quantity, req.Direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
