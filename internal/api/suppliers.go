package api

import (
	"net/http"

	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// getSuppliers lists suppliers, optionally filtered by ?search=
func (h *Handler) getSuppliers(c *gin.Context) {
	suppliers, err := h.catalog.GetSuppliers(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// createSupplier creates a supplier
func (h *Handler) createSupplier(c *gin.Context) {
	var req service.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	supplier, err := h.catalog.CreateSupplier(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// getSupplier retrieves a supplier by ID
func (h *Handler) getSupplier(c *gin.Context) {
	supplier, err := h.catalog.GetSupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// updateSupplier applies a partial update to a supplier
func (h *Handler) updateSupplier(c *gin.Context) {
	var req service.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	supplier, err := h.catalog.UpdateSupplier(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// deleteSupplier removes a supplier and its products
func (h *Handler) deleteSupplier(c *gin.Context) {
	if err := h.catalog.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getSupplierProducts lists a supplier's active products
func (h *Handler) getSupplierProducts(c *gin.Context) {
	products, err := h.catalog.GetSupplierProducts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
