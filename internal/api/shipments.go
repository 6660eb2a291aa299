package api

import (
	"net/http"

	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// getShipments lists shipments, newest first
func (h *Handler) getShipments(c *gin.Context) {
	shipments, err := h.shipments.GetShipments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipments)
}

// createShipment records a shipment log entry
func (h *Handler) createShipment(c *gin.Context) {
	var req service.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shipment, err := h.shipments.CreateShipment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, shipment)
}

// updateShipmentStatusRequest is the body for the status patch
type updateShipmentStatusRequest struct {
	Status string `json:"status"`
}

// updateShipmentStatus flips a shipment between paid and unpaid
func (h *Handler) updateShipmentStatus(c *gin.Context) {
	var req updateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	shipment, err := h.shipments.UpdateShipmentStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shipment)
}

// deleteShipment removes a shipment
func (h *Handler) deleteShipment(c *gin.Context) {
	if err := h.shipments.DeleteShipment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
