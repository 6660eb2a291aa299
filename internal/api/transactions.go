package api

import (
	"net/http"
	"strconv"

	"inventory-service/internal/service"

	"github.com/gin-gonic/gin"
)

// getTransactions lists transactions with ?limit=&offset=&search=
func (h *Handler) getTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.transactions.GetTransactions(c.Request.Context(), limit, offset, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// createTransaction records a sale with its line items
func (h *Handler) createTransaction(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactions.CreateTransaction(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// updateTransaction applies a partial update to a transaction
func (h *Handler) updateTransaction(c *gin.Context) {
	var req service.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	txn, err := h.transactions.UpdateTransaction(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// getTransactionItems lists a transaction's line items
func (h *Handler) getTransactionItems(c *gin.Context) {
	items, err := h.transactions.GetTransactionItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// replaceTransactionItemsRequest is the body for the item replace endpoint
type replaceTransactionItemsRequest struct {
	Items []service.TransactionItemPayload `json:"items"`
}

// replaceTransactionItems swaps a transaction's full item set
func (h *Handler) replaceTransactionItems(c *gin.Context) {
	var req replaceTransactionItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items, err := h.transactions.ReplaceTransactionItems(c.Request.Context(), c.Param("id"), req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// recordPayment books a payment against an open credit transaction
func (h *Handler) recordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.transactions.RecordPayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
