package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeTransactionCreated = "TRANSACTION_CREATED"
	EventTypePaymentCollected   = "PAYMENT_COLLECTED"
	EventTypeShipmentCreated    = "SHIPMENT_CREATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionCreatedEvent published after a sale transaction is committed
type TransactionCreatedEvent struct {
	BaseEvent
	TransactionID     string               `json:"transaction_id"`
	TransactionNumber string               `json:"transaction_number"`
	CustomerID        string               `json:"customer_id,omitempty"`
	Total             decimal.Decimal      `json:"total"`
	PaymentType       string               `json:"payment_type"`
	Items             []TransactionItemData `json:"items"`
}

// PaymentCollectedEvent published after a debt-collection payment is committed
type PaymentCollectedEvent struct {
	BaseEvent
	TransactionID string          `json:"transaction_id"`
	CustomerID    string          `json:"customer_id"`
	Amount        decimal.Decimal `json:"amount"`
	NewDebt       decimal.Decimal `json:"new_debt"`
}

// ShipmentCreatedEvent published when a shipment log entry is created
type ShipmentCreatedEvent struct {
	BaseEvent
	ShipmentID   string `json:"shipment_id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
}

// TransactionItemData represents line-item data in events
type TransactionItemData struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
