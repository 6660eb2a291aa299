package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product with its stock level
type Product struct {
	ID          string           `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Description *string          `db:"description" json:"description,omitempty"`
	SKU         string           `db:"sku" json:"sku"`
	Barcode     *string          `db:"barcode" json:"barcode,omitempty"`
	Category    *string          `db:"category" json:"category,omitempty"`
	Price       decimal.Decimal  `db:"price" json:"price"`
	Cost        *decimal.Decimal `db:"cost" json:"cost,omitempty"`
	Currency    string           `db:"currency" json:"currency"`
	SupplierID  *string          `db:"supplier_id" json:"supplierId,omitempty"`
	Quantity    int              `db:"quantity" json:"quantity"`
	MinQuantity int              `db:"min_quantity" json:"minQuantity"`
	IsActive    bool             `db:"is_active" json:"isActive"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

// Customer represents a customer and their running debt balance.
// TotalDebt is always >= 0 and normalized to the reference currency.
type Customer struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Email        *string         `db:"email" json:"email,omitempty"`
	Phone        *string         `db:"phone" json:"phone,omitempty"`
	Address      *string         `db:"address" json:"address,omitempty"`
	TotalDebt    decimal.Decimal `db:"total_debt" json:"totalDebt"`
	DebtCurrency string          `db:"debt_currency" json:"debtCurrency"`
	IsActive     bool            `db:"is_active" json:"isActive"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// Supplier represents a product supplier
type Supplier struct {
	ID            string    `db:"id" json:"id"`
	SupplierCode  string    `db:"supplier_code" json:"supplierCode"`
	Name          string    `db:"name" json:"name"`
	ContactPerson *string   `db:"contact_person" json:"contactPerson,omitempty"`
	Email         *string   `db:"email" json:"email,omitempty"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Address       *string   `db:"address" json:"address,omitempty"`
	TaxNumber     *string   `db:"tax_number" json:"taxNumber,omitempty"`
	PaymentTerms  *string   `db:"payment_terms" json:"paymentTerms,omitempty"`
	IsActive      bool      `db:"is_active" json:"isActive"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Transaction represents a sale or a debt-collection record
type Transaction struct {
	ID                string          `db:"id" json:"id"`
	TransactionNumber string          `db:"transaction_number" json:"transactionNumber"`
	CustomerID        *string         `db:"customer_id" json:"customerId,omitempty"`
	CustomerName      string          `db:"customer_name" json:"customerName"`
	Total             decimal.Decimal `db:"total" json:"total"`
	Discount          decimal.Decimal `db:"discount" json:"discount"`
	Tax               decimal.Decimal `db:"tax" json:"tax"`
	PaymentType       string          `db:"payment_type" json:"paymentType"`
	Currency          string          `db:"currency" json:"currency"`
	Status            string          `db:"status" json:"status"`
	TransactionType   string          `db:"transaction_type" json:"transactionType"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updatedAt"`
}

// TransactionItem represents a line item under a transaction. ProductID is
// nullable: legacy clients can record items without a product reference.
type TransactionItem struct {
	ID            string          `db:"id" json:"id"`
	TransactionID string          `db:"transaction_id" json:"transactionId"`
	ProductID     *string         `db:"product_id" json:"productId,omitempty"`
	ProductName   string          `db:"product_name" json:"productName"`
	Quantity      int             `db:"quantity" json:"quantity"`
	Price         decimal.Decimal `db:"price" json:"price"`
	Total         decimal.Decimal `db:"total" json:"total"`
}

// Shipment is a standalone daily-shipment log entry. It snapshots the
// customer identity at creation time and has no foreign keys.
type Shipment struct {
	ID           string    `db:"id" json:"id"`
	CustomerName string    `db:"customer_name" json:"customerName"`
	Address      string    `db:"address" json:"address"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Status       string    `db:"status" json:"status"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Payment types
const (
	PaymentTypeCash           = "cash"
	PaymentTypeCredit         = "credit"
	PaymentTypeDebtCollection = "debt_collection"
)

// Transaction statuses
const (
	TxnStatusCompleted = "completed"
	TxnStatusPending   = "pending"
	TxnStatusCancelled = "cancelled"
)

// Transaction types
const (
	TxnTypeSale           = "sale"
	TxnTypeDebtCollection = "debt_collection"
)

// Shipment statuses
const (
	ShipmentStatusPaid   = "paid"
	ShipmentStatusUnpaid = "unpaid"
)

// Debt adjustment directions
const (
	DebtAdd      = "add"
	DebtSubtract = "subtract"
)

// Stock adjustment directions
const (
	StockAdd      = "add"
	StockSubtract = "subtract"
)

// DashboardMetrics is the read-side aggregate for the dashboard.
// Debt-collection transactions are excluded from sales and order counts.
type DashboardMetrics struct {
	TotalSales      decimal.Decimal `json:"totalSales"`
	TotalOrders     int64           `json:"totalOrders"`
	ActiveProducts  int64           `json:"activeProducts"`
	NewCustomers    int64           `json:"newCustomers"`
	LowStockCount   int64           `json:"lowStockCount"`
	PendingOrders   int64           `json:"pendingOrders"`
	ActiveCustomers int64           `json:"activeCustomers"`
	Returns         int64           `json:"returns"`
}

// MonthlySalesPoint is one bucket in the trailing 12-month series
type MonthlySalesPoint struct {
	Month     string          `json:"month"`
	MonthName string          `json:"monthName"`
	Sales     decimal.Decimal `json:"sales"`
}

// DebtStatus summarizes a customer's debt against the configured limits
type DebtStatus struct {
	Debt           decimal.Decimal `json:"debt"`
	Currency       string          `json:"currency"`
	IsOverLimit    bool            `json:"isOverLimit"`
	DebtInUSD      decimal.Decimal `json:"debtInUSD"`
	IsOverLimitUSD bool            `json:"isOverLimitUSD"`
}

// ProductSalesHistory aggregates a product's appearance in transactions
type ProductSalesHistory struct {
	TotalQuantitySold int                `json:"totalQuantitySold"`
	TotalSales        int                `json:"totalSales"`
	SalesHistory      []ProductSaleEntry `json:"salesHistory"`
}

// ProductSaleEntry is one row of a product's sales history
type ProductSaleEntry struct {
	TransactionID     string          `db:"transaction_id" json:"transactionId"`
	TransactionNumber string          `db:"transaction_number" json:"transactionNumber"`
	CustomerName      string          `db:"customer_name" json:"customerName"`
	Quantity          int             `db:"quantity" json:"quantity"`
	Price             decimal.Decimal `db:"price" json:"price"`
	Total             decimal.Decimal `db:"total" json:"total"`
	SaleDate          time.Time       `db:"sale_date" json:"saleDate"`
	Status            string          `db:"status" json:"status"`
}
