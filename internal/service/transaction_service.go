package service

import (
	"context"
	"fmt"
	"time"

	"inventory-service/config"
	"inventory-service/internal/apperror"
	"inventory-service/internal/broker"
	"inventory-service/internal/codegen"
	"inventory-service/internal/models"
	"inventory-service/internal/redisclient"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const paymentNumberPrefix = "PAYMENT"

// TransactionService orchestrates the multi-step write sequences: sale
// creation, counter payments and over-the-counter debt collection. Every
// sequence runs in a single database transaction so a mid-step failure
// leaves no partial state behind.
type TransactionService struct {
	store          *store.Store
	redis          *redisclient.Client
	ledger         *LedgerService
	eventPublisher *broker.EventPublisher
	cfg            config.BusinessConfig
	logger         *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	store *store.Store,
	redis *redisclient.Client,
	ledger *LedgerService,
	eventPublisher *broker.EventPublisher,
	cfg config.BusinessConfig,
) *TransactionService {
	return &TransactionService{
		store:          store,
		redis:          redis,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		cfg:            cfg,
		logger:         util.GetLogger(),
	}
}

// TransactionPayload is the transaction half of a sale request
type TransactionPayload struct {
	CustomerID   *string         `json:"customerId"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
	PaymentType  string          `json:"paymentType"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status"`
}

// TransactionItemPayload is one line item of a sale request
type TransactionItemPayload struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

// CreateTransactionRequest is the envelope the POS client sends
type CreateTransactionRequest struct {
	Transaction *TransactionPayload      `json:"transaction"`
	Items       []TransactionItemPayload `json:"items"`
}

func (s *TransactionService) validateCreateRequest(req *CreateTransactionRequest) error {
	if req.Transaction == nil {
		return apperror.Validation("missing transaction data")
	}
	if len(req.Items) == 0 {
		return apperror.Validation("missing or empty items")
	}
	switch req.Transaction.PaymentType {
	case "", models.PaymentTypeCash, models.PaymentTypeCredit, models.PaymentTypeDebtCollection:
	default:
		return apperror.ValidationFields("invalid transaction data",
			map[string]string{"paymentType": "must be cash, credit or debt_collection"})
	}
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return apperror.ValidationFields("invalid transaction data",
				map[string]string{fmt.Sprintf("items[%d].quantity", i): "must be greater than 0"})
		}
	}
	return nil
}

// CreateTransaction records a sale: the transaction row, its line items,
// stock decrements for each product, and the customer debt increase for
// credit sales, all in one database transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*models.Transaction, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.CreateTransaction")
	defer span.End()

	start := time.Now()
	defer func() {
		util.TransactionCreateLatency.Observe(time.Since(start).Seconds())
	}()

	if err := s.validateCreateRequest(req); err != nil {
		util.TransactionsFailedTotal.WithLabelValues("invalid_payload").Inc()
		return nil, err
	}

	p := req.Transaction
	txn := &models.Transaction{
		CustomerID:      p.CustomerID,
		CustomerName:    p.CustomerName,
		Total:           p.Total,
		Discount:        p.Discount,
		Tax:             p.Tax,
		PaymentType:     p.PaymentType,
		Currency:        p.Currency,
		Status:          p.Status,
		TransactionType: models.TxnTypeSale,
	}
	if txn.PaymentType == "" {
		txn.PaymentType = models.PaymentTypeCash
	}
	if txn.Currency == "" {
		txn.Currency = s.cfg.DefaultCurrency
	}
	if txn.Status == "" {
		txn.Status = models.TxnStatusCompleted
	}

	err := s.store.RunInTx(ctx, func(tx *sqlx.Tx) error {
		last, err := s.store.LastInvoiceNumberTx(ctx, tx)
		if err != nil {
			return fmt.Errorf("failed to read last invoice number: %w", err)
		}
		txn.TransactionNumber = codegen.NextInvoiceNumber(last)

		if err := s.store.InsertTransactionTx(ctx, tx, txn); err != nil {
			return err
		}

		for i := range req.Items {
			item := itemFromPayload(txn.ID, req.Items[i])
			if err := s.store.InsertTransactionItemTx(ctx, tx, &item); err != nil {
				return fmt.Errorf("failed to create transaction item: %w", err)
			}

			// Items without a product reference skip the stock decrement
			if item.ProductID != nil {
				if _, err := s.store.AdjustProductStockTx(ctx, tx, *item.ProductID, item.Quantity, models.StockSubtract); err != nil {
					return fmt.Errorf("failed to adjust stock for product %s: %w", *item.ProductID, err)
				}
			}
		}

		if txn.PaymentType == models.PaymentTypeCredit && txn.CustomerID != nil {
			if _, err := s.ledger.AdjustDebtTx(ctx, tx, *txn.CustomerID, txn.Total, txn.Currency, models.DebtAdd); err != nil {
				return fmt.Errorf("failed to update customer debt: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if apperror.IsValidation(err) || apperror.IsNotFound(err) || apperror.IsConflict(err) {
			util.TransactionsFailedTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
		util.TransactionsFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	util.TransactionsCreatedTotal.WithLabelValues(txn.PaymentType).Inc()
	s.logger.Info("Transaction created",
		zap.String("transaction_id", txn.ID),
		zap.String("transaction_number", txn.TransactionNumber),
		zap.String("payment_type", txn.PaymentType))

	s.publishTransactionCreated(ctx, txn, req.Items)
	s.invalidateDashboardCaches(ctx)

	return txn, nil
}

// CollectPaymentResponse is the counter-payment result
type CollectPaymentResponse struct {
	Success       bool            `json:"success"`
	NewDebt       decimal.Decimal `json:"newDebt"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	Message       string          `json:"message"`
}

// CollectPayment takes a counter payment against a customer's debt and books
// it as a completed debt-collection transaction. The debt write and the
// bookkeeping row commit together.
func (s *TransactionService) CollectPayment(ctx context.Context, customerID string, amount decimal.Decimal, currency string) (*CollectPaymentResponse, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.CollectPayment")
	defer span.End()

	// Lookup first: a payment against a missing customer is 404, whatever
	// the amount says
	customer, err := s.store.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperror.Validation("Payment amount must be greater than 0")
	}
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	var newDebt decimal.Decimal
	txn := &models.Transaction{
		TransactionNumber: codegen.RandomNumber(paymentNumberPrefix, time.Now()),
		CustomerID:        &customer.ID,
		CustomerName:      customer.Name,
		Total:             amount,
		PaymentType:       models.PaymentTypeCash,
		Currency:          currency,
		Status:            models.TxnStatusCompleted,
		TransactionType:   models.TxnTypeDebtCollection,
	}

	err = s.store.RunInTx(ctx, func(tx *sqlx.Tx) error {
		newDebt, err = s.ledger.AdjustDebtTx(ctx, tx, customerID, amount, currency, models.DebtSubtract)
		if err != nil {
			return err
		}
		return s.store.InsertTransactionTx(ctx, tx, txn)
	})
	if err != nil {
		if apperror.IsValidation(err) || apperror.IsNotFound(err) || apperror.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	util.PaymentsCollectedTotal.Inc()
	s.logger.Info("Payment collected",
		zap.String("customer_id", customerID),
		zap.String("amount", amount.String()),
		zap.String("new_debt", newDebt.String()))

	s.publishPaymentCollected(ctx, txn.ID, customerID, amount, newDebt)
	s.invalidateDashboardCaches(ctx)

	return &CollectPaymentResponse{
		Success:       true,
		NewDebt:       newDebt,
		PaymentAmount: amount,
		Message:       "Payment processed successfully",
	}, nil
}

// RecordPaymentRequest is a payment against a specific open transaction
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transactionId"`
	CustomerID    string          `json:"customerId"`
}

// RecordPaymentResponse reports what remains after the payment
type RecordPaymentResponse struct {
	Success         bool            `json:"success"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingDebt   decimal.Decimal `json:"remainingDebt"`
	Message         string          `json:"message"`
}

// RecordPayment books a payment against an open credit transaction. When the
// customer's debt reaches exactly zero, the original transaction flips to
// completed in the same commit.
func (s *TransactionService) RecordPayment(ctx context.Context, req *RecordPaymentRequest) (*RecordPaymentResponse, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.RecordPayment")
	defer span.End()

	if req.Amount.LessThanOrEqual(decimal.Zero) || req.TransactionID == "" || req.CustomerID == "" {
		return nil, apperror.Validation("Missing required fields")
	}

	original, err := s.store.GetTransactionByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}

	customer, err := s.store.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	currency := original.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	var newDebt decimal.Decimal
	collection := &models.Transaction{
		TransactionNumber: codegen.RandomNumber(paymentNumberPrefix, time.Now()),
		CustomerID:        &customer.ID,
		CustomerName:      customer.Name,
		Total:             req.Amount,
		PaymentType:       models.PaymentTypeDebtCollection,
		Currency:          currency,
		Status:            models.TxnStatusCompleted,
		TransactionType:   models.TxnTypeDebtCollection,
	}

	err = s.store.RunInTx(ctx, func(tx *sqlx.Tx) error {
		newDebt, err = s.ledger.AdjustDebtTx(ctx, tx, req.CustomerID, req.Amount, currency, models.DebtSubtract)
		if err != nil {
			return err
		}

		if err := s.store.InsertTransactionTx(ctx, tx, collection); err != nil {
			return err
		}

		if debtSettled(newDebt) {
			return s.store.UpdateTransactionStatusTx(ctx, tx, original.ID, models.TxnStatusCompleted)
		}
		return nil
	})
	if err != nil {
		if apperror.IsValidation(err) || apperror.IsNotFound(err) || apperror.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	util.PaymentsCollectedTotal.Inc()
	s.publishPaymentCollected(ctx, collection.ID, req.CustomerID, req.Amount, newDebt)
	s.invalidateDashboardCaches(ctx)

	remaining := original.Total.Sub(req.Amount)
	message := "Partial payment recorded"
	if remaining.IsZero() {
		message = "Payment completed"
	}

	return &RecordPaymentResponse{
		Success:         true,
		RemainingAmount: remaining,
		Amount:          req.Amount,
		RemainingDebt:   newDebt,
		Message:         message,
	}, nil
}

// debtSettled decides whether a payment completes the transaction being
// paid off. The rule is exact zero: a partial payment, however close,
// leaves the original transaction's status untouched.
func debtSettled(newDebt decimal.Decimal) bool {
	return newDebt.IsZero()
}

// itemFromPayload builds a line item, storing NULL instead of an empty
// string when the payload carries no product reference.
func itemFromPayload(transactionID string, p TransactionItemPayload) models.TransactionItem {
	item := models.TransactionItem{
		TransactionID: transactionID,
		ProductName:   p.ProductName,
		Quantity:      p.Quantity,
		Price:         p.Price,
		Total:         p.Total,
	}
	if p.ProductID != "" {
		productID := p.ProductID
		item.ProductID = &productID
	}
	return item
}

// GetTransactions lists transactions, newest first
func (s *TransactionService) GetTransactions(ctx context.Context, limit, offset int, search string) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.GetTransactions(ctx, limit, offset, search)
}

// UpdateTransactionRequest carries the patchable transaction fields
type UpdateTransactionRequest struct {
	CustomerID   *string          `json:"customerId"`
	CustomerName *string          `json:"customerName"`
	Total        *decimal.Decimal `json:"total"`
	Discount     *decimal.Decimal `json:"discount"`
	Tax          *decimal.Decimal `json:"tax"`
	PaymentType  *string          `json:"paymentType"`
	Currency     *string          `json:"currency"`
	Status       *string          `json:"status"`
}

// UpdateTransaction applies a partial update. Status edits do not touch
// stock; a cancelled sale keeps its decrements.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req *UpdateTransactionRequest) (*models.Transaction, error) {
	fields := map[string]interface{}{}
	if req.CustomerID != nil {
		fields["customer_id"] = *req.CustomerID
	}
	if req.CustomerName != nil {
		fields["customer_name"] = *req.CustomerName
	}
	if req.Total != nil {
		fields["total"] = *req.Total
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.Tax != nil {
		fields["tax"] = *req.Tax
	}
	if req.PaymentType != nil {
		fields["payment_type"] = *req.PaymentType
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.Status != nil {
		switch *req.Status {
		case models.TxnStatusCompleted, models.TxnStatusPending, models.TxnStatusCancelled:
		default:
			return nil, apperror.ValidationFields("invalid transaction data",
				map[string]string{"status": "must be completed, pending or cancelled"})
		}
		fields["status"] = *req.Status
	}

	txn, err := s.store.UpdateTransaction(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboardCaches(ctx)
	return txn, nil
}

// GetTransactionItems lists line items for a transaction
func (s *TransactionService) GetTransactionItems(ctx context.Context, transactionID string) ([]models.TransactionItem, error) {
	if _, err := s.store.GetTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}
	return s.store.GetTransactionItems(ctx, transactionID)
}

// ReplaceTransactionItems swaps the full item set of a transaction. The edit
// flow replaces wholesale; stock is not re-adjusted for edits.
func (s *TransactionService) ReplaceTransactionItems(ctx context.Context, transactionID string, payloads []TransactionItemPayload) ([]models.TransactionItem, error) {
	if _, err := s.store.GetTransactionByID(ctx, transactionID); err != nil {
		return nil, err
	}

	items := make([]models.TransactionItem, len(payloads))
	for i, p := range payloads {
		if p.Quantity <= 0 {
			return nil, apperror.ValidationFields("invalid items",
				map[string]string{fmt.Sprintf("items[%d].quantity", i): "must be greater than 0"})
		}
		items[i] = itemFromPayload(transactionID, p)
	}

	if err := s.store.ReplaceTransactionItems(ctx, transactionID, items); err != nil {
		return nil, err
	}
	return s.store.GetTransactionItems(ctx, transactionID)
}

func (s *TransactionService) publishTransactionCreated(ctx context.Context, txn *models.Transaction, items []TransactionItemPayload) {
	itemData := make([]models.TransactionItemData, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		itemData = append(itemData, models.TransactionItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	event := &models.TransactionCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionCreated,
			Timestamp: time.Now(),
		},
		TransactionID:     txn.ID,
		TransactionNumber: txn.TransactionNumber,
		Total:             txn.Total,
		PaymentType:       txn.PaymentType,
		Items:             itemData,
	}
	if txn.CustomerID != nil {
		event.CustomerID = *txn.CustomerID
	}

	if err := s.eventPublisher.PublishTransactionCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish TransactionCreated event", zap.Error(err))
	}
}

func (s *TransactionService) publishPaymentCollected(ctx context.Context, transactionID, customerID string, amount, newDebt decimal.Decimal) {
	event := &models.PaymentCollectedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypePaymentCollected,
			Timestamp: time.Now(),
		},
		TransactionID: transactionID,
		CustomerID:    customerID,
		Amount:        amount,
		NewDebt:       newDebt,
	}

	if err := s.eventPublisher.PublishPaymentCollected(ctx, event); err != nil {
		s.logger.Error("Failed to publish PaymentCollected event", zap.Error(err))
	}
}

func (s *TransactionService) invalidateDashboardCaches(ctx context.Context) {
	if err := s.redis.Invalidate(ctx, redisclient.KeyDashboardMetrics, redisclient.KeyMonthlySales); err != nil {
		s.logger.Warn("Failed to invalidate dashboard caches", zap.Error(err))
	}
}
