package worker

import (
	"context"
	"log"

	"inventory-service/internal/broker"
	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"go.uber.org/zap"
)

// LowStockWorker watches the transaction event stream and flags products
// that a sale pushed to or below their reorder threshold.
type LowStockWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	logger       *zap.Logger
}

// NewLowStockWorker creates a new low-stock worker
func NewLowStockWorker(consumer *broker.Consumer, store *store.Store) *LowStockWorker {
	w := &LowStockWorker{
		consumer: consumer,
		store:    store,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnTransactionCreated(w.handleTransactionCreated)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *LowStockWorker) Start(ctx context.Context) error {
	log.Println("Starting low-stock worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *LowStockWorker) Stop() error {
	log.Println("Stopping low-stock worker...")
	return w.consumer.Close()
}

func (w *LowStockWorker) handleTransactionCreated(ctx context.Context, event *models.TransactionCreatedEvent) error {
	ids := make([]string, 0, len(event.Items))
	for _, item := range event.Items {
		ids = append(ids, item.ProductID)
	}

	// Products deleted since the sale committed simply drop out of the batch
	products, err := w.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, product := range products {
		if product.Quantity <= product.MinQuantity {
			w.logger.Warn("Product at or below reorder threshold after sale",
				zap.String("product_id", product.ID),
				zap.String("sku", product.SKU),
				zap.String("name", product.Name),
				zap.Int("quantity", product.Quantity),
				zap.Int("min_quantity", product.MinQuantity),
				zap.String("transaction_number", event.TransactionNumber))
		}
	}

	lowStock, err := w.store.GetLowStockProducts(ctx)
	if err != nil {
		return err
	}
	util.LowStockProducts.Set(float64(len(lowStock)))

	return nil
}
