package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"inventory-service/internal/apperror"
	"inventory-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// InsertTransactionTx inserts a transaction row inside an existing database
// transaction
func (s *Store) InsertTransactionTx(ctx context.Context, tx *sqlx.Tx, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transactions (id, transaction_number, customer_id, customer_name, total, discount, tax, payment_type, currency, status, transaction_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING *`

	err := tx.GetContext(ctx, txn, query,
		txn.ID, txn.TransactionNumber, txn.CustomerID, txn.CustomerName,
		txn.Total, txn.Discount, txn.Tax, txn.PaymentType, txn.Currency,
		txn.Status, txn.TransactionType)
	return mapWriteErr(err, "transaction number")
}

// InsertTransactionItemTx inserts a line item inside an existing database
// transaction
func (s *Store) InsertTransactionItemTx(ctx context.Context, tx *sqlx.Tx, item *models.TransactionItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO transaction_items (id, transaction_id, product_id, product_name, quantity, price, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *`

	return tx.GetContext(ctx, item, query,
		item.ID, item.TransactionID, item.ProductID, item.ProductName,
		item.Quantity, item.Price, item.Total)
}

// LastInvoiceNumberTx reads the most recent incrementing invoice number
// inside an existing database transaction. Numbers from the random scheme
// (with a second hyphen) are skipped.
func (s *Store) LastInvoiceNumberTx(ctx context.Context, tx *sqlx.Tx) (string, error) {
	var number string
	err := tx.GetContext(ctx, &number, `
		SELECT transaction_number FROM transactions
		WHERE transaction_number LIKE 'INV-%' AND transaction_number NOT LIKE 'INV-%-%'
		ORDER BY created_at DESC
		LIMIT 1`)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return number, err
}

// UpdateTransactionStatusTx updates a transaction's status inside an
// existing database transaction
func (s *Store) UpdateTransactionStatusTx(ctx context.Context, tx *sqlx.Tx, id, status string) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE transactions SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)
	return err
}

// GetTransactionByID retrieves a transaction by ID
func (s *Store) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.GetContext(ctx, &txn, "SELECT * FROM transactions WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("transaction", id)
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactions retrieves transactions, newest first, optionally filtered
// by a search term over transaction number and customer name.
func (s *Store) GetTransactions(ctx context.Context, limit, offset int, search string) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	if search != "" {
		pattern := "%" + search + "%"
		err := s.db.SelectContext(ctx, &txns, `
			SELECT * FROM transactions
			WHERE transaction_number ILIKE $1 OR customer_name ILIKE $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`,
			pattern, limit, offset)
		return txns, err
	}
	err := s.db.SelectContext(ctx, &txns,
		"SELECT * FROM transactions ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	return txns, err
}

// UpdateTransaction applies a partial update to a transaction
func (s *Store) UpdateTransaction(ctx context.Context, id string, fields map[string]interface{}) (*models.Transaction, error) {
	if len(fields) == 0 {
		return s.GetTransactionByID(ctx, id)
	}

	setClauses := make([]string, 0, len(fields)+1)
	args := make([]interface{}, 0, len(fields)+1)
	i := 1
	for col, val := range fields {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE transactions SET %s WHERE id = $%d RETURNING *",
		strings.Join(setClauses, ", "), i)

	var txn models.Transaction
	err := s.db.GetContext(ctx, &txn, query, args...)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("transaction", id)
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetTransactionItems retrieves all line items for a transaction
func (s *Store) GetTransactionItems(ctx context.Context, transactionID string) ([]models.TransactionItem, error) {
	items := []models.TransactionItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM transaction_items WHERE transaction_id = $1", transactionID)
	return items, err
}

// ReplaceTransactionItems swaps out the full item set for a transaction.
// The edit flow always deletes and reinserts; items are never patched
// incrementally.
func (s *Store) ReplaceTransactionItems(ctx context.Context, transactionID string, items []models.TransactionItem) error {
	return s.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM transaction_items WHERE transaction_id = $1", transactionID); err != nil {
			return fmt.Errorf("failed to delete transaction items: %w", err)
		}

		for i := range items {
			items[i].TransactionID = transactionID
			if err := s.InsertTransactionItemTx(ctx, tx, &items[i]); err != nil {
				return fmt.Errorf("failed to insert transaction item: %w", err)
			}
		}
		return nil
	})
}

// GetProductSalesEntries retrieves a product's sales history rows
func (s *Store) GetProductSalesEntries(ctx context.Context, productID string) ([]models.ProductSaleEntry, error) {
	entries := []models.ProductSaleEntry{}
	err := s.db.SelectContext(ctx, &entries, `
		SELECT ti.transaction_id, t.transaction_number, t.customer_name,
		       ti.quantity, ti.price, ti.total, t.created_at AS sale_date, t.status
		FROM transaction_items ti
		LEFT JOIN transactions t ON t.id = ti.transaction_id
		WHERE ti.product_id = $1
		ORDER BY t.created_at DESC`, productID)
	return entries, err
}

// GetCompletedTransactionsSince retrieves completed transactions created at
// or after the given time. Used to build the monthly sales series.
func (s *Store) GetCompletedTransactionsSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	err := s.db.SelectContext(ctx, &txns,
		"SELECT * FROM transactions WHERE status = $1 AND created_at >= $2 ORDER BY created_at",
		models.TxnStatusCompleted, since)
	return txns, err
}
