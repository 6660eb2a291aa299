package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"inventory-service/internal/apperror"
	"inventory-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Debt updates are single atomic statements; subtraction clamps at zero so
// the balance can never go negative. The ledger always re-normalizes the
// stored currency to the reference currency.
const (
	addDebtSQL = `
		UPDATE customers
		SET total_debt = total_debt + $1, debt_currency = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING total_debt`

	subtractDebtSQL = `
		UPDATE customers
		SET total_debt = GREATEST(total_debt - $1, 0), debt_currency = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING total_debt`
)

// CreateCustomer inserts a customer
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	query := `
		INSERT INTO customers (id, name, email, phone, address, total_debt, debt_currency, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *`

	return s.db.GetContext(ctx, c, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.TotalDebt, c.DebtCurrency, c.IsActive)
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, "SELECT * FROM customers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomers retrieves customers, newest first, optionally filtered by name
func (s *Store) GetCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	customers := []models.Customer{}
	if search != "" {
		err := s.db.SelectContext(ctx, &customers,
			"SELECT * FROM customers WHERE name ILIKE $1 ORDER BY created_at DESC",
			"%"+search+"%")
		return customers, err
	}
	err := s.db.SelectContext(ctx, &customers, "SELECT * FROM customers ORDER BY created_at DESC")
	return customers, err
}

// UpdateCustomer applies a partial update to a customer
func (s *Store) UpdateCustomer(ctx context.Context, id string, fields map[string]interface{}) (*models.Customer, error) {
	if len(fields) == 0 {
		return s.GetCustomerByID(ctx, id)
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

	query := fmt.Sprintf("UPDATE customers SET %s WHERE id = $%d RETURNING *",
		strings.Join(setClauses, ", "), i)

	var customer models.Customer
	err := s.db.GetContext(ctx, &customer, query, args...)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("customer", id)
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// DeleteCustomer removes a customer
func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("customer", id)
	}
	return nil
}

// AdjustCustomerDebt applies a normalized debt delta in one atomic statement
// and returns the new balance. The amount must already be in the reference
// currency.
func (s *Store) AdjustCustomerDebt(ctx context.Context, customerID string, amount decimal.Decimal, currency, direction string) (decimal.Decimal, error) {
	return adjustCustomerDebt(ctx, s.db, customerID, amount, currency, direction)
}

// AdjustCustomerDebtTx is AdjustCustomerDebt inside an existing transaction
func (s *Store) AdjustCustomerDebtTx(ctx context.Context, tx *sqlx.Tx, customerID string, amount decimal.Decimal, currency, direction string) (decimal.Decimal, error) {
	return adjustCustomerDebt(ctx, tx, customerID, amount, currency, direction)
}

func adjustCustomerDebt(ctx context.Context, q sqlx.QueryerContext, customerID string, amount decimal.Decimal, currency, direction string) (decimal.Decimal, error) {
	query := subtractDebtSQL
	if direction == models.DebtAdd {
		query = addDebtSQL
	}

	var newBalance decimal.Decimal
	err := sqlx.GetContext(ctx, q, &newBalance, query, amount, currency, customerID)
	if err == sql.ErrNoRows {
		return decimal.Zero, apperror.NotFound("customer", customerID)
	}
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}
