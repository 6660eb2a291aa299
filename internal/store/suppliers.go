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
)

// CreateSupplier inserts a supplier
func (s *Store) CreateSupplier(ctx context.Context, sup *models.Supplier) error {
	if sup.ID == "" {
		sup.ID = uuid.NewString()
	}

	query := `
		INSERT INTO suppliers (id, supplier_code, name, contact_person, email, phone, address, tax_number, payment_terms, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *`

	err := s.db.GetContext(ctx, sup, query,
		sup.ID, sup.SupplierCode, sup.Name, sup.ContactPerson, sup.Email,
		sup.Phone, sup.Address, sup.TaxNumber, sup.PaymentTerms, sup.IsActive)
	return mapWriteErr(err, "supplier code")
}

// GetSupplierByID retrieves a supplier by ID
func (s *Store) GetSupplierByID(ctx context.Context, id string) (*models.Supplier, error) {
	var supplier models.Supplier
	err := s.db.GetContext(ctx, &supplier, "SELECT * FROM suppliers WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("supplier", id)
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// GetSuppliers retrieves suppliers, newest first, optionally filtered by name
func (s *Store) GetSuppliers(ctx context.Context, search string) ([]models.Supplier, error) {
	suppliers := []models.Supplier{}
	if search != "" {
		err := s.db.SelectContext(ctx, &suppliers,
			"SELECT * FROM suppliers WHERE name ILIKE $1 ORDER BY created_at DESC",
			"%"+search+"%")
		return suppliers, err
	}
	err := s.db.SelectContext(ctx, &suppliers, "SELECT * FROM suppliers ORDER BY created_at DESC")
	return suppliers, err
}

// UpdateSupplier applies a partial update to a supplier
func (s *Store) UpdateSupplier(ctx context.Context, id string, fields map[string]interface{}) (*models.Supplier, error) {
	if len(fields) == 0 {
		return s.GetSupplierByID(ctx, id)
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

	query := fmt.Sprintf("UPDATE suppliers SET %s WHERE id = $%d RETURNING *",
		strings.Join(setClauses, ", "), i)

	var supplier models.Supplier
	err := s.db.GetContext(ctx, &supplier, query, args...)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("supplier", id)
	}
	if err != nil {
		return nil, mapWriteErr(err, "supplier code")
	}
	return &supplier, nil
}

// DeleteSupplier removes a supplier and its products. The cascade is
// enforced here, not by the schema, so both deletes share one transaction.
func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	return s.RunInTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE supplier_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete supplier products: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM suppliers WHERE id = $1", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperror.NotFound("supplier", id)
		}
		return nil
	})
}
