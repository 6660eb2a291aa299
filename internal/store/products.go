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

// adjustStockSQL clamps at zero on subtraction; a single atomic statement so
// concurrent adjustments cannot lose updates.
const (
	addStockSQL = `
		UPDATE products
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING *`

	subtractStockSQL = `
		UPDATE products
		SET quantity = GREATEST(quantity - $1, 0), updated_at = NOW()
		WHERE id = $2
		RETURNING *`
)

// CreateProduct inserts a product. The caller is responsible for having
// assigned a SKU.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO products (id, name, description, sku, barcode, category, price, cost, currency, supplier_id, quantity, min_quantity, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING *`

	err := s.db.GetContext(ctx, p, query,
		p.ID, p.Name, p.Description, p.SKU, p.Barcode, p.Category,
		p.Price, p.Cost, p.Currency, p.SupplierID, p.Quantity, p.MinQuantity, p.IsActive)
	return mapWriteErr(err, "product SKU or barcode")
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("product", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductByBarcode retrieves a product by barcode, falling back to SKU
func (s *Store) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE barcode = $1", barcode)
	if err == sql.ErrNoRows {
		err = s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE sku = $1", barcode)
	}
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("product", barcode)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves products, newest first, optionally filtered by a
// search term over name, SKU and barcode.
func (s *Store) GetProducts(ctx context.Context, search string) ([]models.Product, error) {
	products := []models.Product{}
	if search != "" {
		pattern := "%" + search + "%"
		err := s.db.SelectContext(ctx, &products,
			"SELECT * FROM products WHERE name ILIKE $1 OR sku ILIKE $1 OR barcode ILIKE $1 ORDER BY created_at DESC",
			pattern)
		return products, err
	}
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY created_at DESC")
	return products, err
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// GetLowStockProducts retrieves products at or below their reorder threshold
func (s *Store) GetLowStockProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE quantity <= min_quantity ORDER BY quantity")
	return products, err
}

// GetSupplierProducts retrieves active products for a supplier
func (s *Store) GetSupplierProducts(ctx context.Context, supplierID string) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE supplier_id = $1 AND is_active = true ORDER BY created_at DESC",
		supplierID)
	return products, err
}

// CountProductsBySupplier counts products referencing a supplier
func (s *Store) CountProductsBySupplier(ctx context.Context, supplierID string) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM products WHERE supplier_id = $1", supplierID)
	return count, err
}

// UpdateProduct applies a partial update to a product
func (s *Store) UpdateProduct(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error) {
	if len(fields) == 0 {
		return s.GetProductByID(ctx, id)
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

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING *",
		strings.Join(setClauses, ", "), i)

	var product models.Product
	err := s.db.GetContext(ctx, &product, query, args...)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("product", id)
	}
	if err != nil {
		return nil, mapWriteErr(err, "product SKU or barcode")
	}
	return &product, nil
}

// DeleteProduct removes a product
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("product", id)
	}
	return nil
}

// AdjustProductStock applies a quantity delta in one atomic statement.
// Subtraction clamps at zero.
func (s *Store) AdjustProductStock(ctx context.Context, productID string, delta int, direction string) (*models.Product, error) {
	return adjustProductStock(ctx, s.db, productID, delta, direction)
}

// AdjustProductStockTx is AdjustProductStock inside an existing transaction
func (s *Store) AdjustProductStockTx(ctx context.Context, tx *sqlx.Tx, productID string, delta int, direction string) (*models.Product, error) {
	return adjustProductStock(ctx, tx, productID, delta, direction)
}

func adjustProductStock(ctx context.Context, q sqlx.QueryerContext, productID string, delta int, direction string) (*models.Product, error) {
	query := subtractStockSQL
	if direction == models.StockAdd {
		query = addStockSQL
	}

	var product models.Product
	err := sqlx.GetContext(ctx, q, &product, query, delta, productID)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("product", productID)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}
