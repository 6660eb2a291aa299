package service

import (
	"context"
	"time"

	"inventory-service/config"
	"inventory-service/internal/apperror"
	"inventory-service/internal/codegen"
	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService manages products, customers and suppliers
type CatalogService struct {
	store  *store.Store
	cfg    config.BusinessConfig
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, cfg config.BusinessConfig) *CatalogService {
	return &CatalogService{
		store:  store,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// CreateProductRequest carries a new product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Description *string          `json:"description"`
	SKU         string           `json:"sku"`
	Barcode     *string          `json:"barcode"`
	Category    *string          `json:"category"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Currency    string           `json:"currency"`
	SupplierID  *string          `json:"supplierId"`
	Quantity    int              `json:"quantity"`
	MinQuantity *int             `json:"minQuantity"`
}

// CreateProduct creates a product, assigning a SKU when the client did not
// send one: supplier-linked products get the supplier's code plus a running
// sequence, the rest get a generated SKU.
func (s *CatalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.CreateProduct")
	defer span.End()

	if req.Name == "" {
		return nil, apperror.ValidationFields("invalid product data",
			map[string]string{"name": "is required"})
	}
	if req.Price.IsNegative() {
		return nil, apperror.ValidationFields("invalid product data",
			map[string]string{"price": "must not be negative"})
	}

	sku := req.SKU
	if sku == "" {
		generated, err := s.assignSKU(ctx, req)
		if err != nil {
			return nil, err
		}
		sku = generated
	}

	currency := req.Currency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	minQuantity := 5
	if req.MinQuantity != nil {
		minQuantity = *req.MinQuantity
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         sku,
		Barcode:     req.Barcode,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Currency:    currency,
		SupplierID:  req.SupplierID,
		Quantity:    req.Quantity,
		MinQuantity: minQuantity,
		IsActive:    true,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("sku", product.SKU))
	return product, nil
}

func (s *CatalogService) assignSKU(ctx context.Context, req *CreateProductRequest) (string, error) {
	if req.SupplierID != nil && *req.SupplierID != "" {
		supplier, err := s.store.GetSupplierByID(ctx, *req.SupplierID)
		if err != nil {
			return "", err
		}
		if supplier.SupplierCode != "" {
			count, err := s.store.CountProductsBySupplier(ctx, supplier.ID)
			if err != nil {
				return "", err
			}
			return codegen.SupplierProductCode(supplier.SupplierCode, count+1), nil
		}
	}
	return codegen.SKU(req.Name, time.Now()), nil
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProductByID(ctx, id)
}

// GetProductByBarcode retrieves a product by barcode or SKU
func (s *CatalogService) GetProductByBarcode(ctx context.Context, barcode string) (*models.Product, error) {
	return s.store.GetProductByBarcode(ctx, barcode)
}

// GetProducts lists products, optionally filtered
func (s *CatalogService) GetProducts(ctx context.Context, search string) ([]models.Product, error) {
	return s.store.GetProducts(ctx, search)
}

// GetLowStockProducts lists products at or below their reorder threshold
func (s *CatalogService) GetLowStockProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.GetLowStockProducts(ctx)
}

// UpdateProductRequest carries the patchable product fields
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	SKU         *string          `json:"sku"`
	Barcode     *string          `json:"barcode"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Currency    *string          `json:"currency"`
	SupplierID  *string          `json:"supplierId"`
	Quantity    *int             `json:"quantity"`
	MinQuantity *int             `json:"minQuantity"`
	IsActive    *bool            `json:"isActive"`
}

// UpdateProduct applies a partial update to a product
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, req *UpdateProductRequest) (*models.Product, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.SKU != nil {
		fields["sku"] = *req.SKU
	}
	if req.Barcode != nil {
		fields["barcode"] = *req.Barcode
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Cost != nil {
		fields["cost"] = *req.Cost
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}
	if req.SupplierID != nil {
		fields["supplier_id"] = *req.SupplierID
	}
	if req.Quantity != nil {
		fields["quantity"] = *req.Quantity
	}
	if req.MinQuantity != nil {
		fields["min_quantity"] = *req.MinQuantity
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return s.store.UpdateProduct(ctx, id, fields)
}

// DeleteProduct removes a product
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.store.DeleteProduct(ctx, id)
}

// GetProductSalesHistory assembles a product's sales history with totals
func (s *CatalogService) GetProductSalesHistory(ctx context.Context, productID string) (*models.ProductSalesHistory, error) {
	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		return nil, err
	}

	entries, err := s.store.GetProductSalesEntries(ctx, productID)
	if err != nil {
		return nil, err
	}

	history := &models.ProductSalesHistory{
		TotalSales:   len(entries),
		SalesHistory: entries,
	}
	for _, entry := range entries {
		history.TotalQuantitySold += entry.Quantity
	}
	return history, nil
}

// CreateCustomerRequest carries a new customer
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CreateCustomer creates a customer with a zero debt balance
func (s *CatalogService) CreateCustomer(ctx context.Context, req *CreateCustomerRequest) (*models.Customer, error) {
	if req.Name == "" {
		return nil, apperror.ValidationFields("invalid customer data",
			map[string]string{"name": "is required"})
	}

	customer := &models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		TotalDebt:    decimal.Zero,
		DebtCurrency: s.cfg.DefaultCurrency,
		IsActive:     true,
	}
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CatalogService) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.store.GetCustomerByID(ctx, id)
}

// GetCustomers lists customers, optionally filtered
func (s *CatalogService) GetCustomers(ctx context.Context, search string) ([]models.Customer, error) {
	return s.store.GetCustomers(ctx, search)
}

// UpdateCustomerRequest carries the patchable customer fields. Debt is not
// patchable here; balance changes go through the ledger.
type UpdateCustomerRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// UpdateCustomer applies a partial update to a customer
func (s *CatalogService) UpdateCustomer(ctx context.Context, id string, req *UpdateCustomerRequest) (*models.Customer, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return s.store.UpdateCustomer(ctx, id, fields)
}

// DeleteCustomer removes a customer
func (s *CatalogService) DeleteCustomer(ctx context.Context, id string) error {
	return s.store.DeleteCustomer(ctx, id)
}

// CreateSupplierRequest carries a new supplier
type CreateSupplierRequest struct {
	SupplierCode  string  `json:"supplierCode" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	TaxNumber     *string `json:"taxNumber"`
	PaymentTerms  *string `json:"paymentTerms"`
}

// CreateSupplier creates a supplier
func (s *CatalogService) CreateSupplier(ctx context.Context, req *CreateSupplierRequest) (*models.Supplier, error) {
	if req.Name == "" || req.SupplierCode == "" {
		return nil, apperror.ValidationFields("invalid supplier data",
			map[string]string{"name": "is required", "supplierCode": "is required"})
	}

	supplier := &models.Supplier{
		SupplierCode:  req.SupplierCode,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		TaxNumber:     req.TaxNumber,
		PaymentTerms:  req.PaymentTerms,
		IsActive:      true,
	}
	if err := s.store.CreateSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *CatalogService) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	return s.store.GetSupplierByID(ctx, id)
}

// GetSuppliers lists suppliers, optionally filtered
func (s *CatalogService) GetSuppliers(ctx context.Context, search string) ([]models.Supplier, error) {
	return s.store.GetSuppliers(ctx, search)
}

// GetSupplierProducts lists a supplier's active products
func (s *CatalogService) GetSupplierProducts(ctx context.Context, supplierID string) ([]models.Product, error) {
	if _, err := s.store.GetSupplierByID(ctx, supplierID); err != nil {
		return nil, err
	}
	return s.store.GetSupplierProducts(ctx, supplierID)
}

// UpdateSupplierRequest carries the patchable supplier fields
type UpdateSupplierRequest struct {
	SupplierCode  *string `json:"supplierCode"`
	Name          *string `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	TaxNumber     *string `json:"taxNumber"`
	PaymentTerms  *string `json:"paymentTerms"`
	IsActive      *bool   `json:"isActive"`
}

// UpdateSupplier applies a partial update to a supplier
func (s *CatalogService) UpdateSupplier(ctx context.Context, id string, req *UpdateSupplierRequest) (*models.Supplier, error) {
	fields := map[string]interface{}{}
	if req.SupplierCode != nil {
		fields["supplier_code"] = *req.SupplierCode
	}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.ContactPerson != nil {
		fields["contact_person"] = *req.ContactPerson
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.TaxNumber != nil {
		fields["tax_number"] = *req.TaxNumber
	}
	if req.PaymentTerms != nil {
		fields["payment_terms"] = *req.PaymentTerms
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	return s.store.UpdateSupplier(ctx, id, fields)
}

// DeleteSupplier removes a supplier and its products
func (s *CatalogService) DeleteSupplier(ctx context.Context, id string) error {
	s.logger.Info("Deleting supplier and its products", zap.String("supplier_id", id))
	return s.store.DeleteSupplier(ctx, id)
}
