package store

import (
	"context"
	"database/sql"

	"inventory-service/internal/apperror"
	"inventory-service/internal/models"

	"github.com/google/uuid"
)

// CreateShipment inserts a shipment log entry
func (s *Store) CreateShipment(ctx context.Context, sh *models.Shipment) error {
	if sh.ID == "" {
		sh.ID = uuid.NewString()
	}

	query := `
		INSERT INTO shipments (id, customer_name, address, phone, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`

	return s.db.GetContext(ctx, sh, query,
		sh.ID, sh.CustomerName, sh.Address, sh.Phone, sh.Status, sh.CreatedAt)
}

// GetShipments retrieves all shipments, newest first
func (s *Store) GetShipments(ctx context.Context) ([]models.Shipment, error) {
	shipments := []models.Shipment{}
	err := s.db.SelectContext(ctx, &shipments,
		"SELECT * FROM shipments ORDER BY created_at DESC")
	return shipments, err
}

// UpdateShipmentStatus updates a shipment's status
func (s *Store) UpdateShipmentStatus(ctx context.Context, id, status string) (*models.Shipment, error) {
	var shipment models.Shipment
	err := s.db.GetContext(ctx, &shipment,
		"UPDATE shipments SET status = $1 WHERE id = $2 RETURNING *", status, id)
	if err == sql.ErrNoRows {
		return nil, apperror.NotFound("shipment", id)
	}
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// DeleteShipment removes a shipment
func (s *Store) DeleteShipment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM shipments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NotFound("shipment", id)
	}
	return nil
}
