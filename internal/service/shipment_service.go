package service

import (
	"context"
	"time"

	"inventory-service/internal/apperror"
	"inventory-service/internal/broker"
	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ShipmentService manages the daily shipment log. Shipments snapshot the
// customer identity at creation time and are independent of transactions.
type ShipmentService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewShipmentService creates a new shipment service
func NewShipmentService(store *store.Store, eventPublisher *broker.EventPublisher) *ShipmentService {
	return &ShipmentService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateShipmentRequest carries a new shipment log entry
type CreateShipmentRequest struct {
	CustomerName string  `json:"customerName" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Phone        *string `json:"phone"`
	Status       string  `json:"status"`
}

// CreateShipment records a shipment
func (s *ShipmentService) CreateShipment(ctx context.Context, req *CreateShipmentRequest) (*models.Shipment, error) {
	if req.CustomerName == "" || req.Address == "" {
		return nil, apperror.ValidationFields("invalid shipment data",
			map[string]string{"customerName": "is required", "address": "is required"})
	}

	status := req.Status
	if status == "" {
		status = models.ShipmentStatusUnpaid
	}
	if status != models.ShipmentStatusPaid && status != models.ShipmentStatusUnpaid {
		return nil, apperror.ValidationFields("invalid shipment data",
			map[string]string{"status": "must be paid or unpaid"})
	}

	shipment := &models.Shipment{
		CustomerName: req.CustomerName,
		Address:      req.Address,
		Phone:        req.Phone,
		Status:       status,
		CreatedAt:    time.Now(),
	}
	if err := s.store.CreateShipment(ctx, shipment); err != nil {
		return nil, err
	}

	event := &models.ShipmentCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeShipmentCreated,
			Timestamp: time.Now(),
		},
		ShipmentID:   shipment.ID,
		CustomerName: shipment.CustomerName,
		Status:       shipment.Status,
	}
	if err := s.eventPublisher.PublishShipmentCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ShipmentCreated event", zap.Error(err))
	}

	return shipment, nil
}

// GetShipments lists shipments, newest first
func (s *ShipmentService) GetShipments(ctx context.Context) ([]models.Shipment, error) {
	return s.store.GetShipments(ctx)
}

// UpdateShipmentStatus flips a shipment between paid and unpaid
func (s *ShipmentService) UpdateShipmentStatus(ctx context.Context, id, status string) (*models.Shipment, error) {
	if status != models.ShipmentStatusPaid && status != models.ShipmentStatusUnpaid {
		return nil, apperror.ValidationFields("invalid shipment data",
			map[string]string{"status": "must be paid or unpaid"})
	}
	return s.store.UpdateShipmentStatus(ctx, id, status)
}

// DeleteShipment removes a shipment
func (s *ShipmentService) DeleteShipment(ctx context.Context, id string) error {
	return s.store.DeleteShipment(ctx, id)
}
