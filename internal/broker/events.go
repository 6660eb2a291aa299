package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"inventory-service/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishTransactionCreated publishes TransactionCreated event
func (ep *EventPublisher) PublishTransactionCreated(ctx context.Context, event *models.TransactionCreatedEvent) error {
	key := fmt.Sprintf("transaction-%s", event.TransactionID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPaymentCollected publishes PaymentCollected event
func (ep *EventPublisher) PublishPaymentCollected(ctx context.Context, event *models.PaymentCollectedEvent) error {
	key := fmt.Sprintf("customer-%s", event.CustomerID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishShipmentCreated publishes ShipmentCreated event
func (ep *EventPublisher) PublishShipmentCreated(ctx context.Context, event *models.ShipmentCreatedEvent) error {
	key := fmt.Sprintf("shipment-%s", event.ShipmentID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler handles incoming events
type EventHandler struct {
	onTransactionCreated func(context.Context, *models.TransactionCreatedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnTransactionCreated registers a handler for TransactionCreated events
func (eh *EventHandler) OnTransactionCreated(handler func(context.Context, *models.TransactionCreatedEvent) error) {
	eh.onTransactionCreated = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeTransactionCreated:
		if eh.onTransactionCreated != nil {
			var event models.TransactionCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal TransactionCreated event: %w", err)
			}
			return eh.onTransactionCreated(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
