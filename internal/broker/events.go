package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"franchise-service/internal/models"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing notification events. It is the outbound
// notification channel: sends are fire-and-forget and no delivery confirmation
// flows back to the caller.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// Send queues a customer message for delivery
func (ep *EventPublisher) Send(ctx context.Context, customer *models.CustomerProfile, message string) error {
	event := &models.MessageQueuedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeMessageQueued,
			Timestamp: time.Now(),
		},
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		CustomerEmail: customer.Email,
		Message:       message,
	}

	key := fmt.Sprintf("customer-%s", customer.ID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// AlertManager queues an operational alert for the store manager
func (ep *EventPublisher) AlertManager(ctx context.Context, message string) error {
	event := &models.ManagerAlertEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeManagerAlert,
			Timestamp: time.Now(),
		},
		Message: message,
	}

	return ep.producer.PublishEvent(ctx, "manager-alerts", event)
}

// EventHandler handles incoming notification events
type EventHandler struct {
	onMessageQueued func(context.Context, *models.MessageQueuedEvent) error
	onManagerAlert  func(context.Context, *models.ManagerAlertEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnMessageQueued registers a handler for MessageQueued events
func (eh *EventHandler) OnMessageQueued(handler func(context.Context, *models.MessageQueuedEvent) error) {
	eh.onMessageQueued = handler
}

// OnManagerAlert registers a handler for ManagerAlert events
func (eh *EventHandler) OnManagerAlert(handler func(context.Context, *models.ManagerAlertEvent) error) {
	eh.onManagerAlert = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeMessageQueued:
		if eh.onMessageQueued != nil {
			var event models.MessageQueuedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal MessageQueued event: %w", err)
			}
			return eh.onMessageQueued(ctx, &event)
		}

	case models.EventTypeManagerAlert:
		if eh.onManagerAlert != nil {
			var event models.ManagerAlertEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ManagerAlert event: %w", err)
			}
			return eh.onManagerAlert(ctx, &event)
		}

	default:
		log.Printf("Unhandled event type: %s", baseEvent.EventType)
	}

	return nil
}
