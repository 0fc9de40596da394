package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"franchise-service/internal/models"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageFor(t *testing.T, event any) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: value}
}

func TestEventHandlerRoutesMessageQueued(t *testing.T) {
	handler := NewEventHandler()

	var got *models.MessageQueuedEvent
	handler.OnMessageQueued(func(_ context.Context, e *models.MessageQueuedEvent) error {
		got = e
		return nil
	})

	event := &models.MessageQueuedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-1",
			EventType: models.EventTypeMessageQueued,
			Timestamp: time.Now(),
		},
		CustomerID:   "CUST-0A1B2C3D",
		CustomerName: "Nguyen Van A",
		Message:      "We miss you!",
	}

	err := handler.HandleMessage(context.Background(), messageFor(t, event))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "CUST-0A1B2C3D", got.CustomerID)
	assert.Equal(t, "We miss you!", got.Message)
}

func TestEventHandlerRoutesManagerAlert(t *testing.T) {
	handler := NewEventHandler()

	var got *models.ManagerAlertEvent
	handler.OnManagerAlert(func(_ context.Context, e *models.ManagerAlertEvent) error {
		got = e
		return nil
	})

	event := &models.ManagerAlertEvent{
		BaseEvent: models.BaseEvent{
			EventID:   "evt-2",
			EventType: models.EventTypeManagerAlert,
			Timestamp: time.Now(),
		},
		Message: "Negative feedback detected: cold tea",
	}

	err := handler.HandleMessage(context.Background(), messageFor(t, event))
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Contains(t, got.Message, "cold tea")
}

func TestEventHandlerIgnoresUnknownType(t *testing.T) {
	handler := NewEventHandler()

	called := false
	handler.OnMessageQueued(func(context.Context, *models.MessageQueuedEvent) error {
		called = true
		return nil
	})

	event := &models.BaseEvent{
		EventID:   "evt-3",
		EventType: "SOMETHING_ELSE",
		Timestamp: time.Now(),
	}

	err := handler.HandleMessage(context.Background(), messageFor(t, event))
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestEventHandlerMalformedPayload(t *testing.T) {
	handler := NewEventHandler()

	err := handler.HandleMessage(context.Background(), kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}
