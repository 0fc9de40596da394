package models

import "time"

// Event types
const (
	EventTypeMessageQueued = "MESSAGE_QUEUED"
	EventTypeManagerAlert  = "MANAGER_ALERT"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageQueuedEvent is published when a customer message is queued for delivery
type MessageQueuedEvent struct {
	BaseEvent
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Message       string `json:"message"`
	Source        string `json:"source,omitempty"`
}

// ManagerAlertEvent is published when an operational alert must reach a manager
type ManagerAlertEvent struct {
	BaseEvent
	Message string `json:"message"`
}
