package worker

import (
	"context"
	"fmt"
	"log"

	"franchise-service/internal/bridge"
	"franchise-service/internal/broker"
	"franchise-service/internal/models"
	"franchise-service/internal/util"
)

// NotificationWorker consumes queued notification events and delivers them
// through the tool bridge. Delivery failures are logged only; no confirmation
// is surfaced to the code that queued the message.
type NotificationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	invoker      bridge.Invoker
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(consumer *broker.Consumer, invoker bridge.Invoker) *NotificationWorker {
	w := &NotificationWorker{
		consumer: consumer,
		invoker:  invoker,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnMessageQueued(w.deliverMessage)
	eventHandler.OnManagerAlert(w.deliverAlert)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *NotificationWorker) Start(ctx context.Context) error {
	log.Println("Starting notification worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *NotificationWorker) Stop() error {
	log.Println("Stopping notification worker...")
	return w.consumer.Close()
}

func (w *NotificationWorker) deliverMessage(ctx context.Context, event *models.MessageQueuedEvent) error {
	res := w.invoker.Invoke(ctx, bridge.ToolMessageSend, map[string]any{
		"recipient": event.CustomerName,
		"phone":     event.CustomerPhone,
		"email":     event.CustomerEmail,
		"message":   event.Message,
	})
	if res.Failed() {
		util.NotificationsDeliveredTotal.WithLabelValues("message", "error").Inc()
		return fmt.Errorf("message delivery failed for customer %s: %s", event.CustomerID, res.Err)
	}

	util.NotificationsDeliveredTotal.WithLabelValues("message", "ok").Inc()
	return nil
}

func (w *NotificationWorker) deliverAlert(ctx context.Context, event *models.ManagerAlertEvent) error {
	res := w.invoker.Invoke(ctx, bridge.ToolManagerAlert, map[string]any{
		"message": event.Message,
	})
	if res.Failed() {
		util.NotificationsDeliveredTotal.WithLabelValues("alert", "error").Inc()
		return fmt.Errorf("manager alert delivery failed: %s", res.Err)
	}

	util.NotificationsDeliveredTotal.WithLabelValues("alert", "ok").Inc()
	return nil
}
