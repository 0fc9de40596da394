package service

import (
	"context"
	"fmt"

	"franchise-service/internal/bridge"
	"franchise-service/internal/models"
)

// BridgeNotifier delivers notifications synchronously through the tool bridge.
// Used where no broker is wired, e.g. the demo entry point.
type BridgeNotifier struct {
	invoker bridge.Invoker
}

// NewBridgeNotifier creates a bridge-backed notifier
func NewBridgeNotifier(invoker bridge.Invoker) *BridgeNotifier {
	return &BridgeNotifier{invoker: invoker}
}

// Send delivers a customer message via the message-send tool
func (n *BridgeNotifier) Send(ctx context.Context, customer *models.CustomerProfile, message string) error {
	res := n.invoker.Invoke(ctx, bridge.ToolMessageSend, map[string]any{
		"recipient": customer.Name,
		"phone":     customer.Phone,
		"email":     customer.Email,
		"message":   message,
	})
	if res.Failed() {
		return fmt.Errorf("send to %s failed: %s", customer.ID, res.Err)
	}
	return nil
}

// AlertManager delivers an operational alert via the manager-alert tool
func (n *BridgeNotifier) AlertManager(ctx context.Context, message string) error {
	res := n.invoker.Invoke(ctx, bridge.ToolManagerAlert, map[string]any{
		"message": message,
	})
	if res.Failed() {
		return fmt.Errorf("manager alert failed: %s", res.Err)
	}
	return nil
}
