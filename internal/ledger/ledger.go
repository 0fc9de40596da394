// Package ledger defines the customer-record store contract. The orchestration
// layer only sees this interface; the concrete backing (Postgres or the
// external spreadsheet reached through the tool bridge) is chosen at wiring
// time.
package ledger

import (
	"context"
	"time"

	"franchise-service/internal/models"
)

// Ledger is the customer-record collaborator
type Ledger interface {
	CreateCustomer(ctx context.Context, c *models.CustomerProfile) error
	UpdateCustomer(ctx context.Context, c *models.CustomerProfile) error
	GetCustomer(ctx context.Context, id string) (*models.CustomerProfile, error)
	InactiveCustomers(ctx context.Context, days int) ([]models.CustomerProfile, error)
	BirthdayCustomers(ctx context.Context, day time.Time) ([]models.CustomerProfile, error)
	RecentCustomers(ctx context.Context, days int) ([]models.CustomerProfile, error)
}
