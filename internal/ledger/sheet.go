package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"franchise-service/internal/bridge"
	"franchise-service/internal/models"
)

const (
	customerSpreadsheet = "Customer Database"
	customerWorksheet   = "Customers"
)

// Sheet is a Ledger backed by the external spreadsheet tools exposed through
// the bridge. Row shapes are opaque to the gateway; this side only reads back
// the "rows" field of query results.
type Sheet struct {
	invoker bridge.Invoker
}

// NewSheet creates a spreadsheet-backed ledger
func NewSheet(invoker bridge.Invoker) *Sheet {
	return &Sheet{invoker: invoker}
}

// CreateCustomer appends a customer row
func (s *Sheet) CreateCustomer(ctx context.Context, c *models.CustomerProfile) error {
	res := s.invoker.Invoke(ctx, bridge.ToolSheetRowCreate, map[string]any{
		"spreadsheet": customerSpreadsheet,
		"worksheet":   customerWorksheet,
		"row":         c,
	})
	if res.Failed() {
		return fmt.Errorf("sheet create failed: %s", res.Err)
	}
	return nil
}

// UpdateCustomer rewrites the row keyed by the customer ID
func (s *Sheet) UpdateCustomer(ctx context.Context, c *models.CustomerProfile) error {
	res := s.invoker.Invoke(ctx, bridge.ToolSheetRowUpdate, map[string]any{
		"spreadsheet": customerSpreadsheet,
		"worksheet":   customerWorksheet,
		"key":         c.ID,
		"row":         c,
	})
	if res.Failed() {
		return fmt.Errorf("sheet update failed: %s", res.Err)
	}
	return nil
}

// GetCustomer looks up a single row by customer ID
func (s *Sheet) GetCustomer(ctx context.Context, id string) (*models.CustomerProfile, error) {
	customers, err := s.query(ctx, map[string]any{"key": id})
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, fmt.Errorf("customer not found: %s", id)
	}
	return &customers[0], nil
}

// InactiveCustomers queries rows with no visit in the given window
func (s *Sheet) InactiveCustomers(ctx context.Context, days int) ([]models.CustomerProfile, error) {
	return s.query(ctx, map[string]any{"filter": "inactive", "days": days})
}

// BirthdayCustomers queries rows whose birthday matches the given day
func (s *Sheet) BirthdayCustomers(ctx context.Context, day time.Time) ([]models.CustomerProfile, error) {
	return s.query(ctx, map[string]any{
		"filter": "birthday",
		"month":  int(day.Month()),
		"day":    day.Day(),
	})
}

// RecentCustomers queries rows with a visit inside the given window
func (s *Sheet) RecentCustomers(ctx context.Context, days int) ([]models.CustomerProfile, error) {
	return s.query(ctx, map[string]any{"filter": "recent", "days": days})
}

func (s *Sheet) query(ctx context.Context, params map[string]any) ([]models.CustomerProfile, error) {
	params["spreadsheet"] = customerSpreadsheet
	params["worksheet"] = customerWorksheet

	res := s.invoker.Invoke(ctx, bridge.ToolSheetRowQuery, params)
	if res.Failed() {
		return nil, fmt.Errorf("sheet query failed: %s", res.Err)
	}

	rows, ok := res.Data["rows"]
	if !ok {
		return []models.CustomerProfile{}, nil
	}

	// Rows come back as loosely-typed JSON; round-trip into profiles.
	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode sheet rows: %w", err)
	}

	var customers []models.CustomerProfile
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, fmt.Errorf("decode sheet rows: %w", err)
	}
	return customers, nil
}
