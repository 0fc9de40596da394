package ledger

import (
	"context"
	"testing"
	"time"

	"franchise-service/internal/bridge"
	"franchise-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile(id string) *models.CustomerProfile {
	return &models.CustomerProfile{
		ID:            id,
		Name:          "Nguyen Van A",
		Phone:         "+84901234567",
		Email:         "nguyen@example.com",
		FavoriteItem:  "Taro Milk Tea",
		SignupDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		LoyaltyPoints: 100,
		Status:        models.CustomerStatusActive,
	}
}

// scriptedInvoker returns a canned result per tool and records the last params
type scriptedInvoker struct {
	results    map[string]bridge.Result
	lastTool   string
	lastParams map[string]any
}

func newScriptedInvoker() *scriptedInvoker {
	return &scriptedInvoker{results: make(map[string]bridge.Result)}
}

func (s *scriptedInvoker) Invoke(_ context.Context, tool string, params map[string]any) bridge.Result {
	s.lastTool = tool
	s.lastParams = params
	if res, ok := s.results[tool]; ok {
		res.Tool = tool
		return res
	}
	return bridge.Result{Tool: tool, Data: map[string]any{}}
}

func TestSheetCreateCustomer(t *testing.T) {
	invoker := newScriptedInvoker()
	sheet := NewSheet(invoker)

	err := sheet.CreateCustomer(context.Background(), sampleProfile("CUST-0A1B2C3D"))
	require.NoError(t, err)

	assert.Equal(t, bridge.ToolSheetRowCreate, invoker.lastTool)
	assert.Equal(t, "Customer Database", invoker.lastParams["spreadsheet"])
	assert.Equal(t, "Customers", invoker.lastParams["worksheet"])
}

func TestSheetCreateCustomerFailure(t *testing.T) {
	invoker := newScriptedInvoker()
	invoker.results[bridge.ToolSheetRowCreate] = bridge.Result{Err: "quota exceeded"}
	sheet := NewSheet(invoker)

	err := sheet.CreateCustomer(context.Background(), sampleProfile("CUST-0A1B2C3D"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSheetUpdateCustomerKeysByID(t *testing.T) {
	invoker := newScriptedInvoker()
	sheet := NewSheet(invoker)

	err := sheet.UpdateCustomer(context.Background(), sampleProfile("CUST-11223344"))
	require.NoError(t, err)

	assert.Equal(t, bridge.ToolSheetRowUpdate, invoker.lastTool)
	assert.Equal(t, "CUST-11223344", invoker.lastParams["key"])
}

func TestSheetGetCustomer(t *testing.T) {
	invoker := newScriptedInvoker()
	invoker.results[bridge.ToolSheetRowQuery] = bridge.Result{Data: map[string]any{
		"rows": []any{map[string]any{
			"id":             "CUST-0A1B2C3D",
			"name":           "Nguyen Van A",
			"loyalty_points": 112,
		}},
	}}
	sheet := NewSheet(invoker)

	c, err := sheet.GetCustomer(context.Background(), "CUST-0A1B2C3D")
	require.NoError(t, err)

	assert.Equal(t, "CUST-0A1B2C3D", c.ID)
	assert.Equal(t, "Nguyen Van A", c.Name)
	assert.Equal(t, 112, c.LoyaltyPoints)
}

func TestSheetGetCustomerNotFound(t *testing.T) {
	invoker := newScriptedInvoker()
	invoker.results[bridge.ToolSheetRowQuery] = bridge.Result{Data: map[string]any{"rows": []any{}}}
	sheet := NewSheet(invoker)

	_, err := sheet.GetCustomer(context.Background(), "CUST-DEADBEEF")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSheetQueryMissingRowsIsEmpty(t *testing.T) {
	invoker := newScriptedInvoker()
	sheet := NewSheet(invoker)

	customers, err := sheet.InactiveCustomers(context.Background(), 30)
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.Equal(t, "inactive", invoker.lastParams["filter"])
	assert.Equal(t, 30, invoker.lastParams["days"])
}

func TestSheetBirthdayCustomersParams(t *testing.T) {
	invoker := newScriptedInvoker()
	sheet := NewSheet(invoker)

	day := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	_, err := sheet.BirthdayCustomers(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "birthday", invoker.lastParams["filter"])
	assert.Equal(t, 8, invoker.lastParams["month"])
	assert.Equal(t, 31, invoker.lastParams["day"])
}

func TestSheetQueryFailure(t *testing.T) {
	invoker := newScriptedInvoker()
	invoker.results[bridge.ToolSheetRowQuery] = bridge.Result{Err: "sheet offline"}
	sheet := NewSheet(invoker)

	_, err := sheet.RecentCustomers(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sheet offline")
}
