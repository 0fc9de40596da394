package service

import (
	"context"
	"fmt"
	"time"

	"franchise-service/internal/bridge"
	"franchise-service/internal/models"
)

// fakeInvoker scripts tool bridge responses per tool name and records calls
type fakeInvoker struct {
	calls    []string
	handlers map[string]func(params map[string]any) bridge.Result
}

func newFakeInvoker() *fakeInvoker {
	return &fakeInvoker{handlers: make(map[string]func(map[string]any) bridge.Result)}
}

func (f *fakeInvoker) on(tool string, handler func(map[string]any) bridge.Result) {
	f.handlers[tool] = handler
}

func (f *fakeInvoker) respond(tool string, data map[string]any) {
	f.on(tool, func(map[string]any) bridge.Result {
		return bridge.Result{Tool: tool, Data: data}
	})
}

func (f *fakeInvoker) fail(tool, msg string) {
	f.on(tool, func(map[string]any) bridge.Result {
		return bridge.Result{Tool: tool, Err: msg}
	})
}

func (f *fakeInvoker) Invoke(_ context.Context, tool string, params map[string]any) bridge.Result {
	f.calls = append(f.calls, tool)
	if handler, ok := f.handlers[tool]; ok {
		return handler(params)
	}
	return bridge.Result{Tool: tool, Err: fmt.Sprintf("no handler for tool %s", tool)}
}

// fakeLedger is an in-memory customer ledger
type fakeLedger struct {
	customers map[string]*models.CustomerProfile
	inactive  []models.CustomerProfile
	birthdays []models.CustomerProfile
	recent    []models.CustomerProfile

	createErr error
	updateErr error
	queryErr  error

	creates int
	updates int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{customers: make(map[string]*models.CustomerProfile)}
}

func (f *fakeLedger) CreateCustomer(_ context.Context, c *models.CustomerProfile) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	clone := *c
	f.customers[c.ID] = &clone
	return nil
}

func (f *fakeLedger) UpdateCustomer(_ context.Context, c *models.CustomerProfile) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	clone := *c
	f.customers[c.ID] = &clone
	return nil
}

func (f *fakeLedger) GetCustomer(_ context.Context, id string) (*models.CustomerProfile, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer not found: %s", id)
	}
	clone := *c
	return &clone, nil
}

func (f *fakeLedger) InactiveCustomers(context.Context, int) ([]models.CustomerProfile, error) {
	return f.inactive, f.queryErr
}

func (f *fakeLedger) BirthdayCustomers(context.Context, time.Time) ([]models.CustomerProfile, error) {
	return f.birthdays, f.queryErr
}

func (f *fakeLedger) RecentCustomers(context.Context, int) ([]models.CustomerProfile, error) {
	return f.recent, f.queryErr
}

// fakeNotifier records sends and can fail for selected customer names
type fakeNotifier struct {
	sent    []string // customer IDs
	texts   []string
	alerts  []string
	failFor map[string]bool
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: make(map[string]bool)}
}

func (f *fakeNotifier) Send(_ context.Context, customer *models.CustomerProfile, message string) error {
	if f.failFor[customer.ID] {
		return fmt.Errorf("delivery refused for %s", customer.ID)
	}
	f.sent = append(f.sent, customer.ID)
	f.texts = append(f.texts, message)
	return nil
}

func (f *fakeNotifier) AlertManager(_ context.Context, message string) error {
	f.alerts = append(f.alerts, message)
	return nil
}

// fakeSales is an in-memory transaction source and report sink
type fakeSales struct {
	txns     []models.Transaction
	history  []models.Transaction
	queryErr error

	savedReports []*models.SalesReport
	saveErr      error

	recorded []*models.Transaction
}

func (f *fakeSales) TransactionsForPeriod(context.Context, string, string) ([]models.Transaction, error) {
	return f.txns, f.queryErr
}

func (f *fakeSales) HistoricalSales(context.Context, string, int) ([]models.Transaction, error) {
	return f.history, f.queryErr
}

func (f *fakeSales) SaveReport(_ context.Context, report *models.SalesReport) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedReports = append(f.savedReports, report)
	return nil
}

func (f *fakeSales) CreateTransaction(_ context.Context, t *models.Transaction) error {
	f.recorded = append(f.recorded, t)
	return nil
}

// fakeLocker is an advisory lock that can be pre-held
type fakeLocker struct {
	held     bool
	acquired int
	released int
}

func (f *fakeLocker) AcquireLock(context.Context, string, time.Duration) (bool, error) {
	if f.held {
		return false, nil
	}
	f.held = true
	f.acquired++
	return true, nil
}

func (f *fakeLocker) ReleaseLock(context.Context, string) error {
	f.held = false
	f.released++
	return nil
}
