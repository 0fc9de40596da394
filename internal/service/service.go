package service

import (
	"context"
	"time"

	"franchise-service/internal/models"
)

// Notifier is the outbound notification channel. Sends are fire-and-forget;
// no delivery confirmation is consumed.
type Notifier interface {
	Send(ctx context.Context, customer *models.CustomerProfile, message string) error
	AlertManager(ctx context.Context, message string) error
}

// ProfileCache is a read-through cache in front of the customer ledger
type ProfileCache interface {
	CacheProfile(ctx context.Context, profile *models.CustomerProfile) error
	CachedProfile(ctx context.Context, customerID string) (*models.CustomerProfile, error)
}

// TransactionSource supplies sales rows for reporting and forecasting
type TransactionSource interface {
	TransactionsForPeriod(ctx context.Context, storeID, period string) ([]models.Transaction, error)
	HistoricalSales(ctx context.Context, storeID string, days int) ([]models.Transaction, error)
}

// TransactionRecorder records purchase events as sales rows
type TransactionRecorder interface {
	CreateTransaction(ctx context.Context, t *models.Transaction) error
}

// ReportSink persists generated reports
type ReportSink interface {
	SaveReport(ctx context.Context, report *models.SalesReport) error
}

// RunLocker provides an advisory lock around campaign runs
type RunLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}
