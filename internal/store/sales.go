package store

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"franchise-service/internal/models"
)

// TransactionsForPeriod retrieves the sales rows for a store over a period tag
func (s *Store) TransactionsForPeriod(ctx context.Context, storeID, period string) ([]models.Transaction, error) {
	since := periodWindow(period, time.Now())

	var txns []models.Transaction
	err := s.db.SelectContext(ctx, &txns, `
		SELECT * FROM transactions
		WHERE store_id = $1 AND occurred_at >= $2
		ORDER BY occurred_at`,
		storeID, since)
	if err != nil {
		return nil, err
	}

	for i := range txns {
		txns[i].Items = splitItems(txns[i].ItemsRaw)
	}
	return txns, nil
}

// HistoricalSales retrieves the trailing sales rows used for forecasting
func (s *Store) HistoricalSales(ctx context.Context, storeID string, days int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := s.db.SelectContext(ctx, &txns, `
		SELECT * FROM transactions
		WHERE store_id = $1 AND occurred_at >= NOW() - make_interval(days => $2)
		ORDER BY occurred_at`,
		storeID, days)
	if err != nil {
		return nil, err
	}

	for i := range txns {
		txns[i].Items = splitItems(txns[i].ItemsRaw)
	}
	return txns, nil
}

// CreateTransaction inserts a sales row, normally written on purchase tracking
func (s *Store) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	query := `
		INSERT INTO transactions (store_id, customer_id, items, amount, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return s.db.GetContext(ctx, &t.ID, query,
		t.StoreID, t.CustomerID, strings.Join(t.Items, ","), t.Amount, t.OccurredAt)
}

// SaveReport appends a generated report keyed by store and period
func (s *Store) SaveReport(ctx context.Context, report *models.SalesReport) error {
	metrics, err := json.Marshal(report.Metrics)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sales_reports (store_id, period, generated_at, metrics)
		VALUES ($1, $2, $3, $4)`,
		report.StoreID, report.Period, report.GeneratedAt, metrics)
	return err
}

func splitItems(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
