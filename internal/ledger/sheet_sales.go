package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"franchise-service/internal/bridge"
	"franchise-service/internal/models"
)

const (
	salesSpreadsheet = "Sales Database"
	salesWorksheet   = "Transactions"
	reportWorksheet  = "Sales Reports"
)

// SheetSales reads sales rows and appends reports through the spreadsheet
// tools. It backs reporting and forecasting in deployments without a SQL
// store.
type SheetSales struct {
	invoker bridge.Invoker
}

// NewSheetSales creates a spreadsheet-backed sales source and report sink
func NewSheetSales(invoker bridge.Invoker) *SheetSales {
	return &SheetSales{invoker: invoker}
}

// TransactionsForPeriod queries the sales rows for a store over a period tag
func (s *SheetSales) TransactionsForPeriod(ctx context.Context, storeID, period string) ([]models.Transaction, error) {
	return s.query(ctx, map[string]any{
		"store_id": storeID,
		"period":   period,
	})
}

// HistoricalSales queries the trailing sales rows used for forecasting
func (s *SheetSales) HistoricalSales(ctx context.Context, storeID string, days int) ([]models.Transaction, error) {
	return s.query(ctx, map[string]any{
		"store_id": storeID,
		"days":     days,
	})
}

// SaveReport appends a generated report row
func (s *SheetSales) SaveReport(ctx context.Context, report *models.SalesReport) error {
	res := s.invoker.Invoke(ctx, bridge.ToolSheetRowCreate, map[string]any{
		"spreadsheet": salesSpreadsheet,
		"worksheet":   reportWorksheet,
		"row":         report,
	})
	if res.Failed() {
		return fmt.Errorf("report append failed: %s", res.Err)
	}
	return nil
}

func (s *SheetSales) query(ctx context.Context, params map[string]any) ([]models.Transaction, error) {
	params["spreadsheet"] = salesSpreadsheet
	params["worksheet"] = salesWorksheet

	res := s.invoker.Invoke(ctx, bridge.ToolSheetRowQuery, params)
	if res.Failed() {
		return nil, fmt.Errorf("sales query failed: %s", res.Err)
	}

	rows, ok := res.Data["rows"]
	if !ok {
		return []models.Transaction{}, nil
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode sales rows: %w", err)
	}

	var txns []models.Transaction
	if err := json.Unmarshal(raw, &txns); err != nil {
		return nil, fmt.Errorf("decode sales rows: %w", err)
	}
	return txns, nil
}
