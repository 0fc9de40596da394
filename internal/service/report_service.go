package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"franchise-service/config"
	"franchise-service/internal/bridge"
	"franchise-service/internal/models"
	"franchise-service/internal/util"

	"go.uber.org/zap"
)

// ReportService produces sales analytics and inventory forecasts
type ReportService struct {
	sales   TransactionSource
	reports ReportSink
	invoker bridge.Invoker
	cfg     config.AnalyticsConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService creates a new report service. reports may be nil when no
// report sink is wired.
func NewReportService(
	sales TransactionSource,
	reports ReportSink,
	invoker bridge.Invoker,
	cfg config.AnalyticsConfig,
) *ReportService {
	return &ReportService{
		sales:   sales,
		reports: reports,
		invoker: invoker,
		cfg:     cfg,
		logger:  util.GetLogger(),
		now:     time.Now,
	}
}

// GenerateSalesReport aggregates a period's transactions into a summary and
// persists it. Persistence is fire-and-forget; the report is returned either
// way.
func (rs *ReportService) GenerateSalesReport(ctx context.Context, storeID, period string) (*models.SalesReport, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.GenerateSalesReport")
	defer span.End()

	txns, err := rs.sales.TransactionsForPeriod(ctx, storeID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sales data: %w", err)
	}

	report := &models.SalesReport{
		StoreID:     storeID,
		Period:      period,
		GeneratedAt: rs.now(),
		Metrics:     computeMetrics(txns, rs.cfg.TopItemCount, rs.cfg.PeakHourCount),
	}

	if rs.reports != nil {
		if err := rs.reports.SaveReport(ctx, report); err != nil {
			util.LedgerWriteFailuresTotal.WithLabelValues("report").Inc()
			rs.logger.Error("Failed to persist report",
				zap.String("store_id", storeID),
				zap.String("period", period),
				zap.Error(err))
		}
	}

	util.ReportsGeneratedTotal.WithLabelValues(period).Inc()
	rs.logger.Info("Sales report generated",
		zap.String("store_id", storeID),
		zap.String("period", period),
		zap.Float64("revenue", report.Metrics.TotalRevenue),
		zap.Int("transactions", report.Metrics.TotalTransactions))

	return report, nil
}

// computeMetrics derives the full metrics block from raw transactions
func computeMetrics(txns []models.Transaction, topItems, peakHours int) models.ReportMetrics {
	metrics := models.ReportMetrics{
		TotalTransactions: len(txns),
		TopSellingItems:   rankItems(txns, topItems),
		PeakHours:         rankHours(txns, peakHours),
	}

	loyaltyCount := 0
	for _, t := range txns {
		metrics.TotalRevenue += t.Amount
		if t.CustomerID != "" {
			loyaltyCount++
		}
	}

	// Average is defined as zero when there are no transactions.
	if metrics.TotalTransactions > 0 {
		metrics.AverageTransaction = metrics.TotalRevenue / float64(metrics.TotalTransactions)
		metrics.LoyaltyMemberShare = float64(loyaltyCount) / float64(metrics.TotalTransactions) * 100
	}

	return metrics
}

// rankItems counts item occurrences across all transactions and returns the
// top n by quantity, ties broken by name
func rankItems(txns []models.Transaction, n int) []models.ItemRank {
	counts := make(map[string]int)
	for _, t := range txns {
		for _, item := range t.Items {
			counts[item]++
		}
	}

	ranking := make([]models.ItemRank, 0, len(counts))
	for item, qty := range counts {
		ranking = append(ranking, models.ItemRank{Item: item, Quantity: qty})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Quantity != ranking[j].Quantity {
			return ranking[i].Quantity > ranking[j].Quantity
		}
		return ranking[i].Item < ranking[j].Item
	})

	if len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// rankHours buckets transactions by hour of day and returns the n busiest
// buckets, ties broken by earlier hour
func rankHours(txns []models.Transaction, n int) []models.HourBucket {
	counts := make(map[int]int)
	for _, t := range txns {
		counts[t.OccurredAt.Hour()]++
	}

	buckets := make([]models.HourBucket, 0, len(counts))
	for hour, c := range counts {
		buckets = append(buckets, models.HourBucket{Hour: hour, Transactions: c})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Transactions != buckets[j].Transactions {
			return buckets[i].Transactions > buckets[j].Transactions
		}
		return buckets[i].Hour < buckets[j].Hour
	})

	if len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

// PredictInventoryNeeds requests a demand forecast over historical sales and
// derives reorder alerts for categories whose projected demand crosses the
// configured threshold.
func (rs *ReportService) PredictInventoryNeeds(ctx context.Context, storeID string, daysAhead int) (*models.InventoryForecast, error) {
	ctx, span := util.StartSpan(ctx, "ReportService.PredictInventoryNeeds")
	defer span.End()

	history, err := rs.sales.HistoricalSales(ctx, storeID, rs.cfg.ForecastHistoryDays)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch historical sales: %w", err)
	}

	res := rs.invoker.Invoke(ctx, bridge.ToolForecast, map[string]any{
		"store_id":   storeID,
		"days_ahead": daysAhead,
		"history":    history,
	})
	if res.Failed() {
		return nil, fmt.Errorf("forecast failed: %s", res.Err)
	}

	predictions := parsePredictions(res.Data)

	forecast := &models.InventoryForecast{
		StoreID:       storeID,
		ForecastDays:  daysAhead,
		GeneratedAt:   rs.now(),
		Predictions:   predictions,
		ReorderAlerts: rs.reorderAlerts(predictions, daysAhead),
	}

	util.ForecastsGeneratedTotal.Inc()
	rs.logger.Info("Inventory forecast generated",
		zap.String("store_id", storeID),
		zap.Int("days_ahead", daysAhead),
		zap.Int("categories", len(predictions)))

	return forecast, nil
}

// parsePredictions reads the per-category demand map out of a loosely-typed
// forecast payload
func parsePredictions(data map[string]any) map[string]float64 {
	predictions := make(map[string]float64)

	raw, ok := data["predictions"].(map[string]any)
	if !ok {
		return predictions
	}

	for category, v := range raw {
		switch qty := v.(type) {
		case float64:
			predictions[category] = qty
		case int:
			predictions[category] = float64(qty)
		}
	}
	return predictions
}

// reorderAlerts returns one advisory per category whose projected demand
// meets the reorder threshold, highest demand first
func (rs *ReportService) reorderAlerts(predictions map[string]float64, daysAhead int) []string {
	type entry struct {
		category string
		demand   float64
	}

	flagged := make([]entry, 0, len(predictions))
	for category, demand := range predictions {
		if demand >= rs.cfg.ReorderThreshold {
			flagged = append(flagged, entry{category, demand})
		}
	}

	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].demand != flagged[j].demand {
			return flagged[i].demand > flagged[j].demand
		}
		return flagged[i].category < flagged[j].category
	})

	alerts := make([]string, 0, len(flagged))
	for _, e := range flagged {
		alerts = append(alerts, fmt.Sprintf("Reorder %s: projected demand %.0f over %d days",
			e.category, e.demand, daysAhead))
	}
	return alerts
}
