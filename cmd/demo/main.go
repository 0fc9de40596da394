// Command demo runs a fixed end-to-end sequence against the configured tool
// bridge: capture one sample customer, run all marketing campaigns, generate
// one sales report, and analyze one piece of feedback. It needs no database,
// Redis, or Kafka; the sheet-backed ledger and a synchronous bridge notifier
// stand in for the full deployment.
package main

import (
	"context"
	"fmt"
	"log"

	"franchise-service/config"
	"franchise-service/internal/bridge"
	"franchise-service/internal/ledger"
	"franchise-service/internal/models"
	"franchise-service/internal/service"
	"franchise-service/internal/util"
)

func main() {
	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	var invoker bridge.Invoker
	if cfg.Bridge.Mode == "exec" {
		invoker = bridge.NewExecBridge(cfg.Bridge.Binary, cfg.Bridge.Server, cfg.Bridge.Timeout)
	} else {
		invoker = bridge.NewHTTPBridge(cfg.Bridge.URL, cfg.Bridge.Token, cfg.Bridge.Timeout)
	}

	sheet := ledger.NewSheet(invoker)
	sales := ledger.NewSheetSales(invoker)
	notifier := service.NewBridgeNotifier(invoker)

	customers := service.NewCustomerService(sheet, nil, nil, notifier, cfg.Loyalty)
	campaigns := service.NewCampaignService(sheet, invoker, notifier, nil, cfg.Campaign)
	reports := service.NewReportService(sales, sales, invoker, cfg.Analytics)
	sentiment := service.NewSentimentService(invoker, notifier, cfg.Analytics)

	ctx := context.Background()

	fmt.Println("Franchise automation demo")
	fmt.Println("==================================================")

	fmt.Println("\nCapturing new customer...")
	customer := customers.CaptureCustomer(ctx, &service.CaptureCustomerRequest{
		Name:         "Nguyen Van A",
		Phone:        "+84901234567",
		Email:        "nguyen@example.com",
		FavoriteItem: "Taro Milk Tea",
	})
	fmt.Printf("Customer created: %s (%d points)\n", customer.ID, customer.LoyaltyPoints)

	fmt.Println("\nRunning marketing campaigns...")
	results, err := campaigns.RunMarketingCampaigns(ctx)
	if err != nil {
		log.Printf("Campaign run failed: %v", err)
	}
	for _, result := range results {
		fmt.Printf("%s: %d targeted, %d sent, %d errors\n",
			result.Campaign, result.TargetCount, result.MessagesSent, result.Errors)
	}

	fmt.Println("\nGenerating sales report...")
	report, err := reports.GenerateSalesReport(ctx, "STORE-001", models.PeriodDaily)
	if err != nil {
		log.Printf("Report generation failed: %v", err)
	} else {
		fmt.Printf("Report generated: $%.2f revenue across %d transactions\n",
			report.Metrics.TotalRevenue, report.Metrics.TotalTransactions)
	}

	fmt.Println("\nAnalyzing customer feedback...")
	analysis, err := sentiment.AnalyzeSentiment(ctx, "The boba was amazing! Best I've ever had!")
	if err != nil {
		log.Printf("Sentiment analysis failed: %v", err)
	} else {
		fmt.Printf("Sentiment: %s (score: %.2f, action: %s)\n",
			analysis.Sentiment, analysis.Score, analysis.ActionTaken)
	}

	fmt.Println("\n==================================================")
	fmt.Println("Demo complete")
}
