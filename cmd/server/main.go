package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"franchise-service/config"
	"franchise-service/internal/api"
	"franchise-service/internal/bridge"
	"franchise-service/internal/broker"
	"franchise-service/internal/ledger"
	"franchise-service/internal/redisclient"
	"franchise-service/internal/service"
	"franchise-service/internal/store"
	"franchise-service/internal/util"
	"franchise-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting franchise service")

	tp, err := util.InitTracer("franchise-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	var invoker bridge.Invoker
	if cfg.Bridge.Mode == "exec" {
		invoker = bridge.NewExecBridge(cfg.Bridge.Binary, cfg.Bridge.Server, cfg.Bridge.Timeout)
	} else {
		invoker = bridge.NewHTTPBridge(cfg.Bridge.URL, cfg.Bridge.Token, cfg.Bridge.Timeout)
	}
	log.Printf("Tool bridge initialized: mode=%s", cfg.Bridge.Mode)

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicNotifications)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	notifier := broker.NewEventPublisher(producer)

	var customerLedger ledger.Ledger = db
	if cfg.Bridge.LedgerBackend == "sheet" {
		customerLedger = ledger.NewSheet(invoker)
		log.Println("Using sheet-backed customer ledger")
	}

	customerService := service.NewCustomerService(customerLedger, redisClient, db, notifier, cfg.Loyalty)
	campaignService := service.NewCampaignService(customerLedger, invoker, notifier, redisClient, cfg.Campaign)
	reportService := service.NewReportService(db, db, invoker, cfg.Analytics)
	sentimentService := service.NewSentimentService(invoker, notifier, cfg.Analytics)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicNotifications, cfg.Kafka.ConsumerGroup)
	notificationWorker := worker.NewNotificationWorker(consumer, invoker)
	go func() {
		if err := notificationWorker.Start(workerCtx); err != nil {
			log.Printf("Notification worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(customerService, campaignService, reportService, sentimentService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	notificationWorker.Stop()

	log.Println("Server exited")
}
