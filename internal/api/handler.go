package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"franchise-service/internal/models"
	"franchise-service/internal/service"
	"franchise-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	customers *service.CustomerService
	campaigns *service.CampaignService
	reports   *service.ReportService
	sentiment *service.SentimentService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	customers *service.CustomerService,
	campaigns *service.CampaignService,
	reports *service.ReportService,
	sentiment *service.SentimentService,
) *Handler {
	return &Handler{
		customers: customers,
		campaigns: campaigns,
		reports:   reports,
		sentiment: sentiment,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/customers", h.captureCustomer)
		v1.GET("/customers/:id", h.getCustomer)
		v1.POST("/customers/:id/purchases", h.trackPurchase)
		v1.POST("/campaigns/run", h.runCampaigns)
		v1.POST("/reports/sales", h.generateSalesReport)
		v1.POST("/inventory/forecast", h.predictInventory)
		v1.POST("/feedback", h.analyzeFeedback)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// captureCustomer handles new customer sign-ups. Input is lenient: missing
// fields degrade to empty values.
func (h *Handler) captureCustomer(c *gin.Context) {
	var req service.CaptureCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	customer := h.customers.CaptureCustomer(c.Request.Context(), &req)
	c.JSON(http.StatusCreated, customer)
}

// getCustomer handles customer lookup by ID
func (h *Handler) getCustomer(c *gin.Context) {
	customer, err := h.customers.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Customer not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// trackPurchase applies a purchase to a customer profile
func (h *Handler) trackPurchase(c *gin.Context) {
	var purchase models.Purchase
	if err := c.ShouldBindJSON(&purchase); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	customer, err := h.customers.TrackPurchase(c.Request.Context(), c.Param("id"), &purchase)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Failed to track purchase",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, customer)
}

// runCampaigns executes all marketing campaigns once
func (h *Handler) runCampaigns(c *gin.Context) {
	results, err := h.campaigns.RunMarketingCampaigns(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "already in progress") {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error":   "Campaign run failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type salesReportRequest struct {
	StoreID string `json:"store_id" binding:"required"`
	Period  string `json:"period"`
}

// generateSalesReport produces a sales summary for a store and period
func (h *Handler) generateSalesReport(c *gin.Context) {
	var req salesReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.Period == "" {
		req.Period = models.PeriodDaily
	}

	report, err := h.reports.GenerateSalesReport(c.Request.Context(), req.StoreID, req.Period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate report",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

type forecastRequest struct {
	StoreID   string `json:"store_id" binding:"required"`
	DaysAhead int    `json:"days_ahead"`
}

// predictInventory produces an inventory demand forecast
func (h *Handler) predictInventory(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}
	if req.DaysAhead <= 0 {
		req.DaysAhead = 7
	}

	forecast, err := h.reports.PredictInventoryNeeds(c.Request.Context(), req.StoreID, req.DaysAhead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate forecast",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, forecast)
}

type feedbackRequest struct {
	Text string `json:"text" binding:"required"`
}

// analyzeFeedback classifies feedback polarity and escalates negative reviews
func (h *Handler) analyzeFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.sentiment.AnalyzeSentiment(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Sentiment analysis failed",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
