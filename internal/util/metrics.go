package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CustomersCapturedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_captured_total",
		Help: "Total number of customers captured",
	})

	PurchasesTrackedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "purchases_tracked_total",
		Help: "Total number of purchases tracked",
	})

	MilestonesReachedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "milestones_reached_total",
		Help: "Total number of visit milestones reached",
	})

	LedgerWriteFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_write_failures_total",
		Help: "Total number of ignored ledger write failures",
	}, []string{"operation"})

	CampaignMessagesSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_messages_sent_total",
		Help: "Total number of campaign messages sent",
	}, []string{"campaign"})

	CampaignSendFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_send_failures_total",
		Help: "Total number of per-recipient campaign failures",
	}, []string{"campaign"})

	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Total number of sales reports generated",
	}, []string{"period"})

	ForecastsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forecasts_generated_total",
		Help: "Total number of inventory forecasts generated",
	})

	NegativeFeedbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "negative_feedback_total",
		Help: "Total number of feedback items that triggered escalation",
	})

	NotificationsDeliveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_delivered_total",
		Help: "Total number of notification delivery attempts",
	}, []string{"type", "status"})

	BridgeCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bridge_calls_total",
		Help: "Total number of tool bridge invocations",
	}, []string{"tool", "status"})

	BridgeCallLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bridge_call_latency_seconds",
		Help:    "Latency of tool bridge invocations",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
