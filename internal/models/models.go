package models

import "time"

// CustomerProfile represents a loyalty-program customer
type CustomerProfile struct {
	ID            string     `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Phone         string     `db:"phone" json:"phone"`
	Email         string     `db:"email" json:"email"`
	FavoriteItem  string     `db:"favorite_item" json:"favorite_item"`
	Birthday      *time.Time `db:"birthday" json:"birthday,omitempty"`
	SignupDate    time.Time  `db:"signup_date" json:"signup_date"`
	TotalVisits   int        `db:"total_visits" json:"total_visits"`
	TotalSpent    float64    `db:"total_spent" json:"total_spent"`
	LoyaltyPoints int        `db:"loyalty_points" json:"loyalty_points"`
	LastVisit     *time.Time `db:"last_visit" json:"last_visit,omitempty"`
	Status        string     `db:"status" json:"status"`
}

// Purchase represents a single purchase event
type Purchase struct {
	Items         []string `json:"items"`
	TotalAmount   float64  `json:"total_amount"`
	StoreLocation string   `json:"store_location"`
}

// Transaction represents one sales row used by reporting and forecasting
type Transaction struct {
	ID         int64     `db:"id" json:"id"`
	StoreID    string    `db:"store_id" json:"store_id"`
	CustomerID string    `db:"customer_id" json:"customer_id,omitempty"`
	Items      []string  `db:"-" json:"items"`
	ItemsRaw   string    `db:"items" json:"-"`
	Amount     float64   `db:"amount" json:"amount"`
	OccurredAt time.Time `db:"occurred_at" json:"occurred_at"`
}

// CampaignResult summarizes one campaign run
type CampaignResult struct {
	Campaign     string `json:"campaign"`
	TargetCount  int    `json:"target_count"`
	MessagesSent int    `json:"messages_sent"`
	Errors       int    `json:"errors"`
}

// ItemRank is one entry in the top-selling item ranking
type ItemRank struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// HourBucket is one peak-hour entry, hour in 0-23 local time
type HourBucket struct {
	Hour         int `json:"hour"`
	Transactions int `json:"transactions"`
}

// ReportMetrics is the metrics block of a sales report
type ReportMetrics struct {
	TotalRevenue       float64      `json:"total_revenue"`
	TotalTransactions  int          `json:"total_transactions"`
	AverageTransaction float64      `json:"average_transaction"`
	TopSellingItems    []ItemRank   `json:"top_selling_items"`
	PeakHours          []HourBucket `json:"peak_hours"`
	LoyaltyMemberShare float64      `json:"loyalty_member_percentage"`
}

// SalesReport is a generated per-store, per-period sales summary
type SalesReport struct {
	StoreID     string        `json:"store_id"`
	Period      string        `json:"period"`
	GeneratedAt time.Time     `json:"generated_at"`
	Metrics     ReportMetrics `json:"metrics"`
}

// InventoryForecast holds predicted per-category demand and reorder advisories
type InventoryForecast struct {
	StoreID       string             `json:"store_id"`
	ForecastDays  int                `json:"forecast_days"`
	GeneratedAt   time.Time          `json:"generated_at"`
	Predictions   map[string]float64 `json:"predictions"`
	ReorderAlerts []string           `json:"reorder_alerts"`
}

// SentimentResult is the outcome of analyzing one piece of feedback
type SentimentResult struct {
	Sentiment    string  `json:"sentiment"`
	Score        float64 `json:"score"`
	ActionTaken  string  `json:"action_taken"`
	ApologyEmail string  `json:"apology_email,omitempty"`
}

// Customer statuses
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Sentiment labels
const (
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
)

// Sentiment actions
const (
	SentimentActionNone      = "none"
	SentimentActionEscalated = "manager_alerted_and_apology_generated"
)

// Campaign names, in the fixed execution order
const (
	CampaignWeMissYou       = "We Miss You"
	CampaignBirthday        = "Birthday Rewards"
	CampaignRecommendations = "Personalized Recommendations"
)

// Report periods
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)
