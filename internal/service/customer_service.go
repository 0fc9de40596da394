package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"franchise-service/config"
	"franchise-service/internal/ledger"
	"franchise-service/internal/models"
	"franchise-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles customer capture and purchase tracking
type CustomerService struct {
	ledger   ledger.Ledger
	cache    ProfileCache
	recorder TransactionRecorder
	notifier Notifier
	loyalty  config.LoyaltyConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewCustomerService creates a new customer service. cache and recorder may be
// nil when no Redis or sales store is wired.
func NewCustomerService(
	ledger ledger.Ledger,
	cache ProfileCache,
	recorder TransactionRecorder,
	notifier Notifier,
	loyalty config.LoyaltyConfig,
) *CustomerService {
	return &CustomerService{
		ledger:   ledger,
		cache:    cache,
		recorder: recorder,
		notifier: notifier,
		loyalty:  loyalty,
		logger:   util.GetLogger(),
		now:      time.Now,
	}
}

// CaptureCustomerRequest represents a sign-up submission. Missing fields
// degrade to empty values rather than failing validation.
type CaptureCustomerRequest struct {
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email"`
	FavoriteItem string     `json:"favorite_item"`
	Birthday     *time.Time `json:"birthday,omitempty"`
}

// CaptureCustomer registers a new customer, persists the profile, and queues a
// welcome message. Persistence is fire-and-forget: the constructed profile is
// returned even when the ledger write fails.
func (cs *CustomerService) CaptureCustomer(ctx context.Context, req *CaptureCustomerRequest) *models.CustomerProfile {
	ctx, span := util.StartSpan(ctx, "CustomerService.CaptureCustomer")
	defer span.End()

	customer := &models.CustomerProfile{
		ID:            newCustomerID(),
		Name:          req.Name,
		Phone:         req.Phone,
		Email:         req.Email,
		FavoriteItem:  req.FavoriteItem,
		Birthday:      req.Birthday,
		SignupDate:    cs.now(),
		TotalVisits:   0,
		TotalSpent:    0,
		LoyaltyPoints: cs.loyalty.WelcomeBonusPoints,
		Status:        models.CustomerStatusActive,
	}

	if err := cs.ledger.CreateCustomer(ctx, customer); err != nil {
		util.LedgerWriteFailuresTotal.WithLabelValues("create").Inc()
		cs.logger.Error("Failed to persist new customer",
			zap.String("customer_id", customer.ID),
			zap.Error(err))
	}

	if cs.cache != nil {
		if err := cs.cache.CacheProfile(ctx, customer); err != nil {
			cs.logger.Warn("Failed to cache profile", zap.Error(err))
		}
	}

	welcome := fmt.Sprintf("Welcome to the loyalty club, %s! You've earned %d points!",
		customer.Name, customer.LoyaltyPoints)
	if err := cs.notifier.Send(ctx, customer, welcome); err != nil {
		cs.logger.Warn("Failed to queue welcome message",
			zap.String("customer_id", customer.ID),
			zap.Error(err))
	}

	util.CustomersCapturedTotal.Inc()
	cs.logger.Info("Customer captured", zap.String("customer_id", customer.ID))

	return customer
}

// TrackPurchase applies a purchase to a customer profile: one visit, the spent
// amount, and floor(amount) loyalty points. The ledger update is
// fire-and-forget; the milestone check is advisory only.
func (cs *CustomerService) TrackPurchase(ctx context.Context, customerID string, purchase *models.Purchase) (*models.CustomerProfile, error) {
	ctx, span := util.StartSpan(ctx, "CustomerService.TrackPurchase")
	defer span.End()

	customer, err := cs.lookupCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := cs.now()
	customer.TotalVisits++
	customer.TotalSpent += purchase.TotalAmount
	customer.LastVisit = &now
	customer.LoyaltyPoints += int(math.Floor(purchase.TotalAmount))

	if err := cs.ledger.UpdateCustomer(ctx, customer); err != nil {
		util.LedgerWriteFailuresTotal.WithLabelValues("update").Inc()
		cs.logger.Error("Failed to persist customer update",
			zap.String("customer_id", customer.ID),
			zap.Error(err))
	}

	if cs.cache != nil {
		if err := cs.cache.CacheProfile(ctx, customer); err != nil {
			cs.logger.Warn("Failed to cache profile", zap.Error(err))
		}
	}

	if cs.recorder != nil {
		txn := &models.Transaction{
			StoreID:    purchase.StoreLocation,
			CustomerID: customer.ID,
			Items:      purchase.Items,
			Amount:     purchase.TotalAmount,
			OccurredAt: now,
		}
		if err := cs.recorder.CreateTransaction(ctx, txn); err != nil {
			cs.logger.Warn("Failed to record transaction",
				zap.String("customer_id", customer.ID),
				zap.Error(err))
		}
	}

	cs.checkMilestone(customer)

	util.PurchasesTrackedTotal.Inc()
	return customer, nil
}

// GetCustomer retrieves a customer profile, cache first
func (cs *CustomerService) GetCustomer(ctx context.Context, customerID string) (*models.CustomerProfile, error) {
	return cs.lookupCustomer(ctx, customerID)
}

func (cs *CustomerService) lookupCustomer(ctx context.Context, customerID string) (*models.CustomerProfile, error) {
	if cs.cache != nil {
		cached, err := cs.cache.CachedProfile(ctx, customerID)
		if err != nil {
			cs.logger.Warn("Profile cache lookup failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}
	return cs.ledger.GetCustomer(ctx, customerID)
}

func (cs *CustomerService) checkMilestone(customer *models.CustomerProfile) {
	for _, m := range cs.loyalty.MilestoneVisits {
		if customer.TotalVisits == m {
			util.MilestonesReachedTotal.Inc()
			cs.logger.Info("Milestone reached",
				zap.String("customer_id", customer.ID),
				zap.String("name", customer.Name),
				zap.Int("visits", customer.TotalVisits))
			return
		}
	}
}

// newCustomerID generates an opaque customer identifier: a fixed prefix plus
// eight uppercase hex characters.
func newCustomerID() string {
	return fmt.Sprintf("CUST-%s", strings.ToUpper(uuid.New().String()[:8]))
}
