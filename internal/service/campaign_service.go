package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"franchise-service/config"
	"franchise-service/internal/bridge"
	"franchise-service/internal/ledger"
	"franchise-service/internal/models"
	"franchise-service/internal/util"

	"go.uber.org/zap"
)

const campaignRunLockKey = "campaign-run"

// CampaignService runs the three scheduled marketing campaigns. Campaigns run
// sequentially in a fixed order and a recipient failure never aborts a batch:
// it becomes a failure count plus a log line and the loop continues.
type CampaignService struct {
	ledger   ledger.Ledger
	invoker  bridge.Invoker
	notifier Notifier
	locker   RunLocker
	cfg      config.CampaignConfig
	logger   *zap.Logger
	now      func() time.Time
}

// NewCampaignService creates a new campaign service. locker may be nil when no
// Redis is wired; overlapping runs are then possible.
func NewCampaignService(
	ledger ledger.Ledger,
	invoker bridge.Invoker,
	notifier Notifier,
	locker RunLocker,
	cfg config.CampaignConfig,
) *CampaignService {
	return &CampaignService{
		ledger:   ledger,
		invoker:  invoker,
		notifier: notifier,
		locker:   locker,
		cfg:      cfg,
		logger:   util.GetLogger(),
		now:      time.Now,
	}
}

// RunMarketingCampaigns executes re-engagement, birthday, and recommendation
// campaigns in that order and returns one result per campaign. There is no
// retry and no cross-campaign deduplication.
func (s *CampaignService) RunMarketingCampaigns(ctx context.Context) ([]models.CampaignResult, error) {
	ctx, span := util.StartSpan(ctx, "CampaignService.RunMarketingCampaigns")
	defer span.End()

	if s.locker != nil {
		acquired, err := s.locker.AcquireLock(ctx, campaignRunLockKey, 10*time.Minute)
		if err != nil {
			s.logger.Warn("Campaign lock check failed, proceeding without lock", zap.Error(err))
		} else if !acquired {
			return nil, fmt.Errorf("campaign run already in progress")
		} else {
			defer func() {
				if err := s.locker.ReleaseLock(ctx, campaignRunLockKey); err != nil {
					s.logger.Warn("Failed to release campaign lock", zap.Error(err))
				}
			}()
		}
	}

	reengagement, err := s.runReengagementCampaign(ctx)
	if err != nil {
		return nil, err
	}

	birthday, err := s.runBirthdayCampaign(ctx)
	if err != nil {
		return nil, err
	}

	recommendation, err := s.runRecommendationCampaign(ctx)
	if err != nil {
		return nil, err
	}

	return []models.CampaignResult{reengagement, birthday, recommendation}, nil
}

// runReengagementCampaign targets customers inactive for the configured window
func (s *CampaignService) runReengagementCampaign(ctx context.Context) (models.CampaignResult, error) {
	result := models.CampaignResult{Campaign: models.CampaignWeMissYou}

	customers, err := s.ledger.InactiveCustomers(ctx, s.cfg.InactivityDays)
	if err != nil {
		return result, fmt.Errorf("failed to query inactive customers: %w", err)
	}
	result.TargetCount = len(customers)

	for i := range customers {
		customer := &customers[i]

		message, err := s.generateCampaignMessage(ctx, customer, "we_miss_you")
		if err != nil {
			s.recordFailure(&result, customer, err)
			continue
		}

		if err := s.notifier.Send(ctx, customer, message); err != nil {
			s.recordFailure(&result, customer, err)
			continue
		}

		result.MessagesSent++
		util.CampaignMessagesSentTotal.WithLabelValues(result.Campaign).Inc()
	}

	return result, nil
}

// runBirthdayCampaign sends a free-item offer to customers with a birthday today
func (s *CampaignService) runBirthdayCampaign(ctx context.Context) (models.CampaignResult, error) {
	result := models.CampaignResult{Campaign: models.CampaignBirthday}

	customers, err := s.ledger.BirthdayCustomers(ctx, s.now())
	if err != nil {
		return result, fmt.Errorf("failed to query birthday customers: %w", err)
	}
	result.TargetCount = len(customers)

	for i := range customers {
		customer := &customers[i]

		item := customer.FavoriteItem
		if item == "" {
			item = "Any item"
		}

		message, err := s.generateBirthdayMessage(ctx, customer, item)
		if err != nil {
			s.recordFailure(&result, customer, err)
			continue
		}

		if err := s.notifier.Send(ctx, customer, message); err != nil {
			s.recordFailure(&result, customer, err)
			continue
		}

		result.MessagesSent++
		util.CampaignMessagesSentTotal.WithLabelValues(result.Campaign).Inc()
	}

	return result, nil
}

// runRecommendationCampaign sends AI-picked suggestions to recently active
// customers. Customers whose recommendation call yields nothing are skipped
// silently.
func (s *CampaignService) runRecommendationCampaign(ctx context.Context) (models.CampaignResult, error) {
	result := models.CampaignResult{Campaign: models.CampaignRecommendations}

	customers, err := s.ledger.RecentCustomers(ctx, s.cfg.RecentDays)
	if err != nil {
		return result, fmt.Errorf("failed to query recent customers: %w", err)
	}
	result.TargetCount = len(customers)

	for i := range customers {
		customer := &customers[i]

		recommendations, err := s.recommendations(ctx, customer)
		if err != nil {
			s.recordFailure(&result, customer, err)
			continue
		}
		if len(recommendations) == 0 {
			continue
		}

		message := fmt.Sprintf("Hi %s! Based on your taste, you might love: %s",
			customer.Name, strings.Join(recommendations, ", "))

		if err := s.notifier.Send(ctx, customer, message); err != nil {
			s.recordFailure(&result, customer, err)
			continue
		}

		result.MessagesSent++
		util.CampaignMessagesSentTotal.WithLabelValues(result.Campaign).Inc()
	}

	return result, nil
}

// generateCampaignMessage asks the text-generation tool for a personalized
// marketing message
func (s *CampaignService) generateCampaignMessage(ctx context.Context, customer *models.CustomerProfile, campaignType string) (string, error) {
	lastVisit := "unknown"
	if customer.LastVisit != nil {
		lastVisit = customer.LastVisit.Format(time.RFC3339)
	}

	prompt := fmt.Sprintf(
		"Write a friendly, personalized marketing message for %s. "+
			"Campaign type: %s. Favorite item: %s. Total visits: %d. Last visit: %s. "+
			"Keep it warm, casual, and under 100 words. Include a special 15%% discount offer.",
		customer.Name, campaignType, customer.FavoriteItem, customer.TotalVisits, lastVisit)

	res := s.invoker.Invoke(ctx, bridge.ToolTextGeneration, map[string]any{
		"prompt":       prompt,
		"instructions": "Generate a personalized marketing message",
	})
	if res.Failed() {
		return "", fmt.Errorf("message generation failed: %s", res.Err)
	}
	return res.Text(), nil
}

// generateBirthdayMessage asks the text-generation tool for a birthday message
// carrying the free-item offer
func (s *CampaignService) generateBirthdayMessage(ctx context.Context, customer *models.CustomerProfile, item string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short birthday message for %s offering a free %s, valid for %d days.",
		customer.Name, item, s.cfg.BirthdayOfferDays)

	res := s.invoker.Invoke(ctx, bridge.ToolTextGeneration, map[string]any{
		"prompt":       prompt,
		"instructions": "Generate a birthday reward message",
	})
	if res.Failed() {
		return "", fmt.Errorf("birthday message generation failed: %s", res.Err)
	}
	return res.Text(), nil
}

// recommendations asks the text-generation tool for 2-3 suggestions, one per
// line, and returns the non-empty ones
func (s *CampaignService) recommendations(ctx context.Context, customer *models.CustomerProfile) ([]string, error) {
	prompt := fmt.Sprintf(
		"Based on this customer's purchase history, recommend 2-3 new items they might enjoy. "+
			"Favorite item: %s. Total visits: %d. "+
			"Respond with just the item names, one per line.",
		customer.FavoriteItem, customer.TotalVisits)

	res := s.invoker.Invoke(ctx, bridge.ToolTextGeneration, map[string]any{
		"prompt":       prompt,
		"instructions": "Generate product recommendations",
	})
	if res.Failed() {
		return nil, fmt.Errorf("recommendation generation failed: %s", res.Err)
	}

	lines := strings.Split(res.Text(), "\n")
	recommendations := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			recommendations = append(recommendations, trimmed)
		}
	}
	return recommendations, nil
}

func (s *CampaignService) recordFailure(result *models.CampaignResult, customer *models.CustomerProfile, err error) {
	result.Errors++
	util.CampaignSendFailuresTotal.WithLabelValues(result.Campaign).Inc()
	s.logger.Warn("Campaign send failed",
		zap.String("campaign", result.Campaign),
		zap.String("customer_id", customer.ID),
		zap.Error(err))
}
