package service

import (
	"context"
	"fmt"

	"franchise-service/config"
	"franchise-service/internal/bridge"
	"franchise-service/internal/models"
	"franchise-service/internal/util"

	"go.uber.org/zap"
)

const fallbackApology = "We're sorry for your experience. Please accept this free item coupon."

// SentimentService classifies customer feedback and escalates negative
// reviews to a manager alert plus a generated apology.
type SentimentService struct {
	invoker  bridge.Invoker
	notifier Notifier
	cfg      config.AnalyticsConfig
	logger   *zap.Logger
}

// NewSentimentService creates a new sentiment service
func NewSentimentService(invoker bridge.Invoker, notifier Notifier, cfg config.AnalyticsConfig) *SentimentService {
	return &SentimentService{
		invoker:  invoker,
		notifier: notifier,
		cfg:      cfg,
		logger:   util.GetLogger(),
	}
}

// AnalyzeSentiment classifies the feedback polarity. A score strictly below
// the negative threshold alerts the manager and generates an apology; a score
// strictly above zero is positive; everything else, including exactly zero,
// is neutral.
func (ss *SentimentService) AnalyzeSentiment(ctx context.Context, feedback string) (*models.SentimentResult, error) {
	ctx, span := util.StartSpan(ctx, "SentimentService.AnalyzeSentiment")
	defer span.End()

	res := ss.invoker.Invoke(ctx, bridge.ToolSentimentAnalysis, map[string]any{
		"text":         feedback,
		"instructions": "Analyze the sentiment of this customer feedback",
	})
	if res.Failed() {
		return nil, fmt.Errorf("sentiment analysis failed: %s", res.Err)
	}

	score := res.Score()

	if score < ss.cfg.NegativeSentimentThreshold {
		util.NegativeFeedbackTotal.Inc()
		ss.logger.Warn("Negative feedback detected", zap.Float64("score", score))

		alert := fmt.Sprintf("Negative feedback detected: %s", feedback)
		if err := ss.notifier.AlertManager(ctx, alert); err != nil {
			ss.logger.Error("Failed to alert manager", zap.Error(err))
		}

		return &models.SentimentResult{
			Sentiment:    models.SentimentNegative,
			Score:        score,
			ActionTaken:  models.SentimentActionEscalated,
			ApologyEmail: ss.generateApology(ctx, feedback),
		}, nil
	}

	sentiment := models.SentimentNeutral
	if score > 0 {
		sentiment = models.SentimentPositive
	}

	return &models.SentimentResult{
		Sentiment:   sentiment,
		Score:       score,
		ActionTaken: models.SentimentActionNone,
	}, nil
}

// generateApology asks the text-generation tool for an apology email, falling
// back to a canned apology when generation fails
func (ss *SentimentService) generateApology(ctx context.Context, feedback string) string {
	prompt := fmt.Sprintf(
		"Write a short, sincere apology email responding to this customer feedback, "+
			"offering a free item coupon: %s", feedback)

	res := ss.invoker.Invoke(ctx, bridge.ToolTextGeneration, map[string]any{
		"prompt":       prompt,
		"instructions": "Generate an apology email",
	})
	if res.Failed() || res.Text() == "" {
		ss.logger.Warn("Apology generation failed, using fallback", zap.String("error", res.Err))
		return fallbackApology
	}
	return res.Text()
}
