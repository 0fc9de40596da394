package service

import (
	"context"
	"testing"

	"franchise-service/internal/bridge"
	"franchise-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sentimentServiceWithScore(score float64) (*SentimentService, *fakeNotifier, *fakeInvoker) {
	invoker := newFakeInvoker()
	invoker.respond(bridge.ToolSentimentAnalysis, map[string]any{"score": score})
	invoker.respond(bridge.ToolTextGeneration, map[string]any{"text": "We are truly sorry."})

	notifier := newFakeNotifier()
	return NewSentimentService(invoker, notifier, testAnalyticsConfig()), notifier, invoker
}

func TestAnalyzeSentimentNegativeEscalates(t *testing.T) {
	ss, notifier, _ := sentimentServiceWithScore(-0.6)

	result, err := ss.AnalyzeSentiment(context.Background(), "The drink was watery and the staff was rude.")
	require.NoError(t, err)

	assert.Equal(t, models.SentimentNegative, result.Sentiment)
	assert.Equal(t, -0.6, result.Score)
	assert.Equal(t, models.SentimentActionEscalated, result.ActionTaken)
	assert.Equal(t, "We are truly sorry.", result.ApologyEmail)

	require.Len(t, notifier.alerts, 1)
	assert.Contains(t, notifier.alerts[0], "Negative feedback detected")
}

func TestAnalyzeSentimentThresholdIsStrict(t *testing.T) {
	// Exactly -0.5 does not escalate.
	ss, notifier, _ := sentimentServiceWithScore(-0.5)

	result, err := ss.AnalyzeSentiment(context.Background(), "meh")
	require.NoError(t, err)

	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, models.SentimentActionNone, result.ActionTaken)
	assert.Empty(t, result.ApologyEmail)
	assert.Empty(t, notifier.alerts)
}

func TestAnalyzeSentimentPositive(t *testing.T) {
	ss, _, _ := sentimentServiceWithScore(0.3)

	result, err := ss.AnalyzeSentiment(context.Background(), "Best boba ever!")
	require.NoError(t, err)

	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.Equal(t, models.SentimentActionNone, result.ActionTaken)
}

func TestAnalyzeSentimentZeroIsNeutral(t *testing.T) {
	// Zero falls to neutral: positive requires a strictly greater score.
	ss, _, _ := sentimentServiceWithScore(0)

	result, err := ss.AnalyzeSentiment(context.Background(), "it was fine")
	require.NoError(t, err)

	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
}

func TestAnalyzeSentimentBridgeFailure(t *testing.T) {
	invoker := newFakeInvoker()
	invoker.fail(bridge.ToolSentimentAnalysis, "sentiment tool timed out")

	ss := NewSentimentService(invoker, newFakeNotifier(), testAnalyticsConfig())

	_, err := ss.AnalyzeSentiment(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sentiment tool timed out")
}

func TestAnalyzeSentimentApologyFallback(t *testing.T) {
	invoker := newFakeInvoker()
	invoker.respond(bridge.ToolSentimentAnalysis, map[string]any{"score": -0.9})
	invoker.fail(bridge.ToolTextGeneration, "model unavailable")

	ss := NewSentimentService(invoker, newFakeNotifier(), testAnalyticsConfig())

	result, err := ss.AnalyzeSentiment(context.Background(), "terrible")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentActionEscalated, result.ActionTaken)
	assert.Equal(t, fallbackApology, result.ApologyEmail)
}
