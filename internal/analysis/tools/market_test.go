package tools

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

func newTestMarketAnalyzer(cfg model.MarketConfig) *SyntheticMarketAnalyzer {
	analyzer := NewSyntheticMarketAnalyzer(cfg)
	analyzer.rng = rand.New(rand.NewSource(42))
	analyzer.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return analyzer
}

func TestMarketAnalyzeStructure(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{TimePeriodDays: 90})

	result, err := analyzer.Analyze(context.Background(), "Widget", "", 90)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, "Widget", result.Product)
	assert.Equal(t, "General", result.Category)
	assert.Equal(t, "90 days", result.AnalysisPeriod)
	assert.NotEmpty(t, result.GeneratedAt)
	require.NotNil(t, result.PriceTrends)
	require.NotNil(t, result.DemandAnalysis)
	require.NotNil(t, result.CompetitorLandscape)
	require.NotNil(t, result.MarketInsights)
}

func TestMarketAnalyzeWeeklyDataPoints(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{})

	result, err := analyzer.Analyze(context.Background(), "Widget", "", 90)
	require.NoError(t, err)

	// one point per started week: ceil(90/7) = 13
	series := result.PriceTrends.HistoricalPrices
	assert.Len(t, series.Dates, 13)
	assert.Len(t, series.Prices, 13)
	assert.Equal(t, "2025-12-15", series.Dates[0])
}

func TestMarketAnalyzePriceBounds(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{})

	result, err := analyzer.Analyze(context.Background(), "Widget", "", 28)
	require.NoError(t, err)

	for _, price := range result.PriceTrends.HistoricalPrices.Prices {
		assert.Greater(t, price, 0.0)
	}
	assert.Contains(t, []string{"increasing", "decreasing"}, result.PriceTrends.PriceTrend)
	assert.Regexp(t, `^\$\d+\.\d{2}$`, result.PriceTrends.CurrentPrice)
}

func TestMarketAnalyzeDefaultsPeriod(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{TimePeriodDays: 14})

	result, err := analyzer.Analyze(context.Background(), "Widget", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "14 days", result.AnalysisPeriod)
	assert.Len(t, result.PriceTrends.HistoricalPrices.Prices, 2)
}

func TestMarketAnalyzeCompetitors(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{})

	result, err := analyzer.Analyze(context.Background(), "Widget", "Electronics", 90)
	require.NoError(t, err)

	landscape := result.CompetitorLandscape
	assert.Equal(t, 3, landscape.TotalCompetitors)
	require.Len(t, landscape.MainCompetitors, 3)
	for _, c := range landscape.MainCompetitors {
		assert.Contains(t, c.Name, "Electronics")
		assert.GreaterOrEqual(t, c.MarketShare, 10)
		assert.LessOrEqual(t, c.MarketShare, 35)
		assert.Len(t, c.KeyFeatures, 3)
		assert.GreaterOrEqual(t, c.Rating, 3.5)
		assert.LessOrEqual(t, c.Rating, 4.8)
	}
}

func TestMarketAnalyzeDemandGrows(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{})

	result, err := analyzer.Analyze(context.Background(), "Widget", "", 90)
	require.NoError(t, err)

	demand := result.DemandAnalysis
	assert.Equal(t, "growing", demand.DemandTrend)
	assert.Positive(t, demand.CurrentDemandScore)
	assert.GreaterOrEqual(t, demand.MarketSaturation, 45)
	assert.LessOrEqual(t, demand.MarketSaturation, 75)
	assert.Equal(t, 78, demand.DemandForecast.Confidence)
}

func TestMarketInsightsMentionProduct(t *testing.T) {
	analyzer := newTestMarketAnalyzer(model.MarketConfig{})

	result, err := analyzer.Analyze(context.Background(), "SuperWidget", "", 90)
	require.NoError(t, err)

	found := false
	for _, rec := range result.MarketInsights.Recommendations {
		if strings.Contains(rec, "SuperWidget") {
			found = true
		}
	}
	assert.True(t, found, "recommendations should mention the product")
}
