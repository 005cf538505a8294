package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

func newTestReportBuilder() *ReportBuilder {
	builder := NewReportBuilder()
	builder.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return builder
}

func TestGenerateEmptyAnalysisFallsBackToTemplates(t *testing.T) {
	builder := newTestReportBuilder()

	result, err := builder.Generate(context.Background(), model.CombinedAnalysis{})
	require.NoError(t, err)
	assert.Equal(t, model.StatusSuccess, result.Status)
	assert.Equal(t, "comprehensive", result.Format)

	report := result.Report
	require.NotNil(t, report)
	assert.Equal(t, "MKT-20260315-120000", report.Metadata.ReportID)
	assert.Equal(t, "Unknown Product", report.Metadata.Product)
	assert.Empty(t, report.Metadata.AnalysisComponents)
	assert.Contains(t, report.ExecutiveSummary, "Analysis completed successfully")
	assert.Len(t, report.KeyFindings, 4)
	assert.Len(t, report.Recommendations, 4)
	assert.Equal(t, "Medium", report.RiskAssessment.Level)
	assert.Len(t, report.RiskAssessment.Factors, 3)
	assert.Contains(t, report.Conclusion, "cautiously optimistic")
	assert.Empty(t, report.Visualizations)
}

func TestGenerateFullAnalysis(t *testing.T) {
	builder := newTestReportBuilder()

	combined := model.CombinedAnalysis{
		ProductAnalysis: &model.ScrapeResult{
			Status: model.StatusSuccess,
			Products: []model.Product{
				{Title: "Widget Pro", Price: "$199.99"},
			},
			Count: 1,
		},
		SentimentAnalysis: &model.SentimentResult{
			Status:  model.StatusSuccess,
			Product: "Widget Pro",
			Analysis: &model.SentimentMetrics{
				AverageRating:         4.5,
				TotalReviews:          10,
				SentimentDistribution: model.SentimentDistribution{Positive: 8, Neutral: 1, Negative: 1},
				SentimentScore:        70,
				TopPositiveAspects:    map[string]int{"Great battery": 4},
				TopNegativeAspects:    map[string]int{"Pricey": 2},
				RecommendationRate:    80,
			},
		},
		MarketTrends: &model.MarketResult{
			Status:  model.StatusSuccess,
			Product: "Widget Pro",
			PriceTrends: &model.PriceTrends{
				PriceChangePercent: -5.5,
				HistoricalPrices: model.PriceSeries{
					Dates:  []string{"2026-01-01", "2026-01-08"},
					Prices: []float64{200, 189},
				},
			},
			DemandAnalysis: &model.DemandAnalysis{
				DemandTrend:     "growing",
				GrowthPotential: "High",
			},
			CompetitorLandscape: &model.CompetitorLandscape{
				MarketPosition:      "Challenger",
				CompetitivePressure: "High",
				MainCompetitors: []model.Competitor{
					{Name: "Competitor A (Premium)", MarketShare: 20},
				},
			},
			MarketInsights: &model.MarketInsights{
				Recommendations: []string{"rec one", "rec two", "rec three"},
				Risks:           []string{"risk one", "risk two", "risk three"},
			},
		},
	}

	result, err := builder.Generate(context.Background(), combined)
	require.NoError(t, err)

	report := result.Report
	assert.Equal(t, "Widget Pro", report.Metadata.Product)
	assert.Equal(t, []string{"product_analysis", "sentiment_analysis", "market_trends"},
		report.Metadata.AnalysisComponents)

	assert.Contains(t, report.ExecutiveSummary, "Widget Pro - Price: $199.99")
	assert.Contains(t, report.ExecutiveSummary, "4.5/5.0 rating")
	assert.Contains(t, report.ExecutiveSummary, "decreasing by 5.5%")
	assert.Equal(t, 3, strings.Count(report.ExecutiveSummary, " | ")+1)

	assert.Contains(t, report.KeyFindings, "Top customer praise: Great battery")
	assert.Contains(t, report.KeyFindings, "Main customer concern: Pricey")
	assert.Contains(t, report.KeyFindings, "Market position: Challenger")

	// healthy sentiment keeps only the market recommendations, capped at two
	assert.Equal(t, []string{"rec one", "rec two"}, report.Recommendations)

	assert.Equal(t, "Medium", report.RiskAssessment.Level)
	assert.Equal(t, []string{"risk one", "risk two"}, report.RiskAssessment.Factors)

	require.Len(t, report.Visualizations, 3)
	assert.Equal(t, "line", report.Visualizations["price_trend_chart"].Type)
	assert.Equal(t, "bar", report.Visualizations["sentiment_chart"].Type)
	assert.Equal(t, "donut", report.Visualizations["market_share_chart"].Type)
	assert.Equal(t, []float64{8, 1, 1}, report.Visualizations["sentiment_chart"].Values)

	assert.Contains(t, report.Conclusion, "positive")
}

func TestGenerateLowRatingRaisesRisk(t *testing.T) {
	builder := newTestReportBuilder()

	combined := model.CombinedAnalysis{
		SentimentAnalysis: &model.SentimentResult{
			Product: "Widget",
			Analysis: &model.SentimentMetrics{
				AverageRating:  2.8,
				SentimentScore: 10,
			},
		},
	}

	result, err := builder.Generate(context.Background(), combined)
	require.NoError(t, err)

	report := result.Report
	assert.Equal(t, "High", report.RiskAssessment.Level)
	assert.Contains(t, report.RiskAssessment.Factors, "Low customer satisfaction")
	assert.Contains(t, report.Recommendations, "Focus on improving product quality based on customer feedback")
	assert.Contains(t, report.Recommendations, "Address negative customer concerns to improve satisfaction")
}

func TestTopAspectTieBreaksAlphabetically(t *testing.T) {
	assert.Equal(t, "alpha", topAspect(map[string]int{"beta": 2, "alpha": 2, "gamma": 1}))
	assert.Equal(t, "", topAspect(nil))
}
