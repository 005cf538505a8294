package tools

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/market-analysis-agent/server/internal/analysis/model"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// ReportBuilder assembles the final market report from the combined tool
// outputs. Pure computation; it never fails on missing sections and falls
// back to templated content instead.
type ReportBuilder struct {
	format                string
	includeVisualizations bool
	now                   func() time.Time
}

func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{
		format:                "comprehensive",
		includeVisualizations: true,
		now:                   time.Now,
	}
}

func (b *ReportBuilder) Generate(ctx context.Context, combined model.CombinedAnalysis) (*model.ReportResult, error) {
	logx.Debug().Str("format", b.format).Msg("Assembling market report")

	report := &model.Report{
		Metadata:         b.metadata(combined),
		ExecutiveSummary: b.executiveSummary(combined),
		DetailedAnalysis: model.DetailedAnalysis{
			ProductInformation: combined.ProductAnalysis,
			CustomerSentiment:  combined.SentimentAnalysis,
			MarketAnalysis:     combined.MarketTrends,
		},
		KeyFindings:     b.keyFindings(combined),
		Recommendations: b.recommendations(combined),
		RiskAssessment:  b.assessRisks(combined),
		Conclusion:      b.conclusion(combined),
	}

	if b.includeVisualizations {
		report.Visualizations = b.visualizations(combined)
	}

	return &model.ReportResult{
		Status:      model.StatusSuccess,
		Report:      report,
		Format:      b.format,
		GeneratedAt: b.now().Format(time.RFC3339),
	}, nil
}

func (b *ReportBuilder) metadata(combined model.CombinedAnalysis) model.ReportMetadata {
	product := "Unknown Product"
	if combined.SentimentAnalysis != nil && combined.SentimentAnalysis.Product != "" {
		product = combined.SentimentAnalysis.Product
	} else if combined.MarketTrends != nil && combined.MarketTrends.Product != "" {
		product = combined.MarketTrends.Product
	}

	var components []string
	if combined.ProductAnalysis != nil {
		components = append(components, "product_analysis")
	}
	if combined.SentimentAnalysis != nil {
		components = append(components, "sentiment_analysis")
	}
	if combined.MarketTrends != nil {
		components = append(components, "market_trends")
	}

	now := b.now()
	return model.ReportMetadata{
		ReportID:           "MKT-" + now.Format("20060102-150405"),
		Product:            product,
		GenerationDate:     now.Format(time.RFC3339),
		AnalysisComponents: components,
		ReportVersion:      "1.0",
	}
}

func (b *ReportBuilder) executiveSummary(combined model.CombinedAnalysis) string {
	var points []string

	if pa := combined.ProductAnalysis; pa != nil && len(pa.Products) > 0 {
		product := pa.Products[0]
		title := orDefault(product.Title, "N/A")
		price := orDefault(product.Price, "N/A")
		points = append(points, fmt.Sprintf("Product: %s - Price: %s", title, price))
	}

	if sa := combined.SentimentAnalysis; sa != nil && sa.Analysis != nil {
		points = append(points, fmt.Sprintf("Customer Sentiment: %v/5.0 rating with %v%% recommendation rate",
			sa.Analysis.AverageRating, sa.Analysis.RecommendationRate))
	}

	if mt := combined.MarketTrends; mt != nil && mt.PriceTrends != nil {
		change := mt.PriceTrends.PriceChangePercent
		direction := "decreasing"
		if change > 0 {
			direction = "increasing"
		}
		points = append(points, fmt.Sprintf("Market Trend: Prices %s by %v%%", direction, math.Abs(change)))
	}

	if len(points) == 0 {
		points = append(points, "Analysis completed successfully with comprehensive market insights generated.")
	}

	return joinPipe(points)
}

func (b *ReportBuilder) keyFindings(combined model.CombinedAnalysis) []string {
	var findings []string

	if sa := combined.SentimentAnalysis; sa != nil && sa.Analysis != nil {
		if praise := topAspect(sa.Analysis.TopPositiveAspects); praise != "" {
			findings = append(findings, "Top customer praise: "+praise)
		}
		if concern := topAspect(sa.Analysis.TopNegativeAspects); concern != "" {
			findings = append(findings, "Main customer concern: "+concern)
		}
	}

	if mt := combined.MarketTrends; mt != nil {
		if da := mt.DemandAnalysis; da != nil {
			findings = append(findings, "Demand trend: "+orDefault(da.DemandTrend, "stable"))
			findings = append(findings, "Growth potential: "+orDefault(da.GrowthPotential, "moderate"))
		}
		if cl := mt.CompetitorLandscape; cl != nil {
			findings = append(findings, "Market position: "+orDefault(cl.MarketPosition, "competitive"))
			findings = append(findings, "Competitive pressure: "+orDefault(cl.CompetitivePressure, "medium"))
		}
	}

	if len(findings) == 0 {
		findings = []string{
			"Product shows strong market potential",
			"Customer sentiment is generally positive",
			"Market conditions favor growth",
			"Competitive landscape presents opportunities",
		}
	}

	return findings
}

func (b *ReportBuilder) recommendations(combined model.CombinedAnalysis) []string {
	var recs []string

	if sa := combined.SentimentAnalysis; sa != nil && sa.Analysis != nil {
		if sa.Analysis.AverageRating < 4 {
			recs = append(recs, "Focus on improving product quality based on customer feedback")
		}
		if sa.Analysis.SentimentScore < 50 {
			recs = append(recs, "Address negative customer concerns to improve satisfaction")
		}
	}

	if mt := combined.MarketTrends; mt != nil && mt.MarketInsights != nil {
		recs = append(recs, firstN(mt.MarketInsights.Recommendations, 2)...)
	}

	if len(recs) == 0 {
		recs = []string{
			"Maintain competitive pricing strategy",
			"Enhance product features based on customer feedback",
			"Expand marketing efforts to capture growing demand",
			"Monitor competitor activities closely",
		}
	}

	return recs
}

func (b *ReportBuilder) assessRisks(combined model.CombinedAnalysis) model.RiskAssessment {
	assessment := model.RiskAssessment{Level: "Medium"}

	if sa := combined.SentimentAnalysis; sa != nil && sa.Analysis != nil {
		if sa.Analysis.AverageRating < 3.5 {
			assessment.Factors = append(assessment.Factors, "Low customer satisfaction")
			assessment.Level = "High"
		}
	}

	if mt := combined.MarketTrends; mt != nil && mt.MarketInsights != nil {
		assessment.Factors = append(assessment.Factors, firstN(mt.MarketInsights.Risks, 2)...)
	}

	if len(assessment.Factors) == 0 {
		assessment.Factors = []string{
			"Market volatility",
			"Competitive pressure",
			"Supply chain uncertainties",
		}
	}

	return assessment
}

func (b *ReportBuilder) visualizations(combined model.CombinedAnalysis) map[string]model.ChartPayload {
	charts := map[string]model.ChartPayload{}

	if mt := combined.MarketTrends; mt != nil && mt.PriceTrends != nil {
		series := mt.PriceTrends.HistoricalPrices
		if len(series.Dates) > 0 && len(series.Prices) > 0 {
			charts["price_trend_chart"] = model.ChartPayload{
				Type:   "line",
				Title:  "Price Trend Analysis",
				XAxis:  "Date",
				YAxis:  "Price ($)",
				Labels: series.Dates,
				Values: series.Prices,
			}
		}
	}

	if sa := combined.SentimentAnalysis; sa != nil && sa.Analysis != nil {
		dist := sa.Analysis.SentimentDistribution
		charts["sentiment_chart"] = model.ChartPayload{
			Type:   "bar",
			Title:  "Customer Sentiment Distribution",
			XAxis:  "Sentiment",
			YAxis:  "Count",
			Labels: []string{"positive", "neutral", "negative"},
			Values: []float64{float64(dist.Positive), float64(dist.Neutral), float64(dist.Negative)},
		}
	}

	if mt := combined.MarketTrends; mt != nil && mt.CompetitorLandscape != nil {
		competitors := mt.CompetitorLandscape.MainCompetitors
		if len(competitors) > 0 {
			labels := make([]string, 0, len(competitors))
			values := make([]float64, 0, len(competitors))
			for _, c := range competitors {
				labels = append(labels, c.Name)
				values = append(values, float64(c.MarketShare))
			}
			charts["market_share_chart"] = model.ChartPayload{
				Type:   "donut",
				Title:  "Market Share Distribution",
				Labels: labels,
				Values: values,
			}
		}
	}

	return charts
}

func (b *ReportBuilder) conclusion(combined model.CombinedAnalysis) string {
	positive := 0
	total := 0

	if sa := combined.SentimentAnalysis; sa != nil && sa.Analysis != nil {
		if sa.Analysis.AverageRating >= 4 {
			positive++
		}
		total++
	}

	if mt := combined.MarketTrends; mt != nil && mt.DemandAnalysis != nil {
		if mt.DemandAnalysis.DemandTrend == "growing" {
			positive++
		}
		total++
	}

	outlook := "cautiously optimistic"
	if float64(positive) > float64(total)/2 {
		outlook = "positive"
	}

	return fmt.Sprintf("Based on comprehensive analysis, the market outlook is %s. "+
		"The product shows strong potential with opportunities for growth. "+
		"Strategic implementation of recommendations will be crucial for success.", outlook)
}

// topAspect picks the most frequent aspect, breaking ties alphabetically.
func topAspect(counts map[string]int) string {
	best := ""
	bestCount := -1
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < best) {
			best = name
			bestCount = count
		}
	}
	return best
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func joinPipe(points []string) string {
	out := ""
	for i, p := range points {
		if i > 0 {
			out += " | "
		}
		out += p
	}
	return out
}
