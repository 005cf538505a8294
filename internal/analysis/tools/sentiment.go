package tools

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sort"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/market-analysis-agent/server/internal/analysis/graph/prompts"
	"github.com/market-analysis-agent/server/internal/analysis/model"
	"github.com/market-analysis-agent/server/internal/analysis/parsers"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// ErrNoReviews is returned by aggregation when the review set is empty.
var ErrNoReviews = errors.New("No reviews to analyze")

// ReviewSentimentAnalyzer fabricates product reviews with a Gemini chat
// model (falling back to templates when the model is unavailable or returns
// garbage) and aggregates them into sentiment metrics.
type ReviewSentimentAnalyzer struct {
	chatModel einomodel.BaseChatModel // nil means template fallback only
	modelName string
	rng       *rand.Rand
}

func NewReviewSentimentAnalyzer(chatModel einomodel.BaseChatModel, cfg model.ReviewModelConfig) *ReviewSentimentAnalyzer {
	return &ReviewSentimentAnalyzer{
		chatModel: chatModel,
		modelName: cfg.Model,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (a *ReviewSentimentAnalyzer) Analyze(ctx context.Context, productName string, reviewCount int) (*model.SentimentResult, error) {
	reviews, cost := a.generateReviews(ctx, productName, reviewCount)

	metrics, err := aggregateReviews(reviews)
	if err != nil {
		return &model.SentimentResult{
			Status: model.StatusError,
			Error:  err.Error(),
		}, nil
	}

	sampleSize := 3
	if len(reviews) < sampleSize {
		sampleSize = len(reviews)
	}

	return &model.SentimentResult{
		Status:        model.StatusSuccess,
		Product:       productName,
		Analysis:      metrics,
		ReviewCount:   len(reviews),
		ReviewsSample: reviews[:sampleSize],
		CostUSD:       cost,
	}, nil
}

// generateReviews asks the chat model for a review array; any failure falls
// back to the templates. Returns the reviews and the LLM cost in USD.
func (a *ReviewSentimentAnalyzer) generateReviews(ctx context.Context, productName string, count int) ([]model.Review, float64) {
	if a.chatModel == nil {
		return a.fallbackReviews(productName, count), 0
	}

	prompt, err := prompts.RenderReviewPrompt(ctx, productName, count)
	if err != nil {
		logx.Warn().Err(err).Msg("Failed to render review prompt")
		return a.fallbackReviews(productName, count), 0
	}

	out, err := a.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		logx.Warn().Err(err).Str("product", productName).Msg("Failed to generate reviews with Gemini")
		return a.fallbackReviews(productName, count), 0
	}

	cost := a.logUsageCost(out)

	reviews, err := parsers.ParseReviews(out.Content)
	if err != nil {
		logx.Warn().Err(err).Str("product", productName).Msg("Failed to parse generated reviews")
		return a.fallbackReviews(productName, count), cost
	}
	if len(reviews) == 0 {
		return a.fallbackReviews(productName, count), cost
	}
	if len(reviews) > count {
		reviews = reviews[:count]
	}
	return reviews, cost
}

func (a *ReviewSentimentAnalyzer) logUsageCost(out *schema.Message) float64 {
	if !model.CostEnabled() || out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return 0
	}
	usage := out.ResponseMeta.Usage
	pricing := model.ResolvePricing(a.modelName)
	inC, outC, totalC := model.ComputeCost(usage, pricing)
	logx.Debug().
		Str("model", a.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
	return totalC
}

// fallbackReviews cycles through the hardcoded templates with randomized
// helpful counts and verified flags, at most twice per template.
func (a *ReviewSentimentAnalyzer) fallbackReviews(productName string, count int) []model.Review {
	templates := reviewTemplates(productName)

	limit := count
	if max := len(templates) * 2; limit > max {
		limit = max
	}

	reviews := make([]model.Review, 0, limit)
	for i := 0; i < limit; i++ {
		review := templates[a.rng.Intn(len(templates))]
		review.HelpfulCount = 10 + a.rng.Intn(491)
		review.VerifiedPurchase = a.rng.Float64() > 0.2
		reviews = append(reviews, review)
	}
	return reviews
}

func reviewTemplates(productName string) []model.Review {
	return []model.Review{
		{
			Rating: 5,
			Title:  "Absolutely love it!",
			Text:   "The " + productName + " exceeded all my expectations. Build quality is exceptional and the features work perfectly.",
			Pros:   []string{"Excellent build quality", "Great features", "Fast delivery"},
			Cons:   []string{"Price is a bit high"},
		},
		{
			Rating: 4,
			Title:  "Good product with minor issues",
			Text:   "Overall happy with the " + productName + ". Works as advertised but has some minor quirks.",
			Pros:   []string{"Good performance", "Nice design", "Easy to use"},
			Cons:   []string{"Battery life could be better", "Occasional software bugs"},
		},
		{
			Rating: 3,
			Title:  "Average, nothing special",
			Text:   "The " + productName + " is okay but doesn't really stand out from competitors.",
			Pros:   []string{"Decent quality", "Fair price"},
			Cons:   []string{"Limited features", "Average performance", "Better alternatives available"},
		},
		{
			Rating: 2,
			Title:  "Disappointed",
			Text:   "Expected more from the " + productName + ". Multiple issues encountered.",
			Pros:   []string{"Good packaging"},
			Cons:   []string{"Poor build quality", "Doesn't work as advertised", "Customer service unhelpful"},
		},
		{
			Rating: 5,
			Title:  "Best purchase this year!",
			Text:   "The " + productName + " is exactly what I needed. Highly recommend to everyone.",
			Pros:   []string{"Perfect functionality", "Great value", "Excellent support"},
			Cons:   []string{},
		},
	}
}

// aggregateReviews computes sentiment metrics over a review set.
func aggregateReviews(reviews []model.Review) (*model.SentimentMetrics, error) {
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	total := len(reviews)
	sum := 0
	dist := model.SentimentDistribution{}
	verified := 0
	prosCount := map[string]int{}
	consCount := map[string]int{}

	for _, r := range reviews {
		rating := r.Rating
		if rating == 0 {
			rating = 3
		}
		sum += rating
		switch {
		case rating >= 4:
			dist.Positive++
		case rating == 3:
			dist.Neutral++
		default:
			dist.Negative++
		}
		if r.VerifiedPurchase {
			verified++
		}
		for _, p := range r.Pros {
			prosCount[p]++
		}
		for _, c := range r.Cons {
			consCount[c]++
		}
	}

	return &model.SentimentMetrics{
		AverageRating:         round2(float64(sum) / float64(total)),
		TotalReviews:          total,
		SentimentDistribution: dist,
		SentimentScore:        round1(float64(dist.Positive-dist.Negative) / float64(total) * 100),
		TopPositiveAspects:    topAspects(prosCount, 5),
		TopNegativeAspects:    topAspects(consCount, 5),
		RecommendationRate:    round1(float64(dist.Positive) / float64(total) * 100),
		VerifiedPurchaseRate:  round1(float64(verified) / float64(total) * 100),
	}, nil
}

// topAspects keeps the n most frequent aspects; ties break alphabetically so
// the output is stable.
func topAspects(counts map[string]int, n int) map[string]int {
	type aspect struct {
		name  string
		count int
	}
	aspects := make([]aspect, 0, len(counts))
	for name, count := range counts {
		aspects = append(aspects, aspect{name, count})
	}
	sort.Slice(aspects, func(i, j int) bool {
		if aspects[i].count != aspects[j].count {
			return aspects[i].count > aspects[j].count
		}
		return aspects[i].name < aspects[j].name
	})
	if len(aspects) > n {
		aspects = aspects[:n]
	}
	top := make(map[string]int, len(aspects))
	for _, a := range aspects {
		top[a.name] = a.count
	}
	return top
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
