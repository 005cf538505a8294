package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/market-analysis-agent/server/internal/analysis/model"
	"github.com/market-analysis-agent/server/internal/analysis/tools"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// Pipeline step names, in execution order.
const (
	NodeAnalyzeRequest   = "analyze_request"
	NodeScrapeProducts   = "scrape_products"
	NodeAnalyzeSentiment = "analyze_sentiment"
	NodeAnalyzeMarket    = "analyze_market"
	NodeGenerateReport   = "generate_report"
)

// Steps lists the full pipeline for the steps_completed field.
var Steps = []string{
	NodeAnalyzeRequest,
	NodeScrapeProducts,
	NodeAnalyzeSentiment,
	NodeAnalyzeMarket,
	NodeGenerateReport,
}

// NewStepPreHandler marks the current step and logs the transition. Shared by
// every node; state mutation happens only inside this handler.
func NewStepPreHandler[I any](step string) func(context.Context, I, *model.WorkflowState) (I, error) {
	return func(ctx context.Context, in I, s *model.WorkflowState) (I, error) {
		s.CurrentStep = step
		logx.Info().Str("step", step).Msg("Pipeline step started")
		return in, nil
	}
}

// NewAnalyzeRequestNode extracts the product name from the request text. The
// extracted name is passed down the chain; the rest of the run state lives in
// WorkflowState.
func NewAnalyzeRequestNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, input model.AnalysisQuery) (string, error) {
		content := strings.TrimSpace(input.Request)

		productName := content
		if idx := strings.LastIndex(strings.ToLower(content), "analyze"); idx >= 0 {
			productName = strings.TrimSpace(content[idx+len("analyze"):])
		}

		err := compose.ProcessState(ctx, func(_ context.Context, s *model.WorkflowState) error {
			if content == "" {
				s.RecordError(NodeAnalyzeRequest, fmt.Errorf("No request message found"))
				return nil
			}
			s.ProductName = productName
			s.Messages = append(s.Messages, "Analyzing user request")
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to access state: %w", err)
		}

		logx.Info().Str("product", productName).Msg("Product to analyze")
		return productName, nil
	})
}

// NewScrapeProductsNode fetches listings for the product. Fetch failures are
// recorded on the state; the pipeline keeps going with an error-status result.
func NewScrapeProductsNode(fetcher tools.ListingFetcher, maxResults int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, productName string) (string, error) {
		name := productName
		if name == "" {
			name = "product"
		}

		result, err := fetcher.Fetch(ctx, name, maxResults)

		stateErr := compose.ProcessState(ctx, func(_ context.Context, s *model.WorkflowState) error {
			if err != nil {
				logx.Error().Err(err).Str("step", NodeScrapeProducts).Msg("Tool execution failed")
				s.RecordError(NodeScrapeProducts, err)
				s.ProductData = &model.ScrapeResult{
					Status:   model.StatusError,
					Error:    err.Error(),
					Products: []model.Product{},
				}
				return nil
			}
			s.ProductData = result
			s.Messages = append(s.Messages, fmt.Sprintf("Found %d products", result.Count))
			return nil
		})
		if stateErr != nil {
			return "", fmt.Errorf("failed to access state: %w", stateErr)
		}

		return productName, nil
	})
}

// NewAnalyzeSentimentNode fabricates reviews and aggregates sentiment.
func NewAnalyzeSentimentNode(analyzer tools.SentimentAnalyzer, reviewCount int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, productName string) (string, error) {
		name := productName
		if name == "" {
			name = "Product"
		}

		result, err := analyzer.Analyze(ctx, name, reviewCount)

		stateErr := compose.ProcessState(ctx, func(_ context.Context, s *model.WorkflowState) error {
			if err != nil {
				logx.Error().Err(err).Str("step", NodeAnalyzeSentiment).Msg("Tool execution failed")
				s.RecordError(NodeAnalyzeSentiment, err)
				return nil
			}
			s.SentimentData = result
			s.TotalCostUSD += result.CostUSD
			s.Messages = append(s.Messages, "Sentiment analysis completed")
			return nil
		})
		if stateErr != nil {
			return "", fmt.Errorf("failed to access state: %w", stateErr)
		}

		return productName, nil
	})
}

// NewAnalyzeMarketNode fabricates market trends.
func NewAnalyzeMarketNode(analyzer tools.MarketAnalyzer, timePeriodDays int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, productName string) (string, error) {
		name := productName
		if name == "" {
			name = "Product"
		}

		result, err := analyzer.Analyze(ctx, name, "", timePeriodDays)

		stateErr := compose.ProcessState(ctx, func(_ context.Context, s *model.WorkflowState) error {
			if err != nil {
				logx.Error().Err(err).Str("step", NodeAnalyzeMarket).Msg("Tool execution failed")
				s.RecordError(NodeAnalyzeMarket, err)
				return nil
			}
			s.MarketData = result
			s.Messages = append(s.Messages, "Market analysis completed")
			return nil
		})
		if stateErr != nil {
			return "", fmt.Errorf("failed to access state: %w", stateErr)
		}

		return productName, nil
	})
}

// NewGenerateReportNode assembles the final report and converts the run state
// into the terminal RunResult.
func NewGenerateReportNode(generator tools.ReportGenerator) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, productName string) (*model.RunResult, error) {
		var combined model.CombinedAnalysis
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.WorkflowState) error {
			combined = model.CombinedAnalysis{
				ProductAnalysis:   s.ProductData,
				SentimentAnalysis: s.SentimentData,
				MarketTrends:      s.MarketData,
			}
			return nil
		}); err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		result, err := generator.Generate(ctx, combined)

		var out *model.RunResult
		stateErr := compose.ProcessState(ctx, func(_ context.Context, s *model.WorkflowState) error {
			if err != nil {
				logx.Error().Err(err).Str("step", NodeGenerateReport).Msg("Tool execution failed")
				s.RecordError(NodeGenerateReport, err)
			} else {
				s.FinalReport = result
				s.Messages = append(s.Messages, "Report generation completed")
			}

			if s.Err != "" {
				out = &model.RunResult{
					Status: model.StatusError,
					Error:  s.Err,
					Step:   s.ErrStep,
				}
			} else {
				out = &model.RunResult{
					Status:         model.StatusSuccess,
					Report:         s.FinalReport,
					StepsCompleted: Steps,
				}
			}

			logx.Info().
				Str("status", out.Status).
				Int("events", len(s.Messages)).
				Float64("total_cost_usd", s.TotalCostUSD).
				Msg("Pipeline run finished")
			return nil
		})
		if stateErr != nil {
			return nil, fmt.Errorf("failed to access state: %w", stateErr)
		}

		return out, nil
	})
}
