package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/market-analysis-agent/server/internal/analysis/graph/nodes"
	"github.com/market-analysis-agent/server/internal/analysis/graph/observers"
	"github.com/market-analysis-agent/server/internal/analysis/model"
	"github.com/market-analysis-agent/server/internal/analysis/tools"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

// Runner executes one analysis run end-to-end.
type Runner interface {
	Run(ctx context.Context, request string) *model.RunResult
}

// Config holds everything needed to compose the analysis pipeline.
type Config struct {
	Scraper   tools.ListingFetcher
	Sentiment tools.SentimentAnalyzer
	Market    tools.MarketAnalyzer
	Report    tools.ReportGenerator

	ScrapeMaxResults int // defaults to 3
	ReviewCount      int // defaults to 20
	MarketPeriodDays int // defaults to 90
}

func (c *Config) applyDefaults() {
	if c.ScrapeMaxResults <= 0 {
		c.ScrapeMaxResults = 3
	}
	if c.ReviewCount <= 0 {
		c.ReviewCount = 20
	}
	if c.MarketPeriodDays <= 0 {
		c.MarketPeriodDays = 90
	}
}

// GraphBuilder handles the construction of the analysis pipeline graph.
type GraphBuilder struct {
	config *Config
	graph  *compose.Graph[model.AnalysisQuery, *model.RunResult]
}

type graphRunner struct {
	runnable compose.Runnable[model.AnalysisQuery, *model.RunResult]
}

func (r *graphRunner) Run(ctx context.Context, request string) *model.RunResult {
	logx.Info().Str("request", request).Msg("Starting market analysis")

	out, err := r.runnable.Invoke(ctx, model.AnalysisQuery{Request: request},
		compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		logx.Error().Err(err).Msg("Workflow execution error")
		return &model.RunResult{Status: model.StatusError, Error: err.Error()}
	}
	if out == nil {
		return &model.RunResult{Status: model.StatusError, Error: "workflow produced no result"}
	}
	return out
}

// BuildAnalysisGraph validates the config, builds the five-node pipeline,
// compiles it, and returns a Runner.
func BuildAnalysisGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Scraper == nil || cfg.Sentiment == nil || cfg.Market == nil || cfg.Report == nil {
		return nil, fmt.Errorf("analysis tools are not properly initialized")
	}
	cfg.applyDefaults()

	builder := &GraphBuilder{
		config: &cfg,
		graph: compose.NewGraph[model.AnalysisQuery, *model.RunResult](
			compose.WithGenLocalState(func(ctx context.Context) *model.WorkflowState {
				return &model.WorkflowState{CurrentStep: "start"}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	runnable, err := builder.compile(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Analysis graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// addNodes adds the five pipeline steps, each with a pre-handler that marks
// the current step on the run state.
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeAnalyzeRequest,
		nodes.NewAnalyzeRequestNode(),
		compose.WithStatePreHandler(nodes.NewStepPreHandler[model.AnalysisQuery](nodes.NodeAnalyzeRequest)),
	)

	b.graph.AddLambdaNode(nodes.NodeScrapeProducts,
		nodes.NewScrapeProductsNode(b.config.Scraper, b.config.ScrapeMaxResults),
		compose.WithStatePreHandler(nodes.NewStepPreHandler[string](nodes.NodeScrapeProducts)),
	)

	b.graph.AddLambdaNode(nodes.NodeAnalyzeSentiment,
		nodes.NewAnalyzeSentimentNode(b.config.Sentiment, b.config.ReviewCount),
		compose.WithStatePreHandler(nodes.NewStepPreHandler[string](nodes.NodeAnalyzeSentiment)),
	)

	b.graph.AddLambdaNode(nodes.NodeAnalyzeMarket,
		nodes.NewAnalyzeMarketNode(b.config.Market, b.config.MarketPeriodDays),
		compose.WithStatePreHandler(nodes.NewStepPreHandler[string](nodes.NodeAnalyzeMarket)),
	)

	b.graph.AddLambdaNode(nodes.NodeGenerateReport,
		nodes.NewGenerateReportNode(b.config.Report),
		compose.WithStatePreHandler(nodes.NewStepPreHandler[string](nodes.NodeGenerateReport)),
	)
}

// addEdges wires the straight five-step chain. No branches: a step failure is
// recorded on the state and the remaining steps still run.
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeAnalyzeRequest},
		{nodes.NodeAnalyzeRequest, nodes.NodeScrapeProducts},
		{nodes.NodeScrapeProducts, nodes.NodeAnalyzeSentiment},
		{nodes.NodeAnalyzeSentiment, nodes.NodeAnalyzeMarket},
		{nodes.NodeAnalyzeMarket, nodes.NodeGenerateReport},
		{nodes.NodeGenerateReport, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// compile finalizes and compiles the graph.
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.AnalysisQuery, *model.RunResult], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(len(nodes.Steps)+2))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
