package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/market-analysis-agent/server/internal/analysis/graph"
	"github.com/market-analysis-agent/server/internal/analysis/model"
	"github.com/market-analysis-agent/server/internal/analysis/tools"
	"github.com/market-analysis-agent/server/internal/core"
	"github.com/market-analysis-agent/server/internal/httpserver"
	"github.com/market-analysis-agent/server/internal/store"
	logx "github.com/market-analysis-agent/server/pkg/logger"
	pkgredis "github.com/market-analysis-agent/server/pkg/redis"
)

// AppConfig defines all configurable parameters of the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	// HTTP server
	Host string `envconfig:"API_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"API_PORT" default:"8000"`

	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// LLM provider. The key is optional: without it the workflow still runs
	// and reports the missing credential in the scraping step.
	APIKey  string `envconfig:"GOOGLE_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Infrastructure
	Redis pkgredis.Config

	// Workflow configs
	Scraper model.ScraperConfig
	Review  model.ReviewModelConfig
	Market  model.MarketConfig
	Results model.ResultStoreConfig
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Environment),
		Level:       cfg.LogLevel,
	})

	repo, err := buildResultRepository(&cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise result store")
	}

	chatModel, err := tools.NewReviewChatModel(ctx, cfg.APIKey, cfg.BaseURL, cfg.Review)
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to initialise review chat model")
	}

	runner, err := graph.BuildAnalysisGraph(ctx, graph.Config{
		Scraper:          tools.NewGeminiListingFetcher(cfg.APIKey, cfg.BaseURL, cfg.Scraper),
		Sentiment:        tools.NewReviewSentimentAnalyzer(chatModel, cfg.Review),
		Market:           tools.NewSyntheticMarketAnalyzer(cfg.Market),
		Report:           tools.NewReportBuilder(),
		ScrapeMaxResults: cfg.Scraper.MaxResults,
		ReviewCount:      cfg.Review.ReviewCount,
		MarketPeriodDays: cfg.Market.TimePeriodDays,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build analysis graph")
	}

	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	srv := httpserver.NewServer(addr, httpserver.NewHandler(runner, repo, cfg.APIKey != ""))

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logx.Fatal().Err(err).Msg("http server failed")
		}
	case <-runCtx.Done():
		logx.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logx.Error().Err(err).Msg("shutdown error")
		}
	}
}

func buildResultRepository(cfg *AppConfig) (store.ResultRepository, error) {
	if !cfg.Redis.Enabled() {
		logx.Info().Msg("using in-memory result store")
		return store.NewMemoryRepository(), nil
	}

	rdb, err := cfg.Redis.New()
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(cfg.Results.TTL)
	if err != nil {
		return nil, err
	}

	logx.Info().Dur("ttl", ttl).Msg("using redis result store")
	return store.NewRedisRepository(rdb, ttl), nil
}
