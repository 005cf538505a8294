// Package tools implements the four analysis tools the pipeline sequences:
// listing fetch, sentiment fabrication, market trend fabrication, and report
// assembly. Tools never let expected failures escape: missing credentials,
// transport problems, and unparseable model output all come back as results
// with status "error". A non-nil error return is reserved for failures the
// tool could not convert into a result.
package tools

import (
	"context"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

type ListingFetcher interface {
	Fetch(ctx context.Context, productName string, maxResults int) (*model.ScrapeResult, error)
}

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, productName string, reviewCount int) (*model.SentimentResult, error)
}

type MarketAnalyzer interface {
	Analyze(ctx context.Context, productName, category string, timePeriodDays int) (*model.MarketResult, error)
}

type ReportGenerator interface {
	Generate(ctx context.Context, combined model.CombinedAnalysis) (*model.ReportResult, error)
}
