// Package store keeps analysis records between submission and retrieval.
// Records follow the processing → completed|failed lifecycle: one initial
// write and exactly one update per request.
package store

import (
	"context"
	"errors"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

// ErrNotFound reports an unknown request ID.
var ErrNotFound = errors.New("analysis not found")

type ResultRepository interface {
	Save(ctx context.Context, requestID string, record *model.AnalysisRecord) error
	Get(ctx context.Context, requestID string) (*model.AnalysisRecord, error)
}
