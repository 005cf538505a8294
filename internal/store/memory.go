package store

import (
	"context"
	"net/http"
	"sync"

	errx "github.com/market-analysis-agent/server/internal/core/error"

	"github.com/market-analysis-agent/server/internal/analysis/model"
)

// MemoryRepository keeps records in process memory. Records survive only as
// long as the process does, which is the default for a single-instance demo.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]model.AnalysisRecord
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]model.AnalysisRecord)}
}

// Save stores a copy of the record under the request ID, overwriting any
// previous state for that ID.
func (r *MemoryRepository) Save(_ context.Context, requestID string, record *model.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[requestID] = *record
	return nil
}

// Get returns a copy of the stored record, or ErrNotFound for unknown IDs.
func (r *MemoryRepository) Get(_ context.Context, requestID string) (*model.AnalysisRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[requestID]
	if !ok {
		return nil, errx.New(ErrNotFound, http.StatusNotFound, errx.RedisNotFoundMessage)
	}
	return &record, nil
}
