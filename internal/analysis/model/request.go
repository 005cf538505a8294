package model

import "time"

// AnalysisRequest is the body of POST /analyze.
type AnalysisRequest struct {
	ProductName string `json:"product_name"`
	// AnalysisType is accepted for API compatibility but does not change
	// the pipeline: quick, detailed, or comprehensive.
	AnalysisType string `json:"analysis_type"`
}

// AnalysisResponse acknowledges an accepted analysis request.
type AnalysisResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	ResultURL string `json:"result_url,omitempty"`
}

// Record statuses follow the processing → completed|failed lifecycle.
const (
	RecordProcessing = "processing"
	RecordCompleted  = "completed"
	RecordFailed     = "failed"
)

// AnalysisRecord is the stored state of one analysis request.
type AnalysisRecord struct {
	Status      string          `json:"status"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	Request     AnalysisRequest `json:"request"`
	Result      *RunResult      `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
}
