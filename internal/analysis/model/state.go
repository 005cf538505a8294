package model

// WorkflowState stores per-run state for the analysis graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
type WorkflowState struct {
	Messages      []string // ordered log of textual pipeline events
	ProductName   string
	ProductData   *ScrapeResult
	SentimentData *SentimentResult
	MarketData    *MarketResult
	FinalReport   *ReportResult
	Err           string
	ErrStep       string // step that first recorded Err
	CurrentStep   string

	// Accumulated total LLM cost (USD) across model invocations for this run
	TotalCostUSD float64
}

// RecordError stores the first failure of the run. Later steps keep running
// against partial state; only the first error is reported to the caller.
func (s *WorkflowState) RecordError(step string, err error) {
	if s.Err != "" || err == nil {
		return
	}
	s.Err = err.Error()
	s.ErrStep = step
}

// AnalysisQuery represents the input for a pipeline run.
type AnalysisQuery struct {
	Request string `json:"request"`
}

// RunResult is the terminal outcome of a pipeline run.
type RunResult struct {
	Status         string        `json:"status"`
	Report         *ReportResult `json:"report,omitempty"`
	Error          string        `json:"error,omitempty"`
	Step           string        `json:"step,omitempty"`
	StepsCompleted []string      `json:"steps_completed,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
