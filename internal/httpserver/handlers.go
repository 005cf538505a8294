package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/market-analysis-agent/server/internal/analysis/graph"
	"github.com/market-analysis-agent/server/internal/analysis/model"
	errx "github.com/market-analysis-agent/server/internal/core/error"
	"github.com/market-analysis-agent/server/internal/store"
	logx "github.com/market-analysis-agent/server/pkg/logger"
)

const (
	serviceName    = "Market Analysis Agent"
	serviceVersion = "1.0.0"

	demoProduct = "iPhone 17 Pro Max"

	defaultAnalysisType = "comprehensive"
)

// Handler exposes the analysis workflow over HTTP.
type Handler struct {
	runner           graph.Runner
	repo             store.ResultRepository
	apiKeyConfigured bool
}

func NewHandler(runner graph.Runner, repo store.ResultRepository, apiKeyConfigured bool) *Handler {
	return &Handler{
		runner:           runner,
		repo:             repo,
		apiKeyConfigured: apiKeyConfigured,
	}
}

// RegisterRoutes attaches all endpoints to the router.
//   - GET  /                     - Service metadata
//   - GET  /health               - Health probe
//   - POST /analyze              - Submit an analysis request
//   - GET  /results/{request_id} - Fetch a previously submitted analysis
//   - GET  /demo                 - Run a synchronous demo analysis
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/analyze", h.Analyze).Methods(http.MethodPost)
	r.HandleFunc("/results/{request_id}", h.Results).Methods(http.MethodGet)
	r.HandleFunc("/demo", h.Demo).Methods(http.MethodGet)
}

// Root handles GET / and describes the service.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"version": serviceVersion,
		"status":  "running",
		"endpoints": map[string]string{
			"analyze": "POST /analyze",
			"results": "GET /results/{request_id}",
			"health":  "GET /health",
			"demo":    "GET /demo",
		},
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":                    "healthy",
		"timestamp":                 time.Now().UTC().Format(time.RFC3339),
		"google_api_key_configured": h.apiKeyConfigured,
	})
}

// Analyze handles POST /analyze. The workflow runs in the background; the
// response carries the request ID used to poll /results.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductName == "" {
		writeError(w, http.StatusBadRequest, "product_name is required")
		return
	}
	if req.AnalysisType == "" {
		req.AnalysisType = defaultAnalysisType
	}

	requestID := uuid.NewString()
	now := time.Now().UTC()
	record := model.AnalysisRecord{
		Status:    model.RecordProcessing,
		StartedAt: now,
		Request:   req,
	}
	if err := h.repo.Save(r.Context(), requestID, &record); err != nil {
		logx.Error().Err(err).Str("requestID", requestID).Msg("failed to save processing record")
		writeError(w, http.StatusInternalServerError, errx.SystemErrorMessage)
		return
	}

	logx.Info().Str("requestID", requestID).Str("product", req.ProductName).Msg("analysis accepted")

	// The request context dies with the response, so the workflow runs on
	// its own background context.
	go h.runAnalysis(context.Background(), requestID, req)

	writeJSON(w, http.StatusOK, model.AnalysisResponse{
		RequestID: requestID,
		Status:    model.RecordProcessing,
		Message:   fmt.Sprintf("Analysis started for %s", req.ProductName),
		ResultURL: "/results/" + requestID,
	})
}

func (h *Handler) runAnalysis(ctx context.Context, requestID string, req model.AnalysisRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			logx.Error().Str("requestID", requestID).Interface("panic", rec).Msg("analysis panicked")
			h.saveFinal(ctx, requestID, req, nil, fmt.Sprintf("panic: %v", rec))
		}
	}()

	result := h.runner.Run(ctx, "analyze "+req.ProductName)
	h.saveFinal(ctx, requestID, req, result, "")
}

func (h *Handler) saveFinal(ctx context.Context, requestID string, req model.AnalysisRequest, result *model.RunResult, failure string) {
	now := time.Now().UTC()
	record := model.AnalysisRecord{
		StartedAt:   now,
		CompletedAt: &now,
		Request:     req,
	}
	if prev, err := h.repo.Get(ctx, requestID); err == nil {
		record.StartedAt = prev.StartedAt
	}

	if failure != "" {
		record.Status = model.RecordFailed
		record.Error = failure
	} else {
		record.Status = model.RecordCompleted
		record.Result = result
	}

	if err := h.repo.Save(ctx, requestID, &record); err != nil {
		logx.Error().Err(err).Str("requestID", requestID).Msg("failed to save final record")
		return
	}
	logx.Info().Str("requestID", requestID).Str("status", record.Status).Msg("analysis finished")
}

// Results handles GET /results/{request_id}.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["request_id"]

	record, err := h.repo.Get(r.Context(), requestID)
	if err != nil {
		status := errx.StatusOf(err)
		if status == http.StatusNotFound {
			writeError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		logx.Error().Err(err).Str("requestID", requestID).Msg("failed to load analysis record")
		writeError(w, status, errx.SystemErrorMessage)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Demo handles GET /demo. It runs the workflow synchronously for a fixed
// product so the service can be exercised without crafting a request.
func (h *Handler) Demo(w http.ResponseWriter, r *http.Request) {
	logx.Info().Str("product", demoProduct).Msg("running demo analysis")

	result := h.runner.Run(r.Context(), "analyze "+demoProduct)
	writeJSON(w, http.StatusOK, map[string]any{
		"demo":    true,
		"product": demoProduct,
		"result":  result,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"detail": message})
}
