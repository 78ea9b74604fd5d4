package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/screening"
	"github.com/quantify701/quantify/pkg/logger"
)

// Evaluator is the screening engine surface the handlers depend on.
type Evaluator interface {
	EvaluateUniverse(ctx context.Context, symbols []string, criteria contracts.FilterCriteria) ([]contracts.ScoredCandidate, error)
	EvaluateSingle(ctx context.Context, symbol string, criteria contracts.FilterCriteria) (*contracts.ScoredCandidate, *contracts.Rejection, error)
	FetchSeries(ctx context.Context, symbol string) (*contracts.IndicatorSeries, error)
}

// ScreenHandler handles screening API endpoints
type ScreenHandler struct {
	evaluator Evaluator
	scans     contracts.ScanRepository
	logger    *logger.Logger
}

// NewScreenHandler creates a new screening handler. scans may be nil
// when snapshot persistence is disabled.
func NewScreenHandler(evaluator Evaluator, scans contracts.ScanRepository, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		evaluator: evaluator,
		scans:     scans,
		logger:    log,
	}
}

// ScreenResponse is the payload returned by the screening endpoints.
type ScreenResponse struct {
	Strategy   string                      `json:"strategy"`
	Count      int                         `json:"count"`
	Candidates []contracts.ScoredCandidate `json:"candidates"`
}

// Screen runs a preset screen over the default universe
// GET /api/screen?strategy=Momentum&limit=10
func (h *ScreenHandler) Screen(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "Default"
	}

	criteria, ok := screening.Preset(strategy)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown strategy: "+strategy)
		return
	}

	h.runScreen(w, r, strategy, screening.DefaultUniverse(), criteria)
}

// customScreenRequest is the body accepted by the POST screen endpoint.
type customScreenRequest struct {
	Symbols  []string                 `json:"symbols,omitempty"`
	Criteria contracts.FilterCriteria `json:"criteria"`
}

// ScreenCustom runs a screen with caller-supplied criteria
// POST /api/screen
func (h *ScreenHandler) ScreenCustom(w http.ResponseWriter, r *http.Request) {
	var req customScreenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	symbols := req.Symbols
	if len(symbols) == 0 {
		symbols = screening.DefaultUniverse()
	}

	name := req.Criteria.Name
	if name == "" {
		name = "Custom"
	}

	h.runScreen(w, r, name, symbols, req.Criteria)
}

func (h *ScreenHandler) runScreen(w http.ResponseWriter, r *http.Request, strategy string, symbols []string, criteria contracts.FilterCriteria) {
	candidates, err := h.evaluator.EvaluateUniverse(r.Context(), symbols, criteria)
	if err != nil {
		if errors.Is(err, contracts.ErrInvalidCriteria) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, contracts.ErrSourceUnavailable) {
			respondError(w, http.StatusBadGateway, "market data source unavailable")
			return
		}
		h.logger.WithError(err).Error("Screen failed")
		respondError(w, http.StatusInternalServerError, "screen failed")
		return
	}

	if limit := intQuery(r, "limit", 0); limit > 0 && limit < len(candidates) {
		candidates = candidates[:limit]
	}

	respondJSON(w, http.StatusOK, ScreenResponse{
		Strategy:   strategy,
		Count:      len(candidates),
		Candidates: candidates,
	})
}

// Presets lists the available screening strategies
// GET /api/presets
func (h *ScreenHandler) Presets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategies": screening.PresetNames(),
	})
}

// LatestScan returns the most recent persisted snapshot for a strategy
// GET /api/scans/latest?strategy=Default
func (h *ScreenHandler) LatestScan(w http.ResponseWriter, r *http.Request) {
	if h.scans == nil {
		respondError(w, http.StatusNotFound, "scan persistence is disabled")
		return
	}

	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "Default"
	}

	entries, err := h.scans.LatestScan(r.Context(), strategy)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load scan snapshot")
		respondError(w, http.StatusInternalServerError, "failed to load snapshot")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"strategy": strategy,
		"count":    len(entries),
		"entries":  entries,
	})
}
