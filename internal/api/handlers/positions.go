package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/pkg/logger"
)

// PositionHandler handles portfolio position endpoints
type PositionHandler struct {
	repo   contracts.PositionRepository
	logger *logger.Logger
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(repo contracts.PositionRepository, log *logger.Logger) *PositionHandler {
	return &PositionHandler{repo: repo, logger: log}
}

// List returns all open positions
// GET /api/positions
func (h *PositionHandler) List(w http.ResponseWriter, r *http.Request) {
	positions, err := h.repo.ListOpenPositions(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list positions")
		respondError(w, http.StatusInternalServerError, "failed to list positions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(positions),
		"positions": positions,
	})
}

// createPositionRequest is the body accepted by the create endpoint.
type createPositionRequest struct {
	Symbol     string  `json:"symbol"`
	Shares     int64   `json:"shares"`
	EntryPrice float64 `json:"entry_price"`
	Strategy   string  `json:"strategy"`
}

// Create opens a new position
// POST /api/positions
func (h *PositionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" || req.Shares <= 0 || req.EntryPrice <= 0 {
		respondError(w, http.StatusBadRequest, "symbol, shares and entry_price are required")
		return
	}
	if req.Strategy == "" {
		req.Strategy = "Default"
	}

	position := &contracts.Position{
		Symbol:     req.Symbol,
		Shares:     req.Shares,
		EntryPrice: req.EntryPrice,
		EntryDate:  time.Now().UTC(),
		Strategy:   req.Strategy,
	}

	if err := h.repo.CreatePosition(r.Context(), position); err != nil {
		h.logger.WithError(err).WithField("symbol", req.Symbol).Error("Failed to create position")
		respondError(w, http.StatusInternalServerError, "failed to create position")
		return
	}

	respondJSON(w, http.StatusCreated, position)
}

// closePositionRequest is the body accepted by the close endpoint.
type closePositionRequest struct {
	ExitPrice float64 `json:"exit_price"`
	Reason    string  `json:"reason"`
}

// Close closes an open position and records the exit trade
// POST /api/positions/{id}/close
func (h *PositionHandler) Close(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid position id")
		return
	}

	var req closePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ExitPrice <= 0 {
		respondError(w, http.StatusBadRequest, "exit_price is required")
		return
	}

	closedAt := time.Now().UTC()
	if err := h.repo.ClosePosition(r.Context(), id, req.ExitPrice, closedAt); err != nil {
		h.logger.WithError(err).WithField("position_id", id).Error("Failed to close position")
		respondError(w, http.StatusNotFound, "open position not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":         id,
		"exit_price": req.ExitPrice,
		"closed_at":  closedAt,
	})
}

// Trades lists recent trade history
// GET /api/trades?symbol=AAPL&limit=20
func (h *PositionHandler) Trades(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.URL.Query().Get("symbol"))
	limit := intQuery(r, "limit", 50)

	trades, err := h.repo.ListTrades(r.Context(), symbol, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list trades")
		respondError(w, http.StatusInternalServerError, "failed to list trades")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(trades),
		"trades": trades,
	})
}
