package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/signals"
	"github.com/quantify701/quantify/internal/targets"
	"github.com/quantify701/quantify/pkg/logger"
)

// SignalHandler handles per-symbol signal and price-target endpoints
type SignalHandler struct {
	evaluator Evaluator
	generator *signals.Generator
	logger    *logger.Logger
}

// NewSignalHandler creates a new signal handler
func NewSignalHandler(evaluator Evaluator, generator *signals.Generator, log *logger.Logger) *SignalHandler {
	return &SignalHandler{
		evaluator: evaluator,
		generator: generator,
		logger:    log,
	}
}

// SignalResponse is the payload for the buy-signal endpoint.
type SignalResponse struct {
	Symbol       string   `json:"symbol"`
	CurrentPrice float64  `json:"current_price"`
	BuySignal    bool     `json:"buy_signal"`
	Reason       string   `json:"reason"`
	Rsi          *float64 `json:"rsi,omitempty"`
	Momentum     *float64 `json:"momentum,omitempty"`
	VolumeRatio  *float64 `json:"volume_ratio,omitempty"`
}

// Signal evaluates the buy conditions for one symbol
// GET /api/signal/{symbol}
func (h *SignalHandler) Signal(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	series, err := h.evaluator.FetchSeries(r.Context(), symbol)
	if err != nil {
		h.respondFetchError(w, symbol, err)
		return
	}

	last := series.Last()
	if last == nil {
		respondError(w, http.StatusNotFound, "no price data for "+symbol)
		return
	}

	buy, reason := h.generator.Buy(series)

	respondJSON(w, http.StatusOK, SignalResponse{
		Symbol:       symbol,
		CurrentPrice: last.Close,
		BuySignal:    buy,
		Reason:       reason,
		Rsi:          last.Rsi14,
		Momentum:     last.Momentum20,
		VolumeRatio:  last.VolumeRatio,
	})
}

// TargetsResponse is the payload for the price-target endpoint.
type TargetsResponse struct {
	Symbol       string                   `json:"symbol"`
	Strategy     string                   `json:"strategy"`
	CurrentPrice float64                  `json:"current_price"`
	Buy          contracts.BuyPriceAdvice `json:"buy"`
	Sell         contracts.SellTargets    `json:"sell"`
}

// Targets computes suggested entry and exit prices for one symbol
// GET /api/targets/{symbol}?strategy=Momentum&entry=182.50
func (h *SignalHandler) Targets(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = "Default"
	}

	series, err := h.evaluator.FetchSeries(r.Context(), symbol)
	if err != nil {
		h.respondFetchError(w, symbol, err)
		return
	}

	last := series.Last()
	if last == nil {
		respondError(w, http.StatusNotFound, "no price data for "+symbol)
		return
	}

	// Sell targets anchor on the entry price, defaulting to current.
	entry := last.Close
	if raw := r.URL.Query().Get("entry"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "invalid entry price")
			return
		}
		entry = parsed
	}

	respondJSON(w, http.StatusOK, TargetsResponse{
		Symbol:       symbol,
		Strategy:     strategy,
		CurrentPrice: last.Close,
		Buy:          targets.SuggestedBuyPrice(series, strategy),
		Sell:         targets.SellTargets(series, entry, strategy),
	})
}

func (h *SignalHandler) respondFetchError(w http.ResponseWriter, symbol string, err error) {
	if errors.Is(err, contracts.ErrSourceUnavailable) {
		respondError(w, http.StatusBadGateway, "market data source unavailable")
		return
	}
	h.logger.WithError(err).WithField("symbol", symbol).Error("Failed to fetch series")
	respondError(w, http.StatusInternalServerError, "failed to fetch data for "+symbol)
}
