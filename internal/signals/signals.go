// Package signals derives discrete BUY/HOLD decisions for screening
// candidates and SELL decisions for open positions.
package signals

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantify701/quantify/internal/contracts"
)

// Minimum number of true buy conditions for a BUY decision.
const minBuyConditions = 3

// Config holds the exit rule thresholds.
type Config struct {
	StopLossPct    float64
	TakeProfitPct  float64
	MinHoldingDays int
}

// DefaultConfig returns the standard exit thresholds.
func DefaultConfig() Config {
	return Config{
		StopLossPct:    0.05,
		TakeProfitPct:  0.15,
		MinHoldingDays: 5,
	}
}

// Generator evaluates buy and sell rules.
type Generator struct {
	cfg Config
}

// NewGenerator creates a Generator with the given exit thresholds.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Buy evaluates the five buy conditions on the latest row and returns
// the decision with a trace of which conditions fired. Three or more
// true conditions produce a BUY.
func (g *Generator) Buy(series *contracts.IndicatorSeries) (bool, string) {
	row := series.Last()
	if row == nil {
		return false, "No data available"
	}

	var reasons []string
	count := 0

	if rsi, ok := contracts.Deref(row.Rsi14); ok && rsi >= 30 && rsi <= 50 {
		count++
		reasons = append(reasons, fmt.Sprintf("RSI at %.1f (oversold/neutral)", rsi))
	}

	price := row.Close
	sma20, ok20 := contracts.Deref(row.Sma20)
	sma50, ok50 := contracts.Deref(row.Sma50)
	if ok20 && ok50 {
		if price > sma20 && sma20 > sma50 {
			count++
			reasons = append(reasons, "Price above moving averages (uptrend)")
		} else if price > sma20 {
			count++
			reasons = append(reasons, "Price above 20-day MA")
		}
	}

	macd, okM := contracts.Deref(row.Macd)
	signal, okS := contracts.Deref(row.MacdSignal)
	if okM && okS && macd > signal {
		count++
		reasons = append(reasons, "MACD bullish crossover")
	}

	if momentum, ok := contracts.Deref(row.Momentum20); ok && momentum > 0 {
		count++
		reasons = append(reasons, fmt.Sprintf("Positive momentum (%.1f%%)", momentum*100))
	}

	if ratio, ok := contracts.Deref(row.VolumeRatio); ok && ratio >= 1.0 {
		count++
		reasons = append(reasons, "Above-average volume")
	}

	reason := "Insufficient buy signals"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}

	return count >= minBuyConditions, reason
}

// Sell evaluates exit rules for an open position against the current
// price and the latest indicator row (may be nil when no fresh series
// is available).
//
// Stop loss overrides the minimum holding period. Take profit is
// suppressed while the holding period has not elapsed. Reversal checks
// (RSI overbought, price under the 20-day average) fire regardless of
// the holding period.
func (g *Generator) Sell(position *contracts.Position, currentPrice float64, row *contracts.IndicatorRow, now time.Time) (bool, string) {
	if position == nil || position.EntryPrice == 0 {
		return false, "Invalid position data"
	}

	returnPct := position.ReturnPct(currentPrice)

	var reasons []string
	shouldSell := false

	stopTriggered := returnPct <= -g.cfg.StopLossPct
	if stopTriggered {
		shouldSell = true
		reasons = append(reasons, fmt.Sprintf("Stop loss triggered (%.1f%%)", returnPct*100))
	} else if returnPct >= g.cfg.TakeProfitPct {
		shouldSell = true
		reasons = append(reasons, fmt.Sprintf("Take profit target reached (%.1f%%)", returnPct*100))
	}

	holdingDays := position.HoldingDays(now)
	gateBlocked := holdingDays < g.cfg.MinHoldingDays && !stopTriggered
	if gateBlocked && shouldSell {
		// Take profit waits out the holding period
		shouldSell = false
		reasons = reasons[:0]
	}

	if row != nil {
		if rsi, ok := contracts.Deref(row.Rsi14); ok && rsi > 70 {
			shouldSell = true
			reasons = append(reasons, fmt.Sprintf("RSI overbought (%.1f)", rsi))
		}

		if sma20, ok := contracts.Deref(row.Sma20); ok && row.Close < sma20 {
			shouldSell = true
			reasons = append(reasons, "Price below 20-day MA (downtrend)")
		}
	}

	if !shouldSell {
		if gateBlocked {
			return false, fmt.Sprintf("Minimum holding period not met (%d days)", holdingDays)
		}
		return false, "No sell signal"
	}

	return true, strings.Join(reasons, "; ")
}
