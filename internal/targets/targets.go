// Package targets derives suggested entry prices and exit levels for a
// scored candidate under a named strategy.
package targets

import (
	"fmt"
	"math"

	"github.com/quantify701/quantify/internal/contracts"
)

const (
	// Suggested buy price never leaves this band around current price.
	maxEntryDeviation = 0.10

	// Entry range half-width derived from volatility.
	minEntryRange     = 0.02
	maxEntryRange     = 0.05
	defaultEntryRange = 0.03

	supportLookback = 20

	minHoldDays     = 5
	maxHoldDays     = 90
	defaultHoldDays = 30
)

// strategyMultipliers shade the entry price by strategy temperament.
// Conservative styles bid under support, aggressive styles pay up.
var strategyMultipliers = map[string]float64{
	"Default":        1.00,
	"Conservative":   0.97,
	"Aggressive":     1.01,
	"Momentum":       1.02,
	"Value":          0.98,
	"Dividend Focus": 0.98,
}

// sellTier maps a volatility band to exit percentages. Wider bands and
// wider stops for more volatile names.
type sellTier struct {
	maxVolatility float64
	target        float64
	conservative  float64
	aggressive    float64
	stopLoss      float64
}

var sellTiers = []sellTier{
	{maxVolatility: 0.015, target: 0.08, conservative: 0.05, aggressive: 0.12, stopLoss: 0.04},
	{maxVolatility: 0.025, target: 0.12, conservative: 0.08, aggressive: 0.18, stopLoss: 0.05},
	{maxVolatility: 0.040, target: 0.16, conservative: 0.10, aggressive: 0.24, stopLoss: 0.07},
	{maxVolatility: math.MaxFloat64, target: 0.20, conservative: 0.12, aggressive: 0.30, stopLoss: 0.09},
}

// Fallbacks when volatility is absent.
var defaultTier = sellTier{target: 0.10, conservative: 0.06, aggressive: 0.15, stopLoss: 0.05}

// SuggestedBuyPrice derives an entry price from support levels, an RSI
// discount and the strategy multiplier, clamped to within 10% of the
// current price.
func SuggestedBuyPrice(series *contracts.IndicatorSeries, strategy string) contracts.BuyPriceAdvice {
	row := series.Last()
	if row == nil {
		return contracts.BuyPriceAdvice{Reasoning: "No price data"}
	}

	current := row.Close
	base, baseName := bestSupport(series, current)

	reasoning := fmt.Sprintf("Anchored to %s at %.2f", baseName, base)

	if rsi, ok := contracts.Deref(row.Rsi14); ok {
		switch {
		case rsi < 30:
			base *= 0.98
			reasoning += fmt.Sprintf("; oversold RSI %.1f, bidding lower", rsi)
		case rsi > 70:
			base *= 0.97
			reasoning += fmt.Sprintf("; overbought RSI %.1f, waiting for pullback", rsi)
		}
	}

	if mult, ok := strategyMultipliers[strategy]; ok && mult != 1.0 {
		base *= mult
		reasoning += fmt.Sprintf("; %s multiplier %.2f", strategy, mult)
	}

	price := clamp(base, current*(1-maxEntryDeviation), current*(1+maxEntryDeviation))

	halfRange := defaultEntryRange
	if vol, ok := contracts.Deref(row.Volatility20); ok {
		halfRange = clamp(2*vol, minEntryRange, maxEntryRange)
	}

	return contracts.BuyPriceAdvice{
		Price:     price,
		RangeLow:  price * (1 - halfRange),
		RangeHigh: price * (1 + halfRange),
		Reasoning: reasoning,
	}
}

// bestSupport returns the highest support level below current price,
// falling back to the current price when no support sits below it.
func bestSupport(series *contracts.IndicatorSeries, current float64) (float64, string) {
	row := series.Last()

	best := current
	name := "current price"

	consider := func(level float64, levelName string) {
		if level > 0 && level < current && (best == current || level > best) {
			best = level
			name = levelName
		}
	}

	if sma20, ok := contracts.Deref(row.Sma20); ok {
		consider(sma20, "20-day average")
	}
	if sma50, ok := contracts.Deref(row.Sma50); ok {
		consider(sma50, "50-day average")
	}
	if lower, ok := contracts.Deref(row.BbLower); ok {
		consider(lower, "lower Bollinger band")
	}
	if low, ok := rollingLow(series, supportLookback); ok {
		consider(low, "20-day low")
	}

	return best, name
}

// rollingLow returns the lowest Low over the trailing window.
func rollingLow(series *contracts.IndicatorSeries, window int) (float64, bool) {
	n := series.Len()
	if n == 0 {
		return 0, false
	}

	start := n - window
	if start < 0 {
		start = 0
	}

	low := math.MaxFloat64
	for i := start; i < n; i++ {
		if series.Rows[i].Low < low {
			low = series.Rows[i].Low
		}
	}
	if low == math.MaxFloat64 || low <= 0 {
		return 0, false
	}
	return low, true
}

// SellTargets derives exit levels for an entered position. Volatility
// picks the percentage tier; momentum moderates the suggested holding
// period; both fall back to conservative defaults when absent.
func SellTargets(series *contracts.IndicatorSeries, entryPrice float64, strategy string) contracts.SellTargets {
	row := series.Last()

	tier := defaultTier
	reasoning := "Default targets (volatility unavailable)"

	var haveVol bool
	var vol float64
	if row != nil {
		vol, haveVol = contracts.Deref(row.Volatility20)
	}
	if haveVol {
		for _, t := range sellTiers {
			if vol <= t.maxVolatility {
				tier = t
				break
			}
		}
		reasoning = fmt.Sprintf("Volatility %.1f%% tier: %.0f%% target, %.0f%% stop",
			vol*100, tier.target*100, tier.stopLoss*100)
	}

	holdDays := defaultHoldDays
	if row != nil {
		if momentum, ok := contracts.Deref(row.Momentum20); ok && momentum > 0 {
			perDay := math.Max(momentum/20, 0.001)
			holdDays = int(math.Round(clamp(tier.target/perDay, minHoldDays, maxHoldDays)))
			reasoning += fmt.Sprintf("; momentum %.1f%% suggests ~%d day hold", momentum*100, holdDays)
		}
	}

	if strategy != "" && strategy != "Default" {
		reasoning += fmt.Sprintf(" (%s strategy)", strategy)
	}

	return contracts.SellTargets{
		TargetPrice:        entryPrice * (1 + tier.target),
		ConservativeTarget: entryPrice * (1 + tier.conservative),
		AggressiveTarget:   entryPrice * (1 + tier.aggressive),
		StopLossPrice:      entryPrice * (1 - tier.stopLoss),
		HoldDays:           holdDays,
		Reasoning:          reasoning,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
