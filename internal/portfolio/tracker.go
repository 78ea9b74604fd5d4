package portfolio

import (
	"time"

	"github.com/quantify701/quantify/pkg/config"
)

// Tracker applies position-sizing and rebalancing policy.
type Tracker struct {
	minPositionSize float64
	maxPositionSize float64
	rebalanceDays   int
}

// NewTracker creates a tracker from trading configuration.
func NewTracker(cfg config.TradingConfig) *Tracker {
	return &Tracker{
		minPositionSize: cfg.MinPositionSize,
		maxPositionSize: cfg.MaxPositionSize,
		rebalanceDays:   cfg.RebalanceDays,
	}
}

// CalculatePositionSize returns the whole number of shares to buy for a
// candidate. The allocation scales linearly with the screening score
// between the minimum and maximum position fractions.
func (t *Tracker) CalculatePositionSize(score, portfolioValue, currentPrice float64) int64 {
	if currentPrice <= 0 || portfolioValue <= 0 {
		return 0
	}

	scorePct := score / 100.0
	positionPct := t.minPositionSize + (t.maxPositionSize-t.minPositionSize)*scorePct

	positionValue := portfolioValue * positionPct
	shares := int64(positionValue / currentPrice)

	if shares < 0 {
		return 0
	}
	return shares
}

// ShouldRebalance reports whether the rebalance interval has elapsed.
// A portfolio that has never been rebalanced is always due.
func (t *Tracker) ShouldRebalance(lastRebalance *time.Time, now time.Time) bool {
	if lastRebalance == nil {
		return true
	}

	daysSince := int(now.Sub(*lastRebalance).Hours() / 24)
	return daysSince >= t.rebalanceDays
}
