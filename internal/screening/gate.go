// Package screening applies threshold filters to admit or reject
// screening candidates, and holds the named strategy presets.
package screening

import (
	"fmt"

	"github.com/quantify701/quantify/internal/contracts"
)

// Maximum tolerated drop below the 20-day average before a candidate
// is treated as in a broken trend.
const maxTrendDeviation = -0.10

// Gate is the admission predicate for one screening run.
type Gate struct {
	criteria contracts.FilterCriteria
}

// NewGate validates the criteria and returns a gate. Contradictory
// bounds fail the whole run up front.
func NewGate(criteria contracts.FilterCriteria) (*Gate, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	return &Gate{criteria: criteria}, nil
}

// Criteria returns the criteria the gate was built with.
func (g *Gate) Criteria() contracts.FilterCriteria {
	return g.criteria
}

// Admits evaluates the latest row of a series against the criteria.
// All checks are AND-combined. An absent indicator passes its check;
// short histories are deliberately not punished twice.
func (g *Gate) Admits(series *contracts.IndicatorSeries, profile *contracts.IssuerProfile) bool {
	return g.CheckRejection(series, profile) == ""
}

// CheckRejection returns the first failing check as a reason string,
// or "" when the candidate is admitted. Checks run in priority order.
func (g *Gate) CheckRejection(series *contracts.IndicatorSeries, profile *contracts.IssuerProfile) string {
	row := series.Last()
	if row == nil {
		return "no price data"
	}

	c := g.criteria

	if row.Close < c.MinPrice || row.Close > c.MaxPrice {
		return fmt.Sprintf("price %.2f outside band [%.2f, %.2f]", row.Close, c.MinPrice, c.MaxPrice)
	}

	if profile.MarketCap < c.MinMarketCap {
		return fmt.Sprintf("market cap %.0f below minimum %.0f", profile.MarketCap, c.MinMarketCap)
	}

	if row.Volume < c.MinVolume {
		return fmt.Sprintf("volume %d below minimum %d", row.Volume, c.MinVolume)
	}

	if rsi, ok := contracts.Deref(row.Rsi14); ok {
		if rsi < c.MinRsi || rsi > c.MaxRsi {
			return fmt.Sprintf("rsi %.1f outside band [%.1f, %.1f]", rsi, c.MinRsi, c.MaxRsi)
		}
	}

	if series.Len() < c.MinDataPoints {
		return fmt.Sprintf("history %d rows below minimum %d", series.Len(), c.MinDataPoints)
	}

	if ratio, ok := contracts.Deref(row.VolumeRatio); ok {
		if ratio < c.MinVolumeRatio {
			return fmt.Sprintf("volume ratio %.2f below minimum %.2f", ratio, c.MinVolumeRatio)
		}
	}

	if vol, ok := contracts.Deref(row.Volatility20); ok {
		if vol > c.MaxVolatility {
			return fmt.Sprintf("volatility %.3f above maximum %.3f", vol, c.MaxVolatility)
		}
	}

	if sma20, ok := contracts.Deref(row.Sma20); ok && sma20 > 0 {
		deviation := (row.Close - sma20) / sma20
		if deviation < maxTrendDeviation {
			return fmt.Sprintf("price %.1f%% below 20-day average", deviation*100)
		}
	}

	return ""
}
