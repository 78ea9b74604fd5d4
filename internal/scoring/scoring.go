// Package scoring computes the composite 0-100 attractiveness score
// from eight independently capped components. An absent indicator
// contributes zero to its component.
package scoring

import (
	"math"

	"github.com/quantify701/quantify/internal/contracts"
)

// Component caps. The raw sum can exceed 100 before the final clamp;
// that headroom is intentional.
const (
	momentumCap    = 25.0
	rsiCap         = 20.0
	maTrendCap     = 20.0
	maTrendBonus   = 3.0
	macdCap        = 15.0
	macdBonus      = 2.0
	volumeCap      = 12.0
	volatilityCap  = 8.0
	consistencyCap = 8.0
	bollingerCap   = 7.0

	consistencyMinRows = 60
)

// Score computes the composite score for a series. The profile is part
// of the scoring contract but currently carries no weight; all
// components are technical.
func Score(series *contracts.IndicatorSeries, profile *contracts.IssuerProfile) float64 {
	_ = profile

	row := series.Last()
	if row == nil {
		return 0
	}

	score := momentumScore(row) +
		rsiScore(row) +
		maTrendScore(row) +
		macdScore(row) +
		volumeScore(row) +
		volatilityScore(row) +
		consistencyScore(series) +
		bollingerScore(row)

	return math.Min(score, 100.0)
}

// momentumScore rewards the 3-12% sweet spot most, with smaller awards
// for weaker or overheated momentum.
func momentumScore(row *contracts.IndicatorRow) float64 {
	m, ok := contracts.Deref(row.Momentum20)
	if !ok {
		return 0
	}

	switch {
	case m >= 0.03 && m <= 0.12:
		return momentumCap
	case (m >= 0.015 && m < 0.03) || (m > 0.12 && m <= 0.20):
		return 18
	case (m >= 0.005 && m < 0.015) || (m > 0.20 && m <= 0.30):
		return 12
	case m > 0:
		return 6
	default:
		return 0
	}
}

// rsiScore prefers the bullish band, fading toward the extremes.
func rsiScore(row *contracts.IndicatorRow) float64 {
	rsi, ok := contracts.Deref(row.Rsi14)
	if !ok {
		return 0
	}

	switch {
	case rsi >= 45 && rsi <= 65:
		return rsiCap
	case (rsi >= 35 && rsi < 45) || (rsi > 65 && rsi <= 70):
		return 15
	case (rsi >= 30 && rsi < 35) || (rsi > 70 && rsi <= 75):
		return 10
	case (rsi >= 25 && rsi < 30) || (rsi > 75 && rsi <= 80):
		return 5
	default:
		return 0
	}
}

// maTrendScore grades the price/SMA20/SMA50 alignment by gap size,
// plus a bonus when SMA50 sits above SMA200.
func maTrendScore(row *contracts.IndicatorRow) float64 {
	var score float64
	price := row.Close

	sma20, ok20 := contracts.Deref(row.Sma20)
	sma50, ok50 := contracts.Deref(row.Sma50)

	if ok20 && ok50 {
		switch {
		case price > sma20 && sma20 > sma50:
			priceGap := (price - sma20) / sma20
			smaGap := (sma20 - sma50) / sma50

			switch {
			case priceGap >= 0.05 && smaGap >= 0.02:
				score = maTrendCap
			case priceGap >= 0.02 && smaGap >= 0.01:
				score = 15
			default:
				score = 10
			}
		case price > sma20:
			score = 8
		case price > sma50:
			score = 4
		}
	}

	sma200, ok200 := contracts.Deref(row.Sma200)
	if ok50 && ok200 && sma50 > sma200 {
		score += maTrendBonus
	}

	return score
}

// macdScore grades a bullish crossover by its relative strength, plus
// a bonus for a positive histogram.
func macdScore(row *contracts.IndicatorRow) float64 {
	var score float64

	macd, okM := contracts.Deref(row.Macd)
	signal, okS := contracts.Deref(row.MacdSignal)

	if okM && okS {
		if macd > signal {
			var strength float64
			if signal != 0 {
				strength = (macd - signal) / math.Abs(signal)
			}

			switch {
			case macd > 0 && strength > 0.2:
				score = macdCap
			case macd > 0:
				score = 12
			default:
				score = 8
			}
		} else if macd > 0 {
			score = 5
		}
	}

	if hist, ok := contracts.Deref(row.MacdHistogram); ok && hist > 0 {
		score += macdBonus
	}

	return score
}

// volumeScore rewards above-average participation.
func volumeScore(row *contracts.IndicatorRow) float64 {
	ratio, ok := contracts.Deref(row.VolumeRatio)
	if !ok {
		return 0
	}

	switch {
	case ratio >= 1.5:
		return volumeCap
	case ratio >= 1.2:
		return 10
	case ratio >= 1.0:
		return 8
	case ratio >= 0.8:
		return 5
	default:
		return 0
	}
}

// volatilityScore prefers the 1.5-2.5% daily band; too calm and too
// wild both fade to zero.
func volatilityScore(row *contracts.IndicatorRow) float64 {
	v, ok := contracts.Deref(row.Volatility20)
	if !ok {
		return 0
	}

	switch {
	case v >= 0.015 && v <= 0.025:
		return volatilityCap
	case (v >= 0.01 && v < 0.015) || (v > 0.025 && v <= 0.035):
		return 6
	case (v >= 0.005 && v < 0.01) || (v > 0.035 && v <= 0.045):
		return 4
	default:
		return 0
	}
}

// consistencyScore checks that the 5-day and 10-day returns agree.
// Requires enough history to make the comparison meaningful.
func consistencyScore(series *contracts.IndicatorSeries) float64 {
	n := series.Len()
	if n < consistencyMinRows {
		return 0
	}

	last := series.Rows[n-1].Close
	close5 := series.Rows[n-5].Close
	close10 := series.Rows[n-10].Close
	if close5 == 0 || close10 == 0 {
		return 0
	}

	return5d := last/close5 - 1
	return10d := last/close10 - 1

	if return5d > 0 && return10d > 0 {
		if math.Abs(return5d-return10d) < 0.02 {
			return consistencyCap
		}
		return 5
	}
	return 0
}

// bollingerScore rewards a band position away from both extremes.
func bollingerScore(row *contracts.IndicatorRow) float64 {
	upper, okU := contracts.Deref(row.BbUpper)
	lower, okL := contracts.Deref(row.BbLower)
	_, okM := contracts.Deref(row.BbMiddle)

	if !okU || !okL || !okM || upper <= lower {
		return 0
	}

	position := (row.Close - lower) / (upper - lower)

	switch {
	case position >= 0.3 && position <= 0.7:
		return bollingerCap
	case (position >= 0.2 && position < 0.3) || (position > 0.7 && position <= 0.8):
		return 5
	case (position >= 0.1 && position < 0.2) || (position > 0.8 && position <= 0.9):
		return 3
	default:
		return 0
	}
}
