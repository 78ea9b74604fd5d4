package targets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantify701/quantify/internal/contracts"
)

func seriesWith(build func(row *contracts.IndicatorRow)) *contracts.IndicatorSeries {
	s := &contracts.IndicatorSeries{Symbol: "TEST", Rows: make([]contracts.IndicatorRow, 1)}
	row := &s.Rows[0]
	row.Low = 95
	row.Close = 100
	build(row)
	return s
}

func TestSuggestedBuyPriceAnchorsToHighestSupport(t *testing.T) {
	s := seriesWith(func(row *contracts.IndicatorRow) {
		row.Sma20 = contracts.Float(97)
		row.Sma50 = contracts.Float(93)
		row.BbLower = contracts.Float(91)
	})

	advice := SuggestedBuyPrice(s, "Default")
	assert.InDelta(t, 97, advice.Price, 1e-9)
	assert.Contains(t, advice.Reasoning, "20-day average")
}

func TestSuggestedBuyPriceIgnoresSupportAboveCurrent(t *testing.T) {
	s := seriesWith(func(row *contracts.IndicatorRow) {
		row.Sma20 = contracts.Float(110)
		row.Sma50 = contracts.Float(96)
	})

	advice := SuggestedBuyPrice(s, "Default")
	assert.InDelta(t, 96, advice.Price, 1e-9)
	assert.Contains(t, advice.Reasoning, "50-day average")
}

func TestSuggestedBuyPriceNoSupportFallsBackToCurrent(t *testing.T) {
	s := seriesWith(func(row *contracts.IndicatorRow) {
		row.Low = 0
	})

	advice := SuggestedBuyPrice(s, "Default")
	assert.InDelta(t, 100, advice.Price, 1e-9)
	assert.Contains(t, advice.Reasoning, "current price")
}

func TestSuggestedBuyPriceRsiDiscount(t *testing.T) {
	oversold := seriesWith(func(row *contracts.IndicatorRow) {
		row.Sma20 = contracts.Float(98)
		row.Rsi14 = contracts.Float(25)
	})

	advice := SuggestedBuyPrice(oversold, "Default")
	assert.InDelta(t, 98*0.98, advice.Price, 1e-9)
	assert.Contains(t, advice.Reasoning, "oversold")

	overbought := seriesWith(func(row *contracts.IndicatorRow) {
		row.Sma20 = contracts.Float(98)
		row.Rsi14 = contracts.Float(75)
	})

	advice = SuggestedBuyPrice(overbought, "Default")
	assert.InDelta(t, 98*0.97, advice.Price, 1e-9)
	assert.Contains(t, advice.Reasoning, "overbought")
}

func TestSuggestedBuyPriceStrategyMultiplier(t *testing.T) {
	s := seriesWith(func(row *contracts.IndicatorRow) {
		row.Sma20 = contracts.Float(98)
	})

	def := SuggestedBuyPrice(s, "Default")
	conservative := SuggestedBuyPrice(s, "Conservative")
	momentum := SuggestedBuyPrice(s, "Momentum")

	assert.Less(t, conservative.Price, def.Price)
	assert.Greater(t, momentum.Price, def.Price)
	assert.InDelta(t, 98*0.97, conservative.Price, 1e-9)
	assert.InDelta(t, 98*1.02, momentum.Price, 1e-9)
}

// The suggested price stays within 10% of current price for any
// combination of supports, RSI and strategy.
func TestSuggestedBuyPriceClamped(t *testing.T) {
	supports := [][]float64{
		{50, 40, 30}, // far below current
		{99, 98, 97},
		{150, 120, 110}, // all above current
	}
	rsis := []*float64{nil, contracts.Float(20), contracts.Float(55), contracts.Float(85)}
	strategies := []string{"Default", "Conservative", "Aggressive", "Momentum", "Value", "Dividend Focus", "Unknown"}

	for _, sup := range supports {
		for _, rsi := range rsis {
			for _, strategy := range strategies {
				s := seriesWith(func(row *contracts.IndicatorRow) {
					row.Sma20 = contracts.Float(sup[0])
					row.Sma50 = contracts.Float(sup[1])
					row.BbLower = contracts.Float(sup[2])
					row.Rsi14 = rsi
				})

				advice := SuggestedBuyPrice(s, strategy)
				require.GreaterOrEqual(t, advice.Price, 90.0, "supports %v strategy %s", sup, strategy)
				require.LessOrEqual(t, advice.Price, 110.0, "supports %v strategy %s", sup, strategy)
				require.Less(t, advice.RangeLow, advice.Price)
				require.Greater(t, advice.RangeHigh, advice.Price)
			}
		}
	}
}

func TestSuggestedBuyPriceRangeWidth(t *testing.T) {
	noVol := seriesWith(func(row *contracts.IndicatorRow) {})
	advice := SuggestedBuyPrice(noVol, "Default")
	assert.InDelta(t, advice.Price*0.97, advice.RangeLow, 1e-9)
	assert.InDelta(t, advice.Price*1.03, advice.RangeHigh, 1e-9)

	calm := seriesWith(func(row *contracts.IndicatorRow) {
		row.Volatility20 = contracts.Float(0.005)
	})
	advice = SuggestedBuyPrice(calm, "Default")
	// 2 * 0.005 clamps up to the 2% floor
	assert.InDelta(t, advice.Price*0.98, advice.RangeLow, 1e-9)

	wild := seriesWith(func(row *contracts.IndicatorRow) {
		row.Volatility20 = contracts.Float(0.06)
	})
	advice = SuggestedBuyPrice(wild, "Default")
	// 2 * 0.06 clamps down to the 5% ceiling
	assert.InDelta(t, advice.Price*1.05, advice.RangeHigh, 1e-9)
}

func TestSuggestedBuyPriceEmptySeries(t *testing.T) {
	advice := SuggestedBuyPrice(&contracts.IndicatorSeries{Symbol: "TEST"}, "Default")
	assert.Zero(t, advice.Price)
	assert.Equal(t, "No price data", advice.Reasoning)
}

func TestSellTargetsTiers(t *testing.T) {
	tests := []struct {
		volatility float64
		target     float64
		stop       float64
	}{
		{0.010, 0.08, 0.04},
		{0.020, 0.12, 0.05},
		{0.030, 0.16, 0.07},
		{0.060, 0.20, 0.09},
	}

	for _, tt := range tests {
		s := seriesWith(func(row *contracts.IndicatorRow) {
			row.Volatility20 = contracts.Float(tt.volatility)
		})

		got := SellTargets(s, 100, "Default")
		assert.InDelta(t, 100*(1+tt.target), got.TargetPrice, 1e-9, "volatility %.3f", tt.volatility)
		assert.InDelta(t, 100*(1-tt.stop), got.StopLossPrice, 1e-9, "volatility %.3f", tt.volatility)
		assert.Less(t, got.ConservativeTarget, got.TargetPrice)
		assert.Greater(t, got.AggressiveTarget, got.TargetPrice)
	}
}

// Higher volatility widens both the target band and the stop.
func TestSellTargetsMonotonicInVolatility(t *testing.T) {
	vols := []float64{0.010, 0.020, 0.030, 0.060}

	var prevTarget, prevStop float64
	for i, vol := range vols {
		s := seriesWith(func(row *contracts.IndicatorRow) {
			row.Volatility20 = contracts.Float(vol)
		})
		got := SellTargets(s, 100, "Default")

		if i > 0 {
			assert.Greater(t, got.TargetPrice, prevTarget)
			assert.Less(t, got.StopLossPrice, prevStop)
		}
		prevTarget = got.TargetPrice
		prevStop = got.StopLossPrice
	}
}

func TestSellTargetsHoldDaysFromMomentum(t *testing.T) {
	s := seriesWith(func(row *contracts.IndicatorRow) {
		row.Volatility20 = contracts.Float(0.02)
		row.Momentum20 = contracts.Float(0.08)
	})

	// 12% target at 0.4%/day momentum implies a 30 day hold
	got := SellTargets(s, 100, "Default")
	assert.Equal(t, 30, got.HoldDays)
}

func TestSellTargetsHoldDaysClamped(t *testing.T) {
	fast := seriesWith(func(row *contracts.IndicatorRow) {
		row.Volatility20 = contracts.Float(0.02)
		row.Momentum20 = contracts.Float(0.60)
	})
	assert.Equal(t, 5, SellTargets(fast, 100, "Default").HoldDays)

	slow := seriesWith(func(row *contracts.IndicatorRow) {
		row.Volatility20 = contracts.Float(0.02)
		row.Momentum20 = contracts.Float(0.001)
	})
	assert.Equal(t, 90, SellTargets(slow, 100, "Default").HoldDays)
}

func TestSellTargetsDefaultsWhenAbsent(t *testing.T) {
	s := seriesWith(func(row *contracts.IndicatorRow) {})

	got := SellTargets(s, 100, "Default")
	assert.InDelta(t, 110, got.TargetPrice, 1e-9)
	assert.InDelta(t, 106, got.ConservativeTarget, 1e-9)
	assert.InDelta(t, 115, got.AggressiveTarget, 1e-9)
	assert.InDelta(t, 95, got.StopLossPrice, 1e-9)
	assert.Equal(t, 30, got.HoldDays)
	assert.Contains(t, got.Reasoning, "volatility unavailable")
}
