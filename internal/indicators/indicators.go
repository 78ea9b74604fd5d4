// Package indicators computes technical indicators from a raw OHLCV
// series. All derived fields are nil until enough history exists.
package indicators

import (
	"math"

	"github.com/quantify701/quantify/internal/contracts"
)

const (
	smaShortWindow = 20
	smaMidWindow   = 50
	smaLongWindow  = 200

	emaFastSpan   = 12
	emaSlowSpan   = 26
	emaSignalSpan = 9

	rsiWindow        = 14
	bollingerWindow  = 20
	bollingerWidth   = 2.0
	volumeWindow     = 20
	momentumWindow   = 20
	volatilityWindow = 20
)

// Compute annotates a chronologically sorted series with derived
// indicator fields. The input is not reordered; callers guarantee
// order. An empty input yields an empty series, never an error.
func Compute(symbol string, series []contracts.PricePoint) *contracts.IndicatorSeries {
	out := &contracts.IndicatorSeries{
		Symbol: symbol,
		Rows:   make([]contracts.IndicatorRow, len(series)),
	}
	if len(series) == 0 {
		return out
	}

	n := len(series)
	closes := make([]float64, n)
	volumes := make([]float64, n)
	for i, p := range series {
		out.Rows[i].PricePoint = p
		closes[i] = p.Close
		volumes[i] = float64(p.Volume)
	}

	sma20 := rollingMean(closes, smaShortWindow)
	sma50 := rollingMean(closes, smaMidWindow)
	sma200 := rollingMean(closes, smaLongWindow)

	ema12 := ema(closes, emaFastSpan)
	ema26 := ema(closes, emaSlowSpan)

	macd := make([]float64, n)
	for i := range macd {
		macd[i] = ema12[i] - ema26[i]
	}
	macdSignal := ema(macd, emaSignalSpan)

	rsi := rsi14(closes)
	bbStd := rollingStd(closes, bollingerWindow)
	volSma := rollingMean(volumes, volumeWindow)

	returns := pctReturns(closes)
	volatility := rollingStdValid(returns, volatilityWindow)

	for i := range out.Rows {
		row := &out.Rows[i]

		row.Sma20 = sma20[i]
		row.Sma50 = sma50[i]
		row.Sma200 = sma200[i]

		row.Ema12 = contracts.Float(ema12[i])
		row.Ema26 = contracts.Float(ema26[i])
		row.Macd = contracts.Float(macd[i])
		row.MacdSignal = contracts.Float(macdSignal[i])
		row.MacdHistogram = contracts.Float(macd[i] - macdSignal[i])

		row.Rsi14 = rsi[i]

		if sma20[i] != nil && bbStd[i] != nil {
			mid := *sma20[i]
			band := bollingerWidth * *bbStd[i]
			row.BbMiddle = contracts.Float(mid)
			row.BbUpper = contracts.Float(mid + band)
			row.BbLower = contracts.Float(mid - band)
		}

		row.VolumeSma20 = volSma[i]
		if volSma[i] != nil && *volSma[i] > 0 {
			row.VolumeRatio = contracts.Float(volumes[i] / *volSma[i])
		}

		if i >= momentumWindow && closes[i-momentumWindow] != 0 {
			row.Momentum20 = contracts.Float(closes[i]/closes[i-momentumWindow] - 1)
		}

		row.Volatility20 = volatility[i]
	}

	return out
}

// rollingMean returns the trailing window mean per row, nil until the
// window is full.
func rollingMean(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = contracts.Float(sum / float64(window))
		}
	}
	return out
}

// rollingStd returns the trailing window sample standard deviation
// (denominator n-1) per row, nil until the window is full.
func rollingStd(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 1 || len(values) < window {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		out[i] = contracts.Float(sampleStd(values[i-window+1 : i+1]))
	}
	return out
}

// rollingStdValid is rollingStd over a series whose leading entries may
// be missing; a window containing any missing entry yields nil.
func rollingStdValid(values []*float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 1 {
		return out
	}

	buf := make([]float64, 0, window)
	for i := window - 1; i < len(values); i++ {
		buf = buf[:0]
		complete := true
		for j := i - window + 1; j <= i; j++ {
			if values[j] == nil {
				complete = false
				break
			}
			buf = append(buf, *values[j])
		}
		if complete {
			out[i] = contracts.Float(sampleStd(buf))
		}
	}
	return out
}

func sampleStd(window []float64) float64 {
	n := float64(len(window))
	var sum float64
	for _, v := range window {
		sum += v
	}
	mean := sum / n

	var ss float64
	for _, v := range window {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / (n - 1))
}

// ema computes exponential smoothing with alpha = 2/(span+1), seeded
// directly from the first sample. Defined from row 0.
func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// rsi14 computes RSI as a simple rolling mean of gains and losses over
// the trailing window, not Wilder's recursive smoothing. A window with
// zero average loss yields 100, never NaN or Inf.
func rsi14(closes []float64) []*float64 {
	out := make([]*float64, len(closes))
	if len(closes) <= rsiWindow {
		return out
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i > rsiWindow {
			gainSum -= gains[i-rsiWindow]
			lossSum -= losses[i-rsiWindow]
		}
		if i < rsiWindow {
			continue
		}

		avgGain := gainSum / float64(rsiWindow)
		avgLoss := lossSum / float64(rsiWindow)

		var rsi float64
		if avgLoss == 0 {
			rsi = 100
		} else {
			rs := avgGain / avgLoss
			rsi = 100 - 100/(1+rs)
		}
		out[i] = contracts.Float(rsi)
	}
	return out
}

// pctReturns returns per-row percent change vs. the prior close. The
// first row has no prior close and is nil.
func pctReturns(closes []float64) []*float64 {
	out := make([]*float64, len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] != 0 {
			out[i] = contracts.Float(closes[i]/closes[i-1] - 1)
		}
	}
	return out
}
