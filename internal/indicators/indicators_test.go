package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantify701/quantify/internal/contracts"
)

// makeSeries builds a daily series from closes. Volume defaults to 1M.
func makeSeries(closes []float64) []contracts.PricePoint {
	series := make([]contracts.PricePoint, len(closes))
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		series[i] = contracts.PricePoint{
			Timestamp: day.AddDate(0, 0, i),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1_000_000,
		}
	}
	return series
}

func linearCloses(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	return closes
}

func TestComputeEmptySeries(t *testing.T) {
	out := Compute("AAPL", nil)
	require.NotNil(t, out)
	assert.Equal(t, 0, out.Len())
	assert.Nil(t, out.Last())
}

func TestSma(t *testing.T) {
	out := Compute("AAPL", makeSeries(linearCloses(25)))

	// Absent until the window fills
	for i := 0; i < 19; i++ {
		assert.Nil(t, out.Rows[i].Sma20, "row %d", i)
	}

	// mean(1..20) = 10.5
	require.NotNil(t, out.Rows[19].Sma20)
	assert.InDelta(t, 10.5, *out.Rows[19].Sma20, 1e-9)

	// mean(6..25) = 15.5
	require.NotNil(t, out.Rows[24].Sma20)
	assert.InDelta(t, 15.5, *out.Rows[24].Sma20, 1e-9)

	// 50- and 200-row windows never fill here
	assert.Nil(t, out.Rows[24].Sma50)
	assert.Nil(t, out.Rows[24].Sma200)
}

func TestEmaSeededFromFirstValue(t *testing.T) {
	closes := []float64{100, 110, 105}
	out := Compute("AAPL", makeSeries(closes))

	require.NotNil(t, out.Rows[0].Ema12)
	assert.InDelta(t, 100, *out.Rows[0].Ema12, 1e-9)

	alpha := 2.0 / 13.0
	want1 := alpha*110 + (1-alpha)*100
	require.NotNil(t, out.Rows[1].Ema12)
	assert.InDelta(t, want1, *out.Rows[1].Ema12, 1e-9)

	want2 := alpha*105 + (1-alpha)*want1
	require.NotNil(t, out.Rows[2].Ema12)
	assert.InDelta(t, want2, *out.Rows[2].Ema12, 1e-9)
}

func TestMacdDerivation(t *testing.T) {
	out := Compute("AAPL", makeSeries(linearCloses(30)))

	for _, row := range out.Rows {
		require.NotNil(t, row.Macd)
		require.NotNil(t, row.Ema12)
		require.NotNil(t, row.Ema26)
		assert.InDelta(t, *row.Ema12-*row.Ema26, *row.Macd, 1e-9)

		require.NotNil(t, row.MacdHistogram)
		assert.InDelta(t, *row.Macd-*row.MacdSignal, *row.MacdHistogram, 1e-9)
	}

	// Rising series keeps the fast EMA above the slow one
	last := out.Last()
	assert.Greater(t, *last.Macd, 0.0)
}

func TestRsiAbsentUntilWindowFills(t *testing.T) {
	out := Compute("AAPL", makeSeries(linearCloses(20)))

	for i := 0; i < 14; i++ {
		assert.Nil(t, out.Rows[i].Rsi14, "row %d", i)
	}
	for i := 14; i < 20; i++ {
		require.NotNil(t, out.Rows[i].Rsi14, "row %d", i)
	}
}

func TestRsiZeroLossIsHundred(t *testing.T) {
	// Strictly rising closes have no losses in any window
	out := Compute("AAPL", makeSeries(linearCloses(30)))

	last := out.Last()
	require.NotNil(t, last.Rsi14)
	assert.Equal(t, 100.0, *last.Rsi14)
	assert.False(t, math.IsNaN(*last.Rsi14))
	assert.False(t, math.IsInf(*last.Rsi14, 0))
}

func TestRsiBalancedGainsAndLosses(t *testing.T) {
	// Seven +1 days then seven -1 days: avg gain = avg loss = 0.5,
	// so RS = 1 and RSI = 50 at the first defined row.
	closes := []float64{100}
	for i := 0; i < 7; i++ {
		closes = append(closes, closes[len(closes)-1]+1)
	}
	for i := 0; i < 7; i++ {
		closes = append(closes, closes[len(closes)-1]-1)
	}

	out := Compute("AAPL", makeSeries(closes))
	require.Equal(t, 15, out.Len())

	rsi := out.Rows[14].Rsi14
	require.NotNil(t, rsi)
	assert.InDelta(t, 50.0, *rsi, 1e-9)
}

func TestBollingerBands(t *testing.T) {
	out := Compute("AAPL", makeSeries(linearCloses(20)))

	row := out.Rows[19]
	require.NotNil(t, row.BbMiddle)
	require.NotNil(t, row.BbUpper)
	require.NotNil(t, row.BbLower)

	// Sample std of 1..20 = sqrt(665/19)
	std := math.Sqrt(665.0 / 19.0)
	assert.InDelta(t, 10.5, *row.BbMiddle, 1e-9)
	assert.InDelta(t, 10.5+2*std, *row.BbUpper, 1e-9)
	assert.InDelta(t, 10.5-2*std, *row.BbLower, 1e-9)
}

func TestBollingerConstantSeries(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 50
	}

	out := Compute("AAPL", makeSeries(closes))
	last := out.Last()
	require.NotNil(t, last.BbUpper)
	assert.InDelta(t, 50, *last.BbUpper, 1e-9)
	assert.InDelta(t, 50, *last.BbLower, 1e-9)
}

func TestShortHistoryLeavesWindowedFieldsAbsent(t *testing.T) {
	out := Compute("AAPL", makeSeries(linearCloses(19)))

	for i, row := range out.Rows {
		assert.Nil(t, row.Sma20, "row %d", i)
		assert.Nil(t, row.BbUpper, "row %d", i)
		assert.Nil(t, row.BbLower, "row %d", i)
		assert.Nil(t, row.Momentum20, "row %d", i)
		assert.Nil(t, row.Volatility20, "row %d", i)
		assert.Nil(t, row.VolumeRatio, "row %d", i)

		// EMA-derived fields are defined from row 0
		assert.NotNil(t, row.Ema12, "row %d", i)
		assert.NotNil(t, row.Macd, "row %d", i)
	}
}

func TestMomentum(t *testing.T) {
	out := Compute("AAPL", makeSeries(linearCloses(25)))

	// Needs 20 prior rows: first defined at index 20
	assert.Nil(t, out.Rows[19].Momentum20)

	require.NotNil(t, out.Rows[20].Momentum20)
	assert.InDelta(t, 21.0/1.0-1, *out.Rows[20].Momentum20, 1e-9)

	require.NotNil(t, out.Rows[24].Momentum20)
	assert.InDelta(t, 25.0/5.0-1, *out.Rows[24].Momentum20, 1e-9)
}

func TestVolatilityConstantGrowth(t *testing.T) {
	// Constant 1% daily growth has zero return variance
	closes := make([]float64, 30)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] * 1.01
	}

	out := Compute("AAPL", makeSeries(closes))

	assert.Nil(t, out.Rows[19].Volatility20)
	require.NotNil(t, out.Rows[20].Volatility20)
	assert.InDelta(t, 0, *out.Rows[20].Volatility20, 1e-9)
}

func TestVolumeRatio(t *testing.T) {
	series := makeSeries(linearCloses(25))
	// Double the most recent volume
	series[24].Volume = 2_000_000

	out := Compute("AAPL", series)

	last := out.Last()
	require.NotNil(t, last.VolumeSma20)
	require.NotNil(t, last.VolumeRatio)

	// 19 rows at 1M plus one at 2M: mean 1.05M
	assert.InDelta(t, 1_050_000, *last.VolumeSma20, 1e-6)
	assert.InDelta(t, 2.0/1.05, *last.VolumeRatio, 1e-9)
}

func TestVolumeRatioAbsentWhenAverageZero(t *testing.T) {
	series := makeSeries(linearCloses(25))
	for i := range series {
		series[i].Volume = 0
	}

	out := Compute("AAPL", series)
	last := out.Last()
	assert.Nil(t, last.VolumeRatio)
}
