package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantify701/quantify/internal/contracts"
)

// passingSeries builds a series whose latest row clears the Default
// preset. rows pads the history length.
func passingSeries(rows int) *contracts.IndicatorSeries {
	s := &contracts.IndicatorSeries{Symbol: "TEST"}
	s.Rows = make([]contracts.IndicatorRow, rows)
	last := &s.Rows[rows-1]
	last.Close = 100
	last.Volume = 2_000_000
	last.Rsi14 = contracts.Float(55)
	last.Sma20 = contracts.Float(98)
	last.VolumeRatio = contracts.Float(1.1)
	last.Volatility20 = contracts.Float(0.02)
	return s
}

func passingProfile() *contracts.IssuerProfile {
	return &contracts.IssuerProfile{
		Symbol:    "TEST",
		MarketCap: 50_000_000_000,
		Sector:    "Technology",
	}
}

func TestGateRejectsInvalidCriteria(t *testing.T) {
	_, err := NewGate(contracts.FilterCriteria{MinPrice: 100, MaxPrice: 10, MinRsi: 25, MaxRsi: 75})
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrInvalidCriteria)
}

func TestGateAdmitsPassingCandidate(t *testing.T) {
	gate, err := NewGate(DefaultCriteria())
	require.NoError(t, err)

	assert.True(t, gate.Admits(passingSeries(250), passingProfile()))
	assert.Empty(t, gate.CheckRejection(passingSeries(250), passingProfile()))
}

func TestGateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile)
		wantHit string
	}{
		{
			name: "price above band",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				s.Last().Close = 1500
			},
			wantHit: "price",
		},
		{
			name: "market cap too small",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				p.MarketCap = 1_000_000_000
			},
			wantHit: "market cap",
		},
		{
			name: "volume too low",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				s.Last().Volume = 100
			},
			wantHit: "volume",
		},
		{
			name: "rsi overbought",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				s.Last().Rsi14 = contracts.Float(90)
			},
			wantHit: "rsi",
		},
		{
			name: "volume ratio too low",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				s.Last().VolumeRatio = contracts.Float(0.2)
			},
			wantHit: "volume ratio",
		},
		{
			name: "volatility too high",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				s.Last().Volatility20 = contracts.Float(0.09)
			},
			wantHit: "volatility",
		},
		{
			name: "deep below trend",
			mutate: func(s *contracts.IndicatorSeries, p *contracts.IssuerProfile) {
				s.Last().Sma20 = contracts.Float(120)
			},
			wantHit: "20-day average",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, err := NewGate(DefaultCriteria())
			require.NoError(t, err)

			series := passingSeries(250)
			profile := passingProfile()
			tt.mutate(series, profile)

			assert.False(t, gate.Admits(series, profile))
			assert.Contains(t, gate.CheckRejection(series, profile), tt.wantHit)
		})
	}
}

func TestGateShortHistoryRejected(t *testing.T) {
	gate, err := NewGate(DefaultCriteria())
	require.NoError(t, err)

	assert.False(t, gate.Admits(passingSeries(50), passingProfile()))
	assert.Contains(t, gate.CheckRejection(passingSeries(50), passingProfile()), "history")
}

func TestGateEmptySeriesRejected(t *testing.T) {
	gate, err := NewGate(DefaultCriteria())
	require.NoError(t, err)

	empty := &contracts.IndicatorSeries{Symbol: "TEST"}
	assert.Equal(t, "no price data", gate.CheckRejection(empty, passingProfile()))
}

// Absent indicators pass their checks. Lenience toward short histories
// is deliberate.
func TestGateAbsentIndicatorsPass(t *testing.T) {
	gate, err := NewGate(DefaultCriteria())
	require.NoError(t, err)

	series := passingSeries(250)
	last := series.Last()
	last.Rsi14 = nil
	last.VolumeRatio = nil
	last.Volatility20 = nil
	last.Sma20 = nil

	assert.True(t, gate.Admits(series, passingProfile()))
}

// Widening any single bound never rejects a previously admitted
// candidate.
func TestGateMonotonicRelaxation(t *testing.T) {
	base := DefaultCriteria()
	series := passingSeries(250)
	profile := passingProfile()

	gate, err := NewGate(base)
	require.NoError(t, err)
	require.True(t, gate.Admits(series, profile))

	relaxations := []func(c *contracts.FilterCriteria){
		func(c *contracts.FilterCriteria) { c.MinPrice = 0 },
		func(c *contracts.FilterCriteria) { c.MaxPrice = 10000 },
		func(c *contracts.FilterCriteria) { c.MinMarketCap = 0 },
		func(c *contracts.FilterCriteria) { c.MinVolume = 0 },
		func(c *contracts.FilterCriteria) { c.MinRsi = 0 },
		func(c *contracts.FilterCriteria) { c.MaxRsi = 100 },
		func(c *contracts.FilterCriteria) { c.MinVolumeRatio = 0 },
		func(c *contracts.FilterCriteria) { c.MinDataPoints = 0 },
		func(c *contracts.FilterCriteria) { c.MaxVolatility = 1 },
	}

	for i, relax := range relaxations {
		criteria := base
		relax(&criteria)

		relaxed, err := NewGate(criteria)
		require.NoError(t, err, "relaxation %d", i)
		assert.True(t, relaxed.Admits(series, profile), "relaxation %d", i)
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			preset, ok := Preset(name)
			require.True(t, ok)
			assert.Equal(t, name, preset.Name)
			assert.NoError(t, preset.Validate())
			assert.Equal(t, 200, preset.MinDataPoints)
		})
	}

	_, ok := Preset("Nonexistent")
	assert.False(t, ok)
}

func TestPresetValues(t *testing.T) {
	conservative, ok := Preset("Conservative")
	require.True(t, ok)
	assert.Equal(t, 50_000_000_000.0, conservative.MinMarketCap)
	assert.Equal(t, 0.03, conservative.MaxVolatility)
	assert.Equal(t, 0.8, conservative.MinVolumeRatio)

	aggressive, ok := Preset("Aggressive")
	require.True(t, ok)
	assert.Equal(t, 20.0, aggressive.MinRsi)
	assert.Equal(t, 80.0, aggressive.MaxRsi)
	assert.Equal(t, int64(500_000), aggressive.MinVolume)
}

func TestDefaultUniverse(t *testing.T) {
	universe := DefaultUniverse()
	assert.Len(t, universe, 36)

	seen := make(map[string]bool)
	for _, symbol := range universe {
		assert.False(t, seen[symbol], "duplicate symbol %s", symbol)
		seen[symbol] = true
	}
}

func TestDefaultUniverseReturnsCopy(t *testing.T) {
	first := DefaultUniverse()
	first[0] = "mutated"

	second := DefaultUniverse()
	assert.Equal(t, "AAPL", second[0])
}
