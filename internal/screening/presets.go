package screening

import "github.com/quantify701/quantify/internal/contracts"

var defaultUniverse = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "BRK-B",
	"V", "JNJ", "WMT", "JPM", "MA", "PG", "UNH", "HD", "DIS", "BAC",
	"ADBE", "NFLX", "PYPL", "CMCSA", "KO", "NKE", "MRK", "PFE", "T",
	"INTC", "VZ", "CSCO", "XOM", "CVX", "ABT", "COST", "AVGO", "TMO",
}

// DefaultUniverse returns the symbol list screened when the caller does
// not supply one. Callers get a copy; mutating it is safe.
func DefaultUniverse() []string {
	out := make([]string, len(defaultUniverse))
	copy(out, defaultUniverse)
	return out
}

// Named strategy presets. The numeric values are fixed contract
// constants; downstream fixtures depend on them exactly.
var presets = map[string]contracts.FilterCriteria{
	"Default": {
		Name:           "Default",
		MinMarketCap:   10_000_000_000,
		MinVolume:      1_000_000,
		MinPrice:       5.0,
		MaxPrice:       1000.0,
		MinRsi:         25,
		MaxRsi:         75,
		MinVolumeRatio: 0.5,
		MinDataPoints:  200,
		MaxVolatility:  0.05,
	},
	"Conservative": {
		Name:           "Conservative",
		MinMarketCap:   50_000_000_000,
		MinVolume:      2_000_000,
		MinPrice:       10.0,
		MaxPrice:       500.0,
		MinRsi:         30,
		MaxRsi:         70,
		MinVolumeRatio: 0.8,
		MinDataPoints:  200,
		MaxVolatility:  0.03,
	},
	"Aggressive": {
		Name:           "Aggressive",
		MinMarketCap:   5_000_000_000,
		MinVolume:      500_000,
		MinPrice:       5.0,
		MaxPrice:       1000.0,
		MinRsi:         20,
		MaxRsi:         80,
		MinVolumeRatio: 0.3,
		MinDataPoints:  200,
		MaxVolatility:  0.08,
	},
	"Momentum": {
		Name:           "Momentum",
		MinMarketCap:   10_000_000_000,
		MinVolume:      1_500_000,
		MinPrice:       5.0,
		MaxPrice:       1000.0,
		MinRsi:         40,
		MaxRsi:         70,
		MinVolumeRatio: 1.0,
		MinDataPoints:  200,
		MaxVolatility:  0.06,
	},
	"Value": {
		Name:           "Value",
		MinMarketCap:   20_000_000_000,
		MinVolume:      1_000_000,
		MinPrice:       5.0,
		MaxPrice:       200.0,
		MinRsi:         25,
		MaxRsi:         65,
		MinVolumeRatio: 0.5,
		MinDataPoints:  200,
		MaxVolatility:  0.04,
	},
	"Dividend Focus": {
		Name:           "Dividend Focus",
		MinMarketCap:   30_000_000_000,
		MinVolume:      1_000_000,
		MinPrice:       10.0,
		MaxPrice:       300.0,
		MinRsi:         30,
		MaxRsi:         70,
		MinVolumeRatio: 0.6,
		MinDataPoints:  200,
		MaxVolatility:  0.035,
	},
}

// Preset returns a named strategy preset.
func Preset(name string) (contracts.FilterCriteria, bool) {
	c, ok := presets[name]
	return c, ok
}

// DefaultCriteria returns the Default preset.
func DefaultCriteria() contracts.FilterCriteria {
	return presets["Default"]
}

// PresetNames returns the available preset names.
func PresetNames() []string {
	return []string{"Default", "Conservative", "Aggressive", "Momentum", "Value", "Dividend Focus"}
}
