package contracts

import "fmt"

// FilterCriteria is the threshold configuration for one screening run.
// Instances are immutable per evaluation; named strategy presets are
// just different instances.
type FilterCriteria struct {
	Name           string  `json:"name"`
	MinPrice       float64 `json:"min_price"`
	MaxPrice       float64 `json:"max_price"`
	MinMarketCap   float64 `json:"min_market_cap"`
	MinVolume      int64   `json:"min_volume"`
	MinRsi         float64 `json:"min_rsi"`
	MaxRsi         float64 `json:"max_rsi"`
	MinVolumeRatio float64 `json:"min_volume_ratio"`
	MinDataPoints  int     `json:"min_data_points"`
	MaxVolatility  float64 `json:"max_volatility"`
}

// Validate rejects contradictory bounds. A bad criteria set fails the
// whole evaluation run rather than silently producing an empty result.
func (c FilterCriteria) Validate() error {
	if c.MinPrice > c.MaxPrice {
		return fmt.Errorf("%w: min_price %.2f exceeds max_price %.2f", ErrInvalidCriteria, c.MinPrice, c.MaxPrice)
	}
	if c.MinRsi > c.MaxRsi {
		return fmt.Errorf("%w: min_rsi %.1f exceeds max_rsi %.1f", ErrInvalidCriteria, c.MinRsi, c.MaxRsi)
	}
	if c.MinPrice < 0 || c.MinMarketCap < 0 || c.MinVolume < 0 {
		return fmt.Errorf("%w: negative lower bound", ErrInvalidCriteria)
	}
	if c.MinRsi < 0 || c.MaxRsi > 100 {
		return fmt.Errorf("%w: rsi band must stay within [0, 100]", ErrInvalidCriteria)
	}
	if c.MinDataPoints < 0 {
		return fmt.Errorf("%w: negative min_data_points", ErrInvalidCriteria)
	}
	if c.MaxVolatility < 0 {
		return fmt.Errorf("%w: negative max_volatility", ErrInvalidCriteria)
	}
	return nil
}
