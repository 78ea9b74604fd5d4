package contracts

// ScoredCandidate is one admitted symbol after a full evaluation pass.
// Constructed once per pass and immutable thereafter.
type ScoredCandidate struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name"`
	CurrentPrice float64  `json:"current_price"`
	Score        float64  `json:"score"`
	Rsi          *float64 `json:"rsi,omitempty"`
	Momentum     *float64 `json:"momentum,omitempty"`
	VolumeRatio  *float64 `json:"volume_ratio,omitempty"`
	MarketCap    float64  `json:"market_cap"`
	Sector       string   `json:"sector"`
	BuySignal    bool     `json:"buy_signal"`
	Reason       string   `json:"reason"`

	// Full annotated series, needed downstream for charting and
	// price target derivation.
	Series *IndicatorSeries `json:"-"`
}

// Rejection explains why a symbol did not qualify.
type Rejection struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}
