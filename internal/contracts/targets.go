package contracts

// BuyPriceAdvice is a suggested entry price with a tolerance range.
type BuyPriceAdvice struct {
	Price     float64 `json:"price"`
	RangeLow  float64 `json:"range_low"`
	RangeHigh float64 `json:"range_high"`
	Reasoning string  `json:"reasoning"`
}

// SellTargets are exit levels for an entered position.
type SellTargets struct {
	TargetPrice        float64 `json:"target_price"`
	ConservativeTarget float64 `json:"conservative_target"`
	AggressiveTarget   float64 `json:"aggressive_target"`
	StopLossPrice      float64 `json:"stop_loss_price"`
	HoldDays           int     `json:"hold_days"`
	Reasoning          string  `json:"reasoning"`
}
