package contracts

// IndicatorRow is a PricePoint annotated with derived technical fields.
// Derived fields are nil when there is not enough history to compute
// them. Consumers must treat nil distinctly from zero.
type IndicatorRow struct {
	PricePoint

	Sma20  *float64 `json:"sma20,omitempty"`
	Sma50  *float64 `json:"sma50,omitempty"`
	Sma200 *float64 `json:"sma200,omitempty"`

	Ema12 *float64 `json:"ema12,omitempty"`
	Ema26 *float64 `json:"ema26,omitempty"`

	Macd          *float64 `json:"macd,omitempty"`
	MacdSignal    *float64 `json:"macd_signal,omitempty"`
	MacdHistogram *float64 `json:"macd_histogram,omitempty"`

	Rsi14 *float64 `json:"rsi14,omitempty"`

	BbMiddle *float64 `json:"bb_middle,omitempty"`
	BbUpper  *float64 `json:"bb_upper,omitempty"`
	BbLower  *float64 `json:"bb_lower,omitempty"`

	VolumeSma20 *float64 `json:"volume_sma20,omitempty"`
	VolumeRatio *float64 `json:"volume_ratio,omitempty"`

	Momentum20   *float64 `json:"momentum20,omitempty"`
	Volatility20 *float64 `json:"volatility20,omitempty"`
}

// IndicatorSeries is the full annotated series for one symbol.
type IndicatorSeries struct {
	Symbol string         `json:"symbol"`
	Rows   []IndicatorRow `json:"rows"`
}

// Len returns the number of rows in the series.
func (s *IndicatorSeries) Len() int {
	return len(s.Rows)
}

// Last returns the most recent row, or nil for an empty series.
func (s *IndicatorSeries) Last() *IndicatorRow {
	if len(s.Rows) == 0 {
		return nil
	}
	return &s.Rows[len(s.Rows)-1]
}

// Float returns a pointer to v. Convenience for building rows.
func Float(v float64) *float64 {
	return &v
}

// Deref returns the pointed-to value and whether it is present.
func Deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}
