package contracts

import "time"

// PricePoint is one row of a daily OHLCV series. Rows are ordered
// chronologically, one per trading session. Gaps (holidays, halts) are
// expected and are not an error.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// IssuerProfile is a read-only snapshot of issuer metadata, valid for a
// single evaluation pass.
type IssuerProfile struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	MarketCap     float64  `json:"market_cap"`
	Sector        string   `json:"sector"`
	Industry      string   `json:"industry"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
}
