package contracts

import "time"

// Position is an open holding tracked by the portfolio layer.
type Position struct {
	ID         int64      `json:"id"`
	Symbol     string     `json:"symbol"`
	Shares     int64      `json:"shares"`
	EntryPrice float64    `json:"entry_price"`
	EntryDate  time.Time  `json:"entry_date"`
	Strategy   string     `json:"strategy"`
	Open       bool       `json:"open"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	ExitPrice  *float64   `json:"exit_price,omitempty"`
}

// HoldingDays returns whole days the position has been open as of now.
func (p *Position) HoldingDays(now time.Time) int {
	return int(now.Sub(p.EntryDate).Hours() / 24)
}

// ReturnPct returns the unrealized return against a current price.
func (p *Position) ReturnPct(currentPrice float64) float64 {
	if p.EntryPrice == 0 {
		return 0
	}
	return (currentPrice - p.EntryPrice) / p.EntryPrice
}

// Trade is one executed entry or exit, kept for history.
type Trade struct {
	ID         int64     `json:"id"`
	Symbol     string    `json:"symbol"`
	Action     string    `json:"action"` // BUY or SELL
	Shares     int64     `json:"shares"`
	Price      float64   `json:"price"`
	ExecutedAt time.Time `json:"executed_at"`
	Reason     string    `json:"reason"`
}

// ScanEntry is one row of a persisted screening snapshot.
type ScanEntry struct {
	Symbol    string    `json:"symbol"`
	Score     float64   `json:"score"`
	Price     float64   `json:"price"`
	BuySignal bool      `json:"buy_signal"`
	Reason    string    `json:"reason"`
	Strategy  string    `json:"strategy"`
	ScannedAt time.Time `json:"scanned_at"`
}
