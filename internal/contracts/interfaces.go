package contracts

import (
	"context"
	"time"
)

// MarketDataSource supplies price series and issuer metadata. Retry,
// rate limiting and caching live behind this interface, invisible to
// the screening core.
type MarketDataSource interface {
	// FetchSeries returns the chronological OHLCV series for a symbol.
	// period is a range token such as "1y", interval such as "1d".
	FetchSeries(ctx context.Context, symbol, period, interval string) ([]PricePoint, error)

	// FetchProfile returns issuer metadata for a symbol.
	FetchProfile(ctx context.Context, symbol string) (*IssuerProfile, error)
}

// SeriesCache is the injected cache collaborator for fetched data.
// Satisfied by the redis cache helper.
type SeriesCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// PositionRepository persists open positions and trade history.
type PositionRepository interface {
	CreatePosition(ctx context.Context, p *Position) error
	ClosePosition(ctx context.Context, id int64, exitPrice float64, closedAt time.Time) error
	ListOpenPositions(ctx context.Context) ([]Position, error)
	RecordTrade(ctx context.Context, t *Trade) error
	ListTrades(ctx context.Context, symbol string, limit int) ([]Trade, error)
}

// ScanRepository persists screening snapshots for later inspection.
type ScanRepository interface {
	SaveScan(ctx context.Context, entries []ScanEntry) error
	LatestScan(ctx context.Context, strategy string) ([]ScanEntry, error)
}
