package contracts

import "errors"

var (
	// ErrInvalidCriteria marks contradictory filter configuration.
	// This is a caller programming error, not a data condition.
	ErrInvalidCriteria = errors.New("invalid filter criteria")

	// ErrSourceUnavailable marks a symbol whose series or profile could
	// not be fetched. The symbol is omitted from batch output.
	ErrSourceUnavailable = errors.New("market data source unavailable")
)
