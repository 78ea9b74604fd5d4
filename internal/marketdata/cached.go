package marketdata

import (
	"context"
	"time"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/pkg/logger"
	"github.com/quantify701/quantify/pkg/redis"
)

// CachedSource decorates a MarketDataSource with an injected TTL
// cache. A cache failure falls through to the underlying source.
type CachedSource struct {
	source     contracts.MarketDataSource
	cache      contracts.SeriesCache
	seriesTTL  time.Duration
	profileTTL time.Duration
	logger     *logger.Logger
}

// NewCachedSource wraps source with the cache collaborator.
func NewCachedSource(source contracts.MarketDataSource, cache contracts.SeriesCache, seriesTTL, profileTTL time.Duration, log *logger.Logger) *CachedSource {
	return &CachedSource{
		source:     source,
		cache:      cache,
		seriesTTL:  seriesTTL,
		profileTTL: profileTTL,
		logger:     log,
	}
}

// FetchSeries serves from cache when possible.
func (s *CachedSource) FetchSeries(ctx context.Context, symbol, period, interval string) ([]contracts.PricePoint, error) {
	key := redis.SeriesKey(symbol, period, interval)

	var cached []contracts.PricePoint
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		s.logger.WithField("symbol", symbol).Debug("series cache hit")
		return cached, nil
	}

	points, err := s.source.FetchSeries(ctx, symbol, period, interval)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, points, s.seriesTTL); err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("series cache write failed")
	}
	return points, nil
}

// FetchProfile serves from cache when possible.
func (s *CachedSource) FetchProfile(ctx context.Context, symbol string) (*contracts.IssuerProfile, error) {
	key := redis.ProfileKey(symbol)

	var cached contracts.IssuerProfile
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		s.logger.WithField("symbol", symbol).Debug("profile cache hit")
		return &cached, nil
	}

	profile, err := s.source.FetchProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, profile, s.profileTTL); err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Warn("profile cache write failed")
	}
	return profile, nil
}
