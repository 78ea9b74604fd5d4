package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/engine"
	"github.com/quantify701/quantify/internal/marketdata"
	"github.com/quantify701/quantify/internal/signals"
	"github.com/quantify701/quantify/pkg/config"
	"github.com/quantify701/quantify/pkg/logger"
	"github.com/quantify701/quantify/pkg/redis"
)

// loadRuntime initializes config and logger for a command.
func loadRuntime() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, logger.New(cfg), nil
}

// newDataSource builds the market data source, wrapping it with the
// redis cache when one is configured.
func newDataSource(cfg *config.Config, log *logger.Logger) (contracts.MarketDataSource, func(), error) {
	yahoo := marketdata.NewYahooClient(cfg, log)

	if !cfg.Redis.Enabled {
		return yahoo, func() {}, nil
	}

	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	cache := redis.NewCache(rdb, "quantify")
	source := marketdata.NewCachedSource(yahoo, cache, cfg.Yahoo.SeriesCacheTTL, cfg.Yahoo.ProfileCacheTTL, log)

	return source, func() { _ = rdb.Close() }, nil
}

// newEvaluator wires the full screening engine from configuration.
func newEvaluator(cfg *config.Config, log *logger.Logger) (*engine.Evaluator, func(), error) {
	source, cleanup, err := newDataSource(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	eval := engine.New(source, log, engine.Options{
		Workers:  cfg.Engine.Workers,
		Period:   cfg.Engine.DefaultPeriod,
		Interval: cfg.Engine.DefaultRange,
		Signals: signals.Config{
			StopLossPct:    cfg.Trading.StopLossPct,
			TakeProfitPct:  cfg.Trading.TakeProfitPct,
			MinHoldingDays: cfg.Trading.MinHoldingDays,
		},
	})

	return eval, cleanup, nil
}

var errNoDatabase = errors.New("no database configured")

// unavailableRepo backs the position endpoints when DATABASE_URL is unset.
type unavailableRepo struct{}

func (unavailableRepo) CreatePosition(context.Context, *contracts.Position) error {
	return errNoDatabase
}

func (unavailableRepo) ClosePosition(context.Context, int64, float64, time.Time) error {
	return errNoDatabase
}

func (unavailableRepo) ListOpenPositions(context.Context) ([]contracts.Position, error) {
	return nil, errNoDatabase
}

func (unavailableRepo) RecordTrade(context.Context, *contracts.Trade) error {
	return errNoDatabase
}

func (unavailableRepo) ListTrades(context.Context, string, int) ([]contracts.Trade, error) {
	return nil, errNoDatabase
}
