package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/signals"
	"github.com/quantify701/quantify/pkg/logger"
)

// SeriesFetcher fetches an indicator series for one symbol.
type SeriesFetcher interface {
	FetchSeries(ctx context.Context, symbol string) (*contracts.IndicatorSeries, error)
}

// MonitorJob checks open positions for exit conditions.
// It is advisory: sell signals are logged, never auto-executed.
type MonitorJob struct {
	fetcher   SeriesFetcher
	positions contracts.PositionRepository
	generator *signals.Generator
	logger    *logger.Logger
}

// NewMonitorJob creates a new position monitor job
func NewMonitorJob(fetcher SeriesFetcher, positions contracts.PositionRepository, generator *signals.Generator, log *logger.Logger) *MonitorJob {
	return &MonitorJob{
		fetcher:   fetcher,
		positions: positions,
		generator: generator,
		logger:    log,
	}
}

// Name returns the job name
func (j *MonitorJob) Name() string {
	return "position_monitor"
}

// Schedule runs hourly during US market hours, weekdays
func (j *MonitorJob) Schedule() string {
	return "0 0 10-16 * * 1-5"
}

// Run evaluates sell conditions for every open position
func (j *MonitorJob) Run(ctx context.Context) error {
	open, err := j.positions.ListOpenPositions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open positions: %w", err)
	}

	if len(open) == 0 {
		j.logger.Debug("No open positions to monitor")
		return nil
	}

	now := time.Now().UTC()
	sellCount := 0

	for i := range open {
		p := &open[i]

		series, err := j.fetcher.FetchSeries(ctx, p.Symbol)
		if err != nil {
			j.logger.WithError(err).WithField("symbol", p.Symbol).Warn("Skipping position, fetch failed")
			continue
		}

		last := series.Last()
		if last == nil {
			j.logger.WithField("symbol", p.Symbol).Warn("Skipping position, no price data")
			continue
		}

		sell, reason := j.generator.Sell(p, last.Close, last, now)
		if !sell {
			continue
		}

		sellCount++
		j.logger.WithFields(map[string]interface{}{
			"symbol":       p.Symbol,
			"position_id":  p.ID,
			"entry_price":  p.EntryPrice,
			"current":      last.Close,
			"return_pct":   p.ReturnPct(last.Close) * 100,
			"holding_days": p.HoldingDays(now),
			"reason":       reason,
		}).Warn("Sell signal on open position")
	}

	j.logger.WithFields(map[string]interface{}{
		"positions":    len(open),
		"sell_signals": sellCount,
	}).Info("Position monitor completed")

	return nil
}
