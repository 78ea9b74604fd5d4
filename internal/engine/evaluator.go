// Package engine orchestrates the per-symbol screening pipeline:
// fetch, indicators, filter gate, score, buy signal.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/indicators"
	"github.com/quantify701/quantify/internal/scoring"
	"github.com/quantify701/quantify/internal/screening"
	"github.com/quantify701/quantify/internal/signals"
	"github.com/quantify701/quantify/pkg/logger"
)

const (
	defaultWorkers  = 4
	defaultPeriod   = "1y"
	defaultInterval = "1d"
)

// Options tune the evaluator.
type Options struct {
	Workers  int
	Period   string
	Interval string
	Signals  signals.Config
}

// Evaluator runs the screening pipeline over a symbol universe.
type Evaluator struct {
	source    contracts.MarketDataSource
	generator *signals.Generator
	log       *logger.Logger
	workers   int
	period    string
	interval  string
}

// New creates an Evaluator. Zero-valued options fall back to defaults.
func New(source contracts.MarketDataSource, log *logger.Logger, opts Options) *Evaluator {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Period == "" {
		opts.Period = defaultPeriod
	}
	if opts.Interval == "" {
		opts.Interval = defaultInterval
	}
	if opts.Signals == (signals.Config{}) {
		opts.Signals = signals.DefaultConfig()
	}

	return &Evaluator{
		source:    source,
		generator: signals.NewGenerator(opts.Signals),
		log:       log,
		workers:   opts.Workers,
		period:    opts.Period,
		interval:  opts.Interval,
	}
}

// EvaluateUniverse screens every symbol concurrently and returns the
// admitted candidates sorted by score descending, ties broken by input
// order. A failed symbol is logged and omitted; it never aborts the
// batch. Invalid criteria fail the whole run up front.
func (e *Evaluator) EvaluateUniverse(ctx context.Context, symbols []string, criteria contracts.FilterCriteria) ([]contracts.ScoredCandidate, error) {
	gate, err := screening.NewGate(criteria)
	if err != nil {
		return nil, err
	}

	results := make([]*contracts.ScoredCandidate, len(symbols))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				symbol := symbols[idx]
				candidate, rejection, err := e.evaluate(ctx, symbol, gate)
				if err != nil {
					e.log.WithError(err).WithField("symbol", symbol).Warn("symbol skipped")
					continue
				}
				if rejection != nil {
					e.log.WithFields(map[string]interface{}{
						"symbol": symbol,
						"reason": rejection.Reason,
					}).Debug("symbol rejected")
					continue
				}
				results[idx] = candidate
			}
		}()
	}

	for idx := range symbols {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()

	qualified := make([]contracts.ScoredCandidate, 0, len(symbols))
	for _, c := range results {
		if c != nil {
			qualified = append(qualified, *c)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})

	e.log.WithFields(map[string]interface{}{
		"universe":  len(symbols),
		"qualified": len(qualified),
		"strategy":  criteria.Name,
	}).Info("universe evaluated")

	return qualified, nil
}

// EvaluateSingle screens one symbol. A nil candidate with a non-nil
// rejection means the filter gate turned it away.
func (e *Evaluator) EvaluateSingle(ctx context.Context, symbol string, criteria contracts.FilterCriteria) (*contracts.ScoredCandidate, *contracts.Rejection, error) {
	gate, err := screening.NewGate(criteria)
	if err != nil {
		return nil, nil, err
	}
	return e.evaluate(ctx, symbol, gate)
}

// FetchSeries exposes the evaluator's fetch+compute step for callers
// that need the annotated series without the gate (signal and target
// commands).
func (e *Evaluator) FetchSeries(ctx context.Context, symbol string) (*contracts.IndicatorSeries, error) {
	points, err := e.source.FetchSeries(ctx, symbol, e.period, e.interval)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", contracts.ErrSourceUnavailable, symbol, err)
	}
	return indicators.Compute(symbol, points), nil
}

// Generator returns the shared signal generator.
func (e *Evaluator) Generator() *signals.Generator {
	return e.generator
}

func (e *Evaluator) evaluate(ctx context.Context, symbol string, gate *screening.Gate) (*contracts.ScoredCandidate, *contracts.Rejection, error) {
	points, err := e.source.FetchSeries(ctx, symbol, e.period, e.interval)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", contracts.ErrSourceUnavailable, symbol, err)
	}

	profile, err := e.source.FetchProfile(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", contracts.ErrSourceUnavailable, symbol, err)
	}

	series := indicators.Compute(symbol, points)

	if reason := gate.CheckRejection(series, profile); reason != "" {
		return nil, &contracts.Rejection{Symbol: symbol, Reason: reason}, nil
	}

	row := series.Last()
	score := scoring.Score(series, profile)
	buy, reason := e.generator.Buy(series)

	return &contracts.ScoredCandidate{
		Symbol:       symbol,
		Name:         profile.Name,
		CurrentPrice: row.Close,
		Score:        score,
		Rsi:          row.Rsi14,
		Momentum:     row.Momentum20,
		VolumeRatio:  row.VolumeRatio,
		MarketCap:    profile.MarketCap,
		Sector:       profile.Sector,
		BuySignal:    buy,
		Reason:       reason,
		Series:       series,
	}, nil, nil
}
