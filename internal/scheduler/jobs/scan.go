package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/screening"
	"github.com/quantify701/quantify/pkg/logger"
)

// UniverseEvaluator screens a symbol universe against criteria.
type UniverseEvaluator interface {
	EvaluateUniverse(ctx context.Context, symbols []string, criteria contracts.FilterCriteria) ([]contracts.ScoredCandidate, error)
}

// ScanJob screens the default universe daily and persists the snapshot
type ScanJob struct {
	evaluator UniverseEvaluator
	scans     contracts.ScanRepository
	strategy  string
	logger    *logger.Logger
}

// NewScanJob creates a new scan job. scans may be nil, in which case
// results are only logged.
func NewScanJob(evaluator UniverseEvaluator, scans contracts.ScanRepository, strategy string, log *logger.Logger) *ScanJob {
	if strategy == "" {
		strategy = "Default"
	}
	return &ScanJob{
		evaluator: evaluator,
		scans:     scans,
		strategy:  strategy,
		logger:    log,
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return "daily_scan"
}

// Schedule runs after the US market close, weekdays at 4:30 PM ET
func (j *ScanJob) Schedule() string {
	return "0 30 16 * * 1-5"
}

// Run executes the universe scan
func (j *ScanJob) Run(ctx context.Context) error {
	j.logger.WithField("strategy", j.strategy).Info("Starting scheduled universe scan")

	criteria, ok := screening.Preset(j.strategy)
	if !ok {
		return fmt.Errorf("unknown strategy: %s", j.strategy)
	}

	candidates, err := j.evaluator.EvaluateUniverse(ctx, screening.DefaultUniverse(), criteria)
	if err != nil {
		return fmt.Errorf("universe scan failed: %w", err)
	}

	buyCount := 0
	for _, c := range candidates {
		if c.BuySignal {
			buyCount++
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"strategy":    j.strategy,
		"candidates":  len(candidates),
		"buy_signals": buyCount,
	}).Info("Universe scan completed")

	if j.scans == nil {
		return nil
	}

	scannedAt := time.Now().UTC().Truncate(time.Second)
	entries := make([]contracts.ScanEntry, 0, len(candidates))
	for _, c := range candidates {
		entries = append(entries, contracts.ScanEntry{
			Symbol:    c.Symbol,
			Score:     c.Score,
			Price:     c.CurrentPrice,
			BuySignal: c.BuySignal,
			Reason:    c.Reason,
			Strategy:  j.strategy,
			ScannedAt: scannedAt,
		})
	}

	if err := j.scans.SaveScan(ctx, entries); err != nil {
		return fmt.Errorf("failed to persist scan snapshot: %w", err)
	}

	return nil
}
