package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/internal/targets"
)

// targetsCmd represents the targets command
var targetsCmd = &cobra.Command{
	Use:   "targets [symbol]",
	Short: "Compute entry and exit price targets for one symbol",
	Long: `Computes a suggested buy price with an entry range, plus sell targets
(take-profit tiers and stop loss) for a symbol under a strategy.

Example:
  go run ./cmd/quantify targets AAPL
  go run ./cmd/quantify targets NVDA --strategy Aggressive --entry 620`,
	Args: cobra.ExactArgs(1),
	RunE: runTargets,
}

var (
	targetsStrategy string
	targetsEntry    float64
)

func init() {
	rootCmd.AddCommand(targetsCmd)

	targetsCmd.Flags().StringVar(&targetsStrategy, "strategy", "Default", "strategy preset")
	targetsCmd.Flags().Float64Var(&targetsEntry, "entry", 0, "entry price for sell targets (default: current price)")
}

func runTargets(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])

	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	eval, cleanup, err := newEvaluator(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	series, err := eval.FetchSeries(ctx, symbol)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", symbol, err)
	}

	last := series.Last()
	if last == nil {
		return fmt.Errorf("no price data for %s", symbol)
	}

	entry := targetsEntry
	if entry <= 0 {
		entry = last.Close
	}

	buy := targets.SuggestedBuyPrice(series, targetsStrategy)
	sell := targets.SellTargets(series, entry, targetsStrategy)

	fmt.Printf("\n=== Targets: %s (%s) ===\n", symbol, targetsStrategy)
	printKeyValue("Current", fmt.Sprintf("%.2f", last.Close), 14)

	fmt.Println("\nEntry:")
	printKeyValue("Buy price", fmt.Sprintf("%.2f", buy.Price), 14)
	printKeyValue("Buy range", fmt.Sprintf("%.2f - %.2f", buy.RangeLow, buy.RangeHigh), 14)
	printKeyValue("Reasoning", buy.Reasoning, 14)

	fmt.Printf("\nExit (from entry %.2f):\n", entry)
	printKeyValue("Target", fmt.Sprintf("%.2f", sell.TargetPrice), 14)
	printKeyValue("Conservative", fmt.Sprintf("%.2f", sell.ConservativeTarget), 14)
	printKeyValue("Aggressive", fmt.Sprintf("%.2f", sell.AggressiveTarget), 14)
	printKeyValue("Stop loss", fmt.Sprintf("%.2f", sell.StopLossPrice), 14)
	printKeyValue("Hold days", fmt.Sprintf("%d", sell.HoldDays), 14)
	printKeyValue("Reasoning", sell.Reasoning, 14)
	fmt.Println()

	return nil
}
