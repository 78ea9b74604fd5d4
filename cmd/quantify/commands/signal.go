package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/internal/contracts"
)

// signalCmd represents the signal command
var signalCmd = &cobra.Command{
	Use:   "signal [symbol]",
	Short: "Evaluate the buy conditions for one symbol",
	Long: `Fetches the price history for a symbol, computes the technical
indicators and reports whether the buy conditions are met.

Example:
  go run ./cmd/quantify signal AAPL`,
	Args: cobra.ExactArgs(1),
	RunE: runSignal,
}

func init() {
	rootCmd.AddCommand(signalCmd)
}

func runSignal(cmd *cobra.Command, args []string) error {
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

	buy, reason := eval.Generator().Buy(series)

	fmt.Printf("\n=== Signal: %s ===\n", symbol)
	printKeyValue("Price", fmt.Sprintf("%.2f", last.Close), 12)
	printIndicator("RSI(14)", last.Rsi14, "%.1f")
	printIndicator("SMA(20)", last.Sma20, "%.2f")
	printIndicator("SMA(50)", last.Sma50, "%.2f")
	printIndicator("MACD", last.Macd, "%.3f")
	printIndicator("Momentum", scaledPct(last.Momentum20), "%.1f%%")
	printIndicator("Vol ratio", last.VolumeRatio, "%.2f")

	fmt.Println()
	if buy {
		fmt.Printf("BUY: %s\n", reason)
	} else {
		fmt.Printf("HOLD: %s\n", reason)
	}
	fmt.Println()

	return nil
}

func printIndicator(name string, v *float64, format string) {
	if value, ok := contracts.Deref(v); ok {
		printKeyValue(name, fmt.Sprintf(format, value), 12)
		return
	}
	printKeyValue(name, "-", 12)
}

func scaledPct(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return contracts.Float(*v * 100)
}
