package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/screening"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen [symbols...]",
	Short: "Screen a symbol universe for candidates",
	Long: `Screens a symbol universe against a strategy preset, scores the
survivors and prints them ranked by score.

Without arguments the default 36-symbol universe is screened.

Example:
  go run ./cmd/quantify screen
  go run ./cmd/quantify screen --strategy Momentum --limit 10
  go run ./cmd/quantify screen AAPL MSFT NVDA --json`,
	RunE: runScreen,
}

var (
	screenStrategy string
	screenLimit    int
	screenJSON     bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenStrategy, "strategy", "Default", "strategy preset")
	screenCmd.Flags().IntVar(&screenLimit, "limit", 0, "max candidates to print (0 = all)")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "emit JSON instead of a table")
}

func runScreen(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	criteria, ok := screening.Preset(screenStrategy)
	if !ok {
		return fmt.Errorf("unknown strategy %q (available: %s)",
			screenStrategy, strings.Join(screening.PresetNames(), ", "))
	}

	symbols := args
	if len(symbols) == 0 {
		symbols = screening.DefaultUniverse()
	}
	for i := range symbols {
		symbols[i] = strings.ToUpper(symbols[i])
	}

	eval, cleanup, err := newEvaluator(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	candidates, err := eval.EvaluateUniverse(ctx, symbols, criteria)
	if err != nil {
		return fmt.Errorf("screen failed: %w", err)
	}

	if screenLimit > 0 && screenLimit < len(candidates) {
		candidates = candidates[:screenLimit]
	}

	if screenJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}

	printScreenResults(screenStrategy, candidates, len(symbols), time.Since(start))
	return nil
}

func printScreenResults(strategy string, candidates []contracts.ScoredCandidate, universeSize int, elapsed time.Duration) {
	fmt.Printf("\n=== Screen: %s ===\n", strategy)
	fmt.Printf("Universe: %d symbols, %d passed (%.1fs)\n\n", universeSize, len(candidates), elapsed.Seconds())

	if len(candidates) == 0 {
		fmt.Println("No candidates passed the filters.")
		return
	}

	widths := []int{6, 8, 6, 10, 6, 6, 40}
	printTableHeader([]string{"#", "Symbol", "Score", "Price", "RSI", "Buy", "Reason"}, widths)

	for i, c := range candidates {
		rsi := "-"
		if v, ok := contracts.Deref(c.Rsi); ok {
			rsi = fmt.Sprintf("%.1f", v)
		}
		buy := ""
		if c.BuySignal {
			buy = "BUY"
		}
		printTableRow([]string{
			fmt.Sprintf("%d", i+1),
			c.Symbol,
			fmt.Sprintf("%.0f", c.Score),
			fmt.Sprintf("%.2f", c.CurrentPrice),
			rsi,
			buy,
			truncate(c.Reason, 40),
		}, widths)
	}
	fmt.Println()
}
