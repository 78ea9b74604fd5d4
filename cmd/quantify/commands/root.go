package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "quantify",
	Short: "Quantify - equity screening and signal engine",
	Long: `Quantify Unified CLI

Screens an equity universe with technical indicators, scores
candidates, and generates buy/sell signals with price targets.

Usage:
  go run ./cmd/quantify [command]

Examples:
  go run ./cmd/quantify screen --strategy Momentum
  go run ./cmd/quantify signal AAPL
  go run ./cmd/quantify targets NVDA --strategy Aggressive
  go run ./cmd/quantify api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
