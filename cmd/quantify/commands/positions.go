package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/portfolio"
	"github.com/quantify701/quantify/pkg/database"
)

// positionsCmd represents the positions command
var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Manage tracked positions",
	Long: `Lists, opens and closes tracked positions. Requires DATABASE_URL.

Subcommands:
  list    - list open positions
  open    - open a position
  close   - close a position
  trades  - show trade history

Example:
  go run ./cmd/quantify positions list
  go run ./cmd/quantify positions open AAPL --shares 10 --price 182.50
  go run ./cmd/quantify positions close 3 --price 205.10
  go run ./cmd/quantify positions trades --symbol AAPL`,
}

var (
	positionShares   int64
	positionPrice    float64
	positionStrategy string
	tradesSymbol     string
	tradesLimit      int
)

var (
	positionsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List open positions",
		RunE:  listPositions,
	}

	positionsOpenCmd = &cobra.Command{
		Use:   "open [symbol]",
		Short: "Open a position",
		Args:  cobra.ExactArgs(1),
		RunE:  openPosition,
	}

	positionsCloseCmd = &cobra.Command{
		Use:   "close [id]",
		Short: "Close a position",
		Args:  cobra.ExactArgs(1),
		RunE:  closePosition,
	}

	positionsTradesCmd = &cobra.Command{
		Use:   "trades",
		Short: "Show trade history",
		RunE:  listTrades,
	}
)

func init() {
	rootCmd.AddCommand(positionsCmd)
	positionsCmd.AddCommand(positionsListCmd)
	positionsCmd.AddCommand(positionsOpenCmd)
	positionsCmd.AddCommand(positionsCloseCmd)
	positionsCmd.AddCommand(positionsTradesCmd)

	positionsOpenCmd.Flags().Int64Var(&positionShares, "shares", 0, "number of shares")
	positionsOpenCmd.Flags().Float64Var(&positionPrice, "price", 0, "entry price")
	positionsOpenCmd.Flags().StringVar(&positionStrategy, "strategy", "Default", "strategy preset")

	positionsCloseCmd.Flags().Float64Var(&positionPrice, "price", 0, "exit price")

	positionsTradesCmd.Flags().StringVar(&tradesSymbol, "symbol", "", "filter by symbol")
	positionsTradesCmd.Flags().IntVar(&tradesLimit, "limit", 20, "max trades to show")
}

// openRepository connects to the database and builds the repository.
func openRepository() (*portfolio.Repository, func(), error) {
	cfg, _, err := loadRuntime()
	if err != nil {
		return nil, nil, err
	}

	if cfg.Database.URL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is not set")
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	return portfolio.NewRepository(db.Pool), db.Close, nil
}

func listPositions(cmd *cobra.Command, args []string) error {
	repo, cleanup, err := openRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	positions, err := repo.ListOpenPositions(ctx)
	if err != nil {
		return err
	}

	if len(positions) == 0 {
		fmt.Println("No open positions.")
		return nil
	}

	now := time.Now().UTC()
	widths := []int{4, 8, 8, 10, 12, 12, 6}
	printTableHeader([]string{"ID", "Symbol", "Shares", "Entry", "Date", "Strategy", "Days"}, widths)

	for _, p := range positions {
		printTableRow([]string{
			fmt.Sprintf("%d", p.ID),
			p.Symbol,
			fmt.Sprintf("%d", p.Shares),
			fmt.Sprintf("%.2f", p.EntryPrice),
			p.EntryDate.Format("2006-01-02"),
			p.Strategy,
			fmt.Sprintf("%d", p.HoldingDays(now)),
		}, widths)
	}

	return nil
}

func openPosition(cmd *cobra.Command, args []string) error {
	symbol := strings.ToUpper(args[0])
	if positionShares <= 0 || positionPrice <= 0 {
		return fmt.Errorf("--shares and --price are required")
	}

	repo, cleanup, err := openRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	position := &contracts.Position{
		Symbol:     symbol,
		Shares:     positionShares,
		EntryPrice: positionPrice,
		EntryDate:  time.Now().UTC(),
		Strategy:   positionStrategy,
	}

	if err := repo.CreatePosition(ctx, position); err != nil {
		return err
	}

	fmt.Printf("Opened position #%d: %d %s @ %.2f\n", position.ID, position.Shares, symbol, positionPrice)
	return nil
}

func closePosition(cmd *cobra.Command, args []string) error {
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("invalid position id: %s", args[0])
	}
	if positionPrice <= 0 {
		return fmt.Errorf("--price is required")
	}

	repo, cleanup, err := openRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closedAt := time.Now().UTC()
	if err := repo.ClosePosition(ctx, id, positionPrice, closedAt); err != nil {
		return err
	}

	fmt.Printf("Closed position #%d @ %.2f\n", id, positionPrice)
	return nil
}

func listTrades(cmd *cobra.Command, args []string) error {
	repo, cleanup, err := openRepository()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	trades, err := repo.ListTrades(ctx, strings.ToUpper(tradesSymbol), tradesLimit)
	if err != nil {
		return err
	}

	if len(trades) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	widths := []int{4, 8, 6, 8, 10, 18, 36}
	printTableHeader([]string{"ID", "Symbol", "Side", "Shares", "Price", "Executed", "Reason"}, widths)

	for _, t := range trades {
		printTableRow([]string{
			fmt.Sprintf("%d", t.ID),
			t.Symbol,
			t.Action,
			fmt.Sprintf("%d", t.Shares),
			fmt.Sprintf("%.2f", t.Price),
			t.ExecutedAt.Format("2006-01-02 15:04"),
			truncate(t.Reason, 36),
		}, widths)
	}

	return nil
}
