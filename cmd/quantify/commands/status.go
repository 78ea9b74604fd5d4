package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/pkg/database"
	"github.com/quantify701/quantify/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and backing-service health",
	Long: `Prints the effective configuration and checks connectivity to the
configured backing services.

Example:
  go run ./cmd/quantify status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadRuntime()
	if err != nil {
		return err
	}

	fmt.Println("\n=== Quantify Status ===")
	printKeyValue("Environment", cfg.Env, 16)
	printKeyValue("Port", cfg.Port, 16)
	printKeyValue("Log level", cfg.LogLevel, 16)
	printKeyValue("Workers", fmt.Sprintf("%d", cfg.Engine.Workers), 16)
	printKeyValue("Period", cfg.Engine.DefaultPeriod, 16)
	printKeyValue("Yahoo base URL", cfg.Yahoo.BaseURL, 16)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	fmt.Println("\nBacking services:")

	if cfg.Database.URL == "" {
		printKeyValue("PostgreSQL", "not configured", 16)
	} else if db, err := database.New(cfg); err != nil {
		printKeyValue("PostgreSQL", "unreachable: "+err.Error(), 16)
	} else {
		stats := db.Stats()
		printKeyValue("PostgreSQL", fmt.Sprintf("ok (%d/%d conns)", stats.TotalConns, stats.MaxConns), 16)
		db.Close()
	}

	if !cfg.Redis.Enabled {
		printKeyValue("Redis", "disabled", 16)
	} else if rdb, err := redis.New(cfg); err != nil {
		printKeyValue("Redis", "unreachable: "+err.Error(), 16)
	} else {
		if err := rdb.Redis().Ping(ctx).Err(); err != nil {
			printKeyValue("Redis", "unreachable: "+err.Error(), 16)
		} else {
			printKeyValue("Redis", "ok", 16)
		}
		_ = rdb.Close()
	}

	fmt.Println()
	return nil
}
