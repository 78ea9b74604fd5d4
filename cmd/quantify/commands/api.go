package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/internal/api"
	"github.com/quantify701/quantify/internal/api/handlers"
	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/portfolio"
	"github.com/quantify701/quantify/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                    - Health check
  GET  /api/screen                - Run a preset screen
  POST /api/screen                - Run a screen with custom criteria
  GET  /api/presets               - List strategy presets
  GET  /api/scans/latest          - Latest persisted scan snapshot
  GET  /api/signal/{symbol}       - Buy signal for one symbol
  GET  /api/targets/{symbol}      - Price targets for one symbol
  GET  /api/positions             - List open positions
  POST /api/positions             - Open a position
  POST /api/positions/{id}/close  - Close a position
  GET  /api/trades                - Trade history

Position endpoints require DATABASE_URL; without it the server runs
screening-only.

Example:
  go run ./cmd/quantify api
  go run ./cmd/quantify api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default: PORT env)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	eval, cleanup, err := newEvaluator(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	// Persistence is optional. Without a database the position and
	// snapshot endpoints respond with errors but screening still works.
	var (
		db        *database.DB
		pinger    handlers.Pinger
		positions contracts.PositionRepository
		scans     contracts.ScanRepository
	)
	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		repo := portfolio.NewRepository(db.Pool)
		pinger = db
		positions = repo
		scans = repo
		log.Info("Connected to database")
	} else {
		positions = unavailableRepo{}
		log.Warn("DATABASE_URL not set, running without persistence")
	}

	screenHandler := handlers.NewScreenHandler(eval, scans, log)
	signalHandler := handlers.NewSignalHandler(eval, eval.Generator(), log)
	positionHandler := handlers.NewPositionHandler(positions, log)
	healthHandler := handlers.NewHealthHandler(pinger)

	router := api.NewRouter(screenHandler, signalHandler, positionHandler, healthHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s (Ctrl+C to stop)\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
