package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantify701/quantify/internal/contracts"
	"github.com/quantify701/quantify/internal/portfolio"
	"github.com/quantify701/quantify/internal/scheduler"
	"github.com/quantify701/quantify/internal/scheduler/jobs"
	"github.com/quantify701/quantify/pkg/database"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage scheduled jobs",
	Long: `Starts the scheduler daemon or manages its jobs.

Registered jobs:
- daily_scan: weekdays at 4:30 PM (screen the universe, persist snapshot)
- position_monitor: hourly during market hours (exit-condition checks)

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run a specific job immediately

Example:
  go run ./cmd/quantify scheduler start
  go run ./cmd/quantify scheduler run daily_scan`,
}

var schedulerStrategy string

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		RunE:  runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a specific job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJobNow,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)

	schedulerCmd.PersistentFlags().StringVar(&schedulerStrategy, "strategy", "Default", "strategy preset for the daily scan")
}

func initScheduler() (*scheduler.Scheduler, func(), error) {
	cfg, log, err := loadRuntime()
	if err != nil {
		return nil, nil, err
	}

	eval, cleanup, err := newEvaluator(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	var (
		scans     contracts.ScanRepository
		positions contracts.PositionRepository
	)
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		repo := portfolio.NewRepository(db.Pool)
		scans = repo
		positions = repo

		base := cleanup
		cleanup = func() {
			db.Close()
			base()
		}
	}

	sched := scheduler.New(log)

	if err := sched.AddJob(jobs.NewScanJob(eval, scans, schedulerStrategy, log)); err != nil {
		cleanup()
		return nil, nil, err
	}

	if positions != nil {
		job := jobs.NewMonitorJob(eval, positions, eval.Generator(), log)
		if err := sched.AddJob(job); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	return sched, cleanup, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	sched.Start()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, jobName := range sched.Jobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.Jobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runJobNow(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	sched, cleanup, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}
	defer cleanup()

	fmt.Printf("Running job: %s\n", jobName)
	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	// RunJob is asynchronous; poll until the run lands in history.
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-quit:
			fmt.Println("Interrupted")
			return nil
		case <-ticker.C:
			history, err := sched.History(jobName)
			if err != nil {
				return err
			}
			results := history.LatestResults(1)
			if len(results) == 0 {
				continue
			}

			result := results[0]
			if result.Success {
				fmt.Printf("Job %s completed in %.1fs\n", jobName, result.Duration.Seconds())
				return nil
			}
			return fmt.Errorf("job %s failed: %s", jobName, result.Error)
		}
	}
}
