// Package cli provides the command-line interface for InStock.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/karibuclean/instock/internal/config"
	"github.com/karibuclean/instock/internal/llm"
	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/service"
	"github.com/karibuclean/instock/internal/store"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and services
	cfg       config.Config
	inventory *service.InventoryService
	planner   *service.PlannerService
	collect   *metrics.Collector

	itemStore *store.ItemStore
	jobStore  *store.JobStore

	// Lazy-initialized, only the two AI commands need it
	insights *service.InsightService

	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "instock",
	Short: "Inventory tracking for a cleaning-supplies operation",
	Long: `InStock tracks cleaning-supply inventory and the job schedule for a small
commercial cleaning business.

Stock items merge by name, jobs stay sorted by date, and two AI-backed
commands identify a photographed product and forecast days-until-stockout.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, cleanup := config.SetupLogger(cfg.LogFile, level)
		logCleanup = cleanup
		slog.SetDefault(logger)

		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}

		itemStore = store.OpenItemStore(cfg.ItemsPath(), store.SystemClock)
		jobStore = store.OpenJobStore(cfg.JobsPath(), store.SystemClock)
		collect = metrics.NewCollector()
		inventory = service.NewInventoryService(itemStore, collect)
		planner = service.NewPlannerService(jobStore, collect)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			if err := logCleanup(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
			}
		}
	},
}

// getInsights creates the insight service with lazy LLM initialization, so
// store-only commands never touch provider credentials.
func getInsights() (*service.InsightService, error) {
	if insights != nil {
		return insights, nil
	}

	model, err := llm.NewModel(cfg)
	if err != nil {
		return nil, fmt.Errorf("init LLM: %w", err)
	}

	insights = service.NewInsightService(
		itemStore,
		jobStore,
		llm.NewForecaster(model),
		llm.NewClassifier(model),
		collect,
	)
	return insights, nil
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(itemsCmd)
	rootCmd.AddCommand(adjustCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(statsCmd)
}
