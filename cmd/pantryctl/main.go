package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pantrylens/kitchen/config"
	"github.com/pantrylens/kitchen/internal/infrastructure/kitchenapi"
	"github.com/pantrylens/kitchen/internal/logging"
	"github.com/pantrylens/kitchen/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose      bool
	apiURL       string
	outputFormat string
	timeout      time.Duration

	logger *zap.Logger
	cfg    *config.Config
	client *kitchenapi.Client

	// now is the clock used for "today"
	now = time.Now
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pantryctl",
	Short: "Inspect and reconcile the pantry from the terminal",
	Long: `pantryctl talks to the kitchen API directly and applies the same pantry,
recipe and expiration rules as the PantryLens web client.

Settings are read from .env, config.yaml and PANTRYLENS_* variables; --api overrides
the kitchen API base URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := parseFormat(outputFormat); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		logger, err = logging.New(cfg.Server.Environment, verbose)
		if err != nil {
			return err
		}
		// Only errors reach stderr unless --verbose
		if !verbose {
			logger = logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
		}

		client = kitchenapi.NewClient(kitchenapi.Config{
			BaseURL:   cfg.API.BaseURL,
			Token:     cfg.API.Token,
			Timeout:   cfg.API.Timeout,
			RateLimit: cfg.API.RateLimit,
			Burst:     cfg.API.Burst,
		}, logger)
		client.SetDebug(verbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func reconciler() (*usecase.ReconciliationService, error) {
	policy, err := usecase.ParseTogglePolicy(cfg.Reconciliation.TogglePolicy)
	if err != nil {
		return nil, err
	}
	return usecase.NewReconciliationService(client, usecase.NewValidator(),
		usecase.ReconciliationConfig{TogglePolicy: policy}, nil, logger), nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Kitchen API base URL (or set PANTRYLENS_API_BASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable, "Output format: table, json or yaml")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Operation timeout")

	expiringCmd.Flags().Int("days", 0, "Expiration window in days (default from configuration)")
	expiringCmd.Flags().Int("limit", 0, "Maximum number of recipes (default from configuration)")
	consumeCmd.Flags().Bool("restock", false, "Put the ingredient back on the shopping list")

	// Add commands to root
	rootCmd.AddCommand(pantryCmd)
	rootCmd.AddCommand(expiringCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(consumeCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
