package cmd

import (
	"context"
	"fmt"

	"stream-manager/core/config"
	"stream-manager/core/database"
	"stream-manager/core/logger"
	"stream-manager/core/reconcile"
	"stream-manager/feature/streams"
	"stream-manager/feature/streams/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the fixup command
	fixupUserID     uint64
	fixupProviderID uint64
	fixupIgnore     string
	fixupBatchSize  int
	fixupDryRun     bool
)

// fixupCmd reconciles stream metadata for one user or all users.
var fixupCmd = &cobra.Command{
	Use:   "fixup",
	Short: "Reconcile stream names, channels, logos and EPG ids",
	Long: `Reconcile stream metadata so every copy of a channel converges on
the most recently edited values. User edits to names and channel numbers
are kept; missing logos and EPG ids are filled from sibling streams.

Examples:
  # Fix up every user
  fixup

  # Fix up one user's streams from one provider
  fixup --user-id 42 --provider-id 7

  # Skip name and channel reconciliation
  fixup --ignore name,channel

  # Count what would change without writing
  fixup --dry-run`,
	RunE: runFixup,
}

func init() {
	fixupCmd.Flags().Uint64Var(&fixupUserID, "user-id", 0, "Restrict the run to one user (0 = all users)")
	fixupCmd.Flags().Uint64Var(&fixupProviderID, "provider-id", 0, "Restrict each user to one provider's streams")
	fixupCmd.Flags().StringVar(&fixupIgnore, "ignore", "", "Comma-separated fields to skip (name,channel,logo,tvgid)")
	fixupCmd.Flags().IntVar(&fixupBatchSize, "batch-size", 0, "Row updates per chunk (0 = configured value)")
	fixupCmd.Flags().BoolVar(&fixupDryRun, "dry-run", false, "Count updates without applying them")

	RootCmd.AddCommand(fixupCmd)
}

func runFixup(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	l.Info("Starting stream fixup")

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Flags override the configured batch size and ignore list
	opts := reconcile.Options{
		BatchSize: cfg.Reconcile.BatchSize,
	}
	if fixupBatchSize > 0 {
		opts.BatchSize = fixupBatchSize
	}
	ignore := cfg.Reconcile.IgnoredFields()
	if fixupIgnore != "" {
		ignore = reconcile.ParseFields(fixupIgnore)
	}

	svc := streams.NewService(db, l, opts)
	report, err := svc.Fixup(ctx, streams.FixupParams{
		UserID:     fixupUserID,
		ProviderID: fixupProviderID,
		Ignore:     ignore,
		DryRun:     fixupDryRun,
	})
	if err != nil {
		return fmt.Errorf("fixup failed: %w", err)
	}

	printFixupReport(l, report)

	if report.Failed > 0 {
		return fmt.Errorf("fixup finished with %d failed targets", report.Failed)
	}
	return nil
}

// printFixupReport prints a formatted fixup report using logger.
func printFixupReport(l *zap.Logger, report *models.RunReport) {
	l.Info("Fixup report",
		zap.String("run_id", report.RunID),
		zap.Int("targets", len(report.Targets)),
		zap.Int("failed", report.Failed),
		zap.Int("updated", report.Updated),
		zap.Int("names", report.Names),
		zap.Int("channels", report.Channels),
		zap.Int("logos", report.Logos),
		zap.Int("tvg_ids", report.TvgIDs),
		zap.String("execution_time", report.ExecutionTime),
	)
}
