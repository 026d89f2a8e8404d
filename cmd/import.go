package cmd

import (
	"fmt"

	"geotree/core/metrics"
	"geotree/core/reconcile"
	"geotree/feature/country"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for import countries command
	dryRunImport       bool
	snapshotImport     bool
	fromSnapshotImport string
)

// importCmd is the parent command for dataset imports.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import external datasets into the taxonomy",
}

// countriesImportCmd fetches restcountries and reconciles every record.
var countriesImportCmd = &cobra.Command{
	Use:   "countries",
	Short: "Import countries from restcountries",
	Long: `Fetch the restcountries dataset and create or update one term per country.

Countries are matched by English name. Every registered language receives a
translation named after the ISO 3166 alpha-2 code. Invalid records are logged
and skipped; a failed fetch aborts before anything is written.

Examples:
  # Import
  import countries

  # Show what would change
  import countries --dry-run

  # Archive the fetched document, then import
  import countries --snapshot

  # Replay the newest archived document
  import countries --from-snapshot latest`,
	RunE: runCountriesImport,
}

func init() {
	importCmd.AddCommand(countriesImportCmd)

	countriesImportCmd.Flags().BoolVar(&dryRunImport, "dry-run", false, "Report planned creates and updates without writing")
	countriesImportCmd.Flags().BoolVar(&snapshotImport, "snapshot", false, "Archive the fetched document to object storage (overrides SNAPSHOT_ENABLED)")
	countriesImportCmd.Flags().StringVar(&fromSnapshotImport, "from-snapshot", "", "Import an archived document instead of fetching (object key or 'latest')")

	RootCmd.AddCommand(importCmd)
}

func runCountriesImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.logger.Sync()

	imp, err := rt.newImporter(metrics.NewMetrics(), importerOptions{
		archive:      (rt.cfg.Snapshot.Enabled || snapshotImport) && !dryRunImport && fromSnapshotImport == "",
		fromSnapshot: fromSnapshotImport,
	})
	if err != nil {
		return err
	}

	if dryRunImport {
		rt.logger.Info("Planning country import...")
		plan, failures, err := imp.Plan(ctx)
		if err != nil {
			return fmt.Errorf("failed to plan import: %w", err)
		}
		printPlanReport(rt.logger, plan, failures)
		rt.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}

	rt.logger.Info("Importing countries", zap.String("vocabulary", rt.cfg.Taxonomy.Vocabulary))
	summary, err := imp.ImportAll(ctx)
	if err != nil {
		return fmt.Errorf("country import failed: %w", err)
	}

	if summary.Snapshot != "" {
		rt.logger.Info("Snapshot archived", zap.String("key", summary.Snapshot))
	}
	return nil
}

// printPlanReport prints a formatted plan report using logger.
func printPlanReport(l *zap.Logger, plan *reconcile.Plan, failures []country.Failure) {
	s := plan.Summary

	l.Info("Import plan",
		zap.Int("total_items", s.TotalItems),
		zap.Int("creates", s.Creates),
		zap.Int("updates", s.Updates),
		zap.Int("duplicates", s.Duplicates),
		zap.Int("invalid_records", len(failures)),
	)

	maxShow := 5
	if len(plan.Actions) < maxShow {
		maxShow = len(plan.Actions)
	}
	for i := 0; i < maxShow; i++ {
		action := plan.Actions[i]
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.Uint("term_id", action.TermID),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}

	for _, f := range failures {
		l.Info("Invalid record", zap.Int("index", f.Index), zap.String("name", f.Name), zap.String("error", f.Error))
	}
}
