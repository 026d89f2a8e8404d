package cmd

import (
	"context"

	"geotree/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the country taxonomy",
	Long:  `Checks the taxonomy tables, the translation coverage of every term and, when enabled, the snapshot archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the taxonomy tables against the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// translationsCmd represents the integrity translations command
var translationsCmd = &cobra.Command{
	Use:   "translations",
	Short: "Check that every term is translated into every registered language",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// snapshotsCmd represents the integrity snapshots command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Check the snapshot archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(schemaCmd, translationsCmd, snapshotsCmd)
}

func runIntegrityChecks(ctx context.Context, runSchema, runTranslations, runSnapshots bool) error {
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	logg := rt.logger
	defer logg.Sync()

	var opts []integrity.Option
	if runSnapshots && rt.cfg.Snapshot.Enabled {
		client, err := rt.newStorageClient()
		if err != nil {
			return err
		}
		opts = append(opts, integrity.WithSnapshots(client, rt.cfg.Storage.Bucket, rt.cfg.Snapshot.Prefix))
	}

	svc := integrity.NewService(rt.db, rt.store, rt.registry, rt.cfg.Taxonomy.Vocabulary, logg, opts...)

	if runSchema {
		logg.Info("Checking taxonomy schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Schema is intact.", zap.String("driver", report.Driver))
		} else {
			for table, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Table mismatch",
						zap.String("table", table),
						zap.String("status", tbl.Status),
						zap.Strings("missing_columns", tbl.MissingColumns),
					)
				}
			}
			for _, e := range report.Errors {
				logg.Warn("Schema inspection error", zap.String("error", e))
			}
		}
	}

	if runTranslations {
		logg.Info("Checking translations...")
		report, err := svc.CheckTranslations(ctx)
		if err != nil {
			return err
		}
		logg.Info("Translation coverage",
			zap.Strings("languages", report.Languages),
			zap.Int("total_terms", report.TotalTerms),
			zap.Int("complete", report.Complete),
		)
		for _, gap := range report.Gaps {
			logg.Warn("Incomplete translations",
				zap.Uint("id", gap.ID),
				zap.String("name", gap.Name),
				zap.Strings("missing", gap.Missing),
				zap.Strings("extra", gap.Extra),
			)
		}
	}

	if runSnapshots {
		if !svc.SnapshotsEnabled() {
			logg.Info("Snapshots are disabled. Set SNAPSHOT_ENABLED=true to check the archive.")
			return nil
		}
		logg.Info("Checking snapshot archive...")
		report, err := svc.CheckSnapshots(ctx)
		if err != nil {
			return err
		}
		logg.Info("Snapshot archive",
			zap.String("bucket", report.Bucket),
			zap.String("prefix", report.Prefix),
			zap.Int("count", report.Count),
			zap.String("latest", report.Latest),
		)
	}

	return nil
}
