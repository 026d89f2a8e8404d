package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"geotree/core/loader"
	"geotree/core/logger"
	"geotree/core/metrics"
	"geotree/core/middleware/auth"
	"geotree/core/middleware/rayid"
	"geotree/feature/country"
	"geotree/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "geotree/docs/swagger"
)

// @title Geotree API
// @version 1.0
// @description API for importing and browsing the country taxonomy.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the geotree HTTP server",
	Long:  `Starts the HTTP server exposing countries, imports, integrity checks and metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// 1. Configuration, logger, database and registry
		rt, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !rt.cfg.Server.IsValidPort() {
			return fmt.Errorf("invalid server port %q", rt.cfg.Server.Port)
		}

		// 2. Importer (archives to object storage when snapshots are enabled)
		imp, err := rt.newImporter(metrics.NewMetrics(), importerOptions{archive: rt.cfg.Snapshot.Enabled})
		if err != nil {
			return err
		}

		integrityOpts := []integrity.Option{}
		if rt.cfg.Snapshot.Enabled {
			storageClient, err := rt.newStorageClient()
			if err != nil {
				return err
			}
			integrityOpts = append(integrityOpts, integrity.WithSnapshots(storageClient, rt.cfg.Storage.Bucket, rt.cfg.Snapshot.Prefix))
		}

		// 3. Features
		mgr := loader.NewManager(logg)
		mgr.Register(country.NewFeature(country.NewService(imp, rt.store, rt.cfg.Taxonomy.Vocabulary, logg)))
		mgr.Register(integrity.NewFeature(integrity.NewService(rt.db, rt.store, rt.registry, rt.cfg.Taxonomy.Vocabulary, logg, integrityOpts...)))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line can be traced.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger documentation is public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey: rt.cfg.Server.ApiKey,
			Skip:   []string{"/metrics"},
		}))

		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

		if _, err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		// 4. Serve until interrupted
		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
			errCh <- app.Listen(rt.cfg.Server.Address())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
