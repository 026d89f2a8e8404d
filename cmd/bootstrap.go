package cmd

import (
	"context"
	"fmt"
	"time"

	"geotree/core/config"
	"geotree/core/database"
	"geotree/core/locale"
	"geotree/core/logger"
	"geotree/core/metrics"
	"geotree/core/reconcile"
	"geotree/core/storage"
	"geotree/core/taxonomy"
	"geotree/feature/country"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the components shared by every command.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *gorm.DB
	store    *taxonomy.GormStore
	registry *taxonomy.CachedRegistry
	engine   *reconcile.Engine
}

// bootstrap loads configuration, connects to the database, migrates the
// taxonomy tables and registers the configured languages.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := taxonomy.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate taxonomy tables: %w", err)
	}

	gormRegistry := taxonomy.NewGormRegistry(db)
	added, err := gormRegistry.Seed(ctx, cfg.Taxonomy.LanguageList(), cfg.Taxonomy.DefaultLangcode)
	if err != nil {
		return nil, fmt.Errorf("failed to seed languages: %w", err)
	}
	if added > 0 {
		l.Info("Registered languages", zap.Int("count", added))
	}

	ttl := time.Duration(cfg.Taxonomy.LanguageCacheSeconds) * time.Second
	registry := taxonomy.NewCachedRegistry(gormRegistry, ttl, nil)
	store := taxonomy.NewGormStore(db, nil)

	return &runtime{
		cfg:      cfg,
		logger:   l,
		db:       db,
		store:    store,
		registry: registry,
		engine:   reconcile.NewEngine(store, registry, regionName, cfg.Taxonomy.DefaultLangcode),
	}, nil
}

// regionName names a country translation after its alpha-2 code.
func regionName(langcode string, fields taxonomy.Fields) string {
	return locale.DisplayRegion(fields.ISO2, langcode)
}

// importerOptions selects where an importer reads from and whether it archives.
type importerOptions struct {
	archive      bool
	fromSnapshot string
}

// newImporter builds the country importer. The storage client is only created
// when snapshots are archived or replayed.
func (rt *runtime) newImporter(m *metrics.Metrics, opts importerOptions) (*country.Importer, error) {
	var source country.Source = country.NewFetcher(rt.cfg.Source)
	importerOpts := []country.Option{
		country.WithVocabulary(rt.cfg.Taxonomy.Vocabulary),
		country.WithLogger(rt.logger),
	}

	if opts.archive || opts.fromSnapshot != "" {
		archiver, err := rt.newArchiver()
		if err != nil {
			return nil, err
		}
		if opts.archive {
			importerOpts = append(importerOpts, country.WithArchiver(archiver))
		}
		if opts.fromSnapshot != "" {
			key := opts.fromSnapshot
			if key == "latest" {
				key = ""
			}
			source = archiver.Source(key)
		}
	}

	return country.NewImporter(source, rt.engine, m, importerOpts...), nil
}

func (rt *runtime) newArchiver() (*country.Archiver, error) {
	client, err := rt.newStorageClient()
	if err != nil {
		return nil, err
	}
	return country.NewArchiver(client, rt.cfg.Storage.Bucket, rt.cfg.Snapshot.Prefix, nil), nil
}

func (rt *runtime) newStorageClient() (storage.Client, error) {
	client, err := storage.NewClient(rt.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}
