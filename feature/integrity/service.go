package integrity

import (
	"context"

	"geotree/core/storage"
	"geotree/core/taxonomy"
	"geotree/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db         *gorm.DB
	terms      checks.TermLister
	registry   taxonomy.Registry
	vocabulary string
	client     storage.Client
	bucket     string
	prefix     string
	logger     *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithSnapshots enables the snapshot check against bucket/prefix.
func WithSnapshots(client storage.Client, bucket, prefix string) Option {
	return func(s *Service) {
		s.client = client
		s.bucket = bucket
		s.prefix = prefix
	}
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, terms checks.TermLister, registry taxonomy.Registry, vocabulary string, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		db:         db,
		terms:      terms,
		registry:   registry,
		vocabulary: vocabulary,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckSchema verifies the taxonomy tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckTranslations verifies translation coverage of the vocabulary.
func (s *Service) CheckTranslations(ctx context.Context) (*checks.TranslationReport, error) {
	return checks.CheckTranslations(ctx, s.terms, s.registry, s.vocabulary)
}

// SnapshotsEnabled reports whether the snapshot check is configured.
func (s *Service) SnapshotsEnabled() bool {
	return s.client != nil
}

// CheckSnapshots reports the archived country documents.
func (s *Service) CheckSnapshots(ctx context.Context) (*checks.SnapshotReport, error) {
	return checks.CheckSnapshots(ctx, s.client, s.bucket, s.prefix)
}

// Report runs every check. Failed checks are reported inline instead of failing the whole report.
func (s *Service) Report(ctx context.Context) map[string]any {
	report := make(map[string]any)

	if schema, err := s.CheckSchema(); err != nil {
		report["schema"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	if translations, err := s.CheckTranslations(ctx); err != nil {
		report["translations"] = map[string]any{"status": "error", "error": err.Error()}
	} else {
		report["translations"] = translations
	}

	if s.SnapshotsEnabled() {
		if snapshots, err := s.CheckSnapshots(ctx); err != nil {
			report["snapshots"] = map[string]any{"status": "error", "error": err.Error()}
		} else {
			report["snapshots"] = snapshots
		}
	}

	return report
}
