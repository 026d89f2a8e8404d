package country

import (
	"context"
	"sync"

	"geotree/core/reconcile"
	"geotree/core/taxonomy"

	"go.uber.org/zap"
)

// TermReader reads stored terms.
type TermReader interface {
	All(ctx context.Context, vocabulary string) ([]*taxonomy.Term, error)
	Load(ctx context.Context, id uint) (*taxonomy.Term, error)
}

// Country is a term rendered in one language.
type Country struct {
	ID       uint   `json:"id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Langcode string `json:"langcode"`
	taxonomy.Fields
}

// CountryDetail is a term with all of its translations.
type CountryDetail struct {
	ID           uint                    `json:"id"`
	UUID         string                  `json:"uuid"`
	Vocabulary   string                  `json:"vocabulary"`
	Langcode     string                  `json:"langcode"`
	Translations []*taxonomy.Translation `json:"translations"`
}

// Service exposes the country taxonomy to the CLI and HTTP layers.
type Service struct {
	importer   *Importer
	terms      TermReader
	vocabulary string
	logger     *zap.Logger

	// mu serialises imports within the process.
	mu sync.Mutex
}

// NewService creates a service.
func NewService(importer *Importer, terms TermReader, vocabulary string, logger *zap.Logger) *Service {
	return &Service{
		importer:   importer,
		terms:      terms,
		vocabulary: vocabulary,
		logger:     logger,
	}
}

// Import runs a full import. It returns ErrImportRunning if one is in progress.
func (s *Service) Import(ctx context.Context) (*Summary, error) {
	if !s.mu.TryLock() {
		return nil, ErrImportRunning
	}
	defer s.mu.Unlock()

	return s.importer.ImportAll(ctx)
}

// Plan reports what an import would change.
func (s *Service) Plan(ctx context.Context) (*reconcile.Plan, []Failure, error) {
	return s.importer.Plan(ctx)
}

// List returns every country named in langcode, falling back to the term's
// default language when the translation is missing.
func (s *Service) List(ctx context.Context, langcode string) ([]Country, error) {
	terms, err := s.terms.All(ctx, s.vocabulary)
	if err != nil {
		return nil, err
	}

	countries := make([]Country, 0, len(terms))
	for _, term := range terms {
		lc := langcode
		if lc == "" || !term.HasTranslation(lc) {
			lc = term.Langcode
		}
		countries = append(countries, Country{
			ID:       term.ID,
			UUID:     term.UUID,
			Name:     term.Label(lc),
			Langcode: lc,
			Fields:   term.Fields(),
		})
	}
	return countries, nil
}

// Get returns one country with all of its translations.
func (s *Service) Get(ctx context.Context, id uint) (*CountryDetail, error) {
	term, err := s.terms.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &CountryDetail{
		ID:         term.ID,
		UUID:       term.UUID,
		Vocabulary: term.Vocabulary,
		Langcode:   term.Langcode,
	}
	for _, lc := range term.Langcodes() {
		tr, err := term.Translation(lc)
		if err != nil {
			return nil, err
		}
		detail.Translations = append(detail.Translations, tr)
	}
	return detail, nil
}
