package checks

import (
	"context"
	"fmt"

	"geotree/core/taxonomy"
)

// TermLister loads every term of a vocabulary.
type TermLister interface {
	All(ctx context.Context, vocabulary string) ([]*taxonomy.Term, error)
}

// TermGap describes a term whose translations differ from the registry.
type TermGap struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Missing []string `json:"missing"`
	// Extra lists translations in languages that are no longer registered.
	Extra []string `json:"extra,omitempty"`
}

// TranslationReport is the result of a translation coverage check.
type TranslationReport struct {
	Vocabulary string    `json:"vocabulary"`
	Languages  []string  `json:"languages"`
	TotalTerms int       `json:"total_terms"`
	Complete   int       `json:"complete"`
	Matched    bool      `json:"matched"`
	Gaps       []TermGap `json:"gaps"`
}

// CheckTranslations verifies that every term of vocabulary has exactly one
// translation per registry language.
func CheckTranslations(ctx context.Context, terms TermLister, registry taxonomy.Registry, vocabulary string) (*TranslationReport, error) {
	langs, err := registry.Languages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	all, err := terms.All(ctx, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("failed to list terms: %w", err)
	}

	report := &TranslationReport{
		Vocabulary: vocabulary,
		Languages:  make([]string, 0, len(langs)),
		TotalTerms: len(all),
		Matched:    true,
		Gaps:       []TermGap{},
	}
	registered := make(map[string]struct{}, len(langs))
	for _, lang := range langs {
		report.Languages = append(report.Languages, lang.Langcode)
		registered[lang.Langcode] = struct{}{}
	}

	for _, term := range all {
		gap := TermGap{ID: term.ID, Name: term.Name(), Missing: []string{}}
		for _, lc := range report.Languages {
			if !term.HasTranslation(lc) {
				gap.Missing = append(gap.Missing, lc)
			}
		}
		for _, lc := range term.Langcodes() {
			if _, ok := registered[lc]; !ok {
				gap.Extra = append(gap.Extra, lc)
			}
		}

		if len(gap.Missing) == 0 && len(gap.Extra) == 0 {
			report.Complete++
			continue
		}
		report.Matched = false
		report.Gaps = append(report.Gaps, gap)
	}

	return report, nil
}
