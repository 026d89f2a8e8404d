package reconcile

import (
	"context"

	"geotree/core/taxonomy"
)

// Engine reconciles items into a taxonomy store, matching on the default
// language name within a vocabulary.
type Engine struct {
	store           taxonomy.Store
	registry        taxonomy.Registry
	namer           Namer
	defaultLangcode string
}

// NewEngine creates an engine. namer derives the names of non-default translations.
func NewEngine(store taxonomy.Store, registry taxonomy.Registry, namer Namer, defaultLangcode string) *Engine {
	return &Engine{
		store:           store,
		registry:        registry,
		namer:           namer,
		defaultLangcode: defaultLangcode,
	}
}

// DefaultLangcode returns the language of the reconciliation key.
func (e *Engine) DefaultLangcode() string {
	return e.defaultLangcode
}

// CreateOrUpdate creates a term named name in vocabulary, or overwrites the first
// matching term. The default translation receives name and fields verbatim; every
// other registry language gets a translation named by the namer, saved one by one
// before the term itself is saved.
//
// Matching is by name only: a renamed source record produces a new term.
func (e *Engine) CreateOrUpdate(ctx context.Context, vocabulary, name string, fields taxonomy.Fields) (*Outcome, error) {
	fail := func(op string, err error) (*Outcome, error) {
		return nil, &PersistenceError{Op: op, Name: name, Err: err}
	}

	langs, err := e.registry.Languages(ctx)
	if err != nil {
		return fail("languages", err)
	}

	ids, err := e.store.FindTermIDs(ctx, taxonomy.Query{
		Vocabulary: vocabulary,
		Name:       name,
		Langcode:   e.defaultLangcode,
		Limit:      1,
	})
	if err != nil {
		return fail("query", err)
	}

	outcome := &Outcome{Translations: []string{}}
	var term *taxonomy.Term

	if len(ids) == 0 {
		term = e.store.Create(vocabulary, e.defaultLangcode, name, fields)
		term.EnforceIsNew()
		outcome.Created = true
	} else {
		term, err = e.store.Load(ctx, ids[0])
		if err != nil {
			return fail("load", err)
		}
		if !term.HasTranslation(e.defaultLangcode) {
			if _, err := term.AddTranslation(e.defaultLangcode); err != nil {
				return fail("translate", err)
			}
		}
		def, err := term.Translation(e.defaultLangcode)
		if err != nil {
			return fail("translate", err)
		}
		// Full overwrite: values missing from the source clear the stored ones.
		def.Name = name
		def.Fields = fields

		// Shared fields are copied from the term's own default translation on
		// save, which differs when the term was stored under another default.
		if term.Langcode != e.defaultLangcode {
			own, err := term.Translation(term.Langcode)
			if err != nil {
				return fail("translate", err)
			}
			own.Fields = fields
		}
	}

	for _, lang := range langs {
		lc := lang.Langcode
		if lc == e.defaultLangcode {
			continue
		}
		if !term.HasTranslation(lc) {
			if _, err := term.AddTranslation(lc); err != nil {
				return fail("translate", err)
			}
		}
		tr, err := term.Translation(lc)
		if err != nil {
			return fail("translate", err)
		}
		tr.Name = e.namer(lc, fields)

		if err := e.store.SaveTranslation(ctx, term, lc); err != nil {
			return fail("save_translation", err)
		}
		outcome.Translations = append(outcome.Translations, lc)
	}

	if err := e.store.Save(ctx, term); err != nil {
		return fail("save", err)
	}

	outcome.TermID = term.ID
	return outcome, nil
}
