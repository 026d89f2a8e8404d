package taxonomy

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	// ErrTermNotFound is returned when a term id does not exist.
	ErrTermNotFound = errors.New("term not found")
	// ErrTranslationMissing is returned when a term has no translation for a language.
	ErrTranslationMissing = errors.New("translation missing")
	// ErrTranslationExists is returned when adding a translation that is already present.
	ErrTranslationExists = errors.New("translation already exists")
)

// Fields are the country attributes of a term. They are not translatable:
// every translation carries the values of the default translation once saved.
type Fields struct {
	ISO2        string  `json:"iso2"`
	ISO3        string  `json:"iso3"`
	NumericCode string  `json:"numeric_code"`
	Continent   string  `json:"continent"`
	Subregion   string  `json:"subregion"`
	Lat         float64 `json:"lat"`
	Long        float64 `json:"long"`
}

// Translation is the language specific variant of a term.
type Translation struct {
	Langcode  string    `json:"langcode"`
	Name      string    `json:"name"`
	Published bool      `json:"published"`
	Fields    Fields    `json:"fields"`
	Changed   time.Time `json:"changed"`
}

// Term is a taxonomy entry with one translation per language.
type Term struct {
	ID         uint
	UUID       string
	Vocabulary string
	// Langcode is the default language of the term.
	Langcode string

	translations map[string]*Translation
	isNew        bool
}

// NewTerm returns an empty term that has never been persisted.
func NewTerm(vocabulary, langcode string) *Term {
	return &Term{
		Vocabulary:   vocabulary,
		Langcode:     langcode,
		translations: make(map[string]*Translation),
		isNew:        true,
	}
}

// IsNew reports whether the term still has to be inserted.
func (t *Term) IsNew() bool {
	return t.isNew
}

// EnforceIsNew forces the next save to insert the term.
func (t *Term) EnforceIsNew() {
	t.isNew = true
}

// HasTranslation reports whether a translation exists for langcode.
func (t *Term) HasTranslation(langcode string) bool {
	_, ok := t.translations[langcode]
	return ok
}

// AddTranslation creates an empty translation for langcode. Shared fields and the
// published flag are copied from the default translation when it exists.
func (t *Term) AddTranslation(langcode string) (*Translation, error) {
	if t.HasTranslation(langcode) {
		return nil, fmt.Errorf("%w: %s", ErrTranslationExists, langcode)
	}

	tr := &Translation{Langcode: langcode, Published: true}
	if def, ok := t.translations[t.Langcode]; ok && langcode != t.Langcode {
		tr.Fields = def.Fields
		tr.Published = def.Published
	}
	t.translations[langcode] = tr
	return tr, nil
}

// Translation returns the translation for langcode.
func (t *Term) Translation(langcode string) (*Translation, error) {
	tr, ok := t.translations[langcode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTranslationMissing, langcode)
	}
	return tr, nil
}

// Langcodes returns the languages the term is translated into, sorted.
func (t *Term) Langcodes() []string {
	out := make([]string, 0, len(t.translations))
	for lc := range t.translations {
		out = append(out, lc)
	}
	sort.Strings(out)
	return out
}

// Name returns the name of the default translation.
func (t *Term) Name() string {
	if tr, ok := t.translations[t.Langcode]; ok {
		return tr.Name
	}
	return ""
}

// Label returns the name in langcode, falling back to the default translation.
func (t *Term) Label(langcode string) string {
	if tr, ok := t.translations[langcode]; ok && tr.Name != "" {
		return tr.Name
	}
	return t.Name()
}

// Fields returns the shared fields of the default translation.
func (t *Term) Fields() Fields {
	if tr, ok := t.translations[t.Langcode]; ok {
		return tr.Fields
	}
	return Fields{}
}

// syncShared copies the default translation's fields onto every other translation.
func (t *Term) syncShared() {
	def, ok := t.translations[t.Langcode]
	if !ok {
		return
	}
	for lc, tr := range t.translations {
		if lc != t.Langcode {
			tr.Fields = def.Fields
		}
	}
}
