package taxonomy

import "strings"

// Config holds the taxonomy settings.
type Config struct {
	// Vocabulary is the vocabulary id country terms belong to.
	Vocabulary string `mapstructure:"vocabulary" default:"country"`
	// DefaultLangcode is the language of the reconciliation key.
	DefaultLangcode string `mapstructure:"default_langcode" default:"en"`
	// Languages is a comma separated list seeded into the language registry.
	Languages string `mapstructure:"languages" default:"en,de,fr,it"`
	// LanguageCacheSeconds is how long registry lookups are cached. Zero disables the cache.
	LanguageCacheSeconds int `mapstructure:"language_cache_seconds" default:"60"`
}

// LanguageList returns the configured langcodes, trimmed and lower-cased, without duplicates.
func (c Config) LanguageList() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(c.Languages, ",") {
		lc := strings.ToLower(strings.TrimSpace(part))
		if lc == "" {
			continue
		}
		if _, ok := seen[lc]; ok {
			continue
		}
		seen[lc] = struct{}{}
		out = append(out, lc)
	}
	return out
}
