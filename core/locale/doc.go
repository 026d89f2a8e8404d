// Package locale resolves localized display names from CLDR data shipped with
// golang.org/x/text. Translated country names are derived from the alpha-2 code,
// never from the source dataset's own name fields.
package locale
