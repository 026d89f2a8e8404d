package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DisplayRegion returns the name of the ISO 3166-1 alpha-2 region code in the
// language identified by langcode, e.g. ("FR", "de") -> "Frankreich".
//
// Display languages without CLDR tables fall back to English. Codes that are not
// a known region are returned upper-cased.
func DisplayRegion(code, langcode string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	region, err := language.ParseRegion(code)
	if err != nil {
		return code
	}

	if name := regionNamer(langcode).Name(region); name != "" {
		return name
	}
	return code
}

// DisplayLanguage returns the English name of a language code, or the code itself
// when it cannot be parsed.
func DisplayLanguage(langcode string) string {
	tag, err := language.Parse(langcode)
	if err != nil {
		return langcode
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return langcode
}

func regionNamer(langcode string) display.Namer {
	tag, err := language.Parse(langcode)
	if err == nil {
		if namer := display.Regions(tag); namer != nil {
			return namer
		}
	}
	return display.English.Regions()
}
