package locale

import (
	golocale "github.com/Xuanwo/go-locale"
)

// DetectLangcode returns the base language of the system locale, e.g. "de" for
// de_DE.UTF-8, or fallback when it cannot be detected.
func DetectLangcode(fallback string) string {
	tag, err := golocale.Detect()
	if err != nil {
		return fallback
	}
	base, confidence := tag.Base()
	if confidence == 0 || base.String() == "und" {
		return fallback
	}
	return base.String()
}
