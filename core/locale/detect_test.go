package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLangcode(t *testing.T) {
	t.Setenv("LANGUAGE", "de_DE")
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	t.Setenv("LC_MESSAGES", "de_DE.UTF-8")
	t.Setenv("LANG", "de_DE.UTF-8")

	assert.Equal(t, "de", DetectLangcode("en"))
}
