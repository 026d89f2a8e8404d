package cmd

import (
	"bytes"
	"testing"

	"geotree/core/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	err := renderTable(&buf, []string{"ID", "Name"}, [][]string{
		{"1", "Frankreich"},
		{"2", "Deutschland"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Frankreich")
	assert.Contains(t, out, "Deutschland")
}

func TestRegionName(t *testing.T) {
	assert.Equal(t, "Frankreich", regionName("de", taxonomy.Fields{ISO2: "FR"}))
}
