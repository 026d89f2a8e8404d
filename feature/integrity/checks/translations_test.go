package checks

import (
	"context"
	"errors"
	"testing"

	"geotree/core/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRegistry []taxonomy.Language

func (r staticRegistry) Languages(context.Context) ([]taxonomy.Language, error) {
	return r, nil
}

func TestCheckTranslations(t *testing.T) {
	ctx := context.Background()
	store := taxonomy.NewGormStore(setupTestDB(t, true), nil)

	complete := store.Create("country", "en", "France", taxonomy.Fields{ISO2: "FR"})
	_, err := complete.AddTranslation("de")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, complete))

	partial := store.Create("country", "en", "Japan", taxonomy.Fields{ISO2: "JP"})
	_, err = partial.AddTranslation("nl")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, partial))

	registry := staticRegistry{{Langcode: "en"}, {Langcode: "de"}}
	report, err := CheckTranslations(ctx, store, registry, "country")
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"en", "de"}, report.Languages)
	assert.Equal(t, 2, report.TotalTerms)
	assert.Equal(t, 1, report.Complete)

	require.Len(t, report.Gaps, 1)
	assert.Equal(t, partial.ID, report.Gaps[0].ID)
	assert.Equal(t, "Japan", report.Gaps[0].Name)
	assert.Equal(t, []string{"de"}, report.Gaps[0].Missing)
	assert.Equal(t, []string{"nl"}, report.Gaps[0].Extra)
}

func TestCheckTranslations_EmptyVocabulary(t *testing.T) {
	store := taxonomy.NewGormStore(setupTestDB(t, true), nil)

	report, err := CheckTranslations(context.Background(), store, staticRegistry{{Langcode: "en"}}, "country")
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Zero(t, report.TotalTerms)
	assert.Empty(t, report.Gaps)
}

type failingRegistry struct{}

func (failingRegistry) Languages(context.Context) ([]taxonomy.Language, error) {
	return nil, errors.New("no such table: languages")
}

func TestCheckTranslations_RegistryError(t *testing.T) {
	store := taxonomy.NewGormStore(setupTestDB(t, true), nil)

	_, err := CheckTranslations(context.Background(), store, failingRegistry{}, "country")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list languages")
}
