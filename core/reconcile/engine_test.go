package reconcile

import (
	"context"
	"errors"
	"testing"

	"geotree/core/database"
	"geotree/core/locale"
	"geotree/core/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, taxonomy.Migrate(db))
	return db
}

func regionNamer(langcode string, fields taxonomy.Fields) string {
	return locale.DisplayRegion(fields.ISO2, langcode)
}

func setupEngine(t *testing.T, langcodes ...string) (*Engine, *taxonomy.GormStore) {
	t.Helper()
	db := setupTestDB(t)
	registry := taxonomy.NewGormRegistry(db)
	_, err := registry.Seed(context.Background(), langcodes, "en")
	require.NoError(t, err)
	store := taxonomy.NewGormStore(db, nil)
	return NewEngine(store, registry, regionNamer, "en"), store
}

func franceFields() taxonomy.Fields {
	return taxonomy.Fields{
		ISO2:        "FR",
		ISO3:        "FRA",
		NumericCode: "250",
		Continent:   "Europe",
		Subregion:   "Western Europe",
		Lat:         46,
		Long:        2,
	}
}

// recordingStore records the order of writes and can fail them.
type recordingStore struct {
	taxonomy.Store
	calls         []string
	failFind      error
	failSaveTrans error
	failSave      error
}

func (s *recordingStore) FindTermIDs(ctx context.Context, q taxonomy.Query) ([]uint, error) {
	if s.failFind != nil {
		return nil, s.failFind
	}
	return s.Store.FindTermIDs(ctx, q)
}

func (s *recordingStore) SaveTranslation(ctx context.Context, term *taxonomy.Term, langcode string) error {
	s.calls = append(s.calls, "translation:"+langcode)
	if s.failSaveTrans != nil {
		return s.failSaveTrans
	}
	return s.Store.SaveTranslation(ctx, term, langcode)
}

func (s *recordingStore) Save(ctx context.Context, term *taxonomy.Term) error {
	s.calls = append(s.calls, "save")
	if s.failSave != nil {
		return s.failSave
	}
	return s.Store.Save(ctx, term)
}

type staticRegistry []taxonomy.Language

func (r staticRegistry) Languages(context.Context) ([]taxonomy.Language, error) {
	return r, nil
}

type failingRegistry struct{ err error }

func (r failingRegistry) Languages(context.Context) ([]taxonomy.Language, error) {
	return nil, r.err
}

func TestCreateOrUpdate_NewTerm(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en", "de", "fr")

	outcome, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.True(t, outcome.Created)
	assert.NotZero(t, outcome.TermID)
	assert.Equal(t, []string{"de", "fr"}, outcome.Translations)

	term, err := store.Load(ctx, outcome.TermID)
	require.NoError(t, err)
	assert.Equal(t, "country", term.Vocabulary)
	assert.Equal(t, "en", term.Langcode)
	assert.Equal(t, "France", term.Name())
	assert.Equal(t, franceFields(), term.Fields())
	assert.Equal(t, []string{"de", "en", "fr"}, term.Langcodes())

	de, err := term.Translation("de")
	require.NoError(t, err)
	assert.Equal(t, "Frankreich", de.Name)
	assert.Equal(t, franceFields(), de.Fields)

	fr, err := term.Translation("fr")
	require.NoError(t, err)
	assert.Equal(t, "France", fr.Name)
}

func TestCreateOrUpdate_ExistingTermIsOverwritten(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en", "de")

	first, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)

	changed := franceFields()
	changed.Lat = 47.5
	changed.Subregion = ""
	second, err := engine.CreateOrUpdate(ctx, "country", "France", changed)
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.TermID, second.TermID)

	ids, err := store.FindTermIDs(ctx, taxonomy.Query{Vocabulary: "country", Name: "France", Langcode: "en"})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	term, err := store.Load(ctx, first.TermID)
	require.NoError(t, err)
	assert.Equal(t, 47.5, term.Fields().Lat)
	assert.Empty(t, term.Fields().Subregion)

	de, err := term.Translation("de")
	require.NoError(t, err)
	assert.Equal(t, 47.5, de.Fields.Lat)
}

func TestCreateOrUpdate_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en", "de", "it")

	for i := 0; i < 3; i++ {
		_, err := engine.CreateOrUpdate(ctx, "country", "Germany", taxonomy.Fields{ISO2: "DE", Lat: 51, Long: 9})
		require.NoError(t, err)
	}

	terms, err := store.All(ctx, "country")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, []string{"de", "en", "it"}, terms[0].Langcodes())

	it, err := terms[0].Translation("it")
	require.NoError(t, err)
	assert.Equal(t, "Germania", it.Name)
}

func TestCreateOrUpdate_AddsMissingLanguages(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en")

	outcome, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.Empty(t, outcome.Translations)

	widened := NewEngine(store, staticRegistry{{Langcode: "en"}, {Langcode: "de"}}, regionNamer, "en")
	outcome, err = widened.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, outcome.Translations)

	term, err := store.Load(ctx, outcome.TermID)
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "en"}, term.Langcodes())
}

func TestCreateOrUpdate_SavesTranslationsBeforeTerm(t *testing.T) {
	ctx := context.Background()
	_, store := setupEngine(t)
	recorder := &recordingStore{Store: store}
	registry := staticRegistry{{Langcode: "en"}, {Langcode: "de"}, {Langcode: "fr"}}

	engine := NewEngine(recorder, registry, regionNamer, "en")
	_, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.Equal(t, []string{"translation:de", "translation:fr", "save"}, recorder.calls)
}

func TestCreateOrUpdate_PersistenceErrors(t *testing.T) {
	boom := errors.New("boom")
	registry := staticRegistry{{Langcode: "en"}, {Langcode: "de"}}

	tests := []struct {
		name     string
		store    func(base taxonomy.Store) taxonomy.Store
		registry taxonomy.Registry
		op       string
	}{
		{
			name:     "registry failure",
			store:    func(base taxonomy.Store) taxonomy.Store { return base },
			registry: failingRegistry{err: boom},
			op:       "languages",
		},
		{
			name:     "query failure",
			store:    func(base taxonomy.Store) taxonomy.Store { return &recordingStore{Store: base, failFind: boom} },
			registry: registry,
			op:       "query",
		},
		{
			name:     "translation failure",
			store:    func(base taxonomy.Store) taxonomy.Store { return &recordingStore{Store: base, failSaveTrans: boom} },
			registry: registry,
			op:       "save_translation",
		},
		{
			name:     "save failure",
			store:    func(base taxonomy.Store) taxonomy.Store { return &recordingStore{Store: base, failSave: boom} },
			registry: registry,
			op:       "save",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, base := setupEngine(t)
			engine := NewEngine(tt.store(base), tt.registry, regionNamer, "en")

			outcome, err := engine.CreateOrUpdate(context.Background(), "country", "France", franceFields())
			require.Error(t, err)
			assert.Nil(t, outcome)

			var perr *PersistenceError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.op, perr.Op)
			assert.Equal(t, "France", perr.Name)
			assert.ErrorIs(t, err, boom)
		})
	}
}

func TestCreateOrUpdate_LoadFailure(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en")

	_, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)

	broken := NewEngine(missingStore{Store: store}, staticRegistry{{Langcode: "en"}}, regionNamer, "en")
	_, err = broken.CreateOrUpdate(ctx, "country", "France", franceFields())

	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "load", perr.Op)
	assert.ErrorIs(t, err, taxonomy.ErrTermNotFound)
}

// missingStore finds terms that can no longer be loaded.
type missingStore struct {
	taxonomy.Store
}

func (s missingStore) Load(context.Context, uint) (*taxonomy.Term, error) {
	return nil, taxonomy.ErrTermNotFound
}

func TestCreateOrUpdate_RejectedDefaultTranslationWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	registry := taxonomy.NewGormRegistry(db)
	_, err := registry.Seed(ctx, []string{"en", "de", "fr"}, "en")
	require.NoError(t, err)
	store := taxonomy.NewGormStore(db, nil)
	engine := NewEngine(store, registry, regionNamer, "en")

	require.NoError(t, db.Exec(`CREATE TRIGGER reject_en BEFORE INSERT ON taxonomy_term_field_data
		WHEN NEW.langcode = 'en' BEGIN SELECT RAISE(ABORT, 'en rejected'); END`).Error)

	_, err = engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "save_translation", perr.Op)

	terms, err := store.All(ctx, "country")
	require.NoError(t, err)
	assert.Empty(t, terms)

	require.NoError(t, db.Exec("DROP TRIGGER reject_en").Error)

	outcome, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.True(t, outcome.Created)

	terms, err = store.All(ctx, "country")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, []string{"de", "en", "fr"}, terms[0].Langcodes())
	assert.Equal(t, "France", terms[0].Name())
}

func TestCreateOrUpdate_FailedSaveIsFoundOnRerun(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en", "de")
	registry := staticRegistry{{Langcode: "en"}, {Langcode: "de"}}

	broken := NewEngine(&recordingStore{Store: store, failSave: errors.New("boom")}, registry, regionNamer, "en")
	_, err := broken.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.Error(t, err)

	outcome, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.False(t, outcome.Created)

	terms, err := store.All(ctx, "country")
	require.NoError(t, err)
	require.Len(t, terms, 1)
	assert.Equal(t, outcome.TermID, terms[0].ID)
	assert.Equal(t, []string{"de", "en"}, terms[0].Langcodes())
}

func TestCreateOrUpdate_TermStoredUnderOtherDefault(t *testing.T) {
	ctx := context.Background()
	engine, store := setupEngine(t, "en", "de")

	stale := taxonomy.Fields{ISO2: "FR", Continent: "Atlantis", Lat: 1, Long: 1}
	term := store.Create("country", "de", "Frankreich", stale)
	en, err := term.AddTranslation("en")
	require.NoError(t, err)
	en.Name = "France"
	require.NoError(t, store.Save(ctx, term))

	outcome, err := engine.CreateOrUpdate(ctx, "country", "France", franceFields())
	require.NoError(t, err)
	assert.False(t, outcome.Created)
	assert.Equal(t, term.ID, outcome.TermID)

	loaded, err := store.Load(ctx, term.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"de", "en"}, loaded.Langcodes())
	for _, lc := range loaded.Langcodes() {
		tr, err := loaded.Translation(lc)
		require.NoError(t, err)
		assert.Equal(t, franceFields(), tr.Fields, lc)
	}
	assert.Equal(t, "France", loaded.Label("en"))
}
