package country

import (
	"context"
	"errors"
	"testing"
	"time"

	"geotree/core/database"
	"geotree/core/locale"
	"geotree/core/metrics"
	"geotree/core/reconcile"
	"geotree/core/storage/mocks"
	"geotree/core/taxonomy"

	"github.com/jonboulle/clockwork"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testDataset = `[
	{"name":{"common":"France"},"cca2":"FR","cca3":"FRA","ccn3":"250","region":"Europe","subregion":"Western Europe","latlng":[46,2]},
	{"name":{"common":"Germany"},"cca2":"DE","cca3":"DEU","ccn3":"276","region":"Europe","subregion":"Western Europe","latlng":[51,9]},
	{"name":{"common":"Japan"},"cca2":"JP","cca3":"JPN","ccn3":"392","region":"Asia","subregion":"Eastern Asia","latlng":[36,138]}
]`

var testNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

// staticSource serves a fixed document.
type staticSource struct {
	body []byte
	err  error
}

func (s staticSource) FetchRaw(context.Context) ([]byte, error) {
	return s.body, s.err
}

func (s staticSource) Origin() string {
	return "static"
}

type failingRegistry struct{}

func (failingRegistry) Languages(context.Context) ([]taxonomy.Language, error) {
	return nil, errors.New("registry unavailable")
}

type testEnv struct {
	store    *taxonomy.GormStore
	registry taxonomy.Registry
	engine   *reconcile.Engine
	metrics  *metrics.Metrics
	logs     *observer.ObservedLogs
	logger   *zap.Logger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, taxonomy.Migrate(db))

	registry := taxonomy.NewGormRegistry(db)
	_, err = registry.Seed(context.Background(), []string{"en", "de", "fr"}, "en")
	require.NoError(t, err)

	store := taxonomy.NewGormStore(db, clockwork.NewFakeClockAt(testNow))
	core, logs := observer.New(zapcore.DebugLevel)

	return &testEnv{
		store:    store,
		registry: registry,
		engine:   reconcile.NewEngine(store, registry, countryNamer, "en"),
		metrics:  metrics.NewMetricsForTesting(),
		logs:     logs,
		logger:   zap.New(core),
	}
}

func countryNamer(langcode string, fields taxonomy.Fields) string {
	return locale.DisplayRegion(fields.ISO2, langcode)
}

func (e *testEnv) importer(source Source, opts ...Option) *Importer {
	opts = append([]Option{WithLogger(e.logger), WithClock(clockwork.NewFakeClockAt(testNow))}, opts...)
	return NewImporter(source, e.engine, e.metrics, opts...)
}

func TestImportAll(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	summary, err := env.importer(staticSource{body: []byte(testDataset)}).ImportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 3, summary.Created)
	assert.Zero(t, summary.Failed)
	assert.Empty(t, summary.Failures)

	terms, err := env.store.All(ctx, "country")
	require.NoError(t, err)
	require.Len(t, terms, 3)
	for _, term := range terms {
		assert.Equal(t, []string{"de", "en", "fr"}, term.Langcodes())
	}

	ids, err := env.store.FindTermIDs(ctx, taxonomy.Query{Vocabulary: "country", Name: "France", Langcode: "en"})
	require.NoError(t, err)
	require.Len(t, ids, 1)
	france, err := env.store.Load(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Frankreich", france.Label("de"))
	assert.Equal(t, "Western Europe", france.Fields().Subregion)

	logged := env.logs.FilterMessage("Imported countries").All()
	require.Len(t, logged, 1)
	assert.Equal(t, int64(3), logged[0].ContextMap()["count"])

	assert.Equal(t, 3.0, testutil.ToFloat64(env.metrics.RecordsImported))
	assert.Equal(t, 6.0, testutil.ToFloat64(env.metrics.TranslationsSaved))
	assert.Equal(t, 3.0, testutil.ToFloat64(env.metrics.TermsReconciled.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ImportRuns.WithLabelValues("success")))
}

func TestImportAll_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	imp := env.importer(staticSource{body: []byte(testDataset)})

	_, err := imp.ImportAll(ctx)
	require.NoError(t, err)
	summary, err := imp.ImportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Updated)
	assert.Zero(t, summary.Created)

	terms, err := env.store.All(ctx, "country")
	require.NoError(t, err)
	assert.Len(t, terms, 3)
}

func TestImportAll_SkipsBadRecords(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	dataset := `[
		{"name":{"common":"France"},"cca2":"FR","latlng":[46,2]},
		{"name":{"common":"Nowhere"},"cca2":"NW","latlng":[1]},
		{"name":{"common":"Japan"},"cca2":"JP","latlng":[36,138]}
	]`
	summary, err := env.importer(staticSource{body: []byte(dataset)}).ImportAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, Failure{Index: 1, Name: "Nowhere", Kind: "mapping", Error: summary.Failures[0].Error}, summary.Failures[0])

	skipped := env.logs.FilterMessage("Skipped country record").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, zapcore.InfoLevel, skipped[0].Level)
	assert.Equal(t, "Nowhere", skipped[0].ContextMap()["name"])

	terms, err := env.store.All(ctx, "country")
	require.NoError(t, err)
	assert.Len(t, terms, 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.RecordFailures.WithLabelValues("mapping")))
}

func TestImportAll_PersistenceFailuresAreSkipped(t *testing.T) {
	env := setupTestEnv(t)
	engine := reconcile.NewEngine(env.store, failingRegistry{}, countryNamer, "en")
	imp := NewImporter(staticSource{body: []byte(testDataset)}, engine, env.metrics, WithLogger(env.logger))

	summary, err := imp.ImportAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.Imported)
	assert.Equal(t, 3, summary.Failed)
	for _, f := range summary.Failures {
		assert.Equal(t, "persistence", f.Kind)
	}

	skipped := env.logs.FilterMessage("Skipped country record").All()
	require.Len(t, skipped, 3)
	assert.Equal(t, "languages", skipped[0].ContextMap()["op"])
}

func TestImportAll_FetchFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	fetchErr := &FetchError{URL: "static", StatusCode: 503}

	summary, err := env.importer(staticSource{err: fetchErr}).ImportAll(ctx)
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.ErrorAs(t, err, new(*FetchError))

	terms, err := env.store.All(ctx, "country")
	require.NoError(t, err)
	assert.Empty(t, terms)
	assert.Zero(t, env.logs.FilterMessage("Skipped country record").Len())
	assert.Zero(t, env.logs.FilterMessage("Imported countries").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ImportRuns.WithLabelValues("fetch_error")))
}

func TestImportAll_DecodeFailure(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.importer(staticSource{body: []byte(`{"message":"rate limited"}`)}).ImportAll(context.Background())
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "static", decodeErr.URL)
}

func TestImportAll_Canceled(t *testing.T) {
	env := setupTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := env.importer(staticSource{body: []byte(testDataset)}).ImportAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	assert.Zero(t, summary.Imported)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.ImportRuns.WithLabelValues("canceled")))
}

func TestImportAll_ArchivesSnapshot(t *testing.T) {
	env := setupTestEnv(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "geotree").Return(true, nil)
	client.On("PutObject", mock.Anything, "geotree", "snapshots/countries/20261019T120000Z.json",
		mock.Anything, int64(len(testDataset)), mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "application/json"
		})).Return(minio.UploadInfo{}, nil)

	archiver := NewArchiver(client, "geotree", "snapshots/countries", clockwork.NewFakeClockAt(testNow))
	summary, err := env.importer(staticSource{body: []byte(testDataset)}, WithArchiver(archiver)).ImportAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "snapshots/countries/20261019T120000Z.json", summary.Snapshot)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SnapshotsArchived))
	client.AssertExpectations(t)
}

func TestImportAll_SnapshotFailureIsNotFatal(t *testing.T) {
	env := setupTestEnv(t)
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "geotree").Return(false, errors.New("connection refused"))

	archiver := NewArchiver(client, "geotree", "snapshots/countries", nil)
	summary, err := env.importer(staticSource{body: []byte(testDataset)}, WithArchiver(archiver)).ImportAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summary.Snapshot)
	assert.Equal(t, 3, summary.Imported)
	assert.Equal(t, 1, env.logs.FilterMessage("Failed to archive country snapshot").Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.SnapshotFailures))
}

func TestImporter_Plan(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	_, err := env.engine.CreateOrUpdate(ctx, "country", "France", taxonomy.Fields{ISO2: "FR"})
	require.NoError(t, err)

	dataset := `[
		{"name":{"common":"France"},"cca2":"FR","latlng":[46,2]},
		{"name":{"common":"Japan"},"cca2":"JP","latlng":[36,138]},
		{"cca2":"XX"}
	]`
	plan, failures, err := env.importer(staticSource{body: []byte(dataset)}).Plan(ctx)
	require.NoError(t, err)
	assert.Equal(t, reconcile.PlanSummary{TotalItems: 2, Creates: 1, Updates: 1}, plan.Summary)
	require.Len(t, failures, 1)
	assert.Equal(t, 2, failures[0].Index)

	terms, err := env.store.All(ctx, "country")
	require.NoError(t, err)
	assert.Len(t, terms, 1)
}
