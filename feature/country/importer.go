package country

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geotree/core/metrics"
	"geotree/core/reconcile"

	"github.com/jonboulle/clockwork"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Failure describes a record that was skipped.
type Failure struct {
	Index int    `json:"index"`
	Name  string `json:"name,omitempty"`
	// Kind is "mapping" or "persistence".
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Summary reports one import run.
type Summary struct {
	Fetched  int           `json:"fetched"`
	Imported int           `json:"imported"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Failed   int           `json:"failed"`
	Failures []Failure     `json:"failures"`
	Snapshot string        `json:"snapshot,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Importer runs the fetch and reconcile loop.
type Importer struct {
	source     Source
	engine     *reconcile.Engine
	metrics    *metrics.Metrics
	vocabulary string
	archiver   *Archiver
	logger     *zap.Logger
	clock      clockwork.Clock
}

// Option configures an Importer.
type Option func(*Importer)

// WithVocabulary sets the vocabulary terms are written to. Defaults to "country".
func WithVocabulary(vocabulary string) Option {
	return func(i *Importer) { i.vocabulary = vocabulary }
}

// WithArchiver archives every successfully fetched document.
func WithArchiver(a *Archiver) Option {
	return func(i *Importer) { i.archiver = a }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(i *Importer) { i.logger = l }
}

// WithClock sets the clock used to time runs.
func WithClock(c clockwork.Clock) Option {
	return func(i *Importer) { i.clock = c }
}

// NewImporter creates an importer reading from source and writing through engine.
func NewImporter(source Source, engine *reconcile.Engine, m *metrics.Metrics, opts ...Option) *Importer {
	i := &Importer{
		source:     source,
		engine:     engine,
		metrics:    m,
		vocabulary: "country",
		logger:     zap.NewNop(),
		clock:      clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ImportAll fetches the dataset and reconciles every record in order.
//
// A fetch or decode failure is returned before anything is written. Records that
// cannot be mapped or persisted are logged and skipped; the run still succeeds.
// Cancellation stops the loop and returns the partial summary with the context error.
func (i *Importer) ImportAll(ctx context.Context) (*Summary, error) {
	start := i.clock.Now()
	i.metrics.ImportRunning.Set(1)
	defer i.metrics.ImportRunning.Set(0)

	records, body, err := i.fetch(ctx)
	if err != nil {
		i.metrics.ImportRuns.WithLabelValues("fetch_error").Inc()
		return nil, err
	}

	summary := &Summary{Fetched: len(records), Failures: []Failure{}}
	i.metrics.RecordsFetched.Add(float64(len(records)))

	if i.archiver != nil {
		summary.Snapshot = i.archive(ctx, body)
	}

	for idx, raw := range records {
		if err := ctx.Err(); err != nil {
			i.finish(summary, start, "canceled")
			return summary, fmt.Errorf("import interrupted after %d records: %w", idx, err)
		}

		rec, err := MapRecord(idx, raw)
		if err != nil {
			i.skip(summary, idx, raw.Get("name.common").String(), "mapping", err)
			continue
		}

		outcome, err := i.engine.CreateOrUpdate(ctx, i.vocabulary, rec.Name, rec.Fields)
		if err != nil {
			i.skip(summary, idx, rec.Name, "persistence", err)
			continue
		}

		summary.Imported++
		if outcome.Created {
			summary.Created++
			i.metrics.TermsReconciled.WithLabelValues("created").Inc()
		} else {
			summary.Updated++
			i.metrics.TermsReconciled.WithLabelValues("updated").Inc()
		}
		i.metrics.RecordsImported.Inc()
		i.metrics.TranslationsSaved.Add(float64(len(outcome.Translations)))
	}

	i.finish(summary, start, "success")
	i.logger.Info("Imported countries",
		zap.Int("count", summary.Imported),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
		zap.Int("failed", summary.Failed),
		zap.Duration("duration", summary.Duration),
	)
	return summary, nil
}

// Plan fetches the dataset and reports what ImportAll would write. Records that
// cannot be mapped are returned as failures instead of actions.
func (i *Importer) Plan(ctx context.Context) (*reconcile.Plan, []Failure, error) {
	records, _, err := i.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	failures := []Failure{}
	items := make([]reconcile.Item, 0, len(records))
	for idx, raw := range records {
		rec, err := MapRecord(idx, raw)
		if err != nil {
			failures = append(failures, Failure{
				Index: idx,
				Name:  raw.Get("name.common").String(),
				Kind:  "mapping",
				Error: err.Error(),
			})
			continue
		}
		items = append(items, rec.Item())
	}

	plan, err := i.engine.Plan(ctx, i.vocabulary, items)
	if err != nil {
		return nil, nil, err
	}
	return plan, failures, nil
}

func (i *Importer) fetch(ctx context.Context) ([]gjson.Result, []byte, error) {
	body, err := i.source.FetchRaw(ctx)
	if err != nil {
		return nil, nil, err
	}
	records, err := Decode(i.source.Origin(), body)
	if err != nil {
		return nil, nil, err
	}
	return records, body, nil
}

// archive stores body and returns its key. Failures only produce a warning.
func (i *Importer) archive(ctx context.Context, body []byte) string {
	key, err := i.archiver.Archive(ctx, body)
	if err != nil {
		i.metrics.SnapshotFailures.Inc()
		i.logger.Warn("Failed to archive country snapshot", zap.Error(err))
		return ""
	}
	i.metrics.SnapshotsArchived.Inc()
	i.logger.Debug("Archived country snapshot", zap.String("key", key))
	return key
}

func (i *Importer) skip(summary *Summary, idx int, name, kind string, err error) {
	summary.Failed++
	summary.Failures = append(summary.Failures, Failure{Index: idx, Name: name, Kind: kind, Error: err.Error()})
	i.metrics.RecordFailures.WithLabelValues(kind).Inc()

	fields := []zap.Field{
		zap.Int("index", idx),
		zap.String("name", name),
		zap.String("kind", kind),
		zap.Error(err),
	}
	var perr *reconcile.PersistenceError
	if errors.As(err, &perr) {
		fields = append(fields, zap.String("op", perr.Op))
	}
	// Skipped records are expected in a large dataset: logged at info, not error.
	i.logger.Info("Skipped country record", fields...)
}

func (i *Importer) finish(summary *Summary, start time.Time, outcome string) {
	summary.Duration = i.clock.Since(start)
	i.metrics.ImportDuration.Observe(summary.Duration.Seconds())
	i.metrics.ImportRuns.WithLabelValues(outcome).Inc()
}
