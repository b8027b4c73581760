package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/accident-severity-etl/internal/domain"
	"github.com/couchcryptid/accident-severity-etl/internal/observability"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Extractor reads the whole raw dataset into memory.
type Extractor interface {
	Extract(ctx context.Context) (domain.Dataset, error)
}

// Loader writes the projected feature set.
type Loader interface {
	Load(ctx context.Context, fs domain.FeatureSet) error
}

// Stage names, as used in logs, metrics, and the report.
const (
	StageDeduplicate = "deduplicate"
	StageTemporal    = "temporal"
	StagePlausible   = "plausibility"
	StageImpute      = "impute"
	StageCityFilter  = "city_filter"
	StageFeaturize   = "featurize"
	StageProject     = "project"
)

// Settings selects the policy for one run.
type Settings struct {
	Window     domain.TimeWindow
	CityFilter string
	Taxonomy   domain.WeatherTaxonomy
	Bounds     domain.BoundTable
	Featurizer *domain.Featurizer
}

// Pipeline runs the batch extract-transform-load pass once.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	settings  Settings
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, l Loader, s Settings, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		settings:  s,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
	}
}

// WithClock replaces the clock used for timing and the report.
func (p *Pipeline) WithClock(c clockwork.Clock) *Pipeline {
	p.clock = c
	return p
}

// Run executes every stage in order and loads the result. Data-quality
// problems only shrink the output; extraction, cancellation and load failures
// are returned as errors and nothing is reported as written.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := newReport(uuid.NewString(), p.settings, p.clock.Now())
	p.logger.Info("pipeline started",
		"run_id", report.RunID,
		"window", report.Window,
		"taxonomy", report.Taxonomy,
		"city_filter", report.CityFilter,
	)

	ds, err := p.extractor.Extract(ctx)
	if err != nil {
		return report, fmt.Errorf("extract: %w", err)
	}
	report.InputRows = len(ds.Records)
	report.InputColumns = len(ds.Columns)
	p.metrics.RecordsRead.Add(float64(len(ds.Records)))

	deduped := runStage(p, &report, StageDeduplicate, ds.Records, domain.Deduplicate)
	if err := ctx.Err(); err != nil {
		return report, err
	}

	timed := runStage(p, &report, StageTemporal, deduped, func(in []domain.RawRecord) ([]domain.IntermediateRecord, domain.Drops) {
		return domain.NormalizeTemporal(in, p.settings.Window)
	})
	if err := ctx.Err(); err != nil {
		return report, err
	}

	plausible := runStage(p, &report, StagePlausible, timed, func(in []domain.IntermediateRecord) ([]domain.IntermediateRecord, domain.Drops) {
		return domain.FilterPlausible(in, p.settings.Bounds)
	})

	imputed := runStage(p, &report, StageImpute, plausible, func(in []domain.IntermediateRecord) ([]domain.IntermediateRecord, domain.Drops) {
		out, filled := domain.Impute(in)
		report.Imputed = filled
		return out, domain.Drops{}
	})

	local := runStage(p, &report, StageCityFilter, imputed, func(in []domain.IntermediateRecord) ([]domain.IntermediateRecord, domain.Drops) {
		return domain.FilterCity(in, p.settings.CityFilter)
	})
	if err := ctx.Err(); err != nil {
		return report, err
	}

	processed := runStage(p, &report, StageFeaturize, local, p.settings.Featurizer.FeaturizeAll)
	p.recordCacheStats()

	columns := domain.SelectColumns(domain.NewOutputSchema(p.settings.Featurizer.Weather().Groups()), ds.Columns)
	var fs domain.FeatureSet
	runStage(p, &report, StageProject, processed, func(in []domain.ProcessedRecord) ([]domain.ProcessedRecord, domain.Drops) {
		var drops domain.Drops
		fs, drops = domain.Project(in, columns)
		return fs.Records, drops
	})
	fs.RunID = report.RunID

	if err := ctx.Err(); err != nil {
		return report, err
	}
	if err := p.loader.Load(ctx, fs); err != nil {
		return report, fmt.Errorf("load: %w", err)
	}

	report.OutputRows = len(fs.Rows)
	report.OutputColumns = len(fs.Columns)
	report.FinishedAt = p.clock.Now()

	p.metrics.RecordsWritten.Add(float64(report.OutputRows))
	p.metrics.OutputColumns.Set(float64(report.OutputColumns))
	p.metrics.RunDuration.Set(report.FinishedAt.Sub(report.StartedAt).Seconds())
	p.metrics.LastSuccess.Set(float64(report.FinishedAt.Unix()))

	p.logger.Info("pipeline finished", "report", report)
	return report, nil
}

// runStage times fn, records its drops, and logs the transition.
func runStage[T, U any](p *Pipeline, report *Report, name string, in []T, fn func([]T) ([]U, domain.Drops)) []U {
	start := p.clock.Now()
	out, drops := fn(in)
	p.metrics.StageDuration.WithLabelValues(name).Observe(p.clock.Since(start).Seconds())

	for reason, n := range drops {
		p.metrics.RecordsDropped.WithLabelValues(name, reason).Add(float64(n))
	}
	report.addStage(name, len(in), len(out), drops)

	p.logger.Info("stage complete",
		"stage", name,
		"in", len(in),
		"out", len(out),
		"dropped", drops.Total(),
	)
	return out
}

func (p *Pipeline) recordCacheStats() {
	record := func(name string, v any) {
		c, ok := v.(domain.CacheStatser)
		if !ok {
			return
		}
		s := c.CacheStats()
		p.metrics.ClassifierCache.WithLabelValues(name, "hit").Add(float64(s.Hits))
		p.metrics.ClassifierCache.WithLabelValues(name, "miss").Add(float64(s.Misses))
	}
	record("road", p.settings.Featurizer.Road())
	record("weather", p.settings.Featurizer.Weather())
}
