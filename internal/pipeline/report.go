package pipeline

import (
	"log/slog"
	"maps"
	"time"

	"github.com/couchcryptid/accident-severity-etl/internal/domain"
)

// StageResult is the row accounting for one stage.
type StageResult struct {
	Name  string
	In    int
	Out   int
	Drops domain.Drops
}

// Report summarizes a pipeline run.
type Report struct {
	RunID      string
	Window     string
	Taxonomy   string
	CityFilter string

	StartedAt  time.Time
	FinishedAt time.Time

	InputRows     int
	InputColumns  int
	Imputed       int
	OutputRows    int
	OutputColumns int

	Stages []StageResult
	// Drops aggregates every stage's drops by reason.
	Drops domain.Drops
}

func newReport(runID string, s Settings, started time.Time) Report {
	return Report{
		RunID:      runID,
		Window:     s.Window.Name,
		Taxonomy:   string(s.Taxonomy),
		CityFilter: s.CityFilter,
		StartedAt:  started,
		Drops:      domain.Drops{},
	}
}

func (r *Report) addStage(name string, in, out int, drops domain.Drops) {
	r.Stages = append(r.Stages, StageResult{Name: name, In: in, Out: out, Drops: maps.Clone(drops)})
	r.Drops.Add(drops)
}

// Stage returns the result for a named stage.
func (r Report) Stage(name string) (StageResult, bool) {
	for _, s := range r.Stages {
		if s.Name == name {
			return s, true
		}
	}
	return StageResult{}, false
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	drops := make([]slog.Attr, 0, len(r.Drops))
	for reason, n := range r.Drops {
		drops = append(drops, slog.Int(reason, n))
	}
	return slog.GroupValue(
		slog.String("run_id", r.RunID),
		slog.String("window", r.Window),
		slog.String("taxonomy", r.Taxonomy),
		slog.Int("input_rows", r.InputRows),
		slog.Int("imputed", r.Imputed),
		slog.Int("output_rows", r.OutputRows),
		slog.Int("output_columns", r.OutputColumns),
		slog.Duration("duration", r.FinishedAt.Sub(r.StartedAt)),
		slog.Attr{Key: "drops", Value: slog.GroupValue(drops...)},
	)
}
