package domain

import "maps"

// Featurizer runs the per-record derivation stages: bucketing, weather
// grouping, road speed classification and severity collapse.
type Featurizer struct {
	weather WeatherGrouper
	road    RoadClassifier
}

// NewFeaturizer creates a Featurizer from its two text classifiers.
func NewFeaturizer(weather WeatherGrouper, road RoadClassifier) *Featurizer {
	return &Featurizer{weather: weather, road: road}
}

// Weather returns the grouper in use.
func (f *Featurizer) Weather() WeatherGrouper { return f.weather }

// Road returns the road classifier in use.
func (f *Featurizer) Road() RoadClassifier { return f.road }

// Featurize derives a ProcessedRecord. It fails only for a present severity
// outside 1..4; a missing severity yields an empty label that projection drops.
func (f *Featurizer) Featurize(r IntermediateRecord) (ProcessedRecord, error) {
	var severity string
	if r.Severity != nil {
		label, err := CollapseSeverity(*r.Severity)
		if err != nil {
			return ProcessedRecord{}, err
		}
		severity = label
	}

	sin, cos := HourCycle(r.Hour)

	return ProcessedRecord{
		SourceID:  r.ID,
		Severity:  severity,
		CityState: r.CityState,

		Year:      r.Year,
		Month:     r.Month,
		DayOfWeek: r.DayOfWeek,
		Hour:      r.Hour,
		HourSin:   sin,
		HourCos:   cos,
		Weekend:   r.Weekend,
		Night:     r.Night,
		Season:    r.Season,

		PrecipitationBucket: PrecipitationBucket(r.Precipitation),
		VisibilityBucket:    VisibilityBucket(r.Visibility),
		WeatherGroup:        f.weather.Group(r.Weather),
		RoadSpeedClass:      f.road.Classify(r.Street),

		Flags: maps.Clone(r.Flags),

		Distance:      r.Distance,
		DurationMin:   r.DurationMin,
		Temperature:   r.Temperature,
		Humidity:      r.Humidity,
		Pressure:      r.Pressure,
		WindSpeed:     r.WindSpeed,
		Precipitation: r.Precipitation,

		ProcessedAt: Now(),
	}, nil
}

// FeaturizeAll featurizes every record, dropping those with an out-of-range severity.
func (f *Featurizer) FeaturizeAll(records []IntermediateRecord) ([]ProcessedRecord, Drops) {
	out := make([]ProcessedRecord, 0, len(records))
	drops := Drops{}

	for _, r := range records {
		p, err := f.Featurize(r)
		if err != nil {
			drops[ReasonSeverityOutOfRange]++
			continue
		}
		out = append(out, p)
	}
	return out, drops
}
