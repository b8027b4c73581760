package domain

import (
	"slices"
	"strconv"
)

// Output column names that differ from their source column.
const (
	OutSeverity            = "Severity"
	OutCityState           = "City_State"
	OutYear                = "Year"
	OutMonth               = "Month"
	OutDayOfWeek           = "Day_Of_Week"
	OutHour                = "Hour"
	OutHourSin             = "Hour_Sin"
	OutHourCos             = "Hour_Cos"
	OutWeekend             = "Is_Weekend"
	OutNight               = "Is_Night"
	OutSeason              = "Season"
	OutDuration            = "Duration(min)"
	OutPrecipitationBucket = "Precipitation_Bucket"
	OutVisibilityBucket    = "Visibility_Bucket"
	OutWeatherGroup        = "Weather_Group"
	OutRoadSpeedClass      = "Road_Speed_Class"
)

// OutputColumn describes one exported column.
type OutputColumn struct {
	Name string
	// Sources are the input columns this column is derived from. The column is
	// exported only when all of them were present in the input header.
	Sources []string
	// Levels is the closed label set of a categorical column, nil for numeric ones.
	Levels []string
	Value  func(ProcessedRecord) (string, bool)
}

var boolLevels = []string{"true", "false"}

// NewOutputSchema returns the full output column superset in export order.
// weatherGroups is the label set of the weather grouper in use.
func NewOutputSchema(weatherGroups []string) []OutputColumn {
	roadLevels := make([]string, len(RoadClasses))
	for i, c := range RoadClasses {
		roadLevels[i] = string(c)
	}

	cols := []OutputColumn{
		{Name: OutSeverity, Levels: []string{SeverityLow, SeverityHigh}, Value: func(p ProcessedRecord) (string, bool) {
			return p.Severity, p.Severity != ""
		}},
		{Name: OutCityState, Value: func(p ProcessedRecord) (string, bool) {
			return p.CityState, p.CityState != ""
		}},
		{Name: OutYear, Value: intCell(func(p ProcessedRecord) int { return p.Year })},
		{Name: OutMonth, Value: intCell(func(p ProcessedRecord) int { return p.Month })},
		{Name: OutDayOfWeek, Value: intCell(func(p ProcessedRecord) int { return p.DayOfWeek })},
		{Name: OutHour, Value: intCell(func(p ProcessedRecord) int { return p.Hour })},
		{Name: OutHourSin, Value: floatCell(func(p ProcessedRecord) float64 { return p.HourSin })},
		{Name: OutHourCos, Value: floatCell(func(p ProcessedRecord) float64 { return p.HourCos })},
		{Name: OutWeekend, Levels: boolLevels, Value: func(p ProcessedRecord) (string, bool) {
			return strconv.FormatBool(p.Weekend), true
		}},
		{Name: OutNight, Sources: []string{ColSunriseSunset}, Levels: boolLevels, Value: func(p ProcessedRecord) (string, bool) {
			return strconv.FormatBool(p.Night), true
		}},
		{Name: OutSeason, Levels: slices.Clone(Seasons), Value: func(p ProcessedRecord) (string, bool) {
			return p.Season, p.Season != ""
		}},
		{Name: OutPrecipitationBucket, Levels: PrecipitationBuckets.Labels(), Value: func(p ProcessedRecord) (string, bool) {
			return p.PrecipitationBucket, p.PrecipitationBucket != ""
		}},
		{
			Name:    OutVisibilityBucket,
			Sources: []string{ColVisibility},
			Levels:  append(VisibilityBuckets.Labels(), VisibilityUnknown),
			Value: func(p ProcessedRecord) (string, bool) {
				return p.VisibilityBucket, p.VisibilityBucket != ""
			},
		},
		{
			Name:    OutWeatherGroup,
			Sources: []string{ColWeather},
			Levels:  slices.Clone(weatherGroups),
			Value: func(p ProcessedRecord) (string, bool) {
				return p.WeatherGroup, p.WeatherGroup != ""
			},
		},
		{
			Name:    OutRoadSpeedClass,
			Sources: []string{ColStreet},
			Levels:  roadLevels,
			Value: func(p ProcessedRecord) (string, bool) {
				return string(p.RoadSpeedClass), p.RoadSpeedClass != ""
			},
		},
	}

	for _, flag := range FlagColumns {
		cols = append(cols, OutputColumn{
			Name:    flag,
			Sources: []string{flag},
			Levels:  boolLevels,
			Value: func(p ProcessedRecord) (string, bool) {
				v, ok := p.Flags[flag]
				return strconv.FormatBool(v), ok
			},
		})
	}

	cols = append(cols,
		optionalFloatColumn(ColDistance, func(p ProcessedRecord) *float64 { return p.Distance }),
		OutputColumn{
			Name:    OutDuration,
			Sources: []string{ColEndTime},
			Value: func(p ProcessedRecord) (string, bool) {
				if p.DurationMin == nil {
					return "", false
				}
				return formatFloat(*p.DurationMin), true
			},
		},
		optionalFloatColumn(ColTemperature, func(p ProcessedRecord) *float64 { return p.Temperature }),
		optionalFloatColumn(ColHumidity, func(p ProcessedRecord) *float64 { return p.Humidity }),
		optionalFloatColumn(ColPressure, func(p ProcessedRecord) *float64 { return p.Pressure }),
		optionalFloatColumn(ColWindSpeed, func(p ProcessedRecord) *float64 { return p.WindSpeed }),
		optionalFloatColumn(ColPrecipitation, func(p ProcessedRecord) *float64 { return p.Precipitation }),
	)
	return cols
}

// optionalFloatColumn exports a nullable reading. Precipitation is imputed, so
// its column is exported even when the input lacks it.
func optionalFloatColumn(name string, get func(ProcessedRecord) *float64) OutputColumn {
	col := OutputColumn{Name: name, Value: func(p ProcessedRecord) (string, bool) {
		v := get(p)
		if v == nil {
			return "", false
		}
		return formatFloat(*v), true
	}}
	if name != ColPrecipitation {
		col.Sources = []string{name}
	}
	return col
}

func intCell(get func(ProcessedRecord) int) func(ProcessedRecord) (string, bool) {
	return func(p ProcessedRecord) (string, bool) { return strconv.Itoa(get(p)), true }
}

func floatCell(get func(ProcessedRecord) float64) func(ProcessedRecord) (string, bool) {
	return func(p ProcessedRecord) (string, bool) { return formatFloat(get(p)), true }
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SelectColumns keeps the schema columns whose sources are all in present.
func SelectColumns(schema []OutputColumn, present []string) []OutputColumn {
	have := make(map[string]bool, len(present))
	for _, p := range present {
		have[p] = true
	}

	out := make([]OutputColumn, 0, len(schema))
	for _, c := range schema {
		ok := true
		for _, s := range c.Sources {
			if !have[s] {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}
