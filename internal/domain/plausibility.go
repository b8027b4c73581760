package domain

import "fmt"

// Bound is an inclusive range check on one numeric field.
type Bound struct {
	Column string
	Min    float64
	Max    float64
	value  func(*IntermediateRecord) *float64
}

// Check reports whether v passes. A nil value is unknown, not invalid.
func (b Bound) Check(v *float64) bool {
	if v == nil {
		return true
	}
	return *v >= b.Min && *v <= b.Max
}

// BoundTable is an ordered set of bounds evaluated together.
type BoundTable []Bound

func bound(col string, lo, hi float64, f func(*IntermediateRecord) *float64) Bound {
	return Bound{Column: col, Min: lo, Max: hi, value: f}
}

var (
	boundTemperature   = bound(ColTemperature, -40, 120, func(r *IntermediateRecord) *float64 { return r.Temperature })
	boundVisibility    = bound(ColVisibility, 0, 10, func(r *IntermediateRecord) *float64 { return r.Visibility })
	boundPrecipitation = bound(ColPrecipitation, 0, 25, func(r *IntermediateRecord) *float64 { return r.Precipitation })
	boundWindChill     = bound(ColWindChill, -60, 80, func(r *IntermediateRecord) *float64 { return r.WindChill })
	boundHumidity      = bound(ColHumidity, 0, 100, func(r *IntermediateRecord) *float64 { return r.Humidity })
	boundPressure      = bound(ColPressure, 28, 32, func(r *IntermediateRecord) *float64 { return r.Pressure })
	boundWindSpeed     = bound(ColWindSpeed, 0, 60, func(r *IntermediateRecord) *float64 { return r.WindSpeed })
	boundDistance      = bound(ColDistance, 0, 100, func(r *IntermediateRecord) *float64 { return r.Distance })
	// Duration is minutes from Start_Time to End_Time, at most one day.
	boundDuration      = bound(OutDuration, 0, 1440, func(r *IntermediateRecord) *float64 { return r.DurationMin })
)

// Plausibility profiles.
const (
	ProfileCore     = "core"
	ProfileExtended = "extended"
)

// CoreBounds checks temperature, visibility and precipitation.
func CoreBounds() BoundTable {
	return BoundTable{boundTemperature, boundVisibility, boundPrecipitation}
}

// ExtendedBounds adds wind chill, humidity, pressure, wind speed, distance and
// duration to the core table.
func ExtendedBounds() BoundTable {
	return append(CoreBounds(),
		boundWindChill, boundHumidity, boundPressure, boundWindSpeed, boundDistance, boundDuration)
}

// BoundsForProfile returns the table for a named profile.
func BoundsForProfile(profile string) (BoundTable, error) {
	switch profile {
	case "", ProfileCore:
		return CoreBounds(), nil
	case ProfileExtended:
		return ExtendedBounds(), nil
	default:
		return nil, fmt.Errorf("unknown plausibility profile %q", profile)
	}
}

// Violation returns the column of the first failing bound, or "" if the record passes.
func (t BoundTable) Violation(r *IntermediateRecord) string {
	for _, b := range t {
		if !b.Check(b.value(r)) {
			return b.Column
		}
	}
	return ""
}

// FilterPlausible removes records with any present value outside its bound.
func FilterPlausible(records []IntermediateRecord, t BoundTable) ([]IntermediateRecord, Drops) {
	out := make([]IntermediateRecord, 0, len(records))
	drops := Drops{}

	for i := range records {
		if col := t.Violation(&records[i]); col != "" {
			drops[ReasonOutOfRangePrefix+col]++
			continue
		}
		out = append(out, records[i])
	}
	return out, drops
}
