package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Source column names.
const (
	ColID            = "ID"
	ColSeverity      = "Severity"
	ColStartTime     = "Start_Time"
	ColEndTime       = "End_Time"
	ColCity          = "City"
	ColState         = "State"
	ColStreet        = "Street"
	ColWeather       = "Weather_Condition"
	ColTemperature   = "Temperature(F)"
	ColWindChill     = "Wind_Chill(F)"
	ColHumidity      = "Humidity(%)"
	ColPressure      = "Pressure(in)"
	ColVisibility    = "Visibility(mi)"
	ColWindSpeed     = "Wind_Speed(mph)"
	ColPrecipitation = "Precipitation(in)"
	ColDistance      = "Distance(mi)"
	ColSunriseSunset = "Sunrise_Sunset"
)

// RequiredInputColumns must all be present in the input header.
var RequiredInputColumns = []string{ColID, ColSeverity, ColStartTime, ColCity, ColState}

// FlagColumns are the boolean road-feature columns carried into the output.
var FlagColumns = []string{
	"Amenity", "Bump", "Crossing", "Give_Way", "Junction", "No_Exit", "Railway",
	"Roundabout", "Station", "Stop", "Traffic_Calming", "Traffic_Signal", "Turning_Loop",
}

// RawRecord is one accident event as read from the source file. Numeric and
// boolean readings are nil / absent when the cell is empty or unparseable.
type RawRecord struct {
	ID        string
	Severity  *int
	StartTime string
	EndTime   string
	City      string
	State     string
	Street    string
	Weather   string
	// SunriseSunset is the "Day" / "Night" period label.
	SunriseSunset string

	Temperature   *float64
	WindChill     *float64
	Humidity      *float64
	Pressure      *float64
	Visibility    *float64
	WindSpeed     *float64
	Precipitation *float64
	Distance      *float64

	// Flags holds the parsed road-feature booleans keyed by column name. A
	// missing key means the cell was empty.
	Flags map[string]bool

	// Extra holds every other column verbatim. It takes part in duplicate
	// detection but is not exported.
	Extra map[string]string
}

// IntermediateRecord is a cleaned record with its temporal fields derived.
type IntermediateRecord struct {
	RawRecord

	Start     time.Time
	Year      int
	Month     int
	DayOfWeek int // Monday=0
	Hour      int
	Weekend   bool
	Season    string
	Night     bool
	CityState string

	// DurationMin is nil when End_Time is missing or unparseable.
	DurationMin *float64
}

// ProcessedRecord is the feature vector for one surviving accident.
type ProcessedRecord struct {
	SourceID  string `json:"id"`
	Severity  string `json:"severity"`
	CityState string `json:"city_state"`

	Year      int     `json:"year"`
	Month     int     `json:"month"`
	DayOfWeek int     `json:"day_of_week"`
	Hour      int     `json:"hour"`
	HourSin   float64 `json:"hour_sin"`
	HourCos   float64 `json:"hour_cos"`
	Weekend   bool    `json:"is_weekend"`
	Night     bool    `json:"is_night"`
	Season    string  `json:"season"`

	PrecipitationBucket string    `json:"precipitation_bucket"`
	VisibilityBucket    string    `json:"visibility_bucket"`
	WeatherGroup        string    `json:"weather_group"`
	RoadSpeedClass      RoadClass `json:"road_speed_class"`

	Flags map[string]bool `json:"flags,omitempty"`

	Distance      *float64 `json:"distance_mi,omitempty"`
	DurationMin   *float64 `json:"duration_min,omitempty"`
	Temperature   *float64 `json:"temperature_f,omitempty"`
	Humidity      *float64 `json:"humidity_pct,omitempty"`
	Pressure      *float64 `json:"pressure_in,omitempty"`
	WindSpeed     *float64 `json:"wind_speed_mph,omitempty"`
	Precipitation *float64 `json:"precipitation_in,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`
}

// knownColumns are decoded into typed RawRecord fields; everything else lands in Extra.
var knownColumns = func() map[string]bool {
	m := map[string]bool{
		ColID: true, ColSeverity: true, ColStartTime: true, ColEndTime: true,
		ColCity: true, ColState: true, ColStreet: true, ColWeather: true,
		ColTemperature: true, ColWindChill: true, ColHumidity: true, ColPressure: true,
		ColVisibility: true, ColWindSpeed: true, ColPrecipitation: true, ColDistance: true,
		ColSunriseSunset: true,
	}
	for _, c := range FlagColumns {
		m[c] = true
	}
	return m
}()

// NewRawRecord builds a RawRecord from one row keyed by column name.
func NewRawRecord(fields map[string]string) RawRecord {
	rec := RawRecord{
		ID:        strings.TrimSpace(fields[ColID]),
		Severity:  parseIntOrNil(fields[ColSeverity]),
		StartTime: strings.TrimSpace(fields[ColStartTime]),
		EndTime:   strings.TrimSpace(fields[ColEndTime]),
		City:      strings.TrimSpace(fields[ColCity]),
		State:     strings.TrimSpace(fields[ColState]),
		Street:    strings.TrimSpace(fields[ColStreet]),
		Weather:   strings.TrimSpace(fields[ColWeather]),

		SunriseSunset: strings.TrimSpace(fields[ColSunriseSunset]),

		Temperature:   parseFloatOrNil(fields[ColTemperature]),
		WindChill:     parseFloatOrNil(fields[ColWindChill]),
		Humidity:      parseFloatOrNil(fields[ColHumidity]),
		Pressure:      parseFloatOrNil(fields[ColPressure]),
		Visibility:    parseFloatOrNil(fields[ColVisibility]),
		WindSpeed:     parseFloatOrNil(fields[ColWindSpeed]),
		Precipitation: parseFloatOrNil(fields[ColPrecipitation]),
		Distance:      parseFloatOrNil(fields[ColDistance]),

		Flags: make(map[string]bool),
	}

	for _, c := range FlagColumns {
		if v, ok := parseBool(fields[c]); ok {
			rec.Flags[c] = v
		}
	}

	for k, v := range fields {
		if knownColumns[k] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[k] = v
	}

	return rec
}

// parseFloatOrNil parses a string as float64, returning nil for empty,
// unparseable or NaN input. Numeric exports write a missing reading as "NaN".
func parseFloatOrNil(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

func parseIntOrNil(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		// Some exports write severity as "3.0".
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		v = int(f)
	}
	return &v
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "t", "yes":
		return true, true
	case "false", "0", "f", "no":
		return false, true
	default:
		return false, false
	}
}

// CityKey joins city and state into the composite "City, ST" key. It returns
// an empty string when either part is missing.
func CityKey(city, state string) string {
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	if city == "" || state == "" {
		return ""
	}
	return city + ", " + state
}

// Dataset is the full extracted input: the header as read and one RawRecord per row.
type Dataset struct {
	Columns []string
	Records []RawRecord
}
