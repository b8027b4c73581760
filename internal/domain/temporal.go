package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// timeLayouts are tried in order. Source timestamps are local wall-clock times
// without a zone, so they are parsed as UTC and never converted.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// TimeWindow is an inclusive range of years.
type TimeWindow struct {
	Name     string
	FromYear int
	ToYear   int
}

var (
	WindowEarly = TimeWindow{Name: "2016-2018", FromYear: 2016, ToYear: 2018}
	WindowLate  = TimeWindow{Name: "2019-2023", FromYear: 2019, ToYear: 2023}
)

// DefaultWindow applies when the configured window is absent or unrecognized.
var DefaultWindow = WindowEarly

// ParseTimeWindow resolves a window name. The second return is false when the
// name is not recognized, in which case DefaultWindow is returned.
func ParseTimeWindow(name string) (TimeWindow, bool) {
	switch strings.TrimSpace(name) {
	case WindowEarly.Name:
		return WindowEarly, true
	case WindowLate.Name:
		return WindowLate, true
	default:
		return DefaultWindow, false
	}
}

// Contains reports whether year falls inside the window, bounds included.
func (w TimeWindow) Contains(year int) bool {
	return year >= w.FromYear && year <= w.ToYear
}

// ParseTimestamp parses a source timestamp using the first matching layout.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnparseableTime)
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
}

// Seasons, by meteorological quarter.
const (
	SeasonWinter = "Winter"
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
)

// Seasons lists every season label.
var Seasons = []string{SeasonWinter, SeasonSpring, SeasonSummer, SeasonFall}

// SeasonOf maps a calendar month to its season: Dec-Feb Winter, Mar-May
// Spring, Jun-Aug Summer, Sep-Nov Fall.
func SeasonOf(m time.Month) string {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// NormalizeTime derives the calendar and clock fields from the start time,
// the duration from End_Time and the night flag from Sunrise_Sunset.
func NormalizeTime(r RawRecord) (IntermediateRecord, error) {
	start, err := ParseTimestamp(r.StartTime)
	if err != nil {
		return IntermediateRecord{}, err
	}

	dow := mondayIndex(start.Weekday())
	return IntermediateRecord{
		RawRecord:   r,
		Start:       start,
		Year:        start.Year(),
		Month:       int(start.Month()),
		DayOfWeek:   dow,
		Hour:        start.Hour(),
		Weekend:     dow >= 5,
		Season:      SeasonOf(start.Month()),
		Night:       strings.EqualFold(r.SunriseSunset, "Night"),
		DurationMin: durationMinutes(start, r.EndTime),
	}, nil
}

// durationMinutes returns the minutes from start to end, or nil when end is
// missing or unparseable. A negative result is kept for the bound check.
func durationMinutes(start time.Time, end string) *float64 {
	t, err := ParseTimestamp(end)
	if err != nil {
		return nil
	}
	d := t.Sub(start).Minutes()
	return &d
}

// NormalizeTemporal parses every record's start time and keeps only those
// inside the window. Unparseable timestamps are dropped, never defaulted.
func NormalizeTemporal(records []RawRecord, w TimeWindow) ([]IntermediateRecord, Drops) {
	out := make([]IntermediateRecord, 0, len(records))
	drops := Drops{}

	for _, r := range records {
		rec, err := NormalizeTime(r)
		if err != nil {
			drops[ReasonUnparseableTime]++
			continue
		}
		if !w.Contains(rec.Year) {
			drops[ReasonOutOfWindow]++
			continue
		}
		out = append(out, rec)
	}
	return out, drops
}

// mondayIndex converts time.Weekday (Sunday=0) to a Monday=0 index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// HourCycle returns the sine/cosine encoding of an hour on a 24-hour circle.
func HourCycle(hour int) (sin, cos float64) {
	angle := 2 * math.Pi * float64(hour) / 24
	return math.Sin(angle), math.Cos(angle)
}
