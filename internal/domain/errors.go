package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingColumn marks a structural input problem. It is fatal.
	ErrMissingColumn = errors.New("missing required column")

	// ErrUnparseableTime is returned when a timestamp matches no known layout.
	ErrUnparseableTime = errors.New("unparseable timestamp")

	// ErrSeverityOutOfRange is returned for severities outside 1..4.
	ErrSeverityOutOfRange = errors.New("severity out of range")
)

// SchemaError lists every required column absent from an input header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumn, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumn }

// CheckSchema verifies that header contains every column in RequiredInputColumns.
func CheckSchema(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, c := range RequiredInputColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Drops counts removed rows by reason.
type Drops map[string]int

// Add merges other into d.
func (d Drops) Add(other Drops) {
	for k, v := range other {
		d[k] += v
	}
}

// Total returns the number of dropped rows across all reasons.
func (d Drops) Total() int {
	n := 0
	for _, v := range d {
		n += v
	}
	return n
}

// Drop reasons reported by the stages.
const (
	ReasonDuplicate           = "duplicate"
	ReasonUnparseableTime     = "unparseable_time"
	ReasonOutOfWindow         = "out_of_window"
	ReasonOutOfRangePrefix    = "out_of_range:"
	ReasonSeverityOutOfRange  = "severity_out_of_range"
	ReasonCityFilter          = "city_filter"
	ReasonMissingRequiredCell = "missing_required"
)
