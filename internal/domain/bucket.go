package domain

import (
	"errors"
	"fmt"
	"math"
)

// Bucketer maps a continuous value onto ordered labels using left-closed bins.
// Bin i covers [edges[i], edges[i+1]); the last bin is open-ended.
type Bucketer struct {
	edges  []float64
	labels []string
}

// NewBucketer validates that edges are strictly increasing and that there is
// one label per edge.
func NewBucketer(edges []float64, labels []string) (Bucketer, error) {
	if len(edges) == 0 {
		return Bucketer{}, errors.New("bucketer needs at least one edge")
	}
	if len(edges) != len(labels) {
		return Bucketer{}, fmt.Errorf("bucketer has %d edges but %d labels", len(edges), len(labels))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return Bucketer{}, fmt.Errorf("bucket edges not increasing at %d", i)
		}
	}
	return Bucketer{
		edges:  append([]float64(nil), edges...),
		labels: append([]string(nil), labels...),
	}, nil
}

// MustBucketer is NewBucketer for package-level tables.
func MustBucketer(edges []float64, labels []string) Bucketer {
	b, err := NewBucketer(edges, labels)
	if err != nil {
		panic(err)
	}
	return b
}

// Bucket returns the label for v. It returns false for NaN or values below the
// lowest edge.
func (b Bucketer) Bucket(v float64) (string, bool) {
	if math.IsNaN(v) || v < b.edges[0] {
		return "", false
	}
	i := len(b.edges) - 1
	for i > 0 && v < b.edges[i] {
		i--
	}
	return b.labels[i], true
}

// Labels returns the ordered bucket labels.
func (b Bucketer) Labels() []string {
	return append([]string(nil), b.labels...)
}

// Bucket labels.
const (
	PrecipNone     = "No Rain"
	PrecipLow      = "Low"
	PrecipModerate = "Moderate"
	PrecipHeavy    = "Heavy"

	VisibilityVeryLow  = "Very Low"
	VisibilityLow      = "Low"
	VisibilityModerate = "Moderate"
	VisibilityClear    = "Clear"
	VisibilityUnknown  = "Unknown"
)

var (
	// PrecipitationBuckets bins inches of precipitation.
	PrecipitationBuckets = MustBucketer(
		[]float64{0, 0.0001, 0.1, 0.3},
		[]string{PrecipNone, PrecipLow, PrecipModerate, PrecipHeavy},
	)

	// VisibilityBuckets bins miles of visibility.
	VisibilityBuckets = MustBucketer(
		[]float64{0, 1, 3, 6},
		[]string{VisibilityVeryLow, VisibilityLow, VisibilityModerate, VisibilityClear},
	)
)

// PrecipitationBucket labels an imputed precipitation reading. A nil value
// gets no label.
func PrecipitationBucket(v *float64) string {
	if v == nil {
		return ""
	}
	label, _ := PrecipitationBuckets.Bucket(*v)
	return label
}

// VisibilityBucket labels a visibility reading. A missing reading is
// "Unknown"; a present value outside the bins gets no label.
func VisibilityBucket(v *float64) string {
	if v == nil {
		return VisibilityUnknown
	}
	label, _ := VisibilityBuckets.Bucket(*v)
	return label
}
