package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecipitationBucket(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"missing", nil, ""},
		{"zero", fptr(0), PrecipNone},
		{"below trace", fptr(0.00005), PrecipNone},
		{"trace edge", fptr(0.0001), PrecipLow},
		{"low", fptr(0.05), PrecipLow},
		{"moderate edge", fptr(0.1), PrecipModerate},
		{"moderate", fptr(0.2), PrecipModerate},
		{"heavy edge", fptr(0.3), PrecipHeavy},
		{"one inch", fptr(1.0), PrecipHeavy},
		{"heavy", fptr(4.2), PrecipHeavy},
		{"negative", fptr(-0.1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PrecipitationBucket(tt.in))
		})
	}
}

func TestVisibilityBucket(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want string
	}{
		{"missing", nil, VisibilityUnknown},
		{"zero", fptr(0), VisibilityVeryLow},
		{"just under one", fptr(0.99), VisibilityVeryLow},
		{"one", fptr(1), VisibilityLow},
		{"three", fptr(3), VisibilityModerate},
		{"six", fptr(6), VisibilityClear},
		{"ten", fptr(10), VisibilityClear},
		{"negative", fptr(-1), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibilityBucket(tt.in))
		})
	}
}

func TestBucketer_RejectsNaN(t *testing.T) {
	_, ok := VisibilityBuckets.Bucket(math.NaN())
	assert.False(t, ok)
}

func TestNewBucketer_Validation(t *testing.T) {
	_, err := NewBucketer(nil, nil)
	require.Error(t, err)

	_, err = NewBucketer([]float64{0, 1}, []string{"a"})
	require.Error(t, err)

	_, err = NewBucketer([]float64{0, 1, 1}, []string{"a", "b", "c"})
	require.Error(t, err)

	b, err := NewBucketer([]float64{0, 5}, []string{"lo", "hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"lo", "hi"}, b.Labels())

	label, ok := b.Bucket(5)
	assert.True(t, ok)
	assert.Equal(t, "hi", label)
}

func TestMustBucketer_Panics(t *testing.T) {
	assert.Panics(t, func() { MustBucketer([]float64{1, 0}, []string{"a", "b"}) })
}
