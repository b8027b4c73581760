package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate(t *testing.T) {
	base := RawRecord{
		Severity:    iptr(2),
		StartTime:   "2016-02-08 05:46:00",
		City:        "Dayton",
		State:       "OH",
		Street:      "I-70 E",
		Temperature: fptr(36.9),
		Flags:       map[string]bool{"Junction": true},
	}

	withID := func(r RawRecord, id string) RawRecord {
		r.ID = id
		return r
	}

	zeroTemp := withID(base, "A-4")
	zeroTemp.Temperature = fptr(0)
	nilTemp := withID(base, "A-5")
	nilTemp.Temperature = nil
	extra := withID(base, "A-6")
	extra.Extra = map[string]string{"Description": "lane blocked"}

	records := []RawRecord{
		withID(base, "A-1"),
		withID(base, "A-2"), // same fields, new ID
		withID(base, "A-3"),
		zeroTemp,
		nilTemp,
		extra,
	}

	out, drops := Deduplicate(records)

	require.Len(t, out, 4)
	ids := make([]string, len(out))
	for i, r := range out {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"A-1", "A-4", "A-5", "A-6"}, ids)
	assert.Equal(t, Drops{ReasonDuplicate: 2}, drops)
}

func TestDeduplicate_DayNightDiffers(t *testing.T) {
	a := RawRecord{ID: "1", StartTime: "2016-02-08 05:46:00", SunriseSunset: "Day"}
	b := RawRecord{ID: "2", StartTime: "2016-02-08 05:46:00", SunriseSunset: "Night"}

	out, _ := Deduplicate([]RawRecord{a, b})
	assert.Len(t, out, 2)
}

func TestDeduplicate_FlagPresenceMatters(t *testing.T) {
	a := RawRecord{ID: "1", Flags: map[string]bool{"Stop": false}}
	b := RawRecord{ID: "2", Flags: map[string]bool{}}

	out, drops := Deduplicate([]RawRecord{a, b})
	assert.Len(t, out, 2)
	assert.Zero(t, drops.Total())
}

func TestFingerprint_ExtraOrderIndependent(t *testing.T) {
	a := RawRecord{Extra: map[string]string{"x": "1", "y": "2", "z": "3"}}
	b := RawRecord{Extra: map[string]string{"z": "3", "x": "1", "y": "2"}}
	assert.Equal(t, fingerprint(a), fingerprint(b))
}

func TestDeduplicate_Idempotent(t *testing.T) {
	records := []RawRecord{
		{ID: "1", City: "Dayton", State: "OH"},
		{ID: "2", City: "Dayton", State: "OH"},
		{ID: "3", City: "Austin", State: "TX"},
	}

	once, _ := Deduplicate(records)
	twice, drops := Deduplicate(once)

	assert.Equal(t, once, twice)
	assert.Zero(t, drops.Total())
}
