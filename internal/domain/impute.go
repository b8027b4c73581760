package domain

import "strings"

// ImputedPrecipitation replaces a missing precipitation reading. An absent
// reading is taken to mean nothing was recorded.
const ImputedPrecipitation = 0.0

// Impute fills missing precipitation and derives the composite city key.
// It returns the number of precipitation values filled.
func Impute(records []IntermediateRecord) ([]IntermediateRecord, int) {
	out := make([]IntermediateRecord, len(records))
	filled := 0

	for i, r := range records {
		if r.Precipitation == nil {
			v := ImputedPrecipitation
			r.Precipitation = &v
			filled++
		}
		r.CityState = CityKey(r.City, r.State)
		out[i] = r
	}
	return out, filled
}

// FilterCity keeps records whose composite key equals key. An empty key keeps everything.
func FilterCity(records []IntermediateRecord, key string) ([]IntermediateRecord, Drops) {
	key = strings.TrimSpace(key)
	if key == "" {
		return records, Drops{}
	}

	out := make([]IntermediateRecord, 0, len(records))
	drops := Drops{}
	for _, r := range records {
		if r.CityState != key {
			drops[ReasonCityFilter]++
			continue
		}
		out = append(out, r)
	}
	return out, drops
}
