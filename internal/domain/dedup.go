package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Deduplicate removes records whose fields, ID excluded, equal an earlier
// record. The first occurrence is kept and input order is preserved.
func Deduplicate(records []RawRecord) ([]RawRecord, Drops) {
	seen := make(map[string]struct{}, len(records))
	out := make([]RawRecord, 0, len(records))
	drops := Drops{}

	for _, r := range records {
		key := fingerprint(r)
		if _, dup := seen[key]; dup {
			drops[ReasonDuplicate]++
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out, drops
}

// fingerprint hashes every field except ID. Missing values are encoded
// distinctly from zero values so "" and "0" never collide.
func fingerprint(r RawRecord) string {
	var b strings.Builder

	writeStr := func(name, v string) {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.Quote(v))
		b.WriteByte('|')
	}
	writeFloat := func(name string, v *float64) {
		b.WriteString(name)
		if v == nil {
			b.WriteString("=<nil>|")
			return
		}
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
		b.WriteByte('|')
	}

	if r.Severity == nil {
		b.WriteString(ColSeverity + "=<nil>|")
	} else {
		writeStr(ColSeverity, strconv.Itoa(*r.Severity))
	}
	writeStr(ColStartTime, r.StartTime)
	writeStr(ColEndTime, r.EndTime)
	writeStr(ColCity, r.City)
	writeStr(ColState, r.State)
	writeStr(ColStreet, r.Street)
	writeStr(ColWeather, r.Weather)
	writeStr(ColSunriseSunset, r.SunriseSunset)
	writeFloat(ColTemperature, r.Temperature)
	writeFloat(ColWindChill, r.WindChill)
	writeFloat(ColHumidity, r.Humidity)
	writeFloat(ColPressure, r.Pressure)
	writeFloat(ColVisibility, r.Visibility)
	writeFloat(ColWindSpeed, r.WindSpeed)
	writeFloat(ColPrecipitation, r.Precipitation)
	writeFloat(ColDistance, r.Distance)

	for _, c := range FlagColumns {
		v, ok := r.Flags[c]
		if !ok {
			b.WriteString(c + "=<nil>|")
			continue
		}
		writeStr(c, strconv.FormatBool(v))
	}

	// Extra keys sorted so map iteration order never changes the key.
	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeStr(k, r.Extra[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
