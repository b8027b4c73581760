// Command genmock writes a deterministic raw accident CSV for local runs and
// tests. Besides ordinary rows it injects exact duplicates (new ID, same
// fields), rows outside both time windows, unparseable timestamps,
// implausible readings and missing values, so every drop path of the
// pipeline is exercised.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/accidents.csv -rows 500 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/couchcryptid/accident-severity-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/accident-severity-etl/internal/domain"
)

var header = append([]string{
	domain.ColID, domain.ColSeverity, domain.ColStartTime, domain.ColEndTime,
	domain.ColCity, domain.ColState, domain.ColStreet, domain.ColWeather,
	domain.ColTemperature, domain.ColWindChill, domain.ColHumidity, domain.ColPressure,
	domain.ColVisibility, domain.ColWindSpeed, domain.ColPrecipitation, domain.ColDistance,
	"Description", domain.ColSunriseSunset,
}, domain.FlagColumns...)

var (
	cities = [][2]string{
		{"Boston", "MA"}, {"Austin", "TX"}, {"Portland", "OR"}, {"Portland", "ME"},
		{"Columbus", "OH"}, {"Miami", "FL"},
	}
	streets = []string{
		"I-95 N", "I 35", "Massachusetts Turnpike", "Harbor Tunnel Fwy", "George Washington Bridge",
		"US-1", "State Route 9", "CA-1", "W 11th St", "Main Street", "Congress Ave",
		"Old Pike Rd", "Blue Ridge Pkwy", "Maple Ln", "Unnamed", "",
	}
	conditions = []string{
		"Clear", "Fair", "Partly Cloudy", "Overcast", "Light Rain", "Heavy Drizzle",
		"Light Snow", "Sleet", "Fog", "Mist", "Thunderstorm", "T-Storm", "Haze", "Blizzard", "",
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the raw CSV fixture")
	rows := flag.Int("rows", 200, "number of base rows before injected edge cases")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" || *rows <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -rows > 0")
	}

	records := generate(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *rows)

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := csvfile.WriteTable(f, header, records); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	log.Printf("wrote %d rows to %s", len(records), *out)
	return nil
}

func generate(r *rand.Rand, n int) [][]string {
	base := time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC)
	span := time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC).Sub(base)

	out := make([][]string, 0, n+n/5)
	id := 0
	nextID := func() string {
		id++
		return "A-" + strconv.Itoa(id)
	}

	for i := 0; i < n; i++ {
		start := base.Add(time.Duration(r.Int64N(int64(span))))
		row := baseRow(r, nextID(), start)

		switch i % 25 {
		case 3: // before both windows
			row[2] = "2015-06-01 08:00:00"
		case 7:
			row[2] = "06/01/2017 8am"
		case 11:
			row[8] = "150"
		case 13:
			row[12] = ""
		case 17:
			row[14] = ""
		case 19:
			row[1] = "7"
		}
		out = append(out, row)

		if i%10 == 5 {
			dup := append([]string(nil), row...)
			dup[0] = nextID()
			out = append(out, dup)
		}
	}
	return out
}

func baseRow(r *rand.Rand, id string, start time.Time) []string {
	city := cities[r.IntN(len(cities))]
	precip := ""
	if r.IntN(3) > 0 {
		precip = fmtFloat(float64(r.IntN(60)) / 100)
	}

	row := []string{
		id,
		strconv.Itoa(1 + r.IntN(4)),
		start.Format("2006-01-02 15:04:05"),
		start.Add(time.Duration(15+r.IntN(180)) * time.Minute).Format("2006-01-02 15:04:05"),
		city[0],
		city[1],
		streets[r.IntN(len(streets))],
		conditions[r.IntN(len(conditions))],
		fmtFloat(float64(r.IntN(1000))/10 - 10),
		fmtFloat(float64(r.IntN(1000))/10 - 20),
		strconv.Itoa(r.IntN(101)),
		fmtFloat(28 + float64(r.IntN(400))/100),
		fmtFloat(float64(r.IntN(101)) / 10),
		fmtFloat(float64(r.IntN(400)) / 10),
		precip,
		fmtFloat(float64(r.IntN(500)) / 100),
		"Accident report",
		period(start),
	}
	for range domain.FlagColumns {
		row = append(row, strconv.FormatBool(r.IntN(5) == 0))
	}
	return row
}

// period approximates the Sunrise_Sunset label from the hour.
func period(t time.Time) string {
	if h := t.Hour(); h >= 6 && h < 19 {
		return "Day"
	}
	return "Night"
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
