// Command validate checks a feature CSV written by the etl command: header
// order against the output schema, complete rows, categorical levels and
// temporal field ranges. It exits non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate -in data/features.csv -taxonomy coarse
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/couchcryptid/accident-severity-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/accident-severity-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// maxReported caps per-phase detail so a bad file does not flood the terminal.
const maxReported = 20

func main() {
	in := flag.String("in", "", "feature CSV to validate")
	taxonomy := flag.String("taxonomy", string(domain.TaxonomyCoarse), "weather taxonomy the file was built with")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*in, domain.WeatherTaxonomy(*taxonomy)))
}

func run(path string, taxonomy domain.WeatherTaxonomy) int {
	grouper, err := domain.NewWeatherGrouper(taxonomy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open %s: %v\n", path, err)
		return 1
	}
	defer f.Close()

	header, rows, err := csvfile.ReadTable(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read %s: %v\n", path, err)
		return 1
	}

	fmt.Println("=== Feature Table Validation ===")
	fmt.Println()

	schema := domain.NewOutputSchema(grouper.Groups())
	phases := validate(schema, header, rows)

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-32s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d, columns: %d\n", len(rows), len(header))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			if i == maxReported {
				fmt.Printf("  ... %d more\n", len(p.errors)-maxReported)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func validate(schema []domain.OutputColumn, header []string, rows [][]string) []*phase {
	return []*phase{
		validateHeader(schema, header),
		validateCompleteness(header, rows),
		validateLevels(schema, header, rows),
		validateTemporal(header, rows),
	}
}

// validateHeader checks that every column is known, appears once, keeps
// schema order, and that columns without input sources are all present.
func validateHeader(schema []domain.OutputColumn, header []string) *phase {
	p := &phase{name: "Header"}

	position := make(map[string]int, len(schema))
	for i, c := range schema {
		position[c.Name] = i
	}

	last := -1
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		pos, ok := position[h]
		if !ok {
			p.errorf("unknown column %q", h)
			continue
		}
		if seen[h] {
			p.errorf("duplicate column %q", h)
			continue
		}
		seen[h] = true
		if pos < last {
			p.errorf("column %q out of order", h)
		}
		last = max(last, pos)
	}

	for _, c := range schema {
		if len(c.Sources) == 0 && !seen[c.Name] {
			p.errorf("missing column %q", c.Name)
		}
	}
	return p
}

func validateCompleteness(header []string, rows [][]string) *phase {
	p := &phase{name: "Completeness"}
	for i, row := range rows {
		if len(row) != len(header) {
			p.errorf("row %d: %d cells, want %d", i+1, len(row), len(header))
			continue
		}
		for j, cell := range row {
			if cell == "" {
				p.errorf("row %d: empty %s", i+1, header[j])
			}
		}
	}
	return p
}

func validateLevels(schema []domain.OutputColumn, header []string, rows [][]string) *phase {
	p := &phase{name: "Categorical levels"}

	levels := make(map[int][]string)
	for j, h := range header {
		idx := slices.IndexFunc(schema, func(c domain.OutputColumn) bool { return c.Name == h })
		if idx >= 0 && schema[idx].Levels != nil {
			levels[j] = schema[idx].Levels
		}
	}

	for i, row := range rows {
		for j, allowed := range levels {
			if j >= len(row) || row[j] == "" {
				continue
			}
			if !slices.Contains(allowed, row[j]) {
				p.errorf("row %d: %s=%q not in %v", i+1, header[j], row[j], allowed)
			}
		}
	}
	return p
}

// temporalRanges are the inclusive bounds of the derived calendar fields.
var temporalRanges = map[string][2]int{
	domain.OutYear:      {domain.WindowEarly.FromYear, domain.WindowLate.ToYear},
	domain.OutMonth:     {1, 12},
	domain.OutDayOfWeek: {0, 6},
	domain.OutHour:      {0, 23},
}

func validateTemporal(header []string, rows [][]string) *phase {
	p := &phase{name: "Temporal ranges"}

	for j, h := range header {
		bounds, ok := temporalRanges[h]
		if !ok {
			continue
		}
		for i, row := range rows {
			if j >= len(row) || row[j] == "" {
				continue
			}
			v, err := strconv.Atoi(row[j])
			if err != nil {
				p.errorf("row %d: %s=%q is not an integer", i+1, h, row[j])
				continue
			}
			if v < bounds[0] || v > bounds[1] {
				p.errorf("row %d: %s=%d outside [%d, %d]", i+1, h, v, bounds[0], bounds[1])
			}
		}
	}
	return p
}
