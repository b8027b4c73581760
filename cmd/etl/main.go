// Command etl cleans a raw accident export and writes the feature table.
//
// Usage:
//
//	go run ./cmd/etl --input data/US_Accidents.csv --output data/features.csv \
//	  --window 2019-2023 --city "Boston, MA"
//
// Every flag has an environment variable counterpart (see internal/config).
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
