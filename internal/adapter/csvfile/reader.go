// Package csvfile reads raw accident exports and writes feature tables as CSV.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/accident-severity-etl/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Reader loads the raw input file.
// It implements pipeline.Extractor.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a Reader for path.
func NewReader(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Extract reads the whole file, checks the header for required columns and
// decodes every row. Schema problems are returned before any row is decoded.
func (r *Reader) Extract(_ context.Context) (domain.Dataset, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	ds, err := ReadDataset(f)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("read %s: %w", r.path, err)
	}

	r.logger.Info("input read", "path", r.path, "rows", len(ds.Records), "columns", len(ds.Columns))
	return ds, nil
}

// ReadDataset decodes a raw accident CSV.
func ReadDataset(rd io.Reader) (domain.Dataset, error) {
	header, rows, err := ReadTable(rd)
	if err != nil {
		return domain.Dataset{}, err
	}
	if err := domain.CheckSchema(header); err != nil {
		return domain.Dataset{}, err
	}

	records := make([]domain.RawRecord, len(rows))
	fields := make(map[string]string, len(header))
	for i, row := range rows {
		clear(fields)
		for j, name := range header {
			fields[name] = row[j]
		}
		records[i] = domain.NewRawRecord(fields)
	}
	return domain.Dataset{Columns: header, Records: records}, nil
}

// ReadTable loads a CSV with a header row into string cells. Every column is
// read as text; no type detection or NaN substitution is applied. A file with
// a header and no rows yields the header and an empty row set.
func ReadTable(rd io.Reader) ([]string, [][]string, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	// gota rejects a frame without rows, so the header-only case is peeked
	// with encoding/csv first.
	peek := csv.NewReader(bytes.NewReader(data))
	first, err := peek.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("parse csv: empty input, no header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if _, err := peek.Read(); errors.Is(err, io.EOF) {
		return trimHeader(first), [][]string{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, nil, errors.New("parse csv: no header row")
	}
	return trimHeader(records[0]), records[1:], nil
}

func trimHeader(raw []string) []string {
	header := make([]string, len(raw))
	for i, h := range raw {
		header[i] = strings.TrimSpace(h)
	}
	return header
}
