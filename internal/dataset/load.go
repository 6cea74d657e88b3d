package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
)

// LoadFile reads a delimited file and coerces the given dimensions.
func LoadFile(path string, dims []string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open: %w", err)
	}
	defer f.Close()

	ds, err := Load(f, path, dims)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Load reads CSV with a header row from r. Columns other than dims are ignored.
func Load(r io.Reader, source string, dims []string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, wrapRead(source, err)
	}

	cols := make([]int, len(dims))
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for i, d := range dims {
		c, ok := pos[d]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, d, source)
		}
		cols[i] = c
	}

	var records []Record
	bad := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapRead(source, err)
		}
		rec := make(Record, len(dims))
		for i, c := range cols {
			if c >= len(row) {
				rec[i] = math.NaN()
				bad++
				continue
			}
			v, ok := Coerce(row[c])
			if !ok {
				bad++
			}
			rec[i] = v
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRows, source)
	}

	slog.Debug("dataset loaded",
		slog.String("source", source),
		slog.Int("records", len(records)),
		slog.Int("dimensions", len(dims)),
		slog.Int("non_numeric_fields", bad))

	ds := New(dims, records)
	ds.Source = source
	return ds, nil
}

// Coerce parses a field as a number. Empty and unparsable fields yield NaN, false.
func Coerce(field string) (float64, bool) {
	s := strings.TrimSpace(field)
	if s == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), false
	}
	return v, IsFinite(v)
}

func wrapRead(source string, err error) error {
	line := 0
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		line = pe.Line
	}
	return &ParseError{Source: source, Line: line, Err: err}
}
