package repository

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// row gives access to a CSV record by header name.
type row struct {
	line   int
	fields []string
	index  map[string]int
}

func (r row) str(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// int parses an integer column. Float notation with no fraction ("2008.0")
// is accepted since exported spreadsheets often write years that way.
func (r row) int(col string) (int, error) {
	v := r.str(col)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("line %d: %s=%q is not an integer: %w", r.line, col, v, ErrMalformedRow)
	}
	return int(f), nil
}

func (r row) float(col string) (float64, error) {
	v := r.str(col)
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s=%q is not a number: %w", r.line, col, v, ErrMalformedRow)
	}
	return f, nil
}

// readCSV streams a delimited file, checking the header carries every
// required column. Blank lines are skipped by encoding/csv.
func readCSV(path string, delim rune, required []string, fn func(row) error) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, ErrMissingFile)
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%s: empty file: %w", path, ErrEmptyDataset)
		}
		return fmt.Errorf("%s: read header: %w", path, err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return fmt.Errorf("%s: %q: %w", path, col, ErrMissingColumn)
		}
	}

	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %v: %w", path, err, ErrMalformedRow)
		}
		if err := fn(row{line: line, fields: rec, index: index}); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
}
