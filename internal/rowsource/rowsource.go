// Package rowsource reads tabular files into ordered column/value records
// that can be turned into INSERT statements.
package rowsource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cdtdelta/typedsql/query"
)

// ErrUnknownFormat is returned when a file format cannot be determined.
var ErrUnknownFormat = errors.New("unknown row format")

// Record is one input row. Columns and Values are parallel.
type Record struct {
	Columns []string
	Values  []any
}

// Apply adds every column of r to b as an INSERT value, in order.
func (r Record) Apply(b *query.Builder) *query.Builder {
	for i, c := range r.Columns {
		b.Value(c, r.Values[i])
	}
	return b
}

// ReadResult contains the outcome of reading a file.
type ReadResult struct {
	Records  []Record
	Count    int
	Excluded int
}

// Read reads path in the given format ("csv" or "jsonl"). An empty format
// is inferred from the file extension.
func Read(path, format string, onProgress func(count int)) (*ReadResult, error) {
	if format == "" {
		format = formatFromExt(path)
	}
	switch strings.ToLower(format) {
	case "csv":
		return ReadCSV(path, onProgress)
	case "jsonl", "ndjson":
		return ReadJSONL(path, onProgress)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".jsonl", ".ndjson":
		return "jsonl"
	}
	return ""
}

// exactNumber parses a numeric literal that int64 cannot hold. It returns a
// float64 when that keeps every digit and a decimal.Decimal otherwise.
// Integral literals are always decimals.
func exactNumber(s string) (any, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, false
	}
	if !strings.ContainsAny(s, ".eE") {
		return d, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && decimal.NewFromFloat(f).Equal(d) {
		return f, true
	}
	return d, true
}
