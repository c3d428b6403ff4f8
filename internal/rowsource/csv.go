package rowsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadCSV reads a CSV file whose first row names the columns. Empty cells
// become NULL; integer and decimal literals become numbers; everything else
// is text. An onProgress callback is called every 10,000 rows if non-nil.
func ReadCSV(path string, onProgress func(count int)) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(newNullStripper(f))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable field counts

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == "" {
			return nil, fmt.Errorf("header column %d is empty", i+1)
		}
	}

	result := &ReadResult{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", result.Count+result.Excluded+1, err)
		}

		// Rows wider than the header cannot be mapped to columns.
		if len(row) > len(header) {
			result.Excluded++
			continue
		}

		rec := Record{
			Columns: header[:len(row)],
			Values:  make([]any, len(row)),
		}
		for i, cell := range row {
			rec.Values[i] = inferCell(cell)
		}
		result.Records = append(result.Records, rec)
		result.Count++

		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	return result, nil
}

// inferCell maps a CSV cell to nil, int64, float64, decimal.Decimal or
// string. Numbers with
// a leading zero, such as "007", stay text.
func inferCell(s string) any {
	if s == "" {
		return nil
	}
	digits := strings.TrimPrefix(s, "-")
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if n, ok := exactNumber(s); ok {
		return n
	}
	return s
}

// nullStripper wraps a reader and strips null bytes from the stream so the
// CSV reader does not fail on them.
type nullStripper struct {
	r io.Reader
}

func newNullStripper(r io.Reader) io.Reader {
	return &nullStripper{r: r}
}

func (ns *nullStripper) Read(p []byte) (int, error) {
	n, err := ns.r.Read(p)
	if n > 0 {
		// Replace null bytes in place
		cleaned := strings.ReplaceAll(string(p[:n]), "\x00", "")
		copy(p, cleaned)
		n = len(cleaned)
	}
	return n, err
}
