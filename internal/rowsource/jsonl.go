package rowsource

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ReadJSONL reads a file with one JSON object per line. Keys are sorted so
// column order is stable. Numbers become int64 or float64, or
// decimal.Decimal when those would round them. Nested objects and arrays
// become their JSON text. Lines that are not JSON objects are counted as
// excluded.
func ReadJSONL(path string, onProgress func(count int)) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Allow up to 10MB per line
	scanner.Buffer(make([]byte, 0, 1024*1024), 10*1024*1024)

	result := &ReadResult{}
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, ok := decodeObject(line)
		if !ok {
			result.Excluded++
			continue
		}

		result.Records = append(result.Records, rec)
		result.Count++

		if onProgress != nil && result.Count%10000 == 0 {
			onProgress(result.Count)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file at line %d: %w", lineNum, err)
	}

	return result, nil
}

func decodeObject(line string) (Record, bool) {
	if line[0] != '{' {
		return Record{}, false
	}

	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Record{}, false
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rec := Record{Columns: keys, Values: make([]any, len(keys))}
	for i, k := range keys {
		rec.Values[i] = jsonValue(raw[k])
	}
	return rec, true
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if n, ok := exactNumber(x.String()); ok {
			return n
		}
		return x.String()
	case map[string]any, []any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(x); err != nil {
			return nil
		}
		return strings.TrimSuffix(buf.String(), "\n")
	default:
		// string, bool and nil pass through
		return x
	}
}
