package census

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"city-comparison/core/loader"
	"city-comparison/core/table"

	"golang.org/x/text/encoding/charmap"
)

// GeographyFields are the columns holding "<city>, <state>", in order of preference.
var GeographyFields = []string{"Geography.2", "Geographic area.1"}

// Loader reads census CSV exports.
type Loader struct {
	open loader.OpenFunc
}

// NewLoader creates a census loader reading through open.
func NewLoader(open loader.OpenFunc) *Loader {
	return &Loader{open: open}
}

// Load implements table.Loader.
func (l *Loader) Load(ctx context.Context, handle string) ([]table.Record, error) {
	rc, err := l.open(ctx, handle)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	records, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse census file %s: %w", handle, err)
	}
	return records, nil
}

// Parse reads a Latin-1 census export. The first line holds machine ids and
// is skipped; the second is the header. Repeated header names get ".1", ".2"
// suffixes. When a geography column is present, every record also carries
// lower-cased city and state fields. The city keeps its " city" suffix; Kind
// drops it when extracting keys.
func Parse(r io.Reader) ([]table.Record, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read id line: %w", err)
	}
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	names := MangleHeader(header)
	width := len(names)

	geo := -1
	for _, field := range GeographyFields {
		if i := indexOf(names, field); i >= 0 {
			geo = i
			break
		}
	}

	cityAt, stateAt := -1, -1
	if geo >= 0 {
		if cityAt = indexOf(names, CityField); cityAt < 0 {
			cityAt = len(names)
			names = append(names, CityField)
		}
		if stateAt = indexOf(names, StateField); stateAt < 0 {
			stateAt = len(names)
			names = append(names, StateField)
		}
	}

	schema, err := table.NewSchema(names...)
	if err != nil {
		return nil, err
	}

	var records []table.Record
	for line := 3; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		values := make([]any, len(names))
		for i := range width {
			if i < len(row) {
				values[i] = row[i]
			} else {
				values[i] = ""
			}
		}
		if geo >= 0 {
			city, state := SplitGeography(values[geo].(string))
			values[cityAt] = city
			values[stateAt] = state
		}
		records = append(records, schema.Record(values...))
	}
	return records, nil
}

// MangleHeader renames repeated names the way spreadsheet tools do:
// "Geography", "Geography.1", "Geography.2".
func MangleHeader(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]struct{}, len(header))
	for _, h := range header {
		taken[h] = struct{}{}
	}
	for i, h := range header {
		n, dup := seen[h]
		seen[h] = n + 1
		if !dup {
			out[i] = h
			continue
		}
		name := h + "." + strconv.Itoa(n)
		for {
			if _, clash := taken[name]; !clash {
				break
			}
			n++
			seen[h] = n + 1
			name = h + "." + strconv.Itoa(n)
		}
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}

// SplitGeography parses "Sunnyvale city, California" into ("sunnyvale city", "california").
// The "State - City" form is accepted too. Unparseable values give empty strings.
func SplitGeography(s string) (city, state string) {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.LastIndex(s, ", "); i >= 0 {
		city, state = s[:i], s[i+2:]
	} else if parts := strings.Split(s, " - "); len(parts) >= 2 {
		city, state = parts[len(parts)-1], parts[len(parts)-2]
	} else {
		return "", ""
	}
	return table.NormalizeName(city), table.NormalizeRegion(state)
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
