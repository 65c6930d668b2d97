package fbi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"city-comparison/core/table"

	"golang.org/x/text/encoding/charmap"
)

// ParseCSV reads a CSV export of an offenses-by-city table. headerRow is the
// zero-based line holding the column names.
//
// Headers go through NormalizeHeader and unnamed columns are dropped. City and
// state values go through CleanName. The state is only printed on the first
// row of each state, so blank states inherit the previous one. Rows without a
// city (footnotes, totals) are skipped. Each row gets an "index" field of the
// form "<state>_<city>".
func ParseCSV(r io.Reader, headerRow int) ([]table.Record, error) {
	cr := csv.NewReader(charmap.Windows1252.NewDecoder().Reader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var header []string
	for line := 0; line <= headerRow; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		header = row
	}

	// Keep only named columns.
	var (
		keep  []int
		names = []string{IndexField}
	)
	cityAt, stateAt := -1, -1
	for i, h := range header {
		name := NormalizeHeader(h)
		if name == "" || name == IndexField {
			continue
		}
		switch name {
		case CityField:
			cityAt = len(names)
		case StateField:
			stateAt = len(names)
		}
		keep = append(keep, i)
		names = append(names, name)
	}
	if cityAt < 0 || stateAt < 0 {
		return nil, fmt.Errorf("header %q lacks %s or %s column", header, StateField, CityField)
	}

	schema, err := table.NewSchema(names...)
	if err != nil {
		return nil, err
	}

	var (
		records []table.Record
		state   string
	)
	for line := headerRow + 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		values := make([]any, len(names))
		for j, src := range keep {
			v := ""
			if src < len(row) {
				v = row[src]
			}
			values[j+1] = v
		}

		if s := CleanName(values[stateAt].(string)); s != "" {
			state = s
		}
		city := CleanName(values[cityAt].(string))
		if city == "" {
			continue
		}
		values[stateAt] = state
		values[cityAt] = city
		values[0] = state + "_" + city

		records = append(records, schema.Record(values...))
	}
	return records, nil
}
