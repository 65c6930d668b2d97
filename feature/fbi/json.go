package fbi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"city-comparison/core/table"
)

// ParseJSON reads an object keyed by row index whose values are row objects.
// Rows keep the file order and gain an "index" field holding their key.
// Fields of nested objects are lifted into the row unless the row already has
// them. Names go through NormalizeHeader; city and state through CleanName.
func ParseJSON(r io.Reader) ([]table.Record, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected an object of rows, got %v", tok)
	}

	var records []table.Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		index, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected a row key, got %v", tok)
		}

		fields := []table.Field{table.F(IndexField, index)}
		seen := map[string]struct{}{IndexField: {}}
		if err := decodeRow(dec, &fields, seen); err != nil {
			return nil, fmt.Errorf("row %q: %w", index, err)
		}
		records = append(records, table.NewRecord(cleanFields(fields)...))
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return records, nil
}

// decodeRow appends the members of the next object in dec, in order.
func decodeRow(dec *json.Decoder, fields *[]table.Field, seen map[string]struct{}) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a row object, got %v", tok)
	}

	var nested []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := NormalizeHeader(tok.(string))

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if len(raw) > 0 && raw[0] == '{' {
			nested = append(nested, raw)
			continue
		}

		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		*fields = append(*fields, table.F(name, value))
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	for _, raw := range nested {
		if err := decodeRow(json.NewDecoder(bytes.NewReader(raw)), fields, seen); err != nil {
			return err
		}
	}
	return nil
}

func cleanFields(fields []table.Field) []table.Field {
	for i, f := range fields {
		if f.Name != CityField && f.Name != StateField {
			continue
		}
		if s, ok := f.Value.(string); ok {
			fields[i].Value = CleanName(s)
		}
	}
	return fields
}
