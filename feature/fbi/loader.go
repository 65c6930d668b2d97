package fbi

import (
	"context"
	"fmt"
	"path"
	"strings"

	"city-comparison/core/loader"
	"city-comparison/core/table"
)

// Loader reads FBI offense tables exported as JSON or CSV. The format is
// chosen by the handle's extension.
type Loader struct {
	open loader.OpenFunc

	// HeaderRow is the zero-based line of the CSV header. The rows above it
	// are the table title.
	HeaderRow int
}

// NewLoader creates an FBI loader reading through open.
func NewLoader(open loader.OpenFunc) *Loader {
	return &Loader{open: open, HeaderRow: 3}
}

// Load implements table.Loader.
func (l *Loader) Load(ctx context.Context, handle string) ([]table.Record, error) {
	ext := strings.ToLower(path.Ext(handle))
	if ext != ".json" && ext != ".csv" {
		return nil, &table.ConfigurationError{Reason: fmt.Sprintf("unsupported fbi file type %q", ext)}
	}

	rc, err := l.open(ctx, handle)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var records []table.Record
	if ext == ".json" {
		records, err = ParseJSON(rc)
	} else {
		records, err = ParseCSV(rc, l.HeaderRow)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse fbi file %s: %w", handle, err)
	}
	return records, nil
}
