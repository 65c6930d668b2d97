package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"os"

	"city-comparison/core/table"
	"city-comparison/core/utils"
)

// EncodeCSV writes a header row of fields followed by one row per record.
// Values are rendered with utils.ToString; absent fields are empty.
func EncodeCSV(w io.Writer, fields []string, rows iter.Seq[table.Record]) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return 0, err
	}

	n := 0
	line := make([]string, len(fields))
	for r := range rows {
		for i, f := range fields {
			line[i] = utils.ToString(r.Get(f))
		}
		if err := cw.Write(line); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}

// CSVFile writes rows to a local CSV file.
type CSVFile struct {
	Path string
}

// Name implements Sink.
func (s *CSVFile) Name() string { return "csv:" + s.Path }

// Write implements Sink. The file is not created for an empty sequence.
func (s *CSVFile) Write(ctx context.Context, fields []string, rows iter.Seq[table.Record]) (int, error) {
	next, stop := iter.Pull(rows)
	defer stop()

	first, ok := next()
	if !ok {
		return 0, nil
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", s.Path, err)
	}

	all := func(yield func(table.Record) bool) {
		if !yield(first) {
			return
		}
		for {
			r, ok := next()
			if !ok || !yield(r) {
				return
			}
		}
	}

	n, err := EncodeCSV(f, fields, all)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return n, nil
}
