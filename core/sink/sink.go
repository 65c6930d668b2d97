package sink

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"city-comparison/core/table"
)

// Sink accepts an ordered record sequence with a stable field list.
// A sink writes nothing for an empty sequence.
type Sink interface {
	// Name identifies the sink in logs and errors.
	Name() string
	// Write stores the rows and returns how many were written.
	Write(ctx context.Context, fields []string, rows iter.Seq[table.Record]) (int, error)
}

// Result is the outcome of one sink in Publish.
type Result struct {
	Sink string
	Rows int
	Err  error
}

// Publish writes t to every sink. All sinks run even when one fails; the
// returned error joins the failures.
func Publish(ctx context.Context, t *table.Table, sinks ...Sink) ([]Result, error) {
	fields := t.Schema()
	results := make([]Result, 0, len(sinks))
	var errs []error
	for _, s := range sinks {
		n, err := s.Write(ctx, fields, t.Rows())
		if err != nil {
			err = fmt.Errorf("%s: %w", s.Name(), err)
			errs = append(errs, err)
		}
		results = append(results, Result{Sink: s.Name(), Rows: n, Err: err})
	}
	return results, errors.Join(errs...)
}
