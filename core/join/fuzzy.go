package join

import (
	"fmt"
	"slices"

	"city-comparison/core/table"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type keyedRow struct {
	key    table.FuzzyKey
	record table.Record
}

// sortedByFuzzyKey extracts every fuzzy key and stable-sorts a copy of the rows.
func sortedByFuzzyKey(t *table.Table) ([]keyedRow, error) {
	rows := make([]keyedRow, t.Len())
	for i := range t.Len() {
		key, err := t.FuzzyKey(i)
		if err != nil {
			return nil, fmt.Errorf("failed to extract fuzzy key of %s row %d: %w", t.Kind().Name(), i, err)
		}
		rows[i] = keyedRow{key: key, record: t.Record(i)}
	}
	slices.SortStableFunc(rows, func(a, b keyedRow) int {
		return Order(a.key, b.key)
	})
	return rows, nil
}

// FuzzyJoin joins two tables with a sort-merge walk over their fuzzy keys.
// Each matched pair consumes one row from each side.
func (e *Engine) FuzzyJoin(left, right *table.Table) (*table.Table, error) {
	if left == nil || right == nil {
		return nil, &table.ConfigurationError{Reason: "fuzzy join needs two tables"}
	}

	plan, err := newLayout(left, right, "", "", e.opts.Missing)
	if err != nil {
		return nil, err
	}

	// The sorts are independent; the walk below is not.
	var a, b []keyedRow
	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = sortedByFuzzyKey(left)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = sortedByFuzzyKey(right)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	outer := e.opts.FuzzyMode == Outer
	out := make([]table.Record, 0, max(len(a), len(b)))
	matched := 0

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ord, err := e.comparator.Compare(a[i].key, b[j].key)
		if err != nil {
			return nil, fmt.Errorf("fuzzy join of %s and %s: %w", left.Kind().Name(), right.Kind().Name(), err)
		}
		switch ord {
		case Less:
			if outer {
				out = append(out, plan.merge(&a[i].record, nil))
			}
			i++
		case Greater:
			if outer {
				out = append(out, plan.merge(nil, &b[j].record))
			}
			j++
		default:
			out = append(out, plan.merge(&a[i].record, &b[j].record))
			matched++
			i++
			j++
		}
	}
	if outer {
		for ; i < len(a); i++ {
			out = append(out, plan.merge(&a[i].record, nil))
		}
		for ; j < len(b); j++ {
			out = append(out, plan.merge(nil, &b[j].record))
		}
	}

	e.logger.Debug("Fuzzy join complete",
		zap.String("left", left.Kind().Name()),
		zap.String("right", right.Kind().Name()),
		zap.String("mode", string(e.opts.FuzzyMode)),
		zap.Int("left_rows", len(a)),
		zap.Int("right_rows", len(b)),
		zap.Int("matched", matched),
		zap.Int("rows", len(out)),
	)

	return table.Derive(left, out, plan.renames), nil
}
