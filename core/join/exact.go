package join

import (
	"fmt"

	"city-comparison/core/table"
	"city-comparison/core/utils"

	"go.uber.org/zap"
)

// keyEntry is one row taking part in an exact join. Blank rows have a
// missing key: they never match and are never deduplicated.
type keyEntry struct {
	key   string
	row   int
	blank bool
}

// keyIndex is the first row of each distinct exact key plus every blank-key
// row, in table order.
type keyIndex struct {
	order []keyEntry
	rows  map[string]int
}

// blankKey reports whether an exact key is absent: nil, NaN, or the value the
// engine writes for missing fields.
func (e *Engine) blankKey(raw any) bool {
	if utils.IsMissing(raw) {
		return true
	}
	return utils.ToString(raw) == utils.ToString(e.opts.Missing)
}

func (e *Engine) indexExact(t *table.Table) (*keyIndex, error) {
	idx := &keyIndex{
		order: make([]keyEntry, 0, t.Len()),
		rows:  make(map[string]int, t.Len()),
	}
	for i := range t.Len() {
		raw, err := t.ExactKey(i)
		if err != nil {
			return nil, fmt.Errorf("failed to extract exact key of %s row %d: %w", t.Kind().Name(), i, err)
		}
		if t.ExactField() != "" && e.blankKey(raw) {
			idx.order = append(idx.order, keyEntry{row: i, blank: true})
			continue
		}
		key := utils.ToString(raw)
		if first, dup := idx.rows[key]; dup {
			e.logger.Warn("Dropping duplicate exact key",
				zap.String("kind", t.Kind().Name()),
				zap.String("key", key),
				zap.Int("row", i),
				zap.Int("first_row", first),
			)
			continue
		}
		idx.rows[key] = i
		idx.order = append(idx.order, keyEntry{key: key, row: i})
	}
	return idx, nil
}

// ExactJoin joins two tables on their exact keys. Every distinct key appears
// at most once in the output: left keys in left order, then (outer mode) the
// right-only keys in right order. Rows with a blank key never match; outer
// mode emits each of them unchanged.
func (e *Engine) ExactJoin(left, right *table.Table) (*table.Table, error) {
	if left == nil || right == nil {
		return nil, &table.ConfigurationError{Reason: "exact join needs two tables"}
	}

	leftIdx, err := e.indexExact(left)
	if err != nil {
		return nil, err
	}
	rightIdx, err := e.indexExact(right)
	if err != nil {
		return nil, err
	}

	// The key columns merge even when an earlier join renamed one of them.
	plan, err := newLayout(left, right, left.ExactField(), right.ExactField(), e.opts.Missing)
	if err != nil {
		return nil, err
	}

	mode := e.opts.ExactMode
	out := make([]table.Record, 0, len(leftIdx.order)+len(rightIdx.order))
	matched := 0

	for _, entry := range leftIdx.order {
		l := left.Record(entry.row)
		if j, ok := rightIdx.rows[entry.key]; ok && !entry.blank {
			r := right.Record(j)
			out = append(out, plan.merge(&l, &r))
			matched++
			continue
		}
		if mode == Outer {
			out = append(out, plan.merge(&l, nil))
		}
	}
	if mode == Outer {
		for _, entry := range rightIdx.order {
			if _, ok := leftIdx.rows[entry.key]; ok && !entry.blank {
				continue
			}
			r := right.Record(entry.row)
			out = append(out, plan.merge(nil, &r))
		}
	}

	e.logger.Debug("Exact join complete",
		zap.String("left", left.Kind().Name()),
		zap.String("right", right.Kind().Name()),
		zap.String("mode", string(mode)),
		zap.Int("matched", matched),
		zap.Int("rows", len(out)),
	)

	return table.Derive(left, out, plan.renames), nil
}
