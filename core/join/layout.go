package join

import (
	"fmt"

	"city-comparison/core/table"
	"city-comparison/core/utils"
)

type side int

const (
	leftSide side = iota
	rightSide
	sharedSide
)

type column struct {
	side  side
	field string
	// alt is the right table's name of a shared field.
	alt string
}

// layout is the output schema of one join and how each output field is filled.
type layout struct {
	schema  *table.Schema
	columns []column
	missing any

	// renames maps left fields to their suffixed output names, for table.Derive.
	renames map[string]string
}

// newLayout plans the merged schema: left fields first, then right fields.
// Names present on both sides get each table's suffix. The shared fields
// (sharedLeft on the left, sharedRight on the right) become one column named
// after the left field; sharing applies only when both tables have them.
func newLayout(left, right *table.Table, sharedLeft, sharedRight string, missing any) (*layout, error) {
	leftFields := left.Schema()
	rightFields := right.Schema()
	inLeft := toSet(leftFields)

	_, okLeft := inLeft[sharedLeft]
	_, okRight := toSet(rightFields)[sharedRight]
	if sharedLeft == "" || sharedRight == "" || !okLeft || !okRight {
		sharedLeft, sharedRight = "", ""
	}

	// Right fields that get their own output column.
	var rightOwn []string
	for _, f := range rightFields {
		if sharedRight == "" || f != sharedRight {
			rightOwn = append(rightOwn, f)
		}
	}
	inRight := toSet(rightOwn)

	var collisions []string
	for _, f := range leftFields {
		if _, ok := inRight[f]; ok {
			collisions = append(collisions, f)
		}
	}
	if len(collisions) > 0 && left.Suffix() == right.Suffix() {
		return nil, &table.ConfigurationError{Reason: fmt.Sprintf(
			"%s and %s tables share fields %q but use the same suffix %q",
			left.Kind().Name(), right.Kind().Name(), collisions, left.Suffix())}
	}

	l := &layout{
		columns: make([]column, 0, len(leftFields)+len(rightOwn)),
		missing: missing,
		renames: make(map[string]string),
	}
	names := make([]string, 0, cap(l.columns))

	for _, f := range leftFields {
		c := column{side: leftSide, field: f}
		if sharedLeft != "" && f == sharedLeft {
			c = column{side: sharedSide, field: f, alt: sharedRight}
		}
		name := f
		if _, collides := inRight[f]; collides {
			name = f + left.Suffix()
			l.renames[f] = name
		}
		l.columns = append(l.columns, c)
		names = append(names, name)
	}
	for _, f := range rightOwn {
		name := f
		if _, collides := inLeft[f]; collides {
			name = f + right.Suffix()
		}
		l.columns = append(l.columns, column{side: rightSide, field: f})
		names = append(names, name)
	}

	schema, err := table.NewSchema(names...)
	if err != nil {
		return nil, fmt.Errorf("failed to plan %s/%s join output: %w", left.Kind().Name(), right.Kind().Name(), err)
	}
	l.schema = schema
	return l, nil
}

// merge builds one output record. Either side may be nil for unmatched rows.
func (l *layout) merge(left, right *table.Record) table.Record {
	values := make([]any, len(l.columns))
	for i, c := range l.columns {
		var (
			v  any
			ok bool
		)
		switch c.side {
		case leftSide:
			if left != nil {
				v, ok = left.Lookup(c.field)
			}
		case rightSide:
			if right != nil {
				v, ok = right.Lookup(c.field)
			}
		case sharedSide:
			if left != nil {
				v, ok = left.Lookup(c.field)
			}
			if (!ok || utils.IsMissing(v)) && right != nil {
				v, ok = right.Lookup(c.alt)
			}
		}
		if !ok || utils.IsMissing(v) {
			v = l.missing
		}
		values[i] = v
	}
	return l.schema.Record(values...)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
