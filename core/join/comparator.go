package join

import (
	"cmp"
	"math"
	"strings"

	"city-comparison/core/table"

	"go.uber.org/zap"
)

// Ordering is the result of comparing two fuzzy keys.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	}
	return "UNKNOWN"
}

// Comparator orders fuzzy keys and decides whether two keys name the same entity.
type Comparator struct {
	// Threshold is the accepted relative magnitude discrepancy for prefix matches.
	Threshold float64
	// Strict turns a rejected prefix candidate into an AmbiguousMatchError.
	Strict bool
	// Logger receives a warning for every rejected prefix candidate. May be nil.
	Logger *zap.Logger
}

// NewComparator returns a comparator in graceful mode.
func NewComparator(threshold float64, logger *zap.Logger) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{Threshold: threshold, Logger: logger}
}

// Compare returns Equal when a and b are considered the same entity and
// otherwise their relative order. The only error is AmbiguousMatchError, in
// strict mode.
func (c *Comparator) Compare(a, b table.FuzzyKey) (Ordering, error) {
	if r := cmp.Compare(a.Region, b.Region); r != 0 {
		return Ordering(r), nil
	}
	if a.Name == b.Name {
		return Equal, nil
	}

	byName := Ordering(cmp.Compare(a.Name, b.Name))
	if !strings.HasPrefix(a.Name, b.Name) && !strings.HasPrefix(b.Name, a.Name) {
		return byName, nil
	}

	d := Discrepancy(a.Magnitude, b.Magnitude)
	if d <= c.Threshold {
		return Equal, nil
	}

	if c.Strict {
		return byName, &AmbiguousMatchError{Left: a, Right: b, Discrepancy: d, Threshold: c.Threshold}
	}
	if c.Logger != nil {
		c.Logger.Warn("Rejected fuzzy candidate match",
			zap.Stringer("left", a),
			zap.Stringer("right", b),
			zap.Float64("discrepancy", d),
			zap.Float64("threshold", c.Threshold),
		)
	}
	return byName, nil
}

// Order is the strict total order (region, name, magnitude) used to sort
// tables before a merge. It agrees with every non-Equal result of Compare.
func Order(a, b table.FuzzyKey) int {
	if r := cmp.Compare(a.Region, b.Region); r != 0 {
		return r
	}
	if r := cmp.Compare(a.Name, b.Name); r != 0 {
		return r
	}
	return cmp.Compare(a.Magnitude, b.Magnitude)
}

// Discrepancy is |m1-m2| / max(1, m2).
func Discrepancy(m1, m2 float64) float64 {
	return math.Abs(m1-m2) / math.Max(1, m2)
}
