package join

import (
	"fmt"

	"city-comparison/core/table"
)

// AmbiguousMatchError is returned in strict mode when two keys share a region
// and a name prefix but their magnitudes disagree beyond the threshold.
type AmbiguousMatchError struct {
	Left        table.FuzzyKey
	Right       table.FuzzyKey
	Discrepancy float64
	Threshold   float64
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match between %s and %s: magnitude discrepancy %.1f%% exceeds %.1f%%",
		e.Left, e.Right, e.Discrepancy*100, e.Threshold*100)
}
