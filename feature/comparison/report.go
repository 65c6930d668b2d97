package comparison

import (
	"slices"

	"city-comparison/core/table"
	"city-comparison/core/utils"
)

// Report summarizes one loaded table.
type Report struct {
	Kind             string   `json:"kind"`
	Rows             int      `json:"rows"`
	Fields           []string `json:"fields"`
	ExactField       string   `json:"exact_field"`
	DistinctKeys     int      `json:"distinct_keys"`
	DuplicateKeys    []string `json:"duplicate_keys"`
	MissingMagnitude int      `json:"missing_magnitude"`
}

// Inspect reports the key health of t: how many exact keys are distinct,
// which repeat (and would be dropped by an exact join), and how many rows
// have no usable magnitude.
func Inspect(t *table.Table) (*Report, error) {
	report := &Report{
		Kind:       t.Kind().Name(),
		Rows:       t.Len(),
		Fields:     t.Schema(),
		ExactField: t.ExactField(),
	}

	seen := make(map[string]int, t.Len())
	for i := range t.Len() {
		key, err := t.ExactKey(i)
		if err != nil {
			return nil, err
		}
		k := utils.ToString(key)
		seen[k]++
		if seen[k] == 2 {
			report.DuplicateKeys = append(report.DuplicateKeys, k)
		}

		fuzzy, err := t.FuzzyKey(i)
		if err != nil {
			return nil, err
		}
		if fuzzy.Magnitude == 0 {
			report.MissingMagnitude++
		}
	}
	report.DistinctKeys = len(seen)
	slices.Sort(report.DuplicateKeys)
	return report, nil
}
