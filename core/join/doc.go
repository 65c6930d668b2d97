// Package join implements the two-table join engine.
//
// Two strategies are provided and Engine.Join picks between them from the
// table kinds alone; callers never choose:
//
//   - Exact join: both tables share a kind, so their exact keys live in the same
//     identifier space. Rows are matched by key. Outer by default.
//   - Fuzzy join: the kinds differ. Both tables are sorted by their fuzzy key
//     (region, name, magnitude) and merged with two cursors. Inner by default.
//
// # Fuzzy matching
//
// Comparator.Compare decides whether two fuzzy keys describe the same entity.
// Regions must be identical. Names match when equal, or when one is a prefix
// of the other and the relative magnitude discrepancy |m1-m2|/max(1,m2) is at
// or below the threshold. A prefix pair above the threshold is either ordered
// by name with a warning (default) or rejected with an AmbiguousMatchError
// (StrictMatching).
//
// # Output
//
// Results are new tables of the left operand's kind (see table.Derive), so
// joins can be chained. Field names present on both sides get each table's
// suffix; the shared exact key field of an exact join appears once. Absent and
// null values are replaced by a single sentinel (Options.Missing).
//
// # Usage
//
//	engine, err := join.NewEngine(join.DefaultOptions(), log)
//	merged, err := engine.Join(census2017, census2010)
//	merged, err = engine.Join(merged, crime)
package join
