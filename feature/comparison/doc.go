// Package comparison assembles the city comparison table.
//
// Three sources are registered with a loader.Manager:
//   - census_2017: population estimates (census.Kind)
//   - census_2010: decennial geography and area (census.Kind2010)
//   - fbi: offenses known to law enforcement (fbi.Kind)
//
// Build cleans both census tables with their header profiles, joins them on
// the geography id, joins the result with the FBI table on the fuzzy
// (state, city, population) key and applies the final_csv profile.
//
// Inspect summarizes a single source for the inspect command.
package comparison
