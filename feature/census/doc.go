// Package census reads census.gov CSV exports into tables.
//
// Census files carry a stable geography id ("Target Geo Id2"), so two census
// tables join exactly. Against other sources they join by (state, city,
// population), with city and state parsed from the geography column.
//
// Two kinds are provided: Kind for the population estimates and Kind2010 for
// the 2010 geography table. Both are named "census".
package census
