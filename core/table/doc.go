// Package table provides the immutable record tables consumed and produced by
// the join engine.
//
// A Table is an ordered sequence of Records plus two tags:
//   - Suffix: appended to field names that collide with the other side of a join
//   - Kind: identifies the source and supplies the key extractors
//
// # Kinds
//
// A Kind exposes two pure extractors. ExactKey returns a stable source-supplied
// identifier (or the record's position when the kind declares none). FuzzyKey
// returns a normalized (region, name, magnitude) composite used when two
// sources share no identifier space. Descriptor implements Kind from plain
// field names and covers every source shipped with this module.
//
// # Construction
//
//	t, err := table.New(ctx, census.Kind,
//	    table.WithLoader(census.NewLoader(loader.FileOpener()), "data/census.csv"),
//	    table.WithSuffix("_census"),
//	)
//
// Exactly one of WithRecords or WithLoader must be given. New checks that every
// record exposes the fields the kind declares and fails with a
// MissingFieldError otherwise.
//
// # Derived tables
//
// Joins, Rename and Drop never modify a table. They return a new one whose
// alias map keeps the kind's declared fields reachable even after they were
// suffixed or renamed.
package table
