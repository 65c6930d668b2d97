package fbi

import "city-comparison/core/table"

const (
	// KindName identifies FBI offense tables.
	KindName = "fbi"

	IndexField      = "index"
	StateField      = "state"
	CityField       = "city"
	PopulationField = "population"
)

// Kind describes FBI offense tables. Cities are already cleaned at load time,
// so no name suffix is stripped.
var Kind = table.Descriptor{
	KindName:       KindName,
	ExactField:     IndexField,
	RegionField:    StateField,
	NameField:      CityField,
	MagnitudeField: PopulationField,
}
