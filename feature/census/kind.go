package census

import "city-comparison/core/table"

const (
	// KindName is shared by every census table so that census tables join by geography id.
	KindName = "census"

	// GeoIDField is the census geography identifier.
	GeoIDField = "Target Geo Id2"

	// Population2017Field is the 2017 population estimate column.
	Population2017Field = "Population Estimate (as of July 1) - 2017"

	// Population2010Field is the 2010 decennial population column.
	Population2010Field = "Population"

	// StateField and CityField are derived from the geography column at load time.
	StateField = "state"
	CityField  = "city"
)

// Kind describes the population estimates tables.
var Kind = table.Descriptor{
	KindName:       KindName,
	ExactField:     GeoIDField,
	RegionField:    StateField,
	NameField:      CityField,
	MagnitudeField: Population2017Field,
	NameSuffixes:   []string{"city"},
}

// Kind2010 describes the 2010 geography tables. It shares the census identity
// and the geography id with Kind but measures the 2010 population.
var Kind2010 = table.Descriptor{
	KindName:       KindName,
	ExactField:     GeoIDField,
	RegionField:    StateField,
	NameField:      CityField,
	MagnitudeField: Population2010Field,
	NameSuffixes:   []string{"city"},
}
