package comparison

import (
	"fmt"
	"slices"

	"city-comparison/core/table"
)

// Profile is a header cleanup step: Drop is applied first, then Rename.
type Profile struct {
	Name   string
	Drop   []string
	Rename map[string]string
}

// Census2017 keeps the geography id, the 2010 and 2017 estimates and the
// derived city and state.
var Census2017 = Profile{
	Name: "census_2017",
	Drop: []string{
		"Id", "Id2", "Geography", "Target Geo Id", "Rank",
		"April 1, 2010 - Census",
		"April 1, 2010 - Estimates Base",
		"Population Estimate (as of July 1) - 2011",
		"Population Estimate (as of July 1) - 2012",
		"Population Estimate (as of July 1) - 2013",
		"Population Estimate (as of July 1) - 2014",
		"Population Estimate (as of July 1) - 2015",
		"Population Estimate (as of July 1) - 2016",
	},
	Rename: map[string]string{
		"Population Estimate (as of July 1) - 2010": "population census_2010",
		"Population Estimate (as of July 1) - 2017": "population census_2017",
	},
}

// Census2010 keeps the geography id and the area columns.
var Census2010 = Profile{
	Name: "census_2010",
	Drop: []string{
		"Id", "Id2", "Geography", "Housing units", "Population",
		"Target Geo Id", "Geographic area",
		"Density per square mile of land area - Housing units",
		"Density per square mile of land area - Population",
	},
	Rename: map[string]string{
		"Geographic area.1":                 "geography census_2010",
		"Area in square miles - Total area": "total area sqmi census_2010",
		"Area in square miles - Water area": "water area sqmi census_2010",
		"Area in square miles - Land area":  "land area sqmi census_2010",
	},
}

// FinalCSV removes the join keys nobody reads in the published table.
var FinalCSV = Profile{
	Name: "final_csv",
	Drop: []string{"Target Geo Id2", "state_fbi_crime"},
}

// Profiles lists the shipped profiles by name.
var Profiles = map[string]Profile{
	Census2017.Name: Census2017,
	Census2010.Name: Census2010,
	FinalCSV.Name:   FinalCSV,
}

// Apply returns t with p applied. Fields the table lacks are ignored.
func Apply(t *table.Table, p Profile) (*table.Table, error) {
	out := t
	if len(p.Drop) > 0 {
		out = out.Drop(p.Drop...)
	}
	if len(p.Rename) > 0 {
		var err error
		if out, err = out.Rename(p.Rename); err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Name, err)
		}
	}
	return out, nil
}

// ProfileNames returns the shipped profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
