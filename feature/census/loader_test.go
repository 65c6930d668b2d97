package census

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"city-comparison/core/join"
	"city-comparison/core/loader"
	"city-comparison/core/table"
	"city-comparison/feature/fbi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Latin-1 encoded, like the census.gov downloads.
const estimates2017 = "GEO.id,GEO.id2,GEO.display-label,GC_RANK.target-geo-id,GC_RANK.target-geo-id2,GC_RANK.rank-label,GC_RANK.display-label,GC_RANK.display-label,respop72010,respop72017\n" +
	"Id,Id2,Geography,Target Geo Id,Target Geo Id2,Rank,Geography,Geography,Population Estimate (as of July 1) - 2010,Population Estimate (as of July 1) - 2017\n" +
	"0100000US,,United States,1620000US0677000,0677000,1,United States - California,\"Sunnyvale city, California\",140450,\"153,656\"\n" +
	"0100000US,,United States,1620000US0811810,0811810,2,United States - Colorado,\"Ca\xf1on City city, Colorado\",16420,16500\n"

const geography2010 = "GEO.id,GEO.id2,GEO.display-label,GCT_STUB.target-geo-id,GCT_STUB.target-geo-id2,GCT_STUB.display-label,GCT_STUB.display-label,HD01,HD02\n" +
	"Id,Id2,Geography,Target Geo Id,Target Geo Id2,Geographic area,Geographic area,Population,Housing units\n" +
	"0100000US,,United States,1620000US0677000,0677000,United States - California,California - Sunnyvale city,140081,55791\n"

func TestParse_Estimates(t *testing.T) {
	records, err := Parse(strings.NewReader(estimates2017))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{
		"Id", "Id2", "Geography", "Target Geo Id", "Target Geo Id2", "Rank",
		"Geography.1", "Geography.2",
		"Population Estimate (as of July 1) - 2010", "Population Estimate (as of July 1) - 2017",
		"city", "state",
	}, records[0].Names())

	assert.Equal(t, "0677000", records[0].Get(GeoIDField))
	assert.Equal(t, "sunnyvale city", records[0].Get(CityField))
	assert.Equal(t, "california", records[0].Get(StateField))
	assert.Equal(t, "cañon city city", records[1].Get(CityField))

	tbl, err := table.New(context.Background(), Kind, table.WithRecords(records))
	require.NoError(t, err)
	key, err := tbl.FuzzyKey(0)
	require.NoError(t, err)
	assert.Equal(t, table.FuzzyKey{Region: "california", Name: "sunnyvale", Magnitude: 153656}, key)
}

func TestParse_Geography2010(t *testing.T) {
	records, err := Parse(strings.NewReader(geography2010))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "sunnyvale city", records[0].Get(CityField))
	assert.Equal(t, "california", records[0].Get(StateField))

	tbl, err := table.New(context.Background(), Kind2010, table.WithRecords(records))
	require.NoError(t, err)
	key, err := tbl.FuzzyKey(0)
	require.NoError(t, err)
	assert.Equal(t, 140081.0, key.Magnitude)

	// The estimates kind needs a 2017 population column.
	_, err = table.New(context.Background(), Kind, table.WithRecords(records))
	var missing *table.MissingFieldError
	assert.ErrorAs(t, err, &missing)
}

func TestParse_Edges(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		records, err := Parse(strings.NewReader(""))
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("HeaderOnly", func(t *testing.T) {
		records, err := Parse(strings.NewReader("a,b\nx,y\n"))
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ShortRowsArePadded", func(t *testing.T) {
		records, err := Parse(strings.NewReader("ids\nTarget Geo Id2,Geography.2,Extra\n1,\"Reno city, Nevada\"\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "", records[0].Get("Extra"))
		assert.Equal(t, "reno city", records[0].Get(CityField))
	})

	t.Run("NoGeography", func(t *testing.T) {
		records, err := Parse(strings.NewReader("ids\nTarget Geo Id2,Population\n1,10\n"))
		require.NoError(t, err)
		require.Len(t, records, 1)
		_, ok := records[0].Lookup(CityField)
		assert.False(t, ok)
	})
}

func TestMangleHeader(t *testing.T) {
	assert.Equal(t,
		[]string{"Geography", "Id", "Geography.1", "Geography.2"},
		MangleHeader([]string{"Geography", "Id", "Geography", "Geography"}))
	assert.Equal(t,
		[]string{"a", "a.1", "a.2"},
		MangleHeader([]string{"a", "a.1", "a"}))
}

func TestSplitGeography(t *testing.T) {
	tests := []struct {
		in          string
		city, state string
	}{
		{"Sunnyvale city, California", "sunnyvale city", "california"},
		{"Carson City, Nevada", "carson city", "nevada"},
		{"Lake City city, Florida", "lake city city", "florida"},
		{"Honolulu, Hawaii", "honolulu", "hawaii"},
		{"California - Sunnyvale city", "sunnyvale city", "california"},
		{"United States", "", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			city, state := SplitGeography(tt.in)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.state, state)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estimates.csv")
	require.NoError(t, os.WriteFile(path, []byte(estimates2017), 0o644))

	l := NewLoader(loader.FileOpener())
	tbl, err := table.New(context.Background(), Kind, table.WithLoader(l, path))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	_, err = l.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestParse_CityNamedCityJoinsCrime(t *testing.T) {
	const florida = "ids\n" +
		"Target Geo Id2,Geography.2,Population Estimate (as of July 1) - 2017\n" +
		"1238250,\"Lake City city, Florida\",12000\n" +
		"1238200,\"Lake Butler city, Florida\",1900\n"

	records, err := Parse(strings.NewReader(florida))
	require.NoError(t, err)
	estimates, err := table.New(context.Background(), Kind, table.WithRecords(records))
	require.NoError(t, err)

	assert.Equal(t, "lake city city", estimates.Record(0).Get(CityField))
	key, err := estimates.FuzzyKey(0)
	require.NoError(t, err)
	assert.Equal(t, table.FuzzyKey{Region: "florida", Name: "lake city", Magnitude: 12000}, key)

	s := table.MustSchema(fbi.IndexField, fbi.StateField, fbi.CityField, fbi.PopulationField)
	crime, err := table.New(context.Background(), fbi.Kind, table.WithRecords([]table.Record{
		s.Record("florida_lake butler", "florida", "lake butler", 1890),
		s.Record("florida_lake city", "florida", "lake city", 12100),
	}), table.WithSuffix("_fbi_crime"))
	require.NoError(t, err)

	engine, err := join.NewEngine(join.DefaultOptions(), nil)
	require.NoError(t, err)
	out, err := engine.Join(estimates, crime)
	require.NoError(t, err)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "lake butler", out.Record(0).Get("city_fbi_crime"))
	assert.Equal(t, "lake city", out.Record(1).Get("city_fbi_crime"))
}
