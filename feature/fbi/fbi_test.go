package fbi

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"city-comparison/core/loader"
	"city-comparison/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offensesJSON = `{
  "0": {"state": "CALIFORNIA", "city": "Sunnyvale4", "population": 153389, "Violent\ncrime": 199},
  "1": {"state": "NEVADA", "city": "Reno", "population": null},
  "reno": {"xls_dict_row": {"State": "NEVADA", "City": "Reno", "Population": 250000, "Property crime": 7000}, "population": 249000}
}`

const offensesCSV = "Table 8,,,,,\n" +
	"Offenses Known to Law Enforcement,,,,,\n" +
	"by State by City, 2017,,,,\n" +
	"State,City,Population,\"Violent\ncrime\",,\n" +
	"ALABAMA3,Abbeville,\"2,650\",10,,\n" +
	",Adamsville,\"4,409\",29,,\n" +
	"ALASKA,Anchorage4,\"296,188\",\"3,581\",,\n" +
	"\"1 The figures shown\",,,,,\n"

func TestParseJSON(t *testing.T) {
	records, err := ParseJSON(strings.NewReader(offensesJSON))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"index", "state", "city", "population", "violent crime"}, records[0].Names())
	assert.Equal(t, "0", records[0].Get(IndexField))
	assert.Equal(t, "california", records[0].Get(StateField))
	assert.Equal(t, "sunnyvale", records[0].Get(CityField))
	assert.Equal(t, 153389.0, records[0].Get(PopulationField))

	assert.Nil(t, records[1].Get(PopulationField))

	nested := records[2]
	assert.Equal(t, []string{"index", "population", "state", "city", "property crime"}, nested.Names())
	assert.Equal(t, 249000.0, nested.Get(PopulationField))
	assert.Equal(t, "reno", nested.Get(CityField))

	tbl, err := table.New(context.Background(), Kind, table.WithRecords(records))
	require.NoError(t, err)
	key, err := tbl.FuzzyKey(1)
	require.NoError(t, err)
	assert.Equal(t, table.FuzzyKey{Region: "nevada", Name: "reno", Magnitude: 0}, key)
}

func TestParseJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Array", `[1, 2]`},
		{"RowNotObject", `{"0": 5}`},
		{"Truncated", `{"0": {"city": "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tt.in))
			assert.Error(t, err)
		})
	}

	records, err := ParseJSON(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(offensesCSV), 3)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"index", "state", "city", "population", "violent crime"}, records[0].Names())

	assert.Equal(t, "alabama", records[0].Get(StateField))
	assert.Equal(t, "abbeville", records[0].Get(CityField))
	assert.Equal(t, "alabama_abbeville", records[0].Get(IndexField))

	// State propagates down blank rows.
	assert.Equal(t, "alabama", records[1].Get(StateField))
	assert.Equal(t, "alabama_adamsville", records[1].Get(IndexField))

	assert.Equal(t, "anchorage", records[2].Get(CityField))
	assert.Equal(t, "3,581", records[2].Get("violent crime"))

	tbl, err := table.New(context.Background(), Kind, table.WithRecords(records))
	require.NoError(t, err)
	key, err := tbl.FuzzyKey(2)
	require.NoError(t, err)
	assert.Equal(t, 296188.0, key.Magnitude)
}

func TestParseCSV_MissingColumns(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("Town,Population\nx,1\n"), 0)
	assert.ErrorContains(t, err, "lacks")

	records, err := ParseCSV(strings.NewReader("title\n"), 3)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "new york", CleanName(" NEW YORK7 "))
	assert.Equal(t, "abilene", CleanName("Abilene3"))
	assert.Equal(t, "", CleanName("12"))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "murder and nonnegligent manslaughter", NormalizeHeader("Murder and\nnonnegligent\nmanslaughter"))
	assert.Equal(t, "rape1", NormalizeHeader("Rape1\r\n"))
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "offenses.json")
	csvPath := filepath.Join(dir, "offenses.CSV")
	require.NoError(t, os.WriteFile(jsonPath, []byte(offensesJSON), 0o644))
	require.NoError(t, os.WriteFile(csvPath, []byte(offensesCSV), 0o644))

	l := NewLoader(loader.FileOpener())
	ctx := context.Background()

	records, err := l.Load(ctx, jsonPath)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	records, err = l.Load(ctx, csvPath)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = l.Load(ctx, filepath.Join(dir, "offenses.xls"))
	var cfgErr *table.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
