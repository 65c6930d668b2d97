package loader

import "time"

// Config holds the locations of the source datasets.
type Config struct {
	// Census2017Path is the census population estimates CSV.
	Census2017Path string `mapstructure:"census_2017_path" default:"data/census/PEP_2017_PEPANNRSIP.US12A_with_ann.csv"`
	// Census2010Path is the census 2010 geography CSV.
	Census2010Path string `mapstructure:"census_2010_path" default:"data/census/DEC_10_SF1_GCTPH1.US13PR_with_ann.csv"`
	// FBIPath is the FBI offenses table, as JSON or CSV.
	FBIPath string `mapstructure:"fbi_path" default:"data/fbi/fbi_cities_crime_2017.json"`
	// FromStorage reads the paths above as object names in the storage bucket.
	FromStorage bool `mapstructure:"from_storage" default:"false"`
	// CacheTTLSeconds keeps loaded sources in memory. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

// CacheTTL returns the cache lifetime.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
