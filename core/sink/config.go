package sink

// Config holds configuration for publishing the combined table.
type Config struct {
	// CSVPath is the local CSV written by every run.
	CSVPath string `mapstructure:"csv_path" default:"city_comparison.csv"`
	// Upload also stores the CSV in the storage bucket.
	Upload bool `mapstructure:"upload" default:"false"`
	// ObjectPrefix is prepended to uploaded object names.
	ObjectPrefix string `mapstructure:"object_prefix" default:"results/"`
	// DBTable writes the rows to this database table when set.
	DBTable string `mapstructure:"db_table" default:""`
	// BatchSize is the number of rows per INSERT.
	BatchSize int `mapstructure:"batch_size" default:"500"`
}
