// Package config provides configuration management for city-comparison.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file. Defaults come from the `default` struct tags of each
// section.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Log: logging level and format
//   - Join: match threshold, strictness, join modes and missing-value sentinel
//   - Sources: dataset paths and cache TTL
//   - Output: CSV path, upload and database table sinks
//   - Storage: S3/MinIO credentials and bucket settings
//   - Database: sqlite or MySQL connection details
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Join.Threshold)
package config
