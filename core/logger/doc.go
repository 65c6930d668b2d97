// Package logger provides a structured logging facility based on Zap.
//
// It builds a configured logger for development (debug level, console output)
// or production (json output) use.
//
// # Run correlation
//
// Every pipeline run gets a run id. WithRun attaches it to a logger so that
// all entries written while loading, joining and publishing one comparison can
// be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log = logger.WithRun(log, uuid.NewString())
//	log.Info("Comparison started")
package logger
