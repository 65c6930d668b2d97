package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"city-comparison/core/config"
	"city-comparison/core/logger"
	"city-comparison/core/storage"
	"city-comparison/feature/comparison"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourceAliases maps command arguments to registered source names.
var sourceAliases = map[string]string{
	"census":                     comparison.SourceCensus2017,
	comparison.SourceCensus2017: comparison.SourceCensus2017,
	comparison.SourceCensus2010: comparison.SourceCensus2010,
	comparison.SourceFBI:        comparison.SourceFBI,
}

// inspectCmd loads one source and reports on its keys.
var inspectCmd = &cobra.Command{
	Use:   "inspect <census|census_2010|fbi> <path>",
	Short: "Report row, schema and key statistics of one source",
	Long: `Load a single source file and report its rows, fields, distinct and duplicate
exact keys, and rows without a population. Duplicate keys are dropped by the
census join, so this is the place to look when a city goes missing.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"census", comparison.SourceCensus2010, comparison.SourceFBI},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		startTime := time.Now()

		name, ok := sourceAliases[strings.ToLower(args[0])]
		if !ok {
			return fmt.Errorf("unknown source %q", args[0])
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		var client storage.Client
		if cfg.Sources.FromStorage {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
		}

		manager, err := newManager(cfg, client, logg)
		if err != nil {
			return err
		}

		t, err := manager.Open(ctx, name, args[1], "")
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
		report, err := comparison.Inspect(t)
		if err != nil {
			return fmt.Errorf("inspection failed: %w", err)
		}

		if jsonOutput {
			filename := fmt.Sprintf("inspect_%s_%d.json", name, time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to save JSON file: %w", err)
			}
			logg.Info("Detailed JSON report saved", zap.String("file", filename))
		}

		executionTime := time.Since(startTime)

		fmt.Printf("\n=== %s ===\n", name)
		fmt.Printf("Rows: %d\n", report.Rows)
		fmt.Printf("Fields: %d\n", len(report.Fields))
		fmt.Printf("Exact Field: %s\n", report.ExactField)
		fmt.Printf("Distinct Keys: %d\n", report.DistinctKeys)
		fmt.Printf("Duplicate Keys: %d\n", len(report.DuplicateKeys))
		fmt.Printf("Missing Population: %d\n", report.MissingMagnitude)
		fmt.Printf("Execution Time: %s\n", executionTime.String())

		// Show a sample of duplicates
		maxShow := min(5, len(report.DuplicateKeys))
		for _, key := range report.DuplicateKeys[:maxShow] {
			logg.Warn("Duplicate exact key", zap.String("key", key))
		}
		if len(report.DuplicateKeys) > maxShow {
			logg.Info("Additional duplicates not shown", zap.Int("count", len(report.DuplicateKeys)-maxShow))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("json", false, "Save the report as JSON")
}
