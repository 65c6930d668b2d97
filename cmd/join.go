package cmd

import (
	"fmt"

	"city-comparison/core/config"
	"city-comparison/core/database"
	"city-comparison/core/join"
	"city-comparison/core/loader"
	"city-comparison/core/logger"
	"city-comparison/core/sink"
	"city-comparison/core/storage"
	"city-comparison/feature/comparison"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the join command. Each one overrides its config key when set.
	strictFlag    bool
	exactModeFlag string
	fuzzyModeFlag string
	outputFlag    string
	uploadFlag    bool
	dbTableFlag   string
)

// joinCmd builds the comparison table and publishes it.
var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Build the city comparison table",
	Long: `Load the census 2017 estimates, the census 2010 geography table and the FBI
offenses table, join them and write the result.

The census tables are joined on the geography id. The result is joined with
the FBI table on (state, city, population): names match exactly, or by prefix
when the populations differ by at most the configured threshold.

Examples:
  # Write city_comparison.csv
  join

  # Fail on the first ambiguous prefix match
  join --strict

  # Keep cities without crime data and also upload the CSV
  join --fuzzy-mode outer --upload

  # Also write the rows to a database table
  join --db-table city_comparison`,
	RunE: runJoin,
}

func init() {
	joinCmd.Flags().BoolVar(&strictFlag, "strict", false, "Abort on the first rejected prefix match")
	joinCmd.Flags().StringVar(&exactModeFlag, "exact-mode", "", "Mode of the census join (inner, outer)")
	joinCmd.Flags().StringVar(&fuzzyModeFlag, "fuzzy-mode", "", "Mode of the crime join (inner, outer)")
	joinCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Path of the CSV output")
	joinCmd.Flags().BoolVar(&uploadFlag, "upload", false, "Upload the CSV to the storage bucket")
	joinCmd.Flags().StringVar(&dbTableFlag, "db-table", "", "Also write the rows to this database table")

	RootCmd.AddCommand(joinCmd)
}

// applyJoinFlags copies the flags the user set onto the loaded configuration.
func applyJoinFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Join.StrictMatching = strictFlag
	}
	if flags.Changed("exact-mode") {
		cfg.Join.ExactMode = exactModeFlag
	}
	if flags.Changed("fuzzy-mode") {
		cfg.Join.FuzzyMode = fuzzyModeFlag
	}
	if flags.Changed("output") {
		cfg.Output.CSVPath = outputFlag
	}
	if flags.Changed("upload") {
		cfg.Output.Upload = uploadFlag
	}
	if flags.Changed("db-table") {
		cfg.Output.DBTable = dbTableFlag
	}
}

func runJoin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyJoinFlags(cmd, cfg)

	// Initialize logger
	runID := uuid.NewString()
	base, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	l := logger.WithRun(base, runID)
	defer func() { _ = l.Sync() }()

	opts, err := cfg.Join.Options()
	if err != nil {
		return fmt.Errorf("invalid join configuration: %w", err)
	}
	engine, err := join.NewEngine(opts, l)
	if err != nil {
		return fmt.Errorf("failed to create join engine: %w", err)
	}

	// Connect to storage only when something reads or writes the bucket
	var client storage.Client
	if cfg.Sources.FromStorage || cfg.Output.Upload {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	manager, err := newManager(cfg, client, l)
	if err != nil {
		return err
	}
	svc := comparison.NewService(manager, engine, cfg.Sources, l)

	l.Info("Starting city comparison",
		zap.Bool("strict", opts.StrictMatching),
		zap.String("exact_mode", string(opts.ExactMode)),
		zap.String("fuzzy_mode", string(opts.FuzzyMode)),
		zap.Float64("threshold", opts.Threshold),
	)

	// Step 1: Build the joined table
	l.Info("Joining sources...")
	out, err := svc.Build(ctx)
	if err != nil {
		return fmt.Errorf("failed to build comparison: %w", err)
	}
	if out.Len() == 0 {
		l.Warn("Comparison table is empty. Nothing was written.")
		return nil
	}

	// Step 2: Select sinks
	sinks := []sink.Sink{&sink.CSVFile{Path: cfg.Output.CSVPath}}
	if cfg.Output.Upload {
		sinks = append(sinks, &sink.Object{
			Client:     client,
			Bucket:     cfg.Storage.Bucket,
			Region:     cfg.Storage.Region,
			ObjectName: cfg.Output.ObjectPrefix + runID + ".csv",
		})
	}
	if cfg.Output.DBTable != "" {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		sinks = append(sinks, &sink.Table{
			DB:        db,
			TableName: cfg.Output.DBTable,
			BatchSize: cfg.Output.BatchSize,
		})
	}

	// Step 3: Publish
	l.Info("Writing results...", zap.Int("rows", out.Len()), zap.Int("sinks", len(sinks)))
	results, err := sink.Publish(ctx, out, sinks...)
	for _, r := range results {
		if r.Err != nil {
			l.Error("Sink failed", zap.String("sink", r.Sink), zap.Error(r.Err))
			continue
		}
		l.Info("Sink written", zap.String("sink", r.Sink), zap.Int("rows", r.Rows))
	}
	if err != nil {
		return fmt.Errorf("failed to publish results: %w", err)
	}

	l.Info("City comparison completed", zap.Int("rows", out.Len()), zap.Int("fields", len(out.Schema())))
	return nil
}

// newManager registers the datasets, read from local files or from the bucket.
func newManager(cfg *config.Config, client storage.Client, l *zap.Logger) (*loader.Manager, error) {
	manager := loader.NewManager(cfg.Sources.CacheTTL(), l)
	open := loader.NewOpener(cfg.Sources, client, cfg.Storage.Bucket)
	if err := comparison.RegisterSources(manager, open); err != nil {
		return nil, fmt.Errorf("failed to register sources: %w", err)
	}
	return manager, nil
}
