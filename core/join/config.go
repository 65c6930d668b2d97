package join

// Config holds configuration for the join engine.
type Config struct {
	// Threshold is the accepted relative magnitude discrepancy for prefix name matches.
	Threshold float64 `mapstructure:"threshold" default:"0.1"`
	// StrictMatching aborts a fuzzy join on the first rejected prefix candidate.
	StrictMatching bool `mapstructure:"strict_matching" default:"false"`
	// ExactMode is the mode of exact joins (inner, outer).
	ExactMode string `mapstructure:"exact_mode" default:"outer"`
	// FuzzyMode is the mode of fuzzy joins (inner, outer).
	FuzzyMode string `mapstructure:"fuzzy_mode" default:"inner"`
	// MissingValue replaces absent values in join output.
	MissingValue string `mapstructure:"missing_value" default:""`
}

// Options converts the configuration into engine options.
func (c Config) Options() (Options, error) {
	opts := Options{
		Threshold:      c.Threshold,
		StrictMatching: c.StrictMatching,
		Missing:        c.MissingValue,
	}

	var err error
	if c.ExactMode != "" {
		if opts.ExactMode, err = ParseMode(c.ExactMode); err != nil {
			return Options{}, err
		}
	}
	if c.FuzzyMode != "" {
		if opts.FuzzyMode, err = ParseMode(c.FuzzyMode); err != nil {
			return Options{}, err
		}
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts.withDefaults(), nil
}
