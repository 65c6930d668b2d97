package join

import (
	"fmt"
	"strings"

	"city-comparison/core/table"
)

// Mode selects what happens to rows without a counterpart.
type Mode string

const (
	// Inner drops unmatched rows.
	Inner Mode = "inner"
	// Outer emits unmatched rows with the other side's fields set to the missing sentinel.
	Outer Mode = "outer"
)

// DefaultThreshold is the largest relative magnitude discrepancy accepted for
// a prefix name match.
const DefaultThreshold = 0.10

// ParseMode parses "inner" or "outer" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Inner:
		return Inner, nil
	case Outer:
		return Outer, nil
	}
	return "", &table.ConfigurationError{Reason: fmt.Sprintf("unknown join mode %q", s)}
}

// Options configures an Engine.
type Options struct {
	// ExactMode is the mode of exact joins. Empty means Outer.
	ExactMode Mode

	// FuzzyMode is the mode of fuzzy joins. Empty means Inner.
	FuzzyMode Mode

	// Threshold is the accepted magnitude discrepancy for prefix matches.
	// Zero means DefaultThreshold.
	Threshold float64

	// StrictMatching turns rejected prefix candidates into AmbiguousMatchError
	// instead of a logged non-match.
	StrictMatching bool

	// Missing replaces absent, nil and NaN values in join output.
	// nil means the empty string.
	Missing any
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		ExactMode: Outer,
		FuzzyMode: Inner,
		Threshold: DefaultThreshold,
		Missing:   "",
	}
}

func (o Options) withDefaults() Options {
	if o.ExactMode == "" {
		o.ExactMode = Outer
	}
	if o.FuzzyMode == "" {
		o.FuzzyMode = Inner
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Missing == nil {
		o.Missing = ""
	}
	return o
}

// Validate reports inconsistent options as a ConfigurationError.
func (o Options) Validate() error {
	for _, m := range []Mode{o.ExactMode, o.FuzzyMode} {
		if m != "" && m != Inner && m != Outer {
			return &table.ConfigurationError{Reason: fmt.Sprintf("unknown join mode %q", m)}
		}
	}
	if o.Threshold < 0 {
		return &table.ConfigurationError{Reason: fmt.Sprintf("negative match threshold %g", o.Threshold)}
	}
	return nil
}
