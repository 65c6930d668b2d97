package table

import (
	"fmt"
	"strings"

	"city-comparison/core/utils"
)

// FuzzyKey is the composite key used when two tables share no identifier space.
type FuzzyKey struct {
	// Region is the normalized administrative region (e.g. state).
	Region string
	// Name is the normalized entity name (e.g. city).
	Name string
	// Magnitude is a non-negative comparable quantity (e.g. population).
	Magnitude float64
}

func (k FuzzyKey) String() string {
	return fmt.Sprintf("(%s, %s, %g)", k.Region, k.Name, k.Magnitude)
}

// Kind identifies where a table came from and how to extract its keys.
// Two tables of the same kind are joined by exact key, otherwise by fuzzy key.
type Kind interface {
	// Name is the kind identity used by the join dispatcher.
	Name() string

	// Fields lists every field the extractors read.
	Fields() []string

	// ExactFieldName is the field holding the exact key, or "" when records are
	// keyed by position.
	ExactFieldName() string

	// ExactKey returns the exact match key of a record, or ordinal when the kind
	// declares no exact field.
	ExactKey(f Fields, ordinal int) (any, error)

	// FuzzyKey returns the normalized (region, name, magnitude) key of a record.
	FuzzyKey(f Fields) (FuzzyKey, error)
}

// Descriptor is a Kind defined entirely by field names.
type Descriptor struct {
	// KindName is returned by Name.
	KindName string

	// ExactField holds a stable source-supplied identifier. Empty means the
	// record's position in its table is used instead.
	ExactField string

	RegionField    string
	NameField      string
	MagnitudeField string

	// NameSuffixes are generic trailing words dropped from names (e.g. "city").
	NameSuffixes []string
}

// Name implements Kind.
func (d Descriptor) Name() string { return d.KindName }

// ExactFieldName implements Kind.
func (d Descriptor) ExactFieldName() string { return d.ExactField }

// Fields implements Kind.
func (d Descriptor) Fields() []string {
	fields := make([]string, 0, 4)
	if d.ExactField != "" {
		fields = append(fields, d.ExactField)
	}
	return append(fields, d.RegionField, d.NameField, d.MagnitudeField)
}

// ExactKey implements Kind.
func (d Descriptor) ExactKey(f Fields, ordinal int) (any, error) {
	if d.ExactField == "" {
		return ordinal, nil
	}
	v, ok := f.Lookup(d.ExactField)
	if !ok {
		return nil, &MissingFieldError{Kind: d.KindName, Field: d.ExactField}
	}
	return v, nil
}

// FuzzyKey implements Kind.
func (d Descriptor) FuzzyKey(f Fields) (FuzzyKey, error) {
	region, ok := f.Lookup(d.RegionField)
	if !ok {
		return FuzzyKey{}, &MissingFieldError{Kind: d.KindName, Field: d.RegionField}
	}
	name, ok := f.Lookup(d.NameField)
	if !ok {
		return FuzzyKey{}, &MissingFieldError{Kind: d.KindName, Field: d.NameField}
	}
	magnitude, ok := f.Lookup(d.MagnitudeField)
	if !ok {
		return FuzzyKey{}, &MissingFieldError{Kind: d.KindName, Field: d.MagnitudeField}
	}

	m := utils.ToFloat(magnitude)
	if m < 0 {
		m = 0
	}
	return FuzzyKey{
		Region:    NormalizeRegion(utils.ToString(region)),
		Name:      NormalizeName(utils.ToString(name), d.NameSuffixes...),
		Magnitude: m,
	}, nil
}

// NormalizeRegion lower-cases and trims a region name.
func NormalizeRegion(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeName lower-cases a name, collapses whitespace and removes one
// trailing suffix word when the name has more than one word.
func NormalizeName(s string, suffixes ...string) string {
	words := strings.Fields(strings.ToLower(s))
	if len(words) > 1 {
		last := words[len(words)-1]
		for _, suffix := range suffixes {
			if last == strings.ToLower(suffix) {
				words = words[:len(words)-1]
				break
			}
		}
	}
	return strings.Join(words, " ")
}
