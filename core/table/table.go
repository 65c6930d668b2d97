package table

import (
	"context"
	"fmt"
	"iter"
)

// Loader reads the records of one source. The handle is file-path-like and its
// meaning is up to the loader.
type Loader interface {
	Load(ctx context.Context, handle string) ([]Record, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, handle string) ([]Record, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, handle string) ([]Record, error) {
	return f(ctx, handle)
}

// Table is an immutable, ordered collection of records of one kind.
type Table struct {
	kind    Kind
	suffix  string
	records []Record
	schema  []string

	// aliases maps a field declared by the kind to the name it has in this
	// table when a join or rename moved it.
	aliases map[string]string
}

type options struct {
	records    []Record
	hasRecords bool
	loader     Loader
	handle     string
	suffix     string
}

// Option configures New.
type Option func(*options)

// WithRecords supplies the records directly.
func WithRecords(records []Record) Option {
	return func(o *options) {
		o.records = records
		o.hasRecords = true
	}
}

// WithLoader makes New read the records from loader using handle.
func WithLoader(loader Loader, handle string) Option {
	return func(o *options) {
		o.loader = loader
		o.handle = handle
	}
}

// WithSuffix sets the suffix applied to this table's colliding fields in joins.
func WithSuffix(suffix string) Option {
	return func(o *options) {
		o.suffix = suffix
	}
}

// New builds a table of the given kind. Exactly one of WithRecords and
// WithLoader must be supplied. Every record must expose the fields the kind
// declares, otherwise a MissingFieldError is returned.
func New(ctx context.Context, kind Kind, opts ...Option) (*Table, error) {
	if kind == nil {
		return nil, &ConfigurationError{Reason: "table kind is required"}
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case o.hasRecords && o.loader != nil:
		return nil, &ConfigurationError{Reason: "both records and a loader were supplied"}
	case !o.hasRecords && o.loader == nil:
		return nil, &ConfigurationError{Reason: "neither records nor a loader were supplied"}
	}

	records := o.records
	if o.loader != nil {
		loaded, err := o.loader.Load(ctx, o.handle)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s table from %q: %w", kind.Name(), o.handle, err)
		}
		records = loaded
	}

	t := newTable(kind, o.suffix, records, nil)
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func newTable(kind Kind, suffix string, records []Record, aliases map[string]string) *Table {
	owned := make([]Record, len(records))
	copy(owned, records)
	return &Table{
		kind:    kind,
		suffix:  suffix,
		records: owned,
		schema:  unionSchema(owned),
		aliases: aliases,
	}
}

func unionSchema(records []Record) []string {
	var names []string
	seenSchema := make(map[*Schema]struct{})
	seenName := make(map[string]struct{})
	for _, r := range records {
		if r.schema == nil {
			continue
		}
		if _, ok := seenSchema[r.schema]; ok {
			continue
		}
		seenSchema[r.schema] = struct{}{}
		for _, name := range r.schema.names {
			if _, ok := seenName[name]; ok {
				continue
			}
			seenName[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

func (t *Table) validate() error {
	declared := t.kind.Fields()
	for i, r := range t.records {
		v := t.view(r)
		for _, field := range declared {
			if _, ok := v.Lookup(field); !ok {
				return fmt.Errorf("record %d: %w", i, &MissingFieldError{Kind: t.kind.Name(), Field: field})
			}
		}
	}
	return nil
}

// Kind returns the table kind.
func (t *Table) Kind() Kind { return t.kind }

// Suffix returns the suffix used to disambiguate colliding fields.
func (t *Table) Suffix() string { return t.suffix }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Schema returns the union of field names of all records, in first-seen order.
func (t *Table) Schema() []string {
	out := make([]string, len(t.schema))
	copy(out, t.schema)
	return out
}

// Record returns the i-th record.
func (t *Table) Record(i int) Record { return t.records[i] }

// Rows returns the records in table order. The sequence can be ranged over
// any number of times.
func (t *Table) Rows() iter.Seq[Record] {
	return func(yield func(Record) bool) {
		for _, r := range t.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Indexed is like Rows but also yields each record's ordinal.
func (t *Table) Indexed() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i, r := range t.records {
			if !yield(i, r) {
				return
			}
		}
	}
}

// WithSuffix returns the same table tagged with a different suffix.
func (t *Table) WithSuffix(suffix string) *Table {
	clone := *t
	clone.suffix = suffix
	return &clone
}

// Resolve returns the name a declared field has in this table.
func (t *Table) Resolve(field string) string {
	if actual, ok := t.aliases[field]; ok {
		return actual
	}
	return field
}

// ExactKey extracts the exact key of the i-th record.
func (t *Table) ExactKey(i int) (any, error) {
	return t.kind.ExactKey(t.view(t.records[i]), i)
}

// FuzzyKey extracts the fuzzy key of the i-th record.
func (t *Table) FuzzyKey(i int) (FuzzyKey, error) {
	return t.kind.FuzzyKey(t.view(t.records[i]))
}

// ExactField returns the shared exact key field of the table in its schema, or
// "" when the kind keys records by position.
func (t *Table) ExactField() string {
	if name := t.kind.ExactFieldName(); name != "" {
		return t.Resolve(name)
	}
	return ""
}

func (t *Table) view(r Record) Fields {
	if len(t.aliases) == 0 {
		return r
	}
	return aliasView{record: r, aliases: t.aliases}
}

type aliasView struct {
	record  Record
	aliases map[string]string
}

func (v aliasView) Lookup(name string) (any, bool) {
	if actual, ok := v.aliases[name]; ok {
		name = actual
	}
	return v.record.Lookup(name)
}
