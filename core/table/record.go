package table

import "fmt"

// Schema is an ordered, duplicate-free list of field names shared by records
// that were produced with the same shape.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema builds a schema from field names.
// It returns a ConfigurationError if a name is repeated.
func NewSchema(names ...string) (*Schema, error) {
	s := &Schema{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if _, dup := s.index[name]; dup {
			return nil, &ConfigurationError{Reason: fmt.Sprintf("duplicate field name %q", name)}
		}
		s.names[i] = name
		s.index[name] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on duplicate names.
func MustSchema(names ...string) *Schema {
	s, err := NewSchema(names...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns a copy of the field names in schema order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.names) }

// Has reports whether the schema declares the field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Record builds a record on this schema. Missing trailing values are nil and
// extra values are ignored.
func (s *Schema) Record(values ...any) Record {
	vals := make([]any, len(s.names))
	copy(vals, values)
	return Record{schema: s, values: vals}
}

// Field is a single name/value pair used to build ad-hoc records.
type Field struct {
	Name  string
	Value any
}

// F is shorthand for a Field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Fields is the read-only view key extractors work against.
type Fields interface {
	// Lookup returns the value stored under name and whether the field exists.
	Lookup(name string) (any, bool)
}

// Record is one row of a table. Records are immutable; every mutator returns a copy.
type Record struct {
	schema *Schema
	values []any
}

// NewRecord builds a record with its own schema from ordered fields.
// A repeated field name keeps the last value.
func NewRecord(fields ...Field) Record {
	names := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields))
	pos := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := pos[f.Name]; ok {
			values[i] = f.Value
			continue
		}
		pos[f.Name] = len(names)
		names = append(names, f.Name)
		values = append(values, f.Value)
	}
	return Record{schema: &Schema{names: names, index: pos}, values: values}
}

// Lookup implements Fields.
func (r Record) Lookup(name string) (any, bool) {
	if r.schema == nil {
		return nil, false
	}
	i, ok := r.schema.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Get returns the value for name, or nil when the field is absent.
func (r Record) Get(name string) any {
	v, _ := r.Lookup(name)
	return v
}

// Names returns the record's field names in order.
func (r Record) Names() []string {
	if r.schema == nil {
		return nil
	}
	return r.schema.Names()
}

// Schema returns the schema the record was built on.
func (r Record) Schema() *Schema { return r.schema }

// Len returns the number of fields.
func (r Record) Len() int { return len(r.values) }

// Map returns a copy of the record as a plain map.
func (r Record) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	if r.schema == nil {
		return out
	}
	for i, name := range r.schema.names {
		out[name] = r.values[i]
	}
	return out
}

// Values returns a copy of the values in schema order.
func (r Record) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}
