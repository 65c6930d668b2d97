package table

import "fmt"

// Derive wraps join output as a new table of left's kind and suffix.
//
// renames maps left field names to the names they were given in records.
// Fields the kind declares are re-pointed through renames so that ExactKey and
// FuzzyKey keep working on the derived table.
func Derive(left *Table, records []Record, renames map[string]string) *Table {
	return newTable(left.kind, left.suffix, records, left.movedAliases(renames))
}

func (t *Table) movedAliases(renames map[string]string) map[string]string {
	aliases := make(map[string]string)
	for _, declared := range t.kind.Fields() {
		current := t.Resolve(declared)
		if renamed, ok := renames[current]; ok {
			current = renamed
		}
		if current != declared {
			aliases[declared] = current
		}
	}
	return aliases
}

// Rename returns a copy of the table with fields renamed per renames.
// Names absent from the table are ignored. Renaming onto an existing field is a
// ConfigurationError.
func (t *Table) Rename(renames map[string]string) (*Table, error) {
	if len(renames) == 0 {
		return t, nil
	}

	// Rename every distinct schema once.
	converted := make(map[*Schema]*Schema)
	records := make([]Record, len(t.records))
	for i, r := range t.records {
		if r.schema == nil {
			records[i] = r
			continue
		}
		s, ok := converted[r.schema]
		if !ok {
			names := r.schema.Names()
			for j, name := range names {
				if renamed, hit := renames[name]; hit {
					names[j] = renamed
				}
			}
			var err error
			s, err = NewSchema(names...)
			if err != nil {
				return nil, fmt.Errorf("failed to rename %s table fields: %w", t.kind.Name(), err)
			}
			converted[r.schema] = s
		}
		records[i] = Record{schema: s, values: r.values}
	}

	return newTable(t.kind, t.suffix, records, t.movedAliases(renames)), nil
}

// Drop returns a copy of the table without the named fields.
// Dropping a field the kind declares makes later key extraction fail with a
// MissingFieldError.
func (t *Table) Drop(fields ...string) *Table {
	if len(fields) == 0 {
		return t
	}
	drop := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		drop[f] = struct{}{}
	}

	type projection struct {
		schema *Schema
		keep   []int
	}
	converted := make(map[*Schema]projection)
	records := make([]Record, len(t.records))
	for i, r := range t.records {
		if r.schema == nil {
			records[i] = r
			continue
		}
		p, ok := converted[r.schema]
		if !ok {
			var names []string
			for j, name := range r.schema.names {
				if _, gone := drop[name]; gone {
					continue
				}
				names = append(names, name)
				p.keep = append(p.keep, j)
			}
			p.schema = MustSchema(names...)
			converted[r.schema] = p
		}
		values := make([]any, len(p.keep))
		for j, src := range p.keep {
			values[j] = r.values[src]
		}
		records[i] = Record{schema: p.schema, values: values}
	}

	aliases := make(map[string]string, len(t.aliases))
	for k, v := range t.aliases {
		aliases[k] = v
	}
	return newTable(t.kind, t.suffix, records, aliases)
}
