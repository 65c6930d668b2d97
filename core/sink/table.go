package sink

import (
	"context"
	"fmt"
	"iter"
	"strconv"
	"strings"
	"unicode"

	"city-comparison/core/database"
	"city-comparison/core/table"
	"city-comparison/core/utils"

	"gorm.io/gorm"
)

// maxColumnName is the MySQL identifier limit.
const maxColumnName = 64

// Table writes rows into a database table with one TEXT column per field.
// The table is created when missing and widened with the columns it lacks.
type Table struct {
	DB        *gorm.DB
	TableName string
	BatchSize int
}

// Name implements Sink.
func (s *Table) Name() string { return "table:" + s.TableName }

// Write implements Sink. Nothing is executed for an empty sequence.
func (s *Table) Write(ctx context.Context, fields []string, rows iter.Seq[table.Record]) (int, error) {
	columns := ColumnNames(fields)

	var batch []map[string]any
	for r := range rows {
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[columns[i]] = utils.ToString(r.Get(f))
		}
		batch = append(batch, row)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	db := s.DB.WithContext(ctx)
	if err := s.ensureTable(db, columns); err != nil {
		return 0, err
	}

	size := s.BatchSize
	if size <= 0 {
		size = 500
	}
	if err := db.Table(s.TableName).CreateInBatches(batch, size).Error; err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", s.TableName, err)
	}
	return len(batch), nil
}

func (s *Table) ensureTable(db *gorm.DB, columns []string) error {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quoteIdent(s.TableName), strings.Join(defs, ", "))
	if err := db.Exec(create).Error; err != nil {
		return fmt.Errorf("failed to create table %s: %w", s.TableName, err)
	}

	existing, err := database.GetTableColumns(db, s.TableName)
	if err != nil {
		return err
	}
	have := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		have[c.Field] = struct{}{}
	}

	for _, c := range columns {
		if _, ok := have[c]; ok {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TEXT", quoteIdent(s.TableName), quoteIdent(c))
		if err := db.Exec(alter).Error; err != nil {
			return fmt.Errorf("failed to add column %s to %s: %w", c, s.TableName, err)
		}
	}
	return nil
}

// ColumnNames maps field names to unique lower-case SQL column names:
// "Population Estimate (as of July 1) - 2017" becomes
// "population_estimate_as_of_july_1_2017".
func ColumnNames(fields []string) []string {
	out := make([]string, len(fields))
	used := make(map[string]struct{}, len(fields))
	for i, f := range fields {
		base := sanitize(f)
		name := base
		for n := 2; ; n++ {
			if _, taken := used[name]; !taken {
				break
			}
			suffix := "_" + strconv.Itoa(n)
			name = truncate(base, maxColumnName-len(suffix)) + suffix
		}
		used[name] = struct{}{}
		out[i] = name
	}
	return out
}

func sanitize(field string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(field) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "column"
	}
	return truncate(name, maxColumnName)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSuffix(s[:n], "_")
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
