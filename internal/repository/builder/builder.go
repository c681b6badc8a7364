package builder

import (
	"fmt"
	"strings"
)

// PlaceholderFormat controls how "?" markers are rendered in the final SQL.
type PlaceholderFormat int

const (
	// Dollar renders numbered placeholders ($1, $2, ...) as PostgreSQL expects.
	Dollar PlaceholderFormat = iota
	// Question keeps "?" markers, as SQLite expects.
	Question
)

// SQLBuilder helps construct SQL queries dynamically.
type SQLBuilder struct {
	format    PlaceholderFormat
	table     string
	columns   []string
	rows      [][]interface{}
	joins     []string
	where     []string
	whereArgs []interface{}
	groupBy   []string
	orderBy   []string
	limit     int
	isInsert  bool
	isSelect  bool
}

// NewSQLBuilder creates a new instance of SQLBuilder using Dollar placeholders.
func NewSQLBuilder() *SQLBuilder {
	return &SQLBuilder{}
}

// Placeholder switches the placeholder format used by Build.
func (b *SQLBuilder) Placeholder(format PlaceholderFormat) *SQLBuilder {
	b.format = format
	return b
}

// Select specifies the columns to retrieve.
func (b *SQLBuilder) Select(cols ...string) *SQLBuilder {
	b.isSelect = true
	b.columns = cols
	return b
}

// Insert specifies the table and columns for insertion.
func (b *SQLBuilder) Insert(table string, cols ...string) *SQLBuilder {
	b.isInsert = true
	b.table = table
	b.columns = cols
	return b
}

// From specifies the table to select from.
func (b *SQLBuilder) From(table string) *SQLBuilder {
	b.table = table
	return b
}

// Values appends one row of values for insertion. Calling it repeatedly
// produces a multi-row INSERT.
func (b *SQLBuilder) Values(vals ...interface{}) *SQLBuilder {
	b.rows = append(b.rows, vals)
	return b
}

// Where adds a condition to the query. Plain conditions are joined with AND.
func (b *SQLBuilder) Where(condition string, args ...interface{}) *SQLBuilder {
	b.where = append(b.where, condition)
	b.whereArgs = append(b.whereArgs, args...)
	return b
}

// Join adds a JOIN clause.
func (b *SQLBuilder) Join(joinType, table, on string) *SQLBuilder {
	b.joins = append(b.joins, fmt.Sprintf("%s JOIN %s ON %s", joinType, table, on))
	return b
}

// GroupBy adds a GROUP BY clause.
func (b *SQLBuilder) GroupBy(cols ...string) *SQLBuilder {
	b.groupBy = append(b.groupBy, cols...)
	return b
}

// OrderBy adds an ORDER BY clause.
func (b *SQLBuilder) OrderBy(order string) *SQLBuilder {
	b.orderBy = append(b.orderBy, order)
	return b
}

// Limit adds a LIMIT clause.
func (b *SQLBuilder) Limit(limit int) *SQLBuilder {
	b.limit = limit
	return b
}

// BuildSafe constructs the final SQL string and arguments with safety validation.
// Returns an error if the number of placeholders doesn't match the number of arguments.
func (b *SQLBuilder) BuildSafe() (string, []interface{}, error) {
	sql, args := b.Build()

	placeholderCount := 0
	if b.format == Question {
		placeholderCount = strings.Count(sql, "?")
	} else {
		for i := 1; strings.Contains(sql, fmt.Sprintf("$%d", i)); i++ {
			placeholderCount++
		}
	}

	if placeholderCount != len(args) {
		return "", nil, fmt.Errorf("placeholder count (%d) does not match argument count (%d)", placeholderCount, len(args))
	}
	if b.isInsert {
		for i, row := range b.rows {
			if len(row) != len(b.columns) {
				return "", nil, fmt.Errorf("row %d has %d values for %d columns", i, len(row), len(b.columns))
			}
		}
	}

	return sql, args, nil
}

// Build constructs the final SQL string and arguments. Build does not
// modify the builder, so it can be called more than once.
func (b *SQLBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	p := &binder{format: b.format}

	switch {
	case b.isSelect:
		sb.WriteString("SELECT ")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(" FROM ")
		sb.WriteString(b.table)
		for _, join := range b.joins {
			sb.WriteString(" ")
			sb.WriteString(join)
		}
	case b.isInsert:
		sb.WriteString("INSERT INTO ")
		sb.WriteString(b.table)
		sb.WriteString(" (")
		sb.WriteString(strings.Join(b.columns, ", "))
		sb.WriteString(") VALUES ")
		tuples := make([]string, len(b.rows))
		for i, row := range b.rows {
			marks := make([]string, len(row))
			for j := range row {
				marks[j] = p.next()
			}
			p.args = append(p.args, row...)
			tuples[i] = "(" + strings.Join(marks, ", ") + ")"
		}
		sb.WriteString(strings.Join(tuples, ", "))
		return sb.String(), p.args
	}

	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(p.bind(strings.Join(b.where, " AND "), b.whereArgs))
	}

	if len(b.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(b.groupBy, ", "))
	}

	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(b.orderBy, ", "))
	}

	if b.limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT %d", b.limit))
	}

	return sb.String(), p.args
}

// binder numbers placeholders and collects arguments in SQL order.
type binder struct {
	format PlaceholderFormat
	n      int
	args   []interface{}
}

func (p *binder) next() string {
	p.n++
	if p.format == Question {
		return "?"
	}
	return fmt.Sprintf("$%d", p.n)
}

func (p *binder) bind(fragment string, args []interface{}) string {
	parts := strings.Split(fragment, "?")
	var sb strings.Builder
	for i, part := range parts {
		sb.WriteString(part)
		if i < len(parts)-1 {
			sb.WriteString(p.next())
		}
	}
	p.args = append(p.args, args...)
	return sb.String()
}
