package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ColumnType is the storage class of a column.
type ColumnType int

const (
	Text ColumnType = iota
	Integer
	Real
)

// Column describes one column of a table.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// ForeignKey links Column to RefTable.RefColumn.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Table is the compile-time definition of one table.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
}

// ColumnNames returns the column names in definition order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Tables are listed in dependency order: a table only references tables
// that appear before it.
var Tables = []Table{
	{
		Name: "roles",
		Columns: []Column{
			{Name: "role_id", Type: Integer},
			{Name: "title", Type: Text},
			{Name: "level", Type: Text},
			{Name: "base_salary", Type: Real},
		},
		PrimaryKey: []string{"role_id"},
	},
	{
		Name: "departments",
		Columns: []Column{
			{Name: "department_id", Type: Integer},
			{Name: "name", Type: Text},
			{Name: "location", Type: Text},
		},
		PrimaryKey: []string{"department_id"},
	},
	{
		Name: "employees",
		Columns: []Column{
			{Name: "employee_id", Type: Integer},
			{Name: "name", Type: Text},
			{Name: "age", Type: Integer},
			{Name: "hire_date", Type: Text},
			{Name: "role_id", Type: Integer},
			{Name: "department_id", Type: Integer},
		},
		PrimaryKey: []string{"employee_id"},
		ForeignKeys: []ForeignKey{
			{Column: "role_id", RefTable: "roles", RefColumn: "role_id"},
			{Column: "department_id", RefTable: "departments", RefColumn: "department_id"},
		},
	},
	{
		Name: "salary_history",
		Columns: []Column{
			{Name: "employee_id", Type: Integer},
			{Name: "month", Type: Text},
			{Name: "salary_received", Type: Real},
		},
		PrimaryKey: []string{"employee_id", "month"},
		ForeignKeys: []ForeignKey{
			{Column: "employee_id", RefTable: "employees", RefColumn: "employee_id"},
		},
	},
	{
		Name: "dependents",
		Columns: []Column{
			{Name: "employee_id", Type: Integer},
			{Name: "dependent_name", Type: Text},
			{Name: "birth_date", Type: Text},
			{Name: "relationship_kind", Type: Text},
		},
		PrimaryKey: []string{"employee_id", "dependent_name"},
		ForeignKeys: []ForeignKey{
			{Column: "employee_id", RefTable: "employees", RefColumn: "employee_id"},
		},
	},
	{
		Name: "projects",
		Columns: []Column{
			{Name: "project_id", Type: Integer},
			{Name: "name", Type: Text},
			{Name: "description", Type: Text},
			{Name: "start_date", Type: Text},
			{Name: "end_date", Type: Text, Nullable: true},
			{Name: "owning_employee_id", Type: Integer},
			{Name: "cost", Type: Real},
			{Name: "status", Type: Text},
			{Name: "category", Type: Text},
		},
		PrimaryKey: []string{"project_id"},
		ForeignKeys: []ForeignKey{
			{Column: "owning_employee_id", RefTable: "employees", RefColumn: "employee_id"},
		},
	},
	{
		Name: "project_resources",
		Columns: []Column{
			{Name: "resource_id", Type: Integer},
			{Name: "project_id", Type: Integer},
			{Name: "description", Type: Text},
			{Name: "resource_kind", Type: Text},
			{Name: "quantity", Type: Integer},
			{Name: "usage_date", Type: Text},
			{Name: "unit_cost", Type: Real},
			{Name: "total_cost", Type: Real},
		},
		PrimaryKey: []string{"resource_id"},
		ForeignKeys: []ForeignKey{
			{Column: "project_id", RefTable: "projects", RefColumn: "project_id"},
		},
	},
}

// TableNames returns the names of Tables in dependency order.
func TableNames() []string {
	names := make([]string, len(Tables))
	for i, t := range Tables {
		names[i] = t.Name
	}
	return names
}

// LookupTable finds a table definition by name.
func LookupTable(name string) (Table, bool) {
	for _, t := range Tables {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}

// Schema manages the lifecycle of the reporting tables.
type Schema struct {
	db      *sql.DB
	dialect Dialect
}

// NewSchema creates a new Schema
func NewSchema(db *sql.DB, dialect Dialect) *Schema {
	return &Schema{db: db, dialect: dialect}
}

// Reset drops every table that exists and creates all of them again, empty.
// It runs in a single transaction and is safe to call on a fresh database.
func (s *Schema) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema reset: %w", err)
	}
	defer tx.Rollback()

	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i].Name); err != nil {
			return fmt.Errorf("drop table %s: %w", Tables[i].Name, err)
		}
	}

	for _, t := range Tables {
		if _, err := tx.ExecContext(ctx, s.createStatement(t)); err != nil {
			return fmt.Errorf("create table %s: %w", t.Name, err)
		}
	}

	return tx.Commit()
}

func (s *Schema) createStatement(t Table) string {
	defs := make([]string, 0, len(t.Columns)+1+len(t.ForeignKeys))
	for _, c := range t.Columns {
		def := c.Name + " " + s.dialect.columnType(c.Type)
		if !c.Nullable {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(t.PrimaryKey, ", ")))
	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)", fk.Column, fk.RefTable, fk.RefColumn))
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", t.Name, strings.Join(defs, ",\n\t"))
}

// RowCount returns the number of rows stored in a known table.
func (s *Schema) RowCount(ctx context.Context, table string) (int64, error) {
	if _, ok := LookupTable(table); !ok {
		return 0, fmt.Errorf("unknown table %q", table)
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
