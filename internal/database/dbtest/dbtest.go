// Package dbtest provides SQLite-backed fixtures for tests that need a real
// reporting database.
package dbtest

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/source"
)

// Open returns a SQLite database stored in a per-test temp file. The schema
// is not created.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := database.Open(context.Background(), database.Config{
		Driver: string(database.SQLite),
		Path:   filepath.Join(t.TempDir(), "empresa.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

// OpenWithSchema returns a SQLite database with empty reporting tables.
func OpenWithSchema(t *testing.T) *sql.DB {
	t.Helper()
	db := Open(t)
	if err := database.NewSchema(db, database.SQLite).Reset(context.Background()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}
	return db
}

// Records builds source records from a header and raw rows.
func Records(header []string, rows ...[]string) []source.Record {
	out := make([]source.Record, len(rows))
	for i, row := range rows {
		rec := make(source.Record, len(header))
		for j, key := range header {
			rec[j] = source.Field{Key: key, Value: row[j]}
		}
		out[i] = rec
	}
	return out
}

// Load inserts records into table and fails the test on error.
func Load(t *testing.T, db *sql.DB, table string, records []source.Record) {
	t.Helper()
	if _, err := database.NewLoader(db, database.SQLite).Load(context.Background(), table, records); err != nil {
		t.Fatalf("load %s: %v", table, err)
	}
}

// Headers of every table, in definition order.
var (
	RoleHeader       = []string{"role_id", "title", "level", "base_salary"}
	DepartmentHeader = []string{"department_id", "name", "location"}
	EmployeeHeader   = []string{"employee_id", "name", "age", "hire_date", "role_id", "department_id"}
	SalaryHeader     = []string{"employee_id", "month", "salary_received"}
	DependentHeader  = []string{"employee_id", "dependent_name", "birth_date", "relationship_kind"}
	ProjectHeader    = []string{"project_id", "name", "description", "start_date", "end_date", "owning_employee_id", "cost", "status", "category"}
	ResourceHeader   = []string{"resource_id", "project_id", "description", "resource_kind", "quantity", "usage_date", "unit_cost", "total_cost"}
)

// SeedStaff loads one role, the given departments (ids 1..n) and one
// employee per department (employee i works in department i).
func SeedStaff(t *testing.T, db *sql.DB, departments ...string) {
	t.Helper()
	Load(t, db, "roles", Records(RoleHeader, []string{"1", "Analista", "Pleno", "5000"}))

	deps := make([][]string, len(departments))
	emps := make([][]string, len(departments))
	for i, name := range departments {
		id := strconv.Itoa(i + 1)
		deps[i] = []string{id, name, "São Paulo"}
		emps[i] = []string{id, "Funcionário " + id, "30", "2020-01-01", "1", id}
	}
	Load(t, db, "departments", Records(DepartmentHeader, deps...))
	Load(t, db, "employees", Records(EmployeeHeader, emps...))
}
