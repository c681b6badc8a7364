package database_test

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/database/dbtest"
	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
)

func TestTables_DependencyOrder(t *testing.T) {
	seen := map[string]bool{}
	for _, table := range database.Tables {
		for _, fk := range table.ForeignKeys {
			assert.True(t, seen[fk.RefTable], "%s references %s before it is defined", table.Name, fk.RefTable)
		}
		seen[table.Name] = true
	}
	assert.Equal(t, []string{
		"roles", "departments", "employees", "salary_history",
		"dependents", "projects", "project_resources",
	}, database.TableNames())
}

func TestSchema_ResetCreatesEmptyTables(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	schema := database.NewSchema(db, database.SQLite)

	require.NoError(t, schema.Reset(ctx))

	for _, name := range database.TableNames() {
		n, err := schema.RowCount(ctx, name)
		require.NoError(t, err, name)
		assert.Zero(t, n, name)
	}
}

func TestSchema_ResetIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	schema := database.NewSchema(db, database.SQLite)

	require.NoError(t, schema.Reset(ctx))
	dbtest.SeedStaff(t, db, "Engenharia")
	require.NoError(t, schema.Reset(ctx))
	require.NoError(t, schema.Reset(ctx))

	n, err := schema.RowCount(ctx, "employees")
	require.NoError(t, err)
	assert.Zero(t, n)

	// constraints survive the second reset
	_, err = database.NewLoader(db, database.SQLite).Load(ctx, "employees",
		dbtest.Records(dbtest.EmployeeHeader, []string{"1", "Ana", "30", "2020-01-01", "9", "9"}))
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)
}

func TestSchema_RowCountUnknownTable(t *testing.T) {
	schema := database.NewSchema(dbtest.OpenWithSchema(t), database.SQLite)

	_, err := schema.RowCount(context.Background(), "employees; DROP TABLE roles")
	assert.Error(t, err)
}

func TestOpen_ExplicitSQLiteDSNEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "custom.db")

	db, _, err := database.Open(ctx, database.Config{Driver: "sqlite", DSN: "file:" + path + "?_pragma=busy_timeout(5000)"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewSchema(db, database.SQLite).Reset(ctx))

	_, err = database.NewLoader(db, database.SQLite).Load(ctx, "dependents",
		dbtest.Records(dbtest.DependentHeader, []string{"99", "Zeca", "2010-01-01", "Filho"}))
	assert.ErrorIs(t, err, domain.ErrIntegrityViolation)

	n, err := database.NewSchema(db, database.SQLite).RowCount(ctx, "dependents")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_SQLiteDSNDisablingForeignKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.db")

	_, _, err := database.Open(context.Background(), database.Config{Driver: "sqlite", DSN: "file:" + path + "?_pragma=foreign_keys(0)"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foreign key")
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, _, err := database.Open(context.Background(), database.Config{Driver: "oracle"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"))
}

func TestTables_MatchDomainModels(t *testing.T) {
	models := map[string]interface{}{
		"roles":             domain.Role{},
		"departments":       domain.Department{},
		"employees":         domain.Employee{},
		"salary_history":    domain.SalaryRecord{},
		"dependents":        domain.Dependent{},
		"projects":          domain.Project{},
		"project_resources": domain.ProjectResource{},
	}
	require.Len(t, models, len(database.Tables))

	for name, model := range models {
		table, ok := database.LookupTable(name)
		require.True(t, ok, name)

		typ := reflect.TypeOf(model)
		var columns []string
		for i := 0; i < typ.NumField(); i++ {
			columns = append(columns, typ.Field(i).Tag.Get("db"))
		}
		assert.Equal(t, table.ColumnNames(), columns, name)
	}
}
