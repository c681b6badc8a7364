package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/database/dbtest"
	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/repository"
)

const completed = "Concluído"

func project(id, owner, cost, status string) []string {
	return []string{id, "Projeto " + id, "descrição", "2023-01-01", "", owner, cost, status, "TI"}
}

func TestTopResourcesByQuantity(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenWithSchema(t)
	dbtest.SeedStaff(t, db, "Engenharia")
	dbtest.Load(t, db, "projects", dbtest.Records(dbtest.ProjectHeader, project("1", "1", "100", completed)))
	dbtest.Load(t, db, "project_resources", dbtest.Records(dbtest.ResourceHeader,
		[]string{"1", "1", "A", "Hardware", "5", "2023-02-01", "1", "5"},
		[]string{"2", "1", "B", "Hardware", "5", "2023-02-01", "1", "5"},
		[]string{"3", "1", "A", "Hardware", "3", "2023-02-02", "1", "3"},
		[]string{"4", "1", "C", "Licença", "1", "2023-02-03", "1", "1"},
		[]string{"5", "1", "D", "Licença", "1", "2023-02-03", "1", "1"},
	))

	repo := repository.NewReportRepository(database.SQLite)
	got, err := repo.TopResourcesByQuantity(ctx, db, 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.ResourceUsage{
		{Resource: "A", TotalQuantity: 8},
		{Resource: "B", TotalQuantity: 5},
		{Resource: "C", TotalQuantity: 1},
	}, got)
}

func TestCompletedProjectCostByDepartment(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenWithSchema(t)
	// employee 1 -> Eng, 2 -> Sales, 3 -> Ops
	dbtest.SeedStaff(t, db, "Eng", "Sales", "Ops")
	dbtest.Load(t, db, "projects", dbtest.Records(dbtest.ProjectHeader,
		project("1", "1", "100", completed),
		project("2", "1", "200", completed),
		project("3", "2", "50", completed),
		project("4", "2", "999", "Em andamento"),
		project("5", "3", "70", "Em andamento"),
	))

	repo := repository.NewReportRepository(database.SQLite)
	got, err := repo.CompletedProjectCostByDepartment(ctx, db, completed)
	require.NoError(t, err)

	assert.Equal(t, []domain.DepartmentCost{
		{Department: "Eng", TotalCost: 300},
		{Department: "Sales", TotalCost: 50},
	}, got)

	other, err := repo.CompletedProjectCostByDepartment(ctx, db, "Completed")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestProjectWithMostDependents(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenWithSchema(t)
	dbtest.SeedStaff(t, db, "Eng", "Sales", "Ops")
	dbtest.Load(t, db, "projects", dbtest.Records(dbtest.ProjectHeader,
		[]string{"1", "P1", "d", "2023-01-01", "", "1", "10", completed, "TI"},
		[]string{"2", "P2", "d", "2023-01-01", "2023-06-30", "2", "10", completed, "TI"},
		[]string{"3", "P3", "d", "2023-01-01", "", "3", "10", completed, "TI"},
	))
	dbtest.Load(t, db, "dependents", dbtest.Records(dbtest.DependentHeader,
		[]string{"1", "Ana", "2010-01-01", "Filha"},
		[]string{"1", "Beto", "2012-01-01", "Filho"},
		[]string{"1", "Carla", "1985-01-01", "Cônjuge"},
		[]string{"2", "Davi", "2016-01-01", "Filho"},
	))

	repo := repository.NewReportRepository(database.SQLite)
	got, err := repo.ProjectWithMostDependents(ctx, db)
	require.NoError(t, err)

	assert.Equal(t, []domain.ProjectDependents{{Project: "P1", DependentCount: 3}}, got)
}

func TestReports_EmptySchema(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenWithSchema(t)
	repo := repository.NewReportRepository(database.SQLite)

	resources, err := repo.TopResourcesByQuantity(ctx, db, 3)
	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)

	costs, err := repo.CompletedProjectCostByDepartment(ctx, db, completed)
	require.NoError(t, err)
	assert.Empty(t, costs)

	deps, err := repo.ProjectWithMostDependents(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestReports_MissingSchema(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	repo := repository.NewReportRepository(database.SQLite)

	_, err := repo.TopResourcesByQuantity(ctx, db, 3)
	assert.Error(t, err)

	_, err = repo.CompletedProjectCostByDepartment(ctx, db, completed)
	assert.Error(t, err)

	_, err = repo.ProjectWithMostDependents(ctx, db)
	assert.Error(t, err)
}
