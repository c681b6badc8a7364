package repository

import (
	"context"
	"fmt"

	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/repository/builder"
)

// ReportRepository runs the fixed aggregate queries of the reporting API.
// Ties in the ordering column are broken by a secondary key so results are
// stable across engines.
type ReportRepository struct {
	dialect database.Dialect
}

// NewReportRepository creates a new repository
func NewReportRepository(dialect database.Dialect) *ReportRepository {
	return &ReportRepository{dialect: dialect}
}

func (r *ReportRepository) newBuilder() *builder.SQLBuilder {
	return builder.NewSQLBuilder().Placeholder(r.dialect.Placeholder())
}

// TopResourcesByQuantity sums project resource quantities per description
// and returns the limit largest groups.
func (r *ReportRepository) TopResourcesByQuantity(ctx context.Context, q database.Querier, limit int) ([]domain.ResourceUsage, error) {
	query, args := r.newBuilder().
		Select("description", "SUM(quantity) AS total_quantity").
		From("project_resources").
		GroupBy("description").
		OrderBy("total_quantity DESC").
		OrderBy("description ASC").
		Limit(limit).
		Build()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top resources: %w", err)
	}
	defer rows.Close()

	results := []domain.ResourceUsage{}
	for rows.Next() {
		var u domain.ResourceUsage
		if err := rows.Scan(&u.Resource, &u.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan resource usage: %w", err)
		}
		results = append(results, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return results, nil
}

// CompletedProjectCostByDepartment sums the cost of projects whose status
// equals completedStatus, grouped by the department of the owning employee.
// Departments without completed projects are not returned.
func (r *ReportRepository) CompletedProjectCostByDepartment(ctx context.Context, q database.Querier, completedStatus string) ([]domain.DepartmentCost, error) {
	query, args := r.newBuilder().
		Select("d.name", "SUM(p.cost) AS total_cost").
		From("projects p").
		Join("INNER", "employees e", "p.owning_employee_id = e.employee_id").
		Join("INNER", "departments d", "e.department_id = d.department_id").
		Where("p.status = ?", completedStatus).
		GroupBy("d.name").
		OrderBy("d.name ASC").
		Build()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed project cost: %w", err)
	}
	defer rows.Close()

	results := []domain.DepartmentCost{}
	for rows.Next() {
		var c domain.DepartmentCost
		if err := rows.Scan(&c.Department, &c.TotalCost); err != nil {
			return nil, fmt.Errorf("failed to scan department cost: %w", err)
		}
		results = append(results, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return results, nil
}

// ProjectWithMostDependents counts the dependents of each project's owner
// and returns the project with the highest count. Projects whose owner has
// no dependents are never returned.
func (r *ReportRepository) ProjectWithMostDependents(ctx context.Context, q database.Querier) ([]domain.ProjectDependents, error) {
	query, args := r.newBuilder().
		Select("p.name", "COUNT(dp.employee_id) AS dependent_count").
		From("projects p").
		Join("INNER", "dependents dp", "dp.employee_id = p.owning_employee_id").
		GroupBy("p.project_id", "p.name").
		OrderBy("dependent_count DESC").
		OrderBy("p.project_id ASC").
		Limit(1).
		Build()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project dependents: %w", err)
	}
	defer rows.Close()

	results := []domain.ProjectDependents{}
	for rows.Next() {
		var p domain.ProjectDependents
		if err := rows.Scan(&p.Project, &p.DependentCount); err != nil {
			return nil, fmt.Errorf("failed to scan project dependents: %w", err)
		}
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return results, nil
}
