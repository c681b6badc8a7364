package domain

import "context"

// ReportService defines the read-only aggregate reports served over HTTP
type ReportService interface {
	TopResourcesByQuantity(ctx context.Context) ([]ResourceUsage, error)
	CompletedProjectCostByDepartment(ctx context.Context) ([]DepartmentCost, error)
	ProjectWithMostDependents(ctx context.Context) ([]ProjectDependents, error)
}
