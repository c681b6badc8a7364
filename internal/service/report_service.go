package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlefSillva/projeto-empresa-db/internal/database"
	"github.com/AlefSillva/projeto-empresa-db/internal/domain"
	"github.com/AlefSillva/projeto-empresa-db/internal/repository"
)

// TopResourcesLimit is the number of groups returned by TopResourcesByQuantity.
const TopResourcesLimit = 3

// ReportService runs each report on its own pooled connection.
type ReportService struct {
	conns           *database.ConnManager
	repo            *repository.ReportRepository
	completedStatus string
}

// NewReportService creates a new ReportService. completedStatus is the
// project status value that marks a project as finished.
func NewReportService(conns *database.ConnManager, repo *repository.ReportRepository, completedStatus string) *ReportService {
	return &ReportService{
		conns:           conns,
		repo:            repo,
		completedStatus: completedStatus,
	}
}

// TopResourcesByQuantity returns the three most used resources.
func (s *ReportService) TopResourcesByQuantity(ctx context.Context) ([]domain.ResourceUsage, error) {
	var out []domain.ResourceUsage
	err := s.conns.WithConn(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.repo.TopResourcesByQuantity(ctx, q, TopResourcesLimit)
		return err
	})
	if err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

// CompletedProjectCostByDepartment returns the completed project cost per department.
func (s *ReportService) CompletedProjectCostByDepartment(ctx context.Context) ([]domain.DepartmentCost, error) {
	var out []domain.DepartmentCost
	err := s.conns.WithConn(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.repo.CompletedProjectCostByDepartment(ctx, q, s.completedStatus)
		return err
	})
	if err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

// ProjectWithMostDependents returns the single project whose owner has the most dependents.
func (s *ReportService) ProjectWithMostDependents(ctx context.Context) ([]domain.ProjectDependents, error) {
	var out []domain.ProjectDependents
	err := s.conns.WithConn(ctx, func(ctx context.Context, q database.Querier) error {
		var err error
		out, err = s.repo.ProjectWithMostDependents(ctx, q)
		return err
	})
	if err != nil {
		return nil, queryError(err)
	}
	return out, nil
}

func queryError(err error) error {
	if errors.Is(err, domain.ErrQueryExecution) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrQueryExecution, err)
}

var _ domain.ReportService = (*ReportService)(nil)
