package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type dashboardRepository interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

// DashboardService serves the entity-count summary.
type DashboardService struct {
	repo   dashboardRepository
	logger *zap.Logger
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(repo dashboardRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger}
}

// Summary returns counts of all managed entities.
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load dashboard summary")
	}
	return summary, nil
}
