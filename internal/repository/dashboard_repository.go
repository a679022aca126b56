package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unipanel/exam-planner-api/internal/models"
)

// DashboardRepository reads aggregate counts for the summary endpoint.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs the repository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Summary counts the catalog entities and schedules in one round trip.
func (r *DashboardRepository) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	const query = `SELECT
		(SELECT COUNT(*) FROM faculties) AS faculty_count,
		(SELECT COUNT(*) FROM departments) AS department_count,
		(SELECT COUNT(*) FROM courses) AS course_count,
		(SELECT COUNT(*) FROM classrooms) AS classroom_count,
		(SELECT COUNT(*) FROM exam_schedules) AS exam_schedule_count`
	var summary models.DashboardSummary
	if err := r.db.GetContext(ctx, &summary, query); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}
	return &summary, nil
}
