package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/unipanel/exam-planner-api/internal/models"
)

// DepartmentRepository provides persistence for departments.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs the repository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// List returns all departments with their parent faculty, newest first.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.DepartmentWithFaculty, error) {
	const query = `
SELECT
	d.id, d.name, d.faculty_id, d.created_at,
	f.name AS faculty_name
FROM departments d
JOIN faculties f ON f.id = d.faculty_id
ORDER BY d.created_at DESC`
	departments := []models.DepartmentWithFaculty{}
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// Create persists a new department.
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	if department.ID == "" {
		department.ID = uuid.NewString()
	}
	if department.CreatedAt.IsZero() {
		department.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO departments (id, name, faculty_id, created_at) VALUES (:id, :name, :faculty_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, department); err != nil {
		return fmt.Errorf("create department: %w", err)
	}
	return nil
}
