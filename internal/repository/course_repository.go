package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/unipanel/exam-planner-api/internal/models"
)

// CourseRepository provides persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns all courses with their department and owning faculty.
func (r *CourseRepository) List(ctx context.Context) ([]models.CourseWithContext, error) {
	const query = `
SELECT
	c.id, c.name, c.code, c.credit, c.department_id, c.created_at,
	d.name AS department_name,
	f.id AS faculty_id,
	f.name AS faculty_name
FROM courses c
JOIN departments d ON d.id = c.department_id
JOIN faculties f ON f.id = d.faculty_id
ORDER BY c.created_at DESC`
	courses := []models.CourseWithContext{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByFaculty returns the courses belonging to a faculty through its
// departments, ordered by name ascending.
func (r *CourseRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.Course, error) {
	const query = `
SELECT c.id, c.name, c.code, c.credit, c.department_id, c.created_at
FROM courses c
JOIN departments d ON d.id = c.department_id
WHERE d.faculty_id = $1
ORDER BY c.name ASC`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty courses: %w", err)
	}
	return courses, nil
}

// ExistsByCode checks global uniqueness of a course code.
func (r *CourseRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	const query = `SELECT 1 FROM courses WHERE LOWER(code) = LOWER($1) LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, code); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check course code: %w", err)
	}
	return true, nil
}

// Create persists a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO courses (id, name, code, credit, department_id, created_at) VALUES (:id, :name, :code, :credit, :department_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}
