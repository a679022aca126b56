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

// FacultyRepository provides persistence for faculties.
type FacultyRepository struct {
	db *sqlx.DB
}

// NewFacultyRepository constructs the repository.
func NewFacultyRepository(db *sqlx.DB) *FacultyRepository {
	return &FacultyRepository{db: db}
}

// List returns all faculties newest first, each with its departments.
func (r *FacultyRepository) List(ctx context.Context) ([]models.FacultyDetail, error) {
	const query = `SELECT id, name, created_by_id, created_at FROM faculties ORDER BY created_at DESC`
	var faculties []models.Faculty
	if err := r.db.SelectContext(ctx, &faculties, query); err != nil {
		return nil, fmt.Errorf("list faculties: %w", err)
	}
	if len(faculties) == 0 {
		return []models.FacultyDetail{}, nil
	}

	ids := make([]string, 0, len(faculties))
	for _, f := range faculties {
		ids = append(ids, f.ID)
	}

	deptQuery, args, err := sqlx.In(`SELECT id, name, faculty_id, created_at FROM departments WHERE faculty_id IN (?) ORDER BY created_at DESC`, ids)
	if err != nil {
		return nil, fmt.Errorf("build department query: %w", err)
	}
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, r.db.Rebind(deptQuery), args...); err != nil {
		return nil, fmt.Errorf("list faculty departments: %w", err)
	}

	byFaculty := make(map[string][]models.Department, len(faculties))
	for _, d := range departments {
		byFaculty[d.FacultyID] = append(byFaculty[d.FacultyID], d)
	}

	details := make([]models.FacultyDetail, 0, len(faculties))
	for _, f := range faculties {
		depts := byFaculty[f.ID]
		if depts == nil {
			depts = []models.Department{}
		}
		details = append(details, models.FacultyDetail{Faculty: f, Departments: depts})
	}
	return details, nil
}

// FindByID loads one faculty with its departments. Returns (nil, nil) when absent.
func (r *FacultyRepository) FindByID(ctx context.Context, id string) (*models.FacultyDetail, error) {
	const query = `SELECT id, name, created_by_id, created_at FROM faculties WHERE id = $1`
	var faculty models.Faculty
	if err := r.db.GetContext(ctx, &faculty, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find faculty: %w", err)
	}

	const deptQuery = `SELECT id, name, faculty_id, created_at FROM departments WHERE faculty_id = $1 ORDER BY created_at DESC`
	departments := []models.Department{}
	if err := r.db.SelectContext(ctx, &departments, deptQuery, id); err != nil {
		return nil, fmt.Errorf("find faculty departments: %w", err)
	}

	return &models.FacultyDetail{Faculty: faculty, Departments: departments}, nil
}

// Exists reports whether a faculty row exists.
func (r *FacultyRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM faculties WHERE id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check faculty: %w", err)
	}
	return true, nil
}

// Create persists a new faculty recording its creator.
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) error {
	if faculty.ID == "" {
		faculty.ID = uuid.NewString()
	}
	if faculty.CreatedAt.IsZero() {
		faculty.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO faculties (id, name, created_by_id, created_at) VALUES (:id, :name, :created_by_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, faculty); err != nil {
		return fmt.Errorf("create faculty: %w", err)
	}
	return nil
}
