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

// ClassroomRepository provides persistence for classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository constructs the repository.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// List returns all classrooms with their parent faculty, newest first.
func (r *ClassroomRepository) List(ctx context.Context) ([]models.ClassroomWithFaculty, error) {
	const query = `
SELECT
	c.id, c.name, c.capacity, c.faculty_id, c.created_at,
	f.name AS faculty_name
FROM classrooms c
JOIN faculties f ON f.id = c.faculty_id
ORDER BY c.created_at DESC`
	classrooms := []models.ClassroomWithFaculty{}
	if err := r.db.SelectContext(ctx, &classrooms, query); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return classrooms, nil
}

// ListByFaculty returns the classrooms owned by a faculty, ordered by name.
func (r *ClassroomRepository) ListByFaculty(ctx context.Context, facultyID string) ([]models.Classroom, error) {
	const query = `SELECT id, name, capacity, faculty_id, created_at FROM classrooms WHERE faculty_id = $1 ORDER BY name ASC`
	classrooms := []models.Classroom{}
	if err := r.db.SelectContext(ctx, &classrooms, query, facultyID); err != nil {
		return nil, fmt.Errorf("list faculty classrooms: %w", err)
	}
	return classrooms, nil
}

// FindByID loads one classroom with its faculty name.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.ClassroomWithFaculty, error) {
	const query = `
SELECT
	c.id, c.name, c.capacity, c.faculty_id, c.created_at,
	f.name AS faculty_name
FROM classrooms c
JOIN faculties f ON f.id = c.faculty_id
WHERE c.id = $1`
	var classroom models.ClassroomWithFaculty
	if err := r.db.GetContext(ctx, &classroom, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find classroom: %w", err)
	}
	return &classroom, nil
}

// Create persists a new classroom.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	if classroom.CreatedAt.IsZero() {
		classroom.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO classrooms (id, name, capacity, faculty_id, created_at) VALUES (:id, :name, :capacity, :faculty_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// Update modifies name, capacity and owning faculty of a classroom.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	const query = `UPDATE classrooms SET name = :name, capacity = :capacity, faculty_id = :faculty_id WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, classroom)
	if err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("classroom rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a classroom and its exam-schedule links in one transaction.
// Schedules referencing the classroom survive; only the link rows cascade.
func (r *ClassroomRepository) Delete(ctx context.Context, id string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin classroom delete: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const deleteLinks = `DELETE FROM exam_schedule_classrooms WHERE classroom_id = $1`
	if _, err = tx.ExecContext(ctx, deleteLinks, id); err != nil {
		return fmt.Errorf("delete classroom schedule links: %w", err)
	}

	const deleteClassroom = `DELETE FROM classrooms WHERE id = $1`
	result, execErr := tx.ExecContext(ctx, deleteClassroom, id)
	if execErr != nil {
		err = fmt.Errorf("delete classroom: %w", execErr)
		return err
	}
	affected, affErr := result.RowsAffected()
	if affErr != nil {
		err = fmt.Errorf("classroom delete rows affected: %w", affErr)
		return err
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit classroom delete: %w", err)
	}
	return nil
}
