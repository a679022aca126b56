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

// ExamScheduleRepository persists exam schedules together with their course
// and classroom rows.
type ExamScheduleRepository struct {
	db *sqlx.DB
}

// NewExamScheduleRepository constructs the repository.
func NewExamScheduleRepository(db *sqlx.DB) *ExamScheduleRepository {
	return &ExamScheduleRepository{db: db}
}

// Create inserts the schedule header, its course exam rows and its classroom
// links as one transaction. Either all three land or none do.
func (r *ExamScheduleRepository) Create(ctx context.Context, schedule *models.ExamSchedule, courseExams []models.CourseExamSchedule, classroomLinks []models.ExamScheduleClassroom) (err error) {
	if schedule == nil {
		return fmt.Errorf("schedule payload is nil")
	}
	if len(courseExams) == 0 {
		return fmt.Errorf("at least one course exam row is required")
	}
	if len(classroomLinks) == 0 {
		return fmt.Errorf("at least one classroom link is required")
	}

	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}
	for i := range courseExams {
		if courseExams[i].ID == "" {
			courseExams[i].ID = uuid.NewString()
		}
		courseExams[i].ExamScheduleID = schedule.ID
	}
	for i := range classroomLinks {
		if classroomLinks[i].ID == "" {
			classroomLinks[i].ID = uuid.NewString()
		}
		classroomLinks[i].ExamScheduleID = schedule.ID
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const insertHeader = `
INSERT INTO exam_schedules (id, title, faculty_id, start_date, end_date, assistant_count, max_classes_per_assistant, created_by_id, created_at)
VALUES (:id, :title, :faculty_id, :start_date, :end_date, :assistant_count, :max_classes_per_assistant, :created_by_id, :created_at)`
	if _, err = sqlx.NamedExecContext(ctx, tx, insertHeader, schedule); err != nil {
		return fmt.Errorf("insert exam schedule: %w", err)
	}

	const insertCourseExams = `
INSERT INTO course_exam_schedules (id, exam_schedule_id, course_id, exam_duration, student_count)
VALUES (:id, :exam_schedule_id, :course_id, :exam_duration, :student_count)`
	if _, err = sqlx.NamedExecContext(ctx, tx, insertCourseExams, courseExams); err != nil {
		return fmt.Errorf("insert course exam rows: %w", err)
	}

	const insertClassrooms = `
INSERT INTO exam_schedule_classrooms (id, exam_schedule_id, classroom_id, overridden_capacity)
VALUES (:id, :exam_schedule_id, :classroom_id, :overridden_capacity)`
	if _, err = sqlx.NamedExecContext(ctx, tx, insertClassrooms, classroomLinks); err != nil {
		return fmt.Errorf("insert classroom links: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit exam schedule: %w", err)
	}
	return nil
}

// List returns all schedules newest first with faculty name and the number of
// attached course exams.
func (r *ExamScheduleRepository) List(ctx context.Context) ([]models.ExamScheduleListItem, error) {
	const query = `
SELECT
	s.id, s.title, s.faculty_id, s.start_date, s.end_date,
	s.assistant_count, s.max_classes_per_assistant, s.created_by_id, s.created_at,
	f.name AS faculty_name,
	COUNT(ces.id) AS course_count
FROM exam_schedules s
JOIN faculties f ON f.id = s.faculty_id
LEFT JOIN course_exam_schedules ces ON ces.exam_schedule_id = s.id
GROUP BY s.id, f.name
ORDER BY s.created_at DESC`
	schedules := []models.ExamScheduleListItem{}
	if err := r.db.SelectContext(ctx, &schedules, query); err != nil {
		return nil, fmt.Errorf("list exam schedules: %w", err)
	}
	return schedules, nil
}

// FindByID loads one schedule with faculty, course rows ordered by course name
// and classroom links. Returns (nil, nil) when no schedule matches.
func (r *ExamScheduleRepository) FindByID(ctx context.Context, id string) (*models.ExamScheduleDetail, error) {
	const headerQuery = `
SELECT
	s.id, s.title, s.faculty_id, s.start_date, s.end_date,
	s.assistant_count, s.max_classes_per_assistant, s.created_by_id, s.created_at,
	f.name AS faculty_name
FROM exam_schedules s
JOIN faculties f ON f.id = s.faculty_id
WHERE s.id = $1`
	var header struct {
		models.ExamSchedule
		FacultyName string `db:"faculty_name"`
	}
	if err := r.db.GetContext(ctx, &header, headerQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find exam schedule: %w", err)
	}

	const courseQuery = `
SELECT
	ces.id, ces.exam_schedule_id, ces.course_id, ces.exam_duration, ces.student_count,
	c.name AS course_name,
	c.code AS course_code,
	c.credit AS course_credit
FROM course_exam_schedules ces
JOIN courses c ON c.id = ces.course_id
WHERE ces.exam_schedule_id = $1
ORDER BY c.name ASC`
	courseExams := []models.CourseExamDetail{}
	if err := r.db.SelectContext(ctx, &courseExams, courseQuery, id); err != nil {
		return nil, fmt.Errorf("load schedule course exams: %w", err)
	}

	const classroomQuery = `
SELECT
	esc.id, esc.exam_schedule_id, esc.classroom_id, esc.overridden_capacity,
	cl.name AS classroom_name,
	cl.capacity AS classroom_capacity
FROM exam_schedule_classrooms esc
JOIN classrooms cl ON cl.id = esc.classroom_id
WHERE esc.exam_schedule_id = $1
ORDER BY cl.name ASC`
	classrooms := []models.ClassroomLinkDetail{}
	if err := r.db.SelectContext(ctx, &classrooms, classroomQuery, id); err != nil {
		return nil, fmt.Errorf("load schedule classrooms: %w", err)
	}

	return &models.ExamScheduleDetail{
		ExamSchedule: header.ExamSchedule,
		FacultyName:  header.FacultyName,
		CourseExams:  courseExams,
		Classrooms:   classrooms,
	}, nil
}
