package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
)

func newScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func scheduleFixture() (*models.ExamSchedule, []models.CourseExamSchedule, []models.ExamScheduleClassroom) {
	schedule := &models.ExamSchedule{
		Title:                  "Fall Finals",
		FacultyID:              "fac-1",
		StartDate:              time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		EndDate:                time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC),
		AssistantCount:         4,
		MaxClassesPerAssistant: 2,
		CreatedByID:            "user-1",
	}
	courseExams := []models.CourseExamSchedule{
		{CourseID: "course-1", ExamDuration: 90, StudentCount: 120},
		{CourseID: "course-2", ExamDuration: 60, StudentCount: 45},
	}
	classroomLinks := []models.ExamScheduleClassroom{
		{ClassroomID: "room-1"},
	}
	return schedule, courseExams, classroomLinks
}

func TestExamScheduleRepositoryCreateCommitsAllRows(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewExamScheduleRepository(db)

	schedule, courseExams, classroomLinks := scheduleFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO exam_schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO course_exam_schedules").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO exam_schedule_classrooms").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), schedule, courseExams, classroomLinks)
	require.NoError(t, err)
	require.NotEmpty(t, schedule.ID)
	for _, exam := range courseExams {
		require.NotEmpty(t, exam.ID)
		require.Equal(t, schedule.ID, exam.ExamScheduleID)
	}
	for _, link := range classroomLinks {
		require.NotEmpty(t, link.ID)
		require.Equal(t, schedule.ID, link.ExamScheduleID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExamScheduleRepositoryCreateRollsBackOnCourseInsertFailure(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewExamScheduleRepository(db)

	schedule, courseExams, classroomLinks := scheduleFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO exam_schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO course_exam_schedules").WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), schedule, courseExams, classroomLinks)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExamScheduleRepositoryCreateRejectsEmptyContainers(t *testing.T) {
	db, _, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewExamScheduleRepository(db)

	schedule, courseExams, classroomLinks := scheduleFixture()

	err := repo.Create(context.Background(), schedule, nil, classroomLinks)
	require.Error(t, err)

	err = repo.Create(context.Background(), schedule, courseExams, nil)
	require.Error(t, err)

	err = repo.Create(context.Background(), nil, courseExams, classroomLinks)
	require.Error(t, err)
}

func TestExamScheduleRepositoryList(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewExamScheduleRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "title", "faculty_id", "start_date", "end_date",
		"assistant_count", "max_classes_per_assistant", "created_by_id", "created_at",
		"faculty_name", "course_count",
	}).AddRow("sched-1", "Fall Finals", "fac-1", time.Now(), time.Now(), 4, 2, "user-1", time.Now(), "Engineering", 12)

	mock.ExpectQuery("FROM exam_schedules s").WillReturnRows(rows)

	schedules, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, schedules, 1)
	require.Equal(t, "Engineering", schedules[0].FacultyName)
	require.Equal(t, 12, schedules[0].CourseCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExamScheduleRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewExamScheduleRepository(db)

	mock.ExpectQuery("FROM exam_schedules s").WithArgs("missing").WillReturnError(sql.ErrNoRows)

	detail, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, detail)
	require.NoError(t, mock.ExpectationsWereMet())
}
