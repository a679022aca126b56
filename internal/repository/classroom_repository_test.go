package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
)

func newClassroomRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestClassroomRepositoryListByFaculty(t *testing.T) {
	db, mock, cleanup := newClassroomRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "capacity", "faculty_id", "created_at"}).
		AddRow("room-1", "A-101", 60, "fac-1", time.Now()).
		AddRow("room-2", "A-102", 40, "fac-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, capacity, faculty_id, created_at FROM classrooms WHERE faculty_id = $1 ORDER BY name ASC")).
		WithArgs("fac-1").
		WillReturnRows(rows)

	classrooms, err := repo.ListByFaculty(context.Background(), "fac-1")
	require.NoError(t, err)
	require.Len(t, classrooms, 2)
	require.Equal(t, "A-101", classrooms[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryDeleteRemovesLinksFirst(t *testing.T) {
	db, mock, cleanup := newClassroomRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_schedule_classrooms WHERE classroom_id = $1")).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classrooms WHERE id = $1")).
		WithArgs("room-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "room-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryDeleteMissingRollsBack(t *testing.T) {
	db, mock, cleanup := newClassroomRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_schedule_classrooms WHERE classroom_id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM classrooms WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassroomRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newClassroomRepoMock(t)
	defer cleanup()
	repo := NewClassroomRepository(db)

	mock.ExpectExec("UPDATE classrooms SET").WillReturnResult(sqlmock.NewResult(0, 0))

	classroom := &models.Classroom{ID: "missing", Name: "A-101", Capacity: 60, FacultyID: "fac-1"}
	err := repo.Update(context.Background(), classroom)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
