package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
)

func dateUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type fakeCatalog struct {
	courses       map[string][]models.Course
	classrooms    map[string][]models.Classroom
	courseErr     error
	classroomErr  error
	courseCalls   int
	classroomCall int
}

func (f *fakeCatalog) CoursesByFaculty(ctx context.Context, facultyID string) ([]models.Course, error) {
	f.courseCalls++
	if f.courseErr != nil {
		return nil, f.courseErr
	}
	return f.courses[facultyID], nil
}

func (f *fakeCatalog) ClassroomsByFaculty(ctx context.Context, facultyID string) ([]models.Classroom, error) {
	f.classroomCall++
	if f.classroomErr != nil {
		return nil, f.classroomErr
	}
	return f.classrooms[facultyID], nil
}

func newTestCatalog() *fakeCatalog {
	return &fakeCatalog{
		courses: map[string][]models.Course{
			"fac-1": {
				{ID: "course-1", Name: "Algorithms"},
				{ID: "course-2", Name: "Databases"},
			},
			"fac-2": {
				{ID: "course-9", Name: "Anatomy"},
			},
		},
		classrooms: map[string][]models.Classroom{
			"fac-1": {
				{ID: "room-1", Name: "A-101", FacultyID: "fac-1"},
				{ID: "room-2", Name: "A-102", FacultyID: "fac-1"},
			},
			"fac-2": {
				{ID: "room-9", Name: "M-201", FacultyID: "fac-2"},
			},
		},
	}
}

func loadFaculty(b *DraftBuilder, facultyID string) uint64 {
	gen := b.SelectFaculty(facultyID)
	b.LoadCourses(context.Background(), facultyID, gen)
	b.LoadClassrooms(context.Background(), facultyID, gen)
	return gen
}

func TestDeriveCourseExamsDefaults(t *testing.T) {
	entries := deriveCourseExams([]models.Course{
		{ID: "course-1", Name: "Algorithms"},
		{ID: "course-2", Name: "Databases"},
	})
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Equal(t, defaultExamDuration, entry.ExamDuration)
		require.Equal(t, defaultStudentCount, entry.StudentCount)
	}
	require.Equal(t, "course-1", entries[0].CourseID)
	require.Equal(t, "Algorithms", entries[0].CourseName)
}

func TestDraftBuilderSelectFacultyLoadsCatalogs(t *testing.T) {
	b := NewDraftBuilder(newTestCatalog())
	loadFaculty(b, "fac-1")

	snap := b.Snapshot()
	require.Equal(t, models.CatalogLoaded, snap.CourseState)
	require.Equal(t, models.CatalogLoaded, snap.ClassroomState)
	require.Len(t, snap.CourseExams, 2)
	require.Len(t, snap.Classrooms, 2)
	require.Empty(t, snap.SelectedClassroomIDs)
}

func TestDraftBuilderFacultySwitchDiscardsEdits(t *testing.T) {
	b := NewDraftBuilder(newTestCatalog())
	loadFaculty(b, "fac-1")

	require.NoError(t, b.SetCourseExamField("course-1", DraftFieldExamDuration, 120))
	require.NoError(t, b.ToggleClassroom("room-1"))

	loadFaculty(b, "fac-2")

	snap := b.Snapshot()
	require.Equal(t, "fac-2", snap.FacultyID)
	require.Len(t, snap.CourseExams, 1)
	require.Equal(t, "course-9", snap.CourseExams[0].CourseID)
	require.Equal(t, defaultExamDuration, snap.CourseExams[0].ExamDuration)
	require.Empty(t, snap.SelectedClassroomIDs)
}

func TestDraftBuilderStaleFetchIsDropped(t *testing.T) {
	catalog := newTestCatalog()
	b := NewDraftBuilder(catalog)

	staleGen := b.SelectFaculty("fac-1")
	freshGen := b.SelectFaculty("fac-2")

	b.LoadCourses(context.Background(), "fac-2", freshGen)
	b.LoadClassrooms(context.Background(), "fac-2", freshGen)

	// The slow first fetch lands after the switch and must not apply.
	b.LoadCourses(context.Background(), "fac-1", staleGen)
	b.LoadClassrooms(context.Background(), "fac-1", staleGen)

	snap := b.Snapshot()
	require.Equal(t, "fac-2", snap.FacultyID)
	require.Len(t, snap.CourseExams, 1)
	require.Equal(t, "course-9", snap.CourseExams[0].CourseID)
	require.Len(t, snap.Classrooms, 1)
	require.Equal(t, "room-9", snap.Classrooms[0].ID)
}

func TestDraftBuilderClearFacultyResetsToIdle(t *testing.T) {
	b := NewDraftBuilder(newTestCatalog())
	loadFaculty(b, "fac-1")

	b.SelectFaculty("")

	snap := b.Snapshot()
	require.Empty(t, snap.FacultyID)
	require.Equal(t, models.CatalogIdle, snap.CourseState)
	require.Equal(t, models.CatalogIdle, snap.ClassroomState)
	require.Empty(t, snap.CourseExams)
	require.Empty(t, snap.Classrooms)
	require.Empty(t, snap.SelectedClassroomIDs)
}

func TestDraftBuilderFetchErrorSetsErrorState(t *testing.T) {
	catalog := newTestCatalog()
	catalog.courseErr = errors.New("db down")
	b := NewDraftBuilder(catalog)
	loadFaculty(b, "fac-1")

	snap := b.Snapshot()
	require.Equal(t, models.CatalogError, snap.CourseState)
	require.Equal(t, models.CatalogLoaded, snap.ClassroomState)
	require.Empty(t, snap.CourseExams)
	require.NotEmpty(t, snap.LastError)
}

func TestDraftBuilderToggleClassroom(t *testing.T) {
	b := NewDraftBuilder(newTestCatalog())
	loadFaculty(b, "fac-1")

	require.NoError(t, b.ToggleClassroom("room-1"))
	require.NoError(t, b.ToggleClassroom("room-2"))
	require.Equal(t, []string{"room-1", "room-2"}, b.Snapshot().SelectedClassroomIDs)

	require.NoError(t, b.ToggleClassroom("room-1"))
	require.Equal(t, []string{"room-2"}, b.Snapshot().SelectedClassroomIDs)

	require.Error(t, b.ToggleClassroom("room-9"))
}

func TestDraftBuilderSetCourseExamField(t *testing.T) {
	b := NewDraftBuilder(newTestCatalog())
	loadFaculty(b, "fac-1")

	require.NoError(t, b.SetCourseExamField("course-2", DraftFieldExamDuration, 120))
	require.NoError(t, b.SetCourseExamField("course-2", DraftFieldStudentCount, 75))

	snap := b.Snapshot()
	require.Equal(t, 120, snap.CourseExams[1].ExamDuration)
	require.Equal(t, 75, snap.CourseExams[1].StudentCount)
	require.Equal(t, defaultExamDuration, snap.CourseExams[0].ExamDuration)

	require.Error(t, b.SetCourseExamField("course-99", DraftFieldExamDuration, 60))
	require.Error(t, b.SetCourseExamField("course-1", "title", 1))
}

func TestDraftBuilderBuildRequest(t *testing.T) {
	b := NewDraftBuilder(newTestCatalog())
	loadFaculty(b, "fac-1")

	start := dateUTC(2026, 6, 1)
	end := dateUTC(2026, 6, 12)
	b.SetHeader("Spring Finals", &start, &end, 3, 2)
	require.NoError(t, b.SetCourseExamField("course-1", DraftFieldStudentCount, 90))
	require.NoError(t, b.ToggleClassroom("room-1"))

	req := b.BuildRequest()
	require.Equal(t, "Spring Finals", req.Title)
	require.Equal(t, "fac-1", req.FacultyID)
	require.Equal(t, start, req.StartDate)
	require.Equal(t, end, req.EndDate)
	require.Len(t, req.CourseExams, 2)
	require.Equal(t, 90, req.CourseExams[0].StudentCount)
	require.Equal(t, []string{"room-1"}, req.SelectedClassroomIDs)
}
