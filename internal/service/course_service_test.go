package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type fakeCourseRepo struct {
	courses     []models.CourseWithContext
	byFaculty   map[string][]models.Course
	codes       map[string]bool
	createCalls int
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]models.CourseWithContext, error) {
	return f.courses, nil
}

func (f *fakeCourseRepo) ListByFaculty(ctx context.Context, facultyID string) ([]models.Course, error) {
	return f.byFaculty[facultyID], nil
}

func (f *fakeCourseRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return f.codes[code], nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, course *models.Course) error {
	f.createCalls++
	return nil
}

func TestCourseServiceCreateRejectsDuplicateCode(t *testing.T) {
	repo := &fakeCourseRepo{codes: map[string]bool{"CS201": true}}
	svc := NewCourseService(repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateCourseRequest{
		Name:         "Algorithms",
		Code:         "CS201",
		Credit:       4,
		DepartmentID: "dep-1",
	})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	require.Equal(t, 0, repo.createCalls)
}

func TestCourseServiceCreate(t *testing.T) {
	repo := &fakeCourseRepo{codes: map[string]bool{}}
	svc := NewCourseService(repo, nil, nil, nil)

	course, err := svc.Create(context.Background(), CreateCourseRequest{
		Name:         "Algorithms",
		Code:         "CS201",
		Credit:       4,
		DepartmentID: "dep-1",
	})
	require.NoError(t, err)
	require.Equal(t, "CS201", course.Code)
	require.Equal(t, 1, repo.createCalls)
}

func TestCourseServiceListByFacultyRequiresID(t *testing.T) {
	svc := NewCourseService(&fakeCourseRepo{}, nil, nil, nil)

	_, err := svc.ListByFaculty(context.Background(), "")
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCourseServiceListGroupedByFaculty(t *testing.T) {
	repo := &fakeCourseRepo{
		courses: []models.CourseWithContext{
			courseRow("course-1", "dep-1", "Computer Science", "fac-1", "Engineering"),
			courseRow("course-2", "dep-2", "Electrical", "fac-1", "Engineering"),
			courseRow("course-3", "dep-9", "Surgery", "fac-2", "Medicine"),
		},
	}
	svc := NewCourseService(repo, nil, nil, nil)

	groups, err := svc.ListGroupedByFaculty(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "Engineering", groups[0].Faculty.Name)
	require.Len(t, groups[0].Departments, 2)
	require.Equal(t, "Computer Science", groups[0].Departments[0].Department.Name)
}
