package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type fakeDepartmentRepo struct {
	departments []models.DepartmentWithFaculty
	createCalls int
}

func (f *fakeDepartmentRepo) List(ctx context.Context) ([]models.DepartmentWithFaculty, error) {
	return f.departments, nil
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	f.createCalls++
	return nil
}

type fakeFacultyExistence struct {
	existing map[string]bool
}

func (f *fakeFacultyExistence) List(ctx context.Context) ([]models.FacultyDetail, error) {
	return nil, nil
}

func (f *fakeFacultyExistence) FindByID(ctx context.Context, id string) (*models.FacultyDetail, error) {
	return nil, nil
}

func (f *fakeFacultyExistence) Exists(ctx context.Context, id string) (bool, error) {
	return f.existing[id], nil
}

func (f *fakeFacultyExistence) Create(ctx context.Context, faculty *models.Faculty) error {
	return nil
}

func TestDepartmentServiceListGroupedByFaculty(t *testing.T) {
	repo := &fakeDepartmentRepo{
		departments: []models.DepartmentWithFaculty{
			departmentRow("dep-1", "fac-1", "Engineering"),
			departmentRow("dep-2", "fac-2", "Medicine"),
			departmentRow("dep-3", "fac-1", "Engineering"),
		},
	}
	svc := NewDepartmentService(repo, &fakeFacultyExistence{}, nil, nil)

	groups, err := svc.ListGroupedByFaculty(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "Engineering", groups[0].Faculty.Name)
	require.Len(t, groups[0].Departments, 2)
	require.Equal(t, "Medicine", groups[1].Faculty.Name)
}

func TestDepartmentServiceCreateRequiresExistingFaculty(t *testing.T) {
	repo := &fakeDepartmentRepo{}
	faculties := &fakeFacultyExistence{existing: map[string]bool{"fac-1": true}}
	svc := NewDepartmentService(repo, faculties, nil, nil)

	_, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Surgery", FacultyID: "fac-404"})
	require.Error(t, err)
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
	require.Equal(t, 0, repo.createCalls)

	department, err := svc.Create(context.Background(), CreateDepartmentRequest{Name: "Surgery", FacultyID: "fac-1"})
	require.NoError(t, err)
	require.Equal(t, "fac-1", department.FacultyID)
	require.Equal(t, 1, repo.createCalls)
}
