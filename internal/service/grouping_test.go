package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/unipanel/exam-planner-api/internal/models"
)

func classroomRow(id, facultyID, facultyName string) models.ClassroomWithFaculty {
	return models.ClassroomWithFaculty{
		Classroom:   models.Classroom{ID: id, FacultyID: facultyID},
		FacultyName: facultyName,
	}
}

func departmentRow(id, facultyID, facultyName string) models.DepartmentWithFaculty {
	return models.DepartmentWithFaculty{
		Department:  models.Department{ID: id, FacultyID: facultyID},
		FacultyName: facultyName,
	}
}

func courseRow(id, departmentID, departmentName, facultyID, facultyName string) models.CourseWithContext {
	return models.CourseWithContext{
		Course:         models.Course{ID: id, DepartmentID: departmentID},
		DepartmentName: departmentName,
		FacultyID:      facultyID,
		FacultyName:    facultyName,
	}
}

func TestGroupClassroomsByFacultyFirstSeenOrder(t *testing.T) {
	rows := []models.ClassroomWithFaculty{
		classroomRow("room-1", "fac-2", "Medicine"),
		classroomRow("room-2", "fac-1", "Engineering"),
		classroomRow("room-3", "fac-2", "Medicine"),
		classroomRow("room-4", "fac-1", "Engineering"),
	}

	groups := GroupClassroomsByFaculty(rows)
	require.Len(t, groups, 2)
	require.Equal(t, "fac-2", groups[0].Faculty.ID)
	require.Equal(t, "Medicine", groups[0].Faculty.Name)
	require.Len(t, groups[0].Classrooms, 2)
	require.Equal(t, "fac-1", groups[1].Faculty.ID)
	require.Len(t, groups[1].Classrooms, 2)
}

func TestGroupClassroomsByFacultyEmpty(t *testing.T) {
	groups := GroupClassroomsByFaculty(nil)
	require.NotNil(t, groups)
	require.Empty(t, groups)
}

func TestGroupDepartmentsByFacultyFirstSeenOrder(t *testing.T) {
	rows := []models.DepartmentWithFaculty{
		departmentRow("dep-1", "fac-1", "Engineering"),
		departmentRow("dep-2", "fac-2", "Medicine"),
		departmentRow("dep-3", "fac-1", "Engineering"),
	}

	groups := GroupDepartmentsByFaculty(rows)
	require.Len(t, groups, 2)
	require.Equal(t, "fac-1", groups[0].Faculty.ID)
	require.Equal(t, "Engineering", groups[0].Faculty.Name)
	require.Len(t, groups[0].Departments, 2)
	require.Equal(t, "fac-2", groups[1].Faculty.ID)
	require.Equal(t, "dep-2", groups[1].Departments[0].ID)
}

func TestGroupDepartmentsByFacultyEmpty(t *testing.T) {
	groups := GroupDepartmentsByFaculty(nil)
	require.NotNil(t, groups)
	require.Empty(t, groups)
}

func TestGroupCoursesByFacultyNestsDepartments(t *testing.T) {
	rows := []models.CourseWithContext{
		courseRow("course-1", "dep-1", "Computer Science", "fac-1", "Engineering"),
		courseRow("course-2", "dep-2", "Electrical", "fac-1", "Engineering"),
		courseRow("course-3", "dep-1", "Computer Science", "fac-1", "Engineering"),
		courseRow("course-4", "dep-9", "Surgery", "fac-2", "Medicine"),
	}

	groups := GroupCoursesByFaculty(rows)
	require.Len(t, groups, 2)

	require.Equal(t, "fac-1", groups[0].Faculty.ID)
	require.Len(t, groups[0].Departments, 2)
	require.Equal(t, "dep-1", groups[0].Departments[0].Department.ID)
	require.Equal(t, "Computer Science", groups[0].Departments[0].Department.Name)
	require.Len(t, groups[0].Departments[0].Courses, 2)
	require.Equal(t, "course-1", groups[0].Departments[0].Courses[0].ID)
	require.Equal(t, "course-3", groups[0].Departments[0].Courses[1].ID)
	require.Equal(t, "dep-2", groups[0].Departments[1].Department.ID)
	require.Len(t, groups[0].Departments[1].Courses, 1)

	require.Equal(t, "fac-2", groups[1].Faculty.ID)
	require.Len(t, groups[1].Departments, 1)
	require.Equal(t, "course-4", groups[1].Departments[0].Courses[0].ID)
}

func TestGroupCoursesByFacultyDeterministic(t *testing.T) {
	rows := []models.CourseWithContext{
		courseRow("course-1", "dep-1", "Computer Science", "fac-1", "Engineering"),
		courseRow("course-2", "dep-9", "Surgery", "fac-2", "Medicine"),
		courseRow("course-3", "dep-1", "Computer Science", "fac-1", "Engineering"),
	}

	first := GroupCoursesByFaculty(rows)
	second := GroupCoursesByFaculty(rows)
	require.Equal(t, first, second)

	require.Len(t, first, 2)
	require.Equal(t, "fac-1", first[0].Faculty.ID)
	require.Len(t, first[0].Departments[0].Courses, 2)
	require.Equal(t, "course-2", first[1].Departments[0].Courses[0].ID)
}

func TestGroupCoursesByFacultyEmpty(t *testing.T) {
	groups := GroupCoursesByFaculty(nil)
	require.NotNil(t, groups)
	require.Empty(t, groups)
}
