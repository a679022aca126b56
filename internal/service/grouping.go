package service

import "github.com/unipanel/exam-planner-api/internal/models"

// FacultyRef identifies the faculty heading a display group.
type FacultyRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DepartmentRef identifies the department heading a nested course group.
type DepartmentRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClassroomGroup is one faculty with its classrooms for grouped display.
type ClassroomGroup struct {
	Faculty    FacultyRef                    `json:"faculty"`
	Classrooms []models.ClassroomWithFaculty `json:"classrooms"`
}

// DepartmentGroup is one faculty with its departments for grouped display.
type DepartmentGroup struct {
	Faculty     FacultyRef                     `json:"faculty"`
	Departments []models.DepartmentWithFaculty `json:"departments"`
}

// DepartmentCourseGroup is one department with its courses inside a faculty group.
type DepartmentCourseGroup struct {
	Department DepartmentRef              `json:"department"`
	Courses    []models.CourseWithContext `json:"courses"`
}

// CourseGroup is one faculty with its courses nested under their departments.
type CourseGroup struct {
	Faculty     FacultyRef              `json:"faculty"`
	Departments []DepartmentCourseGroup `json:"departments"`
}

// GroupClassroomsByFaculty folds flat classroom rows into per-faculty groups.
// Group order follows the first occurrence of each faculty in the input, so
// the fold is deterministic and idempotent.
func GroupClassroomsByFaculty(classrooms []models.ClassroomWithFaculty) []ClassroomGroup {
	groups := []ClassroomGroup{}
	index := make(map[string]int, len(classrooms))
	for _, room := range classrooms {
		pos, seen := index[room.FacultyID]
		if !seen {
			pos = len(groups)
			index[room.FacultyID] = pos
			groups = append(groups, ClassroomGroup{
				Faculty: FacultyRef{ID: room.FacultyID, Name: room.FacultyName},
			})
		}
		groups[pos].Classrooms = append(groups[pos].Classrooms, room)
	}
	return groups
}

// GroupDepartmentsByFaculty folds flat department rows into per-faculty
// groups, preserving first-seen faculty order.
func GroupDepartmentsByFaculty(departments []models.DepartmentWithFaculty) []DepartmentGroup {
	groups := []DepartmentGroup{}
	index := make(map[string]int, len(departments))
	for _, dept := range departments {
		pos, seen := index[dept.FacultyID]
		if !seen {
			pos = len(groups)
			index[dept.FacultyID] = pos
			groups = append(groups, DepartmentGroup{
				Faculty: FacultyRef{ID: dept.FacultyID, Name: dept.FacultyName},
			})
		}
		groups[pos].Departments = append(groups[pos].Departments, dept)
	}
	return groups
}

// GroupCoursesByFaculty folds flat course rows into faculty groups nesting
// department groups, preserving first-seen order at both levels.
func GroupCoursesByFaculty(courses []models.CourseWithContext) []CourseGroup {
	groups := []CourseGroup{}
	facultyIndex := make(map[string]int, len(courses))
	departmentIndex := make(map[string]map[string]int, len(courses))
	for _, course := range courses {
		fpos, seen := facultyIndex[course.FacultyID]
		if !seen {
			fpos = len(groups)
			facultyIndex[course.FacultyID] = fpos
			departmentIndex[course.FacultyID] = map[string]int{}
			groups = append(groups, CourseGroup{
				Faculty: FacultyRef{ID: course.FacultyID, Name: course.FacultyName},
			})
		}

		departments := departmentIndex[course.FacultyID]
		dpos, seen := departments[course.DepartmentID]
		if !seen {
			dpos = len(groups[fpos].Departments)
			departments[course.DepartmentID] = dpos
			groups[fpos].Departments = append(groups[fpos].Departments, DepartmentCourseGroup{
				Department: DepartmentRef{ID: course.DepartmentID, Name: course.DepartmentName},
			})
		}
		groups[fpos].Departments[dpos].Courses = append(groups[fpos].Departments[dpos].Courses, course)
	}
	return groups
}
