package models

// DashboardSummary aggregates entity counts for the admin landing page.
type DashboardSummary struct {
	FacultyCount      int `db:"faculty_count" json:"faculty_count"`
	DepartmentCount   int `db:"department_count" json:"department_count"`
	CourseCount       int `db:"course_count" json:"course_count"`
	ClassroomCount    int `db:"classroom_count" json:"classroom_count"`
	ExamScheduleCount int `db:"exam_schedule_count" json:"exam_schedule_count"`
}
