package models

import "time"

// Course is a teachable unit with a code and credit value.
type Course struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Code         string    `db:"code" json:"code"`
	Credit       int       `db:"credit" json:"credit"`
	DepartmentID string    `db:"department_id" json:"department_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CourseWithContext joins a course to its department and owning faculty.
type CourseWithContext struct {
	Course
	DepartmentName string `db:"department_name" json:"department_name"`
	FacultyID      string `db:"faculty_id" json:"faculty_id"`
	FacultyName    string `db:"faculty_name" json:"faculty_name"`
}
