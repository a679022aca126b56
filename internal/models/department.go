package models

import "time"

// Department is a sub-unit of a faculty owning courses.
type Department struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DepartmentWithFaculty joins a department to its parent faculty for listings.
type DepartmentWithFaculty struct {
	Department
	FacultyName string `db:"faculty_name" json:"faculty_name"`
}
