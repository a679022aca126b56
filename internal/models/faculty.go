package models

import "time"

// Faculty is a top-level academic unit owning departments and classrooms.
type Faculty struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	CreatedByID string    `db:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// FacultyDetail carries a faculty together with its departments.
type FacultyDetail struct {
	Faculty
	Departments []Department `json:"departments"`
}
