package models

import "time"

// Classroom is a physical room with a seating capacity, owned by a faculty.
type Classroom struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	FacultyID string    `db:"faculty_id" json:"faculty_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ClassroomWithFaculty joins a classroom to its parent faculty for listings.
type ClassroomWithFaculty struct {
	Classroom
	FacultyName string `db:"faculty_name" json:"faculty_name"`
}
