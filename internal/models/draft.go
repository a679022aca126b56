package models

import "time"

// CatalogState names the lifecycle of the faculty-scoped catalog fetch that
// feeds a schedule draft.
type CatalogState string

const (
	CatalogIdle    CatalogState = "idle"
	CatalogLoading CatalogState = "loading"
	CatalogLoaded  CatalogState = "loaded"
	CatalogError   CatalogState = "error"
)

// CourseExamEntry is one per-course parameter row of a draft, keyed by course id.
type CourseExamEntry struct {
	CourseID     string `json:"course_id"`
	CourseName   string `json:"course_name"`
	ExamDuration int    `json:"exam_duration"`
	StudentCount int    `json:"student_count"`
}

// DraftSnapshot is the externally visible state of one user's schedule draft.
type DraftSnapshot struct {
	FacultyID              string            `json:"faculty_id"`
	Title                  string            `json:"title"`
	StartDate              *time.Time        `json:"start_date,omitempty"`
	EndDate                *time.Time        `json:"end_date,omitempty"`
	AssistantCount         int               `json:"assistant_count"`
	MaxClassesPerAssistant int               `json:"max_classes_per_assistant"`
	CourseExams            []CourseExamEntry `json:"course_exams"`
	SelectedClassroomIDs   []string          `json:"selected_classroom_ids"`
	Classrooms             []Classroom       `json:"classrooms"`
	CourseState            CatalogState      `json:"course_state"`
	ClassroomState         CatalogState      `json:"classroom_state"`
	LastError              string            `json:"last_error,omitempty"`
	UpdatedAt              time.Time         `json:"updated_at"`
}
