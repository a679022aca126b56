package models

import "time"

// ExamSchedule is a named, time-bounded exam-planning record for one faculty.
// Schedules are created once, together with their course and classroom rows,
// and never updated afterwards.
type ExamSchedule struct {
	ID                     string    `db:"id" json:"id"`
	Title                  string    `db:"title" json:"title"`
	FacultyID              string    `db:"faculty_id" json:"faculty_id"`
	StartDate              time.Time `db:"start_date" json:"start_date"`
	EndDate                time.Time `db:"end_date" json:"end_date"`
	AssistantCount         int       `db:"assistant_count" json:"assistant_count"`
	MaxClassesPerAssistant int       `db:"max_classes_per_assistant" json:"max_classes_per_assistant"`
	CreatedByID            string    `db:"created_by_id" json:"created_by_id"`
	CreatedAt              time.Time `db:"created_at" json:"created_at"`
}

// CourseExamSchedule records a course's exam parameters within one schedule.
type CourseExamSchedule struct {
	ID             string `db:"id" json:"id"`
	ExamScheduleID string `db:"exam_schedule_id" json:"exam_schedule_id"`
	CourseID       string `db:"course_id" json:"course_id"`
	ExamDuration   int    `db:"exam_duration" json:"exam_duration"`
	StudentCount   int    `db:"student_count" json:"student_count"`
}

// ExamScheduleClassroom links a classroom to a schedule with an optional
// capacity override.
type ExamScheduleClassroom struct {
	ID                 string `db:"id" json:"id"`
	ExamScheduleID     string `db:"exam_schedule_id" json:"exam_schedule_id"`
	ClassroomID        string `db:"classroom_id" json:"classroom_id"`
	OverriddenCapacity *int   `db:"overridden_capacity" json:"overridden_capacity,omitempty"`
}

// ExamScheduleListItem is the listing projection: header, faculty name and
// the number of course exams attached.
type ExamScheduleListItem struct {
	ExamSchedule
	FacultyName string `db:"faculty_name" json:"faculty_name"`
	CourseCount int    `db:"course_count" json:"course_count"`
}

// CourseExamDetail is a course row of a schedule joined to its course.
type CourseExamDetail struct {
	CourseExamSchedule
	CourseName   string `db:"course_name" json:"course_name"`
	CourseCode   string `db:"course_code" json:"course_code"`
	CourseCredit int    `db:"course_credit" json:"course_credit"`
}

// ClassroomLinkDetail is a classroom row of a schedule joined to its classroom.
type ClassroomLinkDetail struct {
	ExamScheduleClassroom
	ClassroomName     string `db:"classroom_name" json:"classroom_name"`
	ClassroomCapacity int    `db:"classroom_capacity" json:"classroom_capacity"`
}

// ExamScheduleDetail is the full read model of one schedule: header, faculty,
// course rows ordered by course name and classroom links.
type ExamScheduleDetail struct {
	ExamSchedule
	FacultyName string                `json:"faculty_name"`
	CourseExams []CourseExamDetail    `json:"course_exams"`
	Classrooms  []ClassroomLinkDetail `json:"classrooms"`
}
