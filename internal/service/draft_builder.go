package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/unipanel/exam-planner-api/internal/models"
)

// Draft field names accepted by SetCourseExamField.
const (
	DraftFieldExamDuration = "exam_duration"
	DraftFieldStudentCount = "student_count"
)

const (
	defaultExamDuration = 60
	defaultStudentCount = 0
)

// catalogFetcher abstracts the faculty-scoped catalog reads the builder
// depends on.
type catalogFetcher interface {
	CoursesByFaculty(ctx context.Context, facultyID string) ([]models.Course, error)
	ClassroomsByFaculty(ctx context.Context, facultyID string) ([]models.Classroom, error)
}

// DraftBuilder holds one user's in-progress exam schedule draft. Catalog
// fetches triggered by a faculty selection carry the generation current at
// launch; completions for a superseded generation are dropped, so a rapid
// faculty switch can never apply stale courses or classrooms.
type DraftBuilder struct {
	mu sync.Mutex

	facultyID              string
	title                  string
	startDate              *time.Time
	endDate                *time.Time
	assistantCount         int
	maxClassesPerAssistant int

	courseExams        []models.CourseExamEntry
	selectedClassrooms []string
	selectedIndex      map[string]struct{}

	classrooms     []models.Classroom
	courseState    models.CatalogState
	classroomState models.CatalogState
	lastError      string

	generation uint64
	fetcher    catalogFetcher
	updatedAt  time.Time
}

// NewDraftBuilder constructs an empty draft bound to a catalog fetcher.
func NewDraftBuilder(fetcher catalogFetcher) *DraftBuilder {
	return &DraftBuilder{
		fetcher:                fetcher,
		courseExams:            []models.CourseExamEntry{},
		selectedClassrooms:     []string{},
		selectedIndex:          map[string]struct{}{},
		classrooms:             []models.Classroom{},
		courseState:            models.CatalogIdle,
		classroomState:         models.CatalogIdle,
		maxClassesPerAssistant: 1,
		updatedAt:              time.Now().UTC(),
	}
}

// deriveCourseExams maps a faculty's courses to default parameter entries.
// It is a total, pure function: the previous entry list never leaks in, which
// makes a faculty switch a reset rather than a merge.
func deriveCourseExams(courses []models.Course) []models.CourseExamEntry {
	entries := make([]models.CourseExamEntry, 0, len(courses))
	for _, course := range courses {
		entries = append(entries, models.CourseExamEntry{
			CourseID:     course.ID,
			CourseName:   course.Name,
			ExamDuration: defaultExamDuration,
			StudentCount: defaultStudentCount,
		})
	}
	return entries
}

// SelectFaculty records the new selection, resets the dependent containers
// and returns the generation that any resulting catalog fetch must carry.
// An empty id clears the draft's catalog state entirely.
func (b *DraftBuilder) SelectFaculty(facultyID string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	b.facultyID = facultyID
	b.courseExams = []models.CourseExamEntry{}
	b.selectedClassrooms = []string{}
	b.selectedIndex = map[string]struct{}{}
	b.classrooms = []models.Classroom{}
	b.lastError = ""
	b.updatedAt = time.Now().UTC()

	if facultyID == "" {
		b.courseState = models.CatalogIdle
		b.classroomState = models.CatalogIdle
	} else {
		b.courseState = models.CatalogLoading
		b.classroomState = models.CatalogLoading
	}
	return b.generation
}

// LoadCourses fetches the faculty's courses for the given generation and
// applies them unless the selection moved on in the meantime.
func (b *DraftBuilder) LoadCourses(ctx context.Context, facultyID string, gen uint64) {
	courses, err := b.fetcher.CoursesByFaculty(ctx, facultyID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return
	}
	b.updatedAt = time.Now().UTC()
	if err != nil {
		b.courseExams = []models.CourseExamEntry{}
		b.courseState = models.CatalogError
		b.lastError = "failed to load faculty courses"
		return
	}
	b.courseExams = deriveCourseExams(courses)
	b.courseState = models.CatalogLoaded
}

// LoadClassrooms fetches the faculty's classrooms for the given generation
// and applies them unless the selection moved on in the meantime.
func (b *DraftBuilder) LoadClassrooms(ctx context.Context, facultyID string, gen uint64) {
	classrooms, err := b.fetcher.ClassroomsByFaculty(ctx, facultyID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return
	}
	b.updatedAt = time.Now().UTC()
	if err != nil {
		b.classrooms = []models.Classroom{}
		b.classroomState = models.CatalogError
		b.lastError = "failed to load faculty classrooms"
		return
	}
	b.classrooms = classrooms
	b.classroomState = models.CatalogLoaded
}

// SetHeader replaces the top-level schedule fields of the draft.
func (b *DraftBuilder) SetHeader(title string, startDate, endDate *time.Time, assistantCount, maxClassesPerAssistant int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.title = title
	b.startDate = startDate
	b.endDate = endDate
	b.assistantCount = assistantCount
	b.maxClassesPerAssistant = maxClassesPerAssistant
	b.updatedAt = time.Now().UTC()
}

// SetCourseExamField updates one field of one course entry, leaving the rest
// of the list untouched. Entries are keyed by course id, not index, so a
// concurrent catalog replacement cannot misdirect the edit.
func (b *DraftBuilder) SetCourseExamField(courseID, field string, value int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.courseExams {
		if b.courseExams[i].CourseID != courseID {
			continue
		}
		switch field {
		case DraftFieldExamDuration:
			b.courseExams[i].ExamDuration = value
		case DraftFieldStudentCount:
			b.courseExams[i].StudentCount = value
		default:
			return fmt.Errorf("unknown course exam field %q", field)
		}
		b.updatedAt = time.Now().UTC()
		return nil
	}
	return fmt.Errorf("course %s is not part of the draft", courseID)
}

// ToggleClassroom adds the classroom to the selection if absent and removes
// it if present. Only classrooms of the selected faculty's loaded catalog can
// be toggled.
func (b *DraftBuilder) ToggleClassroom(classroomID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	known := false
	for _, room := range b.classrooms {
		if room.ID == classroomID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("classroom %s is not part of the selected faculty", classroomID)
	}

	b.updatedAt = time.Now().UTC()
	if _, selected := b.selectedIndex[classroomID]; selected {
		delete(b.selectedIndex, classroomID)
		kept := b.selectedClassrooms[:0]
		for _, id := range b.selectedClassrooms {
			if id != classroomID {
				kept = append(kept, id)
			}
		}
		b.selectedClassrooms = kept
		return nil
	}
	b.selectedIndex[classroomID] = struct{}{}
	b.selectedClassrooms = append(b.selectedClassrooms, classroomID)
	return nil
}

// Snapshot returns a copy of the externally visible draft state.
func (b *DraftBuilder) Snapshot() models.DraftSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	courseExams := make([]models.CourseExamEntry, len(b.courseExams))
	copy(courseExams, b.courseExams)
	selected := make([]string, len(b.selectedClassrooms))
	copy(selected, b.selectedClassrooms)
	classrooms := make([]models.Classroom, len(b.classrooms))
	copy(classrooms, b.classrooms)

	return models.DraftSnapshot{
		FacultyID:              b.facultyID,
		Title:                  b.title,
		StartDate:              b.startDate,
		EndDate:                b.endDate,
		AssistantCount:         b.assistantCount,
		MaxClassesPerAssistant: b.maxClassesPerAssistant,
		CourseExams:            courseExams,
		SelectedClassroomIDs:   selected,
		Classrooms:             classrooms,
		CourseState:            b.courseState,
		ClassroomState:         b.classroomState,
		LastError:              b.lastError,
		UpdatedAt:              b.updatedAt,
	}
}

// BuildRequest assembles the creation payload from the current draft state.
func (b *DraftBuilder) BuildRequest() CreateExamScheduleRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	req := CreateExamScheduleRequest{
		Title:                  b.title,
		FacultyID:              b.facultyID,
		AssistantCount:         b.assistantCount,
		MaxClassesPerAssistant: b.maxClassesPerAssistant,
		SelectedClassroomIDs:   append([]string{}, b.selectedClassrooms...),
	}
	if b.startDate != nil {
		req.StartDate = *b.startDate
	}
	if b.endDate != nil {
		req.EndDate = *b.endDate
	}
	req.CourseExams = make([]CourseExamInput, 0, len(b.courseExams))
	for _, entry := range b.courseExams {
		req.CourseExams = append(req.CourseExams, CourseExamInput{
			CourseID:     entry.CourseID,
			ExamDuration: entry.ExamDuration,
			StudentCount: entry.StudentCount,
		})
	}
	return req
}

// LastTouched reports when the draft last changed.
func (b *DraftBuilder) LastTouched() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updatedAt
}
