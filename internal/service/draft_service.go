package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

const catalogFetchTimeout = 15 * time.Second

type scheduleCreator interface {
	Create(ctx context.Context, actorID string, req CreateExamScheduleRequest) (*models.ExamSchedule, error)
}

// CatalogFetcher adapts the course and classroom services to the draft
// builder's catalog reads.
type CatalogFetcher struct {
	courses    *CourseService
	classrooms *ClassroomService
}

// NewCatalogFetcher bundles the two faculty-scoped catalog sources.
func NewCatalogFetcher(courses *CourseService, classrooms *ClassroomService) *CatalogFetcher {
	return &CatalogFetcher{courses: courses, classrooms: classrooms}
}

// CoursesByFaculty lists a faculty's courses.
func (f *CatalogFetcher) CoursesByFaculty(ctx context.Context, facultyID string) ([]models.Course, error) {
	return f.courses.ListByFaculty(ctx, facultyID)
}

// ClassroomsByFaculty lists a faculty's classrooms.
func (f *CatalogFetcher) ClassroomsByFaculty(ctx context.Context, facultyID string) ([]models.Classroom, error) {
	return f.classrooms.ListByFaculty(ctx, facultyID)
}

// DraftHeaderRequest carries the top-level schedule fields of a draft.
// Header updates are accepted as-is; the full payload is validated once
// at submit.
type DraftHeaderRequest struct {
	Title                  string     `json:"title"`
	StartDate              *time.Time `json:"start_date"`
	EndDate                *time.Time `json:"end_date"`
	AssistantCount         int        `json:"assistant_count"`
	MaxClassesPerAssistant int        `json:"max_classes_per_assistant"`
}

// DraftService keeps one DraftBuilder per authenticated user. Drafts are
// held in memory and expire after a period of inactivity.
type DraftService struct {
	mu     sync.Mutex
	drafts map[string]*DraftBuilder

	fetcher   catalogFetcher
	schedules scheduleCreator
	ttl       time.Duration
	logger    *zap.Logger
}

// NewDraftService creates the per-user draft registry.
func NewDraftService(fetcher catalogFetcher, schedules scheduleCreator, ttl time.Duration, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		drafts:    make(map[string]*DraftBuilder),
		fetcher:   fetcher,
		schedules: schedules,
		ttl:       ttl,
		logger:    logger,
	}
}

func (s *DraftService) builderFor(userID string) *DraftBuilder {
	s.mu.Lock()
	defer s.mu.Unlock()
	builder, ok := s.drafts[userID]
	if !ok {
		builder = NewDraftBuilder(s.fetcher)
		s.drafts[userID] = builder
	}
	return builder
}

// Snapshot returns the user's current draft, creating an empty one on first
// access.
func (s *DraftService) Snapshot(userID string) models.DraftSnapshot {
	return s.builderFor(userID).Snapshot()
}

// SelectFaculty switches the user's draft to the given faculty and kicks off
// the course and classroom catalog fetches in the background. The fetches
// outlive the request, so they run on a detached context; the caller polls
// the draft to observe the loading states settle.
func (s *DraftService) SelectFaculty(ctx context.Context, userID, facultyID string) models.DraftSnapshot {
	builder := s.builderFor(userID)
	gen := builder.SelectFaculty(facultyID)

	if facultyID != "" {
		go func() {
			fetchCtx, cancel := context.WithTimeout(context.Background(), catalogFetchTimeout)
			defer cancel()
			builder.LoadCourses(fetchCtx, facultyID, gen)
		}()
		go func() {
			fetchCtx, cancel := context.WithTimeout(context.Background(), catalogFetchTimeout)
			defer cancel()
			builder.LoadClassrooms(fetchCtx, facultyID, gen)
		}()
	}
	return builder.Snapshot()
}

// SetHeader replaces the draft's title, dates and assistant fields.
func (s *DraftService) SetHeader(userID string, req DraftHeaderRequest) models.DraftSnapshot {
	builder := s.builderFor(userID)
	builder.SetHeader(req.Title, req.StartDate, req.EndDate, req.AssistantCount, req.MaxClassesPerAssistant)
	return builder.Snapshot()
}

// SetCourseExamField updates one course entry's duration or student count.
func (s *DraftService) SetCourseExamField(userID, courseID, field string, value int) (models.DraftSnapshot, error) {
	builder := s.builderFor(userID)
	if err := builder.SetCourseExamField(courseID, field, value); err != nil {
		return models.DraftSnapshot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return builder.Snapshot(), nil
}

// ToggleClassroom flips a classroom's membership in the draft selection.
func (s *DraftService) ToggleClassroom(userID, classroomID string) (models.DraftSnapshot, error) {
	builder := s.builderFor(userID)
	if err := builder.ToggleClassroom(classroomID); err != nil {
		return models.DraftSnapshot{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return builder.Snapshot(), nil
}

// Submit validates and persists the draft as an exam schedule. On success the
// draft is discarded; on failure it stays untouched so the user can correct
// and resubmit.
func (s *DraftService) Submit(ctx context.Context, userID string) (*models.ExamSchedule, error) {
	builder := s.builderFor(userID)
	req := builder.BuildRequest()

	schedule, err := s.schedules.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.Reset(userID)
	s.logger.Info("exam schedule draft submitted",
		zap.String("user_id", userID),
		zap.String("schedule_id", schedule.ID),
	)
	return schedule, nil
}

// Reset discards the user's draft.
func (s *DraftService) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}

// Sweep drops drafts idle for longer than the configured TTL and returns how
// many were removed.
func (s *DraftService) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, builder := range s.drafts {
		if now.Sub(builder.LastTouched()) > s.ttl {
			delete(s.drafts, userID)
			removed++
		}
	}
	return removed
}

// StartSweeper periodically evicts expired drafts until the context ends.
func (s *DraftService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || s.ttl <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if removed := s.Sweep(now); removed > 0 {
					s.logger.Debug("expired drafts evicted", zap.Int("count", removed))
				}
			}
		}
	}()
}
