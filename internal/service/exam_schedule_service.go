package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type examScheduleRepository interface {
	Create(ctx context.Context, schedule *models.ExamSchedule, courseExams []models.CourseExamSchedule, classroomLinks []models.ExamScheduleClassroom) error
	List(ctx context.Context) ([]models.ExamScheduleListItem, error)
	FindByID(ctx context.Context, id string) (*models.ExamScheduleDetail, error)
}

type scheduleAuditRepository interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CourseExamInput is one per-course parameter row of a creation request.
type CourseExamInput struct {
	CourseID     string `json:"course_id" validate:"required,min=1"`
	ExamDuration int    `json:"exam_duration" validate:"required,min=30"`
	StudentCount int    `json:"student_count" validate:"min=0"`
}

// CreateExamScheduleRequest is the full validated draft submitted for the
// atomic creation transaction.
type CreateExamScheduleRequest struct {
	Title                  string            `json:"title" validate:"required,min=1"`
	FacultyID              string            `json:"faculty_id" validate:"required,min=1"`
	StartDate              time.Time         `json:"start_date" validate:"required"`
	EndDate                time.Time         `json:"end_date" validate:"required"`
	AssistantCount         int               `json:"assistant_count" validate:"min=0"`
	MaxClassesPerAssistant int               `json:"max_classes_per_assistant" validate:"required,min=1"`
	CourseExams            []CourseExamInput `json:"course_exams" validate:"required,min=1,dive"`
	SelectedClassroomIDs   []string          `json:"selected_classroom_ids" validate:"required,min=1,dive,required"`
}

// ExamScheduleService coordinates schedule reads and the compound creation
// transaction.
type ExamScheduleService struct {
	repo      examScheduleRepository
	audit     scheduleAuditRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExamScheduleService instantiates ExamScheduleService.
func NewExamScheduleService(repo examScheduleRepository, audit scheduleAuditRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ExamScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamScheduleService{repo: repo, audit: audit, metrics: metrics, validator: validate, logger: logger}
}

// List returns all schedules with faculty and course counts.
func (s *ExamScheduleService) List(ctx context.Context) ([]models.ExamScheduleListItem, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exam schedules")
	}
	return schedules, nil
}

// Get returns one schedule with its nested course and classroom rows. A
// missing schedule surfaces as not-found, to be rendered as such.
func (s *ExamScheduleService) Get(ctx context.Context, id string) (*models.ExamScheduleDetail, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exam schedule")
	}
	if schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam schedule not found")
	}
	return schedule, nil
}

// Create validates the assembled draft and commits the schedule header plus
// its course and classroom rows in one transaction.
func (s *ExamScheduleService) Create(ctx context.Context, actorID string, req CreateExamScheduleRequest) (*models.ExamSchedule, error) {
	if actorID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authenticated actor")
	}
	if err := s.Validate(req); err != nil {
		return nil, err
	}

	schedule := models.ExamSchedule{
		Title:                  req.Title,
		FacultyID:              req.FacultyID,
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		AssistantCount:         req.AssistantCount,
		MaxClassesPerAssistant: req.MaxClassesPerAssistant,
		CreatedByID:            actorID,
	}

	courseExams := make([]models.CourseExamSchedule, 0, len(req.CourseExams))
	for _, entry := range req.CourseExams {
		courseExams = append(courseExams, models.CourseExamSchedule{
			CourseID:     entry.CourseID,
			ExamDuration: entry.ExamDuration,
			StudentCount: entry.StudentCount,
		})
	}

	classroomLinks := make([]models.ExamScheduleClassroom, 0, len(req.SelectedClassroomIDs))
	for _, classroomID := range req.SelectedClassroomIDs {
		classroomLinks = append(classroomLinks, models.ExamScheduleClassroom{ClassroomID: classroomID})
	}

	if err := s.repo.Create(ctx, &schedule, courseExams, classroomLinks); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam schedule")
	}

	s.metrics.RecordScheduleCreated()
	s.logger.Info("exam schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.String("faculty_id", schedule.FacultyID),
		zap.Int("course_exams", len(courseExams)),
		zap.Int("classrooms", len(classroomLinks)),
	)

	if s.audit != nil {
		if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &actorID,
			Action:     models.AuditActionScheduleCreate,
			Resource:   "exam_schedule",
			ResourceID: &schedule.ID,
			NewValues:  []byte(`{"status":"created"}`),
		}); err != nil {
			s.logger.Warn("failed to record schedule audit log", zap.Error(err))
		}
	}

	return &schedule, nil
}

// Validate runs the full rule set over a draft without short-circuiting, so
// every violated field surfaces at once. Known structured failures map to
// specific user-facing messages ahead of the generic fallback.
func (s *ExamScheduleService) Validate(req CreateExamScheduleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	if !req.EndDate.After(req.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "end date must be after start date")
	}
	return nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid exam schedule payload"
	}
	messages := []string{}
	seen := map[string]struct{}{}
	for _, fieldErr := range fieldErrs {
		namespace := fieldErr.Namespace()
		var message string
		switch {
		case strings.Contains(namespace, "CourseExams"):
			message = "course exam details are invalid"
		case strings.Contains(namespace, "SelectedClassroomIDs"):
			message = "at least one classroom must be selected"
		case strings.Contains(namespace, "EndDate"):
			message = "end date must be after start date"
		default:
			continue
		}
		if _, ok := seen[message]; ok {
			continue
		}
		seen[message] = struct{}{}
		messages = append(messages, message)
	}
	if len(messages) == 0 {
		return "invalid exam schedule payload"
	}
	return strings.Join(messages, "; ")
}
