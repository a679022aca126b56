package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context) ([]models.CourseWithContext, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.Course, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
}

// CreateCourseRequest captures fields for creating a course.
type CreateCourseRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	Code         string `json:"code" validate:"required,min=1"`
	Credit       int    `json:"credit" validate:"required,min=1"`
	DepartmentID string `json:"department_id" validate:"required,min=1"`
}

// CourseService handles course workflows, including the faculty-scoped
// listing the draft builder feeds on.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService creates a new course service.
func NewCourseService(repo courseRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all courses with department and faculty context.
func (s *CourseService) List(ctx context.Context) ([]models.CourseWithContext, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}

// ListGroupedByFaculty folds the flat course listing into per-faculty groups.
func (s *CourseService) ListGroupedByFaculty(ctx context.Context) ([]CourseGroup, error) {
	courses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupCoursesByFaculty(courses), nil
}

// ListByFaculty returns a faculty's courses ordered by name, served from the
// catalog cache when warm.
func (s *CourseService) ListByFaculty(ctx context.Context, facultyID string) ([]models.Course, error) {
	if facultyID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty id is required")
	}

	key := courseCatalogKey(facultyID)
	var cached []models.Course
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	courses, err := s.repo.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty courses")
	}

	if err := s.cache.Set(ctx, key, courses, 0); err != nil {
		s.logger.Warn("course catalog cache write failed", zap.String("faculty_id", facultyID), zap.Error(err))
	}
	return courses, nil
}

// Create inserts a new course enforcing global code uniqueness.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check course code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "course code already in use")
	}

	course := models.Course{
		Name:         req.Name,
		Code:         req.Code,
		Credit:       req.Credit,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repo.Create(ctx, &course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	if err := s.cache.Invalidate(ctx, "catalog:courses:*"); err != nil {
		s.logger.Warn("course catalog invalidation failed", zap.Error(err))
	}
	return &course, nil
}

func courseCatalogKey(facultyID string) string {
	return fmt.Sprintf("catalog:courses:%s", facultyID)
}
