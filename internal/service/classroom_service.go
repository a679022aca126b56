package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type classroomRepository interface {
	List(ctx context.Context) ([]models.ClassroomWithFaculty, error)
	ListByFaculty(ctx context.Context, facultyID string) ([]models.Classroom, error)
	FindByID(ctx context.Context, id string) (*models.ClassroomWithFaculty, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	Delete(ctx context.Context, id string) error
}

// CreateClassroomRequest captures fields for creating a classroom.
type CreateClassroomRequest struct {
	Name      string `json:"name" validate:"required,min=1"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
	FacultyID string `json:"faculty_id" validate:"required,min=1"`
}

// UpdateClassroomRequest modifies classroom fields.
type UpdateClassroomRequest struct {
	Name      string `json:"name" validate:"required,min=1"`
	Capacity  int    `json:"capacity" validate:"required,min=1"`
	FacultyID string `json:"faculty_id" validate:"required,min=1"`
}

// ClassroomService handles classroom workflows.
type ClassroomService struct {
	repo      classroomRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService creates a new classroom service.
func NewClassroomService(repo classroomRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// List returns all classrooms with their parent faculty.
func (s *ClassroomService) List(ctx context.Context) ([]models.ClassroomWithFaculty, error) {
	classrooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return classrooms, nil
}

// ListGroupedByFaculty folds the flat classroom listing into per-faculty groups.
func (s *ClassroomService) ListGroupedByFaculty(ctx context.Context) ([]ClassroomGroup, error) {
	classrooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupClassroomsByFaculty(classrooms), nil
}

// ListByFaculty returns a faculty's classrooms, served from the catalog cache
// when warm.
func (s *ClassroomService) ListByFaculty(ctx context.Context, facultyID string) ([]models.Classroom, error) {
	if facultyID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "faculty id is required")
	}

	key := classroomCatalogKey(facultyID)
	var cached []models.Classroom
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	classrooms, err := s.repo.ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculty classrooms")
	}

	if err := s.cache.Set(ctx, key, classrooms, 0); err != nil {
		s.logger.Warn("classroom catalog cache write failed", zap.String("faculty_id", facultyID), zap.Error(err))
	}
	return classrooms, nil
}

// Get returns one classroom by identifier.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.ClassroomWithFaculty, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	return classroom, nil
}

// Create inserts a new classroom.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	classroom := models.Classroom{Name: req.Name, Capacity: req.Capacity, FacultyID: req.FacultyID}
	if err := s.repo.Create(ctx, &classroom); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}

	s.invalidateCatalog(ctx)
	return &classroom, nil
}

// Update modifies an existing classroom.
func (s *ClassroomService) Update(ctx context.Context, id string, req UpdateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}

	classroom := models.Classroom{ID: id, Name: req.Name, Capacity: req.Capacity, FacultyID: req.FacultyID}
	if err := s.repo.Update(ctx, &classroom); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}

	s.invalidateCatalog(ctx)
	return &classroom, nil
}

// Delete removes a classroom; its exam-schedule links cascade with it while
// the schedules themselves remain.
func (s *ClassroomService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}

	s.invalidateCatalog(ctx)
	return nil
}

func (s *ClassroomService) invalidateCatalog(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "catalog:classrooms:*"); err != nil {
		s.logger.Warn("classroom catalog invalidation failed", zap.Error(err))
	}
}

func classroomCatalogKey(facultyID string) string {
	return fmt.Sprintf("catalog:classrooms:%s", facultyID)
}
