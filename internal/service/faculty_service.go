package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type facultyRepository interface {
	List(ctx context.Context) ([]models.FacultyDetail, error)
	FindByID(ctx context.Context, id string) (*models.FacultyDetail, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, faculty *models.Faculty) error
}

// CreateFacultyRequest captures fields for creating a faculty.
type CreateFacultyRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// FacultyService handles faculty workflows.
type FacultyService struct {
	repo      facultyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFacultyService creates a new faculty service.
func NewFacultyService(repo facultyRepository, validate *validator.Validate, logger *zap.Logger) *FacultyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FacultyService{repo: repo, validator: validate, logger: logger}
}

// List returns all faculties with their departments.
func (s *FacultyService) List(ctx context.Context) ([]models.FacultyDetail, error) {
	faculties, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list faculties")
	}
	return faculties, nil
}

// Get returns one faculty by identifier. A missing faculty is a not-found
// display state, not an internal error.
func (s *FacultyService) Get(ctx context.Context, id string) (*models.FacultyDetail, error) {
	faculty, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load faculty")
	}
	if faculty == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}
	return faculty, nil
}

// Create inserts a new faculty recording the authenticated actor as creator.
func (s *FacultyService) Create(ctx context.Context, actorID string, req CreateFacultyRequest) (*models.Faculty, error) {
	if actorID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing authenticated actor")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid faculty payload")
	}

	faculty := models.Faculty{Name: req.Name, CreatedByID: actorID}
	if err := s.repo.Create(ctx, &faculty); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create faculty")
	}
	return &faculty, nil
}
