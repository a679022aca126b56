package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unipanel/exam-planner-api/internal/models"
	appErrors "github.com/unipanel/exam-planner-api/pkg/errors"
)

type departmentRepository interface {
	List(ctx context.Context) ([]models.DepartmentWithFaculty, error)
	Create(ctx context.Context, department *models.Department) error
}

// CreateDepartmentRequest captures fields for creating a department.
type CreateDepartmentRequest struct {
	Name      string `json:"name" validate:"required,min=1"`
	FacultyID string `json:"faculty_id" validate:"required,min=1"`
}

// DepartmentService handles department workflows.
type DepartmentService struct {
	repo      departmentRepository
	faculties facultyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(repo departmentRepository, faculties facultyRepository, validate *validator.Validate, logger *zap.Logger) *DepartmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, faculties: faculties, validator: validate, logger: logger}
}

// List returns all departments with their parent faculty.
func (s *DepartmentService) List(ctx context.Context) ([]models.DepartmentWithFaculty, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list departments")
	}
	return departments, nil
}

// ListGroupedByFaculty folds the flat department listing into per-faculty groups.
func (s *DepartmentService) ListGroupedByFaculty(ctx context.Context) ([]DepartmentGroup, error) {
	departments, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return GroupDepartmentsByFaculty(departments), nil
}

// Create inserts a new department under an existing faculty.
func (s *DepartmentService) Create(ctx context.Context, req CreateDepartmentRequest) (*models.Department, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid department payload")
	}

	exists, err := s.faculties.Exists(ctx, req.FacultyID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check faculty")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "faculty not found")
	}

	department := models.Department{Name: req.Name, FacultyID: req.FacultyID}
	if err := s.repo.Create(ctx, &department); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create department")
	}
	return &department, nil
}
