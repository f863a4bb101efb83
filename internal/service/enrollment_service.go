package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListByEmail(ctx context.Context, email string) ([]models.Enrollment, error)
}

// EnrollRequest records a completed enrollment after payment. Removing the
// originating cart entry stays the caller's responsibility.
type EnrollRequest struct {
	Email          string `json:"email" validate:"required,email"`
	ClassID        string `json:"class_id" validate:"required"`
	Title          string `json:"title" validate:"required"`
	Image          string `json:"image"`
	InstructorName string `json:"instructor_name"`
}

// EnrollmentService manages permanent enrollment records.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService creates an instance of EnrollmentService.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EnrollmentService{repo: repo, validator: validate, logger: logger}
}

// Record persists a completed enrollment.
func (s *EnrollmentService) Record(ctx context.Context, req EnrollRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	enrollment := &models.Enrollment{
		Email:          req.Email,
		ClassID:        req.ClassID,
		Title:          req.Title,
		Image:          req.Image,
		InstructorName: req.InstructorName,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record enrollment")
	}

	s.logger.Info("enrollment recorded", zap.String("email", enrollment.Email), zap.String("class_id", enrollment.ClassID))
	return enrollment, nil
}

// ListFor returns the user's enrollments.
func (s *EnrollmentService) ListFor(ctx context.Context, email string) ([]models.Enrollment, error) {
	enrollments, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, nil
}
