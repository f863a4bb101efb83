package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
)

const (
	cacheKeyApprovedClasses = "classes:approved"
	cacheKeyTopClasses      = "classes:top"
	cachePatternClasses     = "classes:*"
)

type classRepository interface {
	ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error)
	ListTopByStatus(ctx context.Context, status models.ClassStatus, limit int) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	Create(ctx context.Context, class *models.Class) error
	UpdateStatus(ctx context.Context, id string, status models.ClassStatus) error
	UpdateFeedback(ctx context.Context, id, feedback string) error
	ReserveSeat(ctx context.Context, id string) error
}

// CreateClassRequest is the instructor payload for submitting a class.
// Status is always set server-side to pending regardless of input.
type CreateClassRequest struct {
	Title          string  `json:"title" validate:"required"`
	Image          string  `json:"image"`
	Price          float64 `json:"price" validate:"gte=0"`
	AvailableSeats int     `json:"available_seats" validate:"gte=0"`
}

// FeedbackRequest carries admin feedback for a class.
type FeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ClassService manages the class catalog and its approval lifecycle.
type ClassService struct {
	repo      classRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	topCount  int
}

// NewClassService creates an instance of ClassService.
func NewClassService(repo classRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, topCount int) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if topCount <= 0 {
		topCount = 6
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger, topCount: topCount}
}

// ListApproved returns approved classes. When top is set the result is the
// most popular slice, ranked by enrolled students. Both listings are cached.
func (s *ClassService) ListApproved(ctx context.Context, top bool) ([]models.Class, error) {
	key := cacheKeyApprovedClasses
	if top {
		key = cacheKeyTopClasses
	}

	var cached []models.Class
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}

	var classes []models.Class
	var err error
	if top {
		classes, err = s.repo.ListTopByStatus(ctx, models.ClassApproved, s.topCount)
	} else {
		classes, err = s.repo.ListByStatus(ctx, models.ClassApproved)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}

	_ = s.cache.Set(ctx, key, classes, 0)
	return classes, nil
}

// ListAll returns every class including pending and denied ones.
func (s *ClassService) ListAll(ctx context.Context) ([]models.Class, error) {
	classes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	return classes, nil
}

// ListByInstructor returns the classes created by the given instructor.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	classes, err := s.repo.ListByInstructor(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor classes")
	}
	return classes, nil
}

// Create submits a new class on behalf of the authenticated instructor.
func (s *ClassService) Create(ctx context.Context, req CreateClassRequest, instructor *models.SessionClaims) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.Class{
		Title:           req.Title,
		Image:           req.Image,
		InstructorName:  instructor.Name,
		InstructorEmail: instructor.Email,
		Price:           req.Price,
		AvailableSeats:  req.AvailableSeats,
		Status:          models.ClassPending,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}

	_ = s.cache.Invalidate(ctx, cachePatternClasses)
	s.logger.Info("class submitted", zap.String("class_id", class.ID), zap.String("instructor", class.InstructorEmail))
	return class, nil
}

// SetStatus transitions a class between pending, approved and denied.
func (s *ClassService) SetStatus(ctx context.Context, id string, status models.ClassStatus) error {
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "status must be pending, approved or denied")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class status")
	}

	_ = s.cache.Invalidate(ctx, cachePatternClasses)
	return nil
}

// SetFeedback attaches admin feedback to a class.
func (s *ClassService) SetFeedback(ctx context.Context, id string, req FeedbackRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "feedback is required")
	}
	if err := s.repo.UpdateFeedback(ctx, id, req.Feedback); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class feedback")
	}

	_ = s.cache.Invalidate(ctx, cachePatternClasses)
	return nil
}

// ReserveSeat performs the seat transfer for one enrollment: exactly one
// seat moves from available to filled, or the call fails with SOLD_OUT.
func (s *ClassService) ReserveSeat(ctx context.Context, id string) error {
	if err := s.repo.ReserveSeat(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		if errors.Is(err, appErrors.ErrSoldOut) {
			return appErrors.ErrSoldOut
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reserve seat")
	}

	_ = s.cache.Invalidate(ctx, cachePatternClasses)
	return nil
}
