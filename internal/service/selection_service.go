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

type selectionRepository interface {
	Create(ctx context.Context, entry *models.SelectedClass) error
	FindByID(ctx context.Context, id string) (*models.SelectedClass, error)
	Delete(ctx context.Context, id string) error
	ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error)
}

// SelectClassRequest is the payload for adding a class to the cart.
type SelectClassRequest struct {
	Email   string  `json:"email" validate:"required,email"`
	ClassID string  `json:"class_id" validate:"required"`
	Title   string  `json:"title" validate:"required"`
	Image   string  `json:"image"`
	Price   float64 `json:"price" validate:"gte=0"`
}

// SelectionService manages provisional cart entries.
type SelectionService struct {
	repo      selectionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSelectionService creates an instance of SelectionService.
func NewSelectionService(repo selectionRepository, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SelectionService{repo: repo, validator: validate, logger: logger}
}

// Select records a cart entry for the user.
func (s *SelectionService) Select(ctx context.Context, req SelectClassRequest) (*models.SelectedClass, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	entry := &models.SelectedClass{
		Email:   req.Email,
		ClassID: req.ClassID,
		Title:   req.Title,
		Image:   req.Image,
		Price:   req.Price,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create selection")
	}
	return entry, nil
}

// Get returns a single cart entry.
func (s *SelectionService) Get(ctx context.Context, id string) (*models.SelectedClass, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch selection")
	}
	return entry, nil
}

// Remove deletes a cart entry, either on user removal or after the entry
// has been converted into an enrollment.
func (s *SelectionService) Remove(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete selection")
	}
	return nil
}

// ListFor returns the user's cart. An empty email yields an empty cart
// rather than an error.
func (s *SelectionService) ListFor(ctx context.Context, email string) ([]models.SelectedClass, error) {
	if email == "" {
		return []models.SelectedClass{}, nil
	}
	entries, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list selections")
	}
	return entries, nil
}
