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

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.UserRole, limit int) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) error
}

// RegisterUserRequest is the payload for first-sign-in registration.
type RegisterUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
}

// RegisterResult reports whether registration inserted a new record.
type RegisterResult struct {
	User          *models.User `json:"user,omitempty"`
	AlreadyExists bool         `json:"-"`
}

// UserService is the role directory: it owns user records and answers
// every authorization role question.
type UserService struct {
	repo             userRepository
	validator        *validator.Validate
	logger           *zap.Logger
	spotlightDefault int
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, spotlightDefault int) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if spotlightDefault <= 0 {
		spotlightDefault = 6
	}
	return &UserService{repo: repo, validator: validate, logger: logger, spotlightDefault: spotlightDefault}
}

// RegisterIfAbsent inserts a user keyed by email. Calling it again with the
// same email is a no-op signalled through AlreadyExists.
func (s *UserService) RegisterIfAbsent(ctx context.Context, req RegisterUserRequest) (*RegisterResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up user")
	}
	if existing != nil {
		return &RegisterResult{User: existing, AlreadyExists: true}, nil
	}

	user := &models.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleStudent,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("email", user.Email))
	return &RegisterResult{User: user}, nil
}

// List returns every registered user.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Get returns a single user by email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	return user, nil
}

// SetRole overwrites a user's role. The role must be one of the three
// known values; arbitrary strings are rejected.
func (s *UserService) SetRole(ctx context.Context, id string, role models.UserRole) error {
	if !role.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "role must be student, instructor or admin")
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update role")
	}
	return nil
}

// HasRole reports whether the user stored under email holds the role.
// An absent user simply has no role.
func (s *UserService) HasRole(ctx context.Context, email string, role models.UserRole) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up role")
	}
	return user.Role == role, nil
}

// IsAdmin reports whether the email belongs to an admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return s.HasRole(ctx, email, models.RoleAdmin)
}

// IsInstructor reports whether the email belongs to an instructor.
func (s *UserService) IsInstructor(ctx context.Context, email string) (bool, error) {
	return s.HasRole(ctx, email, models.RoleInstructor)
}

// ListInstructors returns instructor profiles, capped to the spotlight
// count when limited is set.
func (s *UserService) ListInstructors(ctx context.Context, limited bool) ([]models.User, error) {
	limit := 0
	if limited {
		limit = s.spotlightDefault
	}
	instructors, err := s.repo.ListByRole(ctx, models.RoleInstructor, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return instructors, nil
}
