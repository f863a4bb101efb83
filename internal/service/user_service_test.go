package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
)

type mockUserRepo struct {
	byEmail     map[string]*models.User
	byID        map[string]*models.User
	created     []models.User
	roleUpdates map[string]models.UserRole
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.byEmail[email]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.byEmail == nil {
		m.byEmail = make(map[string]*models.User)
	}
	if user.ID == "" {
		user.ID = "generated"
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	cp := *user
	m.byEmail[user.Email] = &cp
	m.created = append(m.created, cp)
	return nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.byEmail))
	for _, user := range m.byEmail {
		users = append(users, *user)
	}
	return users, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role models.UserRole, limit int) ([]models.User, error) {
	users := make([]models.User, 0)
	for _, user := range m.byEmail {
		if user.Role == role {
			users = append(users, *user)
		}
		if limit > 0 && len(users) == limit {
			break
		}
	}
	return users, nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	user, ok := m.byID[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = role
	if m.roleUpdates == nil {
		m.roleUpdates = make(map[string]models.UserRole)
	}
	m.roleUpdates[id] = role
	return nil
}

func TestRegisterIfAbsentCreatesStudent(t *testing.T) {
	repo := &mockUserRepo{}
	service := NewUserService(repo, validator.New(), zap.NewNop(), 6)

	result, err := service.RegisterIfAbsent(context.Background(), RegisterUserRequest{
		Email: "new@example.com",
		Name:  "New User",
	})
	require.NoError(t, err)
	assert.False(t, result.AlreadyExists)
	assert.Equal(t, models.RoleStudent, result.User.Role)
	assert.Len(t, repo.created, 1)
}

func TestRegisterIfAbsentIsIdempotent(t *testing.T) {
	repo := &mockUserRepo{}
	service := NewUserService(repo, validator.New(), zap.NewNop(), 6)

	first, err := service.RegisterIfAbsent(context.Background(), RegisterUserRequest{Email: "dup@example.com"})
	require.NoError(t, err)
	assert.False(t, first.AlreadyExists)

	second, err := service.RegisterIfAbsent(context.Background(), RegisterUserRequest{Email: "dup@example.com"})
	require.NoError(t, err)
	assert.True(t, second.AlreadyExists)
	assert.Len(t, repo.created, 1)
}

func TestRegisterIfAbsentRejectsBadEmail(t *testing.T) {
	service := NewUserService(&mockUserRepo{}, validator.New(), zap.NewNop(), 6)

	_, err := service.RegisterIfAbsent(context.Background(), RegisterUserRequest{Email: "not-an-email"})
	require.Error(t, err)
}

func TestHasRoleAbsentUser(t *testing.T) {
	service := NewUserService(&mockUserRepo{}, validator.New(), zap.NewNop(), 6)

	ok, err := service.HasRole(context.Background(), "ghost@example.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAdmin(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"admin@example.com":   {ID: "u1", Email: "admin@example.com", Role: models.RoleAdmin},
		"student@example.com": {ID: "u2", Email: "student@example.com", Role: models.RoleStudent},
	}}
	service := NewUserService(repo, validator.New(), zap.NewNop(), 6)

	ok, err := service.IsAdmin(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.IsAdmin(context.Background(), "student@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	service := NewUserService(&mockUserRepo{}, validator.New(), zap.NewNop(), 6)

	err := service.SetRole(context.Background(), "u1", models.UserRole("superuser"))
	require.Error(t, err)
}

func TestSetRoleUpdates(t *testing.T) {
	repo := &mockUserRepo{byID: map[string]*models.User{
		"u1": {ID: "u1", Email: "user@example.com", Role: models.RoleStudent},
	}}
	service := NewUserService(repo, validator.New(), zap.NewNop(), 6)

	err := service.SetRole(context.Background(), "u1", models.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, repo.roleUpdates["u1"])
}

func TestSetRoleMissingUser(t *testing.T) {
	service := NewUserService(&mockUserRepo{}, validator.New(), zap.NewNop(), 6)

	err := service.SetRole(context.Background(), "missing", models.RoleAdmin)
	require.Error(t, err)
}

func TestListInstructorsLimited(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]*models.User{
		"a@example.com": {ID: "u1", Email: "a@example.com", Role: models.RoleInstructor},
		"b@example.com": {ID: "u2", Email: "b@example.com", Role: models.RoleInstructor},
		"c@example.com": {ID: "u3", Email: "c@example.com", Role: models.RoleStudent},
	}}
	service := NewUserService(repo, validator.New(), zap.NewNop(), 1)

	limited, err := service.ListInstructors(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	all, err := service.ListInstructors(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
