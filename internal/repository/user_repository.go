package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sporting-life/enrollment-api/internal/models"
)

// UserRepository provides database access to the role directory.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, name, photo_url, role, created_at, updated_at FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, email, name, photo_url, role, created_at, updated_at) VALUES (:id, :email, :name, :photo_url, :role, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// List returns every user ordered by creation time, newest first.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, email, name, photo_url, role, created_at, updated_at FROM users ORDER BY created_at DESC`
	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListByRole returns users holding the given role. A positive limit caps
// the result for spotlight listings.
func (r *UserRepository) ListByRole(ctx context.Context, role models.UserRole, limit int) ([]models.User, error) {
	query := `SELECT id, email, name, photo_url, role, created_at, updated_at FROM users WHERE role = $1 ORDER BY created_at DESC`
	args := []interface{}{role}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// UpdateRole overwrites the stored role for a user.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) error {
	const query = `UPDATE users SET role = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, role, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
