package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sporting-life/enrollment-api/internal/models"
)

// EnrollmentRepository persists completed enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment record.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.CreatedAt.IsZero() {
		enrollment.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO enrollments (id, email, class_id, title, image, instructor_name, created_at) VALUES (:id, :email, :class_id, :title, :image, :instructor_name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, enrollment); err != nil {
		return fmt.Errorf("create enrollment: %w", err)
	}
	return nil
}

// ListByEmail returns all enrollments for a user, newest first.
func (r *EnrollmentRepository) ListByEmail(ctx context.Context, email string) ([]models.Enrollment, error) {
	const query = `SELECT id, email, class_id, title, image, instructor_name, created_at FROM enrollments WHERE email = $1 ORDER BY created_at DESC`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, email); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}
