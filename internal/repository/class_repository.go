package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
)

const classColumns = `id, title, image, instructor_name, instructor_email, price, available_seats, number_of_students, status, feedback, created_at, updated_at`

// ClassRepository provides database access to the class catalog.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// ListByStatus returns classes in the given lifecycle state.
func (r *ClassRepository) ListByStatus(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, status); err != nil {
		return nil, fmt.Errorf("list classes by status: %w", err)
	}
	return classes, nil
}

// ListTopByStatus returns the most popular classes in the given state,
// ranked by enrolled student count.
func (r *ClassRepository) ListTopByStatus(ctx context.Context, status models.ClassStatus, limit int) ([]models.Class, error) {
	if limit <= 0 {
		limit = 6
	}
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY number_of_students DESC LIMIT %d`, classColumns, limit)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, status); err != nil {
		return nil, fmt.Errorf("list top classes: %w", err)
	}
	return classes, nil
}

// ListAll returns every class regardless of status.
func (r *ClassRepository) ListAll(ctx context.Context) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query); err != nil {
		return nil, fmt.Errorf("list all classes: %w", err)
	}
	return classes, nil
}

// ListByInstructor returns classes created by the given instructor.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, email); err != nil {
		return nil, fmt.Errorf("list classes by instructor: %w", err)
	}
	return classes, nil
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if class.CreatedAt.IsZero() {
		class.CreatedAt = now
	}
	class.UpdatedAt = now

	const query = `INSERT INTO classes (id, title, image, instructor_name, instructor_email, price, available_seats, number_of_students, status, feedback, created_at, updated_at) VALUES (:id, :title, :image, :instructor_name, :instructor_email, :price, :available_seats, :number_of_students, :status, :feedback, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// UpdateStatus overwrites the lifecycle status of a class.
func (r *ClassRepository) UpdateStatus(ctx context.Context, id string, status models.ClassStatus) error {
	const query = `UPDATE classes SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update class status: %w", err)
	}
	return requireRow(result, "update class status")
}

// UpdateFeedback stores admin feedback on a class.
func (r *ClassRepository) UpdateFeedback(ctx context.Context, id, feedback string) error {
	const query = `UPDATE classes SET feedback = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, feedback, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update class feedback: %w", err)
	}
	return requireRow(result, "update class feedback")
}

// ReserveSeat atomically moves one seat from available to filled. The
// conditional WHERE clause makes concurrent enrollments safe: once seats
// hit zero the update matches no rows and the reservation fails.
func (r *ClassRepository) ReserveSeat(ctx context.Context, id string) error {
	const query = `UPDATE classes SET available_seats = available_seats - 1, number_of_students = number_of_students + 1, updated_at = $2 WHERE id = $1 AND available_seats > 0`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM classes WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("reserve seat: %w", err)
	}
	if !exists {
		return sql.ErrNoRows
	}
	return appErrors.ErrSoldOut
}

func requireRow(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
