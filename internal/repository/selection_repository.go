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

// SelectionRepository persists provisional cart entries.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository constructs the repository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create inserts a cart entry.
func (r *SelectionRepository) Create(ctx context.Context, entry *models.SelectedClass) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO selected_classes (id, email, class_id, title, image, price, created_at) VALUES (:id, :email, :class_id, :title, :image, :price, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

// FindByID returns a cart entry by identifier.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.SelectedClass, error) {
	const query = `SELECT id, email, class_id, title, image, price, created_at FROM selected_classes WHERE id = $1 LIMIT 1`
	var entry models.SelectedClass
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find selection by id: %w", err)
	}
	return &entry, nil
}

// Delete removes a cart entry.
func (r *SelectionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM selected_classes WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}
	return requireRow(result, "delete selection")
}

// ListByEmail returns all cart entries for a user, newest first.
func (r *SelectionRepository) ListByEmail(ctx context.Context, email string) ([]models.SelectedClass, error) {
	const query = `SELECT id, email, class_id, title, image, price, created_at FROM selected_classes WHERE email = $1 ORDER BY created_at DESC`
	var entries []models.SelectedClass
	if err := r.db.SelectContext(ctx, &entries, query, email); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return entries, nil
}
