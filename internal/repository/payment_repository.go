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

// PaymentRepository persists the append-only payment ledger.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a ledger row. Ledger rows are never updated or deleted.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = now
	}

	const query = `INSERT INTO payments (id, email, price, transaction_id, class_ids, paid_at, created_at) VALUES (:id, :email, :price, :transaction_id, :class_ids, :paid_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

// FindByID returns a single ledger row.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	const query = `SELECT id, email, price, transaction_id, class_ids, paid_at, created_at FROM payments WHERE id = $1 LIMIT 1`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find payment by id: %w", err)
	}
	return &payment, nil
}

// ListByEmail returns a user's payments sorted by payment date descending.
func (r *PaymentRepository) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	const query = `SELECT id, email, price, transaction_id, class_ids, paid_at, created_at FROM payments WHERE email = $1 ORDER BY paid_at DESC`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

// ListAll returns the full ledger sorted by payment date descending.
func (r *PaymentRepository) ListAll(ctx context.Context) ([]models.Payment, error) {
	const query = `SELECT id, email, price, transaction_id, class_ids, paid_at, created_at FROM payments ORDER BY paid_at DESC`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list all payments: %w", err)
	}
	return payments, nil
}
