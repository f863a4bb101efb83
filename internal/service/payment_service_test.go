package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
	"github.com/sporting-life/enrollment-api/pkg/payments"
)

type mockPaymentRepo struct {
	entries []models.Payment
	listErr error
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == "" {
		payment.ID = "generated"
	}
	m.entries = append(m.entries, *payment)
	return nil
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			cp := m.entries[i]
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	entries := make([]models.Payment, 0)
	for _, entry := range m.entries {
		if entry.Email == email {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (m *mockPaymentRepo) ListAll(ctx context.Context) ([]models.Payment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

type mockGateway struct {
	intent *payments.Intent
	err    error
	prices []float64
}

func (m *mockGateway) CreateIntent(ctx context.Context, price float64) (*payments.Intent, error) {
	m.prices = append(m.prices, price)
	if m.err != nil {
		return nil, m.err
	}
	return m.intent, nil
}

func TestPaymentServiceCreateIntent(t *testing.T) {
	gateway := &mockGateway{intent: &payments.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 2500, Currency: "usd"}}
	service := NewPaymentService(&mockPaymentRepo{}, gateway, validator.New(), zap.NewNop())

	resp, err := service.CreateIntent(context.Background(), CreateIntentRequest{Price: 25})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret", resp.ClientSecret)
	assert.Equal(t, []float64{25}, gateway.prices)
}

func TestPaymentServiceCreateIntentRejectsZeroPrice(t *testing.T) {
	gateway := &mockGateway{}
	service := NewPaymentService(&mockPaymentRepo{}, gateway, validator.New(), zap.NewNop())

	_, err := service.CreateIntent(context.Background(), CreateIntentRequest{Price: 0})
	require.Error(t, err)
	assert.Empty(t, gateway.prices)
}

func TestPaymentServiceCreateIntentGatewayFailure(t *testing.T) {
	gateway := &mockGateway{err: errors.New("card network unavailable")}
	service := NewPaymentService(&mockPaymentRepo{}, gateway, validator.New(), zap.NewNop())

	_, err := service.CreateIntent(context.Background(), CreateIntentRequest{Price: 25})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
}

func TestPaymentServiceRecord(t *testing.T) {
	repo := &mockPaymentRepo{}
	service := NewPaymentService(repo, &mockGateway{}, validator.New(), zap.NewNop())

	payment, err := service.Record(context.Background(), RecordPaymentRequest{
		Email:         "user@example.com",
		Price:         49.5,
		TransactionID: "pi_1",
		ClassIDs:      []string{"c1", "c2"},
		Date:          "2026-07-01T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1", payment.TransactionID)
	assert.Equal(t, time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC), payment.PaidAt)
	assert.Len(t, repo.entries, 1)
}

func TestPaymentServiceRecordDefaultsDate(t *testing.T) {
	service := NewPaymentService(&mockPaymentRepo{}, &mockGateway{}, validator.New(), zap.NewNop())

	before := time.Now().UTC()
	payment, err := service.Record(context.Background(), RecordPaymentRequest{
		Email:         "user@example.com",
		Price:         10,
		TransactionID: "pi_2",
	})
	require.NoError(t, err)
	assert.False(t, payment.PaidAt.Before(before))
}

func TestPaymentServiceRecordValidation(t *testing.T) {
	service := NewPaymentService(&mockPaymentRepo{}, &mockGateway{}, validator.New(), zap.NewNop())

	_, err := service.Record(context.Background(), RecordPaymentRequest{Email: "user@example.com", Price: 10})
	require.Error(t, err)
}

func TestPaymentServiceLedgerCSV(t *testing.T) {
	repo := &mockPaymentRepo{entries: []models.Payment{
		{ID: "p1", Email: "a@example.com", Price: 25, TransactionID: "pi_1", PaidAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)},
		{ID: "p2", Email: "b@example.com", Price: 30.5, TransactionID: "pi_2", PaidAt: time.Date(2026, 7, 2, 10, 0, 0, 0, time.UTC)},
	}}
	service := NewPaymentService(repo, &mockGateway{}, validator.New(), zap.NewNop())

	data, err := service.LedgerCSV(context.Background())
	require.NoError(t, err)

	content := string(data)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Date,Email,Amount,Transaction", lines[0])
	assert.Contains(t, content, "a@example.com")
	assert.Contains(t, content, "30.50")
}

func TestPaymentServiceReceiptPDF(t *testing.T) {
	repo := &mockPaymentRepo{entries: []models.Payment{
		{ID: "p1", Email: "a@example.com", Price: 25, TransactionID: "pi_1", ClassIDs: []string{"c1"}, PaidAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)},
	}}
	service := NewPaymentService(repo, &mockGateway{}, validator.New(), zap.NewNop())

	data, err := service.ReceiptPDF(context.Background(), "p1", "a@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestPaymentServiceReceiptPDFForeignPayment(t *testing.T) {
	repo := &mockPaymentRepo{entries: []models.Payment{
		{ID: "p1", Email: "a@example.com", Price: 25, TransactionID: "pi_1"},
	}}
	service := NewPaymentService(repo, &mockGateway{}, validator.New(), zap.NewNop())

	_, err := service.ReceiptPDF(context.Background(), "p1", "b@example.com")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestPaymentServiceReceiptPDFMissing(t *testing.T) {
	service := NewPaymentService(&mockPaymentRepo{}, &mockGateway{}, validator.New(), zap.NewNop())

	_, err := service.ReceiptPDF(context.Background(), "missing", "a@example.com")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestPaymentServiceLedgerPDF(t *testing.T) {
	repo := &mockPaymentRepo{entries: []models.Payment{
		{ID: "p1", Email: "a@example.com", Price: 25, TransactionID: "pi_1", PaidAt: time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)},
	}}
	service := NewPaymentService(repo, &mockGateway{}, validator.New(), zap.NewNop())

	data, err := service.LedgerPDF(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}
