package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
	"github.com/sporting-life/enrollment-api/pkg/export"
	"github.com/sporting-life/enrollment-api/pkg/payments"
)

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
	ListAll(ctx context.Context) ([]models.Payment, error)
}

// CreateIntentRequest asks the gateway for a payment intent.
type CreateIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// IntentResponse returns the client secret needed to complete the charge.
type IntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// RecordPaymentRequest appends a completed charge to the ledger.
type RecordPaymentRequest struct {
	Email         string   `json:"email" validate:"required,email"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	TransactionID string   `json:"transaction_id" validate:"required"`
	ClassIDs      []string `json:"class_ids"`
	Date          string   `json:"date"`
}

// PaymentService records payments and talks to the external gateway.
type PaymentService struct {
	repo      paymentRepository
	gateway   payments.Gateway
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService creates an instance of PaymentService.
func NewPaymentService(repo paymentRepository, gateway payments.Gateway, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PaymentService{
		repo:      repo,
		gateway:   gateway,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
	}
}

// CreateIntent requests a payment intent from the gateway. Duplicate calls
// create duplicate intents; only confirmed charges reach the ledger.
func (s *PaymentService) CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid price")
	}

	intent, err := s.gateway.CreateIntent(ctx, req.Price)
	if err != nil {
		s.logger.Error("payment intent creation failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "payment gateway rejected the request")
	}

	return &IntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// Record appends a ledger entry for a completed charge.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*models.Payment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}

	paidAt := time.Now().UTC()
	if req.Date != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Date); err == nil {
			paidAt = parsed.UTC()
		}
	}

	payment := &models.Payment{
		Email:         req.Email,
		Price:         req.Price,
		TransactionID: req.TransactionID,
		ClassIDs:      req.ClassIDs,
		PaidAt:        paidAt,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	s.logger.Info("payment recorded", zap.String("email", payment.Email), zap.String("transaction_id", payment.TransactionID))
	return payment, nil
}

// ListFor returns the user's payments, most recent first.
func (s *PaymentService) ListFor(ctx context.Context, email string) ([]models.Payment, error) {
	entries, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	return entries, nil
}

// ReceiptPDF renders a single payment as a PDF receipt. Receipts are
// self-only: the payment must belong to the requesting email.
func (s *PaymentService) ReceiptPDF(ctx context.Context, id, email string) ([]byte, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch payment")
	}
	if payment.Email != email {
		return nil, appErrors.ErrForbidden
	}

	dataset := export.Dataset{
		Headers: []string{"Date", "Email", "Amount", "Transaction", "Classes"},
		Rows: [][]string{{
			payment.PaidAt.Format(time.RFC3339),
			payment.Email,
			fmt.Sprintf("%.2f", payment.Price),
			payment.TransactionID,
			strings.Join(payment.ClassIDs, ", "),
		}},
	}
	data, err := s.pdf.Render(dataset, "Payment Receipt")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt pdf")
	}
	return data, nil
}

// LedgerCSV renders the full ledger as CSV for admin export.
func (s *PaymentService) LedgerCSV(ctx context.Context) ([]byte, error) {
	dataset, err := s.ledgerDataset(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.csv.Render(*dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ledger csv")
	}
	return data, nil
}

// LedgerPDF renders the full ledger as a tabular PDF for admin export.
func (s *PaymentService) LedgerPDF(ctx context.Context) ([]byte, error) {
	dataset, err := s.ledgerDataset(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.pdf.Render(*dataset, "Payment Ledger")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render ledger pdf")
	}
	return data, nil
}

func (s *PaymentService) ledgerDataset(ctx context.Context) (*export.Dataset, error) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load ledger")
	}

	dataset := &export.Dataset{
		Headers: []string{"Date", "Email", "Amount", "Transaction"},
		Rows:    make([][]string, 0, len(entries)),
	}
	for _, entry := range entries {
		dataset.Rows = append(dataset.Rows, []string{
			entry.PaidAt.Format(time.RFC3339),
			entry.Email,
			fmt.Sprintf("%.2f", entry.Price),
			entry.TransactionID,
		})
	}
	return dataset, nil
}
