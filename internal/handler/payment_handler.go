package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporting-life/enrollment-api/internal/models"
	"github.com/sporting-life/enrollment-api/internal/service"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
	"github.com/sporting-life/enrollment-api/pkg/response"
)

type paymentService interface {
	CreateIntent(ctx context.Context, req service.CreateIntentRequest) (*service.IntentResponse, error)
	Record(ctx context.Context, req service.RecordPaymentRequest) (*models.Payment, error)
	ListFor(ctx context.Context, email string) ([]models.Payment, error)
	ReceiptPDF(ctx context.Context, id, email string) ([]byte, error)
}

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	service paymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(svc paymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// CreateIntent godoc
// @Summary Create payment intent
// @Description Requests a card payment intent from the gateway
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.CreateIntentRequest true "Price"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req service.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, intent)
}

// Record godoc
// @Summary Record payment
// @Description Appends a completed charge to the caller's ledger
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body service.RecordPaymentRequest true "Payment"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /payment [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	// Ledger rows can only be written for the caller's own account.
	if req.Email != claims.Email {
		response.Error(c, appErrors.ErrForbidden)
		return
	}

	payment, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, payment)
}

// Receipt godoc
// @Summary Download payment receipt
// @Description Renders the caller's own payment as a PDF receipt
// @Tags Payments
// @Produce application/pdf
// @Param id path string true "Payment ID"
// @Success 200 {string} string "PDF content"
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /payment/{id}/receipt.pdf [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	data, err := h.service.ReceiptPDF(c.Request.Context(), c.Param("id"), claims.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// List godoc
// @Summary List payments
// @Description Returns the caller's ledger, most recent first
// @Tags Payments
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.service.ListFor(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, payments)
}
