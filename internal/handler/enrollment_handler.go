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

type enrollmentService interface {
	Record(ctx context.Context, req service.EnrollRequest) (*models.Enrollment, error)
	ListFor(ctx context.Context, email string) ([]models.Enrollment, error)
}

// EnrollmentHandler handles enrollment record endpoints.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(svc enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// Record godoc
// @Summary Record enrollment
// @Description Persists a completed enrollment after payment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.EnrollRequest true "Enrollment"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrolled [post]
func (h *EnrollmentHandler) Record(c *gin.Context) {
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	enrollment, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, enrollment)
}

// List godoc
// @Summary List enrollments
// @Description Returns the caller's completed enrollments
// @Tags Enrollments
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /enrolled [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.service.ListFor(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, enrollments)
}
