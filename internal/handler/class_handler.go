package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sporting-life/enrollment-api/internal/models"
	"github.com/sporting-life/enrollment-api/internal/service"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
	"github.com/sporting-life/enrollment-api/pkg/response"
)

type classService interface {
	ListApproved(ctx context.Context, top bool) ([]models.Class, error)
	ListAll(ctx context.Context) ([]models.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]models.Class, error)
	Create(ctx context.Context, req service.CreateClassRequest, instructor *models.SessionClaims) (*models.Class, error)
	SetStatus(ctx context.Context, id string, status models.ClassStatus) error
	SetFeedback(ctx context.Context, id string, req service.FeedbackRequest) error
	ReserveSeat(ctx context.Context, id string) error
}

// ClassHandler handles catalog endpoints.
type ClassHandler struct {
	service classService
}

// NewClassHandler creates a new class handler.
func NewClassHandler(svc classService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// ListPublic godoc
// @Summary List approved classes
// @Description Public catalog; top=true returns the most popular slice
// @Tags Classes
// @Produce json
// @Param top query bool false "Return the popular slice"
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) ListPublic(c *gin.Context) {
	top, _ := strconv.ParseBool(c.DefaultQuery("top", "false"))
	classes, err := h.service.ListApproved(c.Request.Context(), top)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classes)
}

// ListAll godoc
// @Summary List all classes
// @Description Admin listing including pending and denied classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /all-classes [get]
func (h *ClassHandler) ListAll(c *gin.Context) {
	classes, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classes)
}

// Create godoc
// @Summary Submit class
// @Description Instructor submits a class; it enters the pending state
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class draft"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	class, err := h.service.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, class)
}

// MyClasses godoc
// @Summary List own classes
// @Description Instructor's own classes in every lifecycle state
// @Tags Classes
// @Produce json
// @Param email query string true "Instructor email"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /my-classes [get]
func (h *ClassHandler) MyClasses(c *gin.Context) {
	classes, err := h.service.ListByInstructor(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, classes)
}

// ReserveSeat godoc
// @Summary Reserve a seat
// @Description Atomically moves one seat from available to filled
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /class/{id} [patch]
func (h *ClassHandler) ReserveSeat(c *gin.Context) {
	if err := h.service.ReserveSeat(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"reserved": true})
}

// UpdateStatus godoc
// @Summary Update class status
// @Description Admin approves or denies a pending class
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Param status query string true "New status"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /update-class-status/{id} [patch]
func (h *ClassHandler) UpdateStatus(c *gin.Context) {
	status := models.ClassStatus(c.Query("status"))
	if err := h.service.SetStatus(c.Request.Context(), c.Param("id"), status); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// UpdateFeedback godoc
// @Summary Update class feedback
// @Description Admin attaches feedback to a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.FeedbackRequest true "Feedback"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /update-feedback/{id} [patch]
func (h *ClassHandler) UpdateFeedback(c *gin.Context) {
	var req service.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.service.SetFeedback(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}
