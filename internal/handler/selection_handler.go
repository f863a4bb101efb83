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

type selectionService interface {
	Select(ctx context.Context, req service.SelectClassRequest) (*models.SelectedClass, error)
	Get(ctx context.Context, id string) (*models.SelectedClass, error)
	Remove(ctx context.Context, id string) error
	ListFor(ctx context.Context, email string) ([]models.SelectedClass, error)
}

// SelectionHandler handles cart endpoints.
type SelectionHandler struct {
	service selectionService
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(svc selectionService) *SelectionHandler {
	return &SelectionHandler{service: svc}
}

// Select godoc
// @Summary Select class
// @Description Adds a class to the user's cart
// @Tags Selections
// @Accept json
// @Produce json
// @Param payload body service.SelectClassRequest true "Selection"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /select-class [post]
func (h *SelectionHandler) Select(c *gin.Context) {
	var req service.SelectClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	entry, err := h.service.Select(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, entry)
}

// List godoc
// @Summary List selections
// @Description Returns the caller's cart; empty email yields an empty cart
// @Tags Selections
// @Produce json
// @Param email query string false "User email"
// @Success 200 {object} response.Envelope
// @Router /selected [get]
func (h *SelectionHandler) List(c *gin.Context) {
	entries, err := h.service.ListFor(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// Get godoc
// @Summary Get selection
// @Description Returns a single cart entry
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selected/{id} [get]
func (h *SelectionHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Remove selection
// @Description Removes a cart entry
// @Tags Selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /selected/{id} [delete]
func (h *SelectionHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
