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

type userService interface {
	RegisterIfAbsent(ctx context.Context, req service.RegisterUserRequest) (*service.RegisterResult, error)
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, id string, role models.UserRole) error
	IsAdmin(ctx context.Context, email string) (bool, error)
	IsInstructor(ctx context.Context, email string) (bool, error)
	ListInstructors(ctx context.Context, limited bool) ([]models.User, error)
}

// UserHandler handles user and role directory endpoints.
type UserHandler struct {
	service userService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// Register godoc
// @Summary Register user
// @Description Idempotent first-sign-in registration keyed by email
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.RegisterUserRequest true "User payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.RegisterIfAbsent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.AlreadyExists {
		response.JSON(c, http.StatusOK, gin.H{"message": "user already exists"})
		return
	}

	response.Created(c, result.User)
}

// List godoc
// @Summary List users
// @Description Full user listing for administrators
// @Tags Users
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, users)
}

// Get godoc
// @Summary Get user
// @Description Returns the caller's own user record
// @Tags Users
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /user [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Query("email"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, user)
}

// UpdateRole godoc
// @Summary Update user role
// @Description Overwrites the stored role for a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Param role query string true "New role"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /update-user/{id} [patch]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	role := models.UserRole(c.Query("role"))
	if err := h.service.SetRole(c.Request.Context(), c.Param("id"), role); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"updated": true})
}

// AdminProbe godoc
// @Summary Check admin role
// @Description Self-only probe; answers false on email mismatch
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} response.Envelope
// @Router /user/admin/{email} [get]
func (h *UserHandler) AdminProbe(c *gin.Context) {
	claims := claimsFromContext(c)
	email := c.Param("email")

	// A mismatched probe answers false instead of erroring so callers
	// cannot learn other users' roles.
	if claims == nil || claims.Email != email {
		response.JSON(c, http.StatusOK, gin.H{"admin": false})
		return
	}

	isAdmin, err := h.service.IsAdmin(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"admin": isAdmin})
}

// InstructorProbe godoc
// @Summary Check instructor role
// @Description Self-only probe; answers false on email mismatch
// @Tags Users
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} response.Envelope
// @Router /user/instructor/{email} [get]
func (h *UserHandler) InstructorProbe(c *gin.Context) {
	claims := claimsFromContext(c)
	email := c.Param("email")

	if claims == nil || claims.Email != email {
		response.JSON(c, http.StatusOK, gin.H{"instructor": false})
		return
	}

	isInstructor, err := h.service.IsInstructor(c.Request.Context(), email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"instructor": isInstructor})
}

// Instructors godoc
// @Summary List instructors
// @Description Public instructor listing, optionally capped for the spotlight
// @Tags Users
// @Produce json
// @Param limit query string false "Cap the listing when present"
// @Success 200 {object} response.Envelope
// @Router /instructors [get]
func (h *UserHandler) Instructors(c *gin.Context) {
	limited := c.Query("limit") != ""
	instructors, err := h.service.ListInstructors(c.Request.Context(), limited)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, instructors)
}
