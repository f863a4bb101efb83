package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
	"github.com/sporting-life/enrollment-api/pkg/response"
)

type tokenIssuer interface {
	IssueToken(req models.TokenRequest) (*models.TokenResponse, error)
}

// AuthHandler handles session token issuance.
type AuthHandler struct {
	service tokenIssuer
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc tokenIssuer) *AuthHandler {
	return &AuthHandler{service: svc}
}

// CreateToken godoc
// @Summary Issue session token
// @Description Signs a session token for an externally authenticated user
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.TokenRequest true "Identity claims"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /jwt [post]
func (h *AuthHandler) CreateToken(c *gin.Context) {
	var req models.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	token, err := h.service.IssueToken(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, token)
}
