package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sporting-life/enrollment-api/internal/models"
	appErrors "github.com/sporting-life/enrollment-api/pkg/errors"
	"github.com/sporting-life/enrollment-api/pkg/response"
)

// RoleDirectory answers role questions for the access guard. Roles are
// resolved live against the user store, never trusted from token claims.
type RoleDirectory interface {
	HasRole(ctx context.Context, email string, role models.UserRole) (bool, error)
}

// Policy declares the capability requirements of a route. The zero value
// requires authentication only.
type Policy struct {
	// Role, when set, must match the caller's stored role exactly.
	Role models.UserRole
	// SelfQuery names a query parameter whose value must equal the
	// caller's email. An empty parameter skips the check; the handler
	// decides what an absent email means.
	SelfQuery string
	// SelfParam names a path parameter whose value must equal the
	// caller's email.
	SelfParam string
	// MismatchStatus is the HTTP status returned on a self-match
	// failure. Defaults to 403; some routes answer 401 for backwards
	// compatibility with the deployed frontend.
	MismatchStatus int
}

// Guard evaluates a Policy against the authenticated caller. It must run
// after the JWT middleware.
func Guard(directory RoleDirectory, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.SessionClaims)

		if policy.Role != "" {
			ok, err := directory.HasRole(c.Request.Context(), claims.Email, policy.Role)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if !ok {
				response.Error(c, appErrors.ErrForbidden)
				c.Abort()
				return
			}
		}

		target := ""
		if policy.SelfQuery != "" {
			target = c.Query(policy.SelfQuery)
		} else if policy.SelfParam != "" {
			target = c.Param(policy.SelfParam)
		}
		if target != "" && target != claims.Email {
			status := policy.MismatchStatus
			if status == 0 {
				status = http.StatusForbidden
			}
			if status == http.StatusUnauthorized {
				response.Error(c, appErrors.ErrUnauthorized)
			} else {
				response.Error(c, appErrors.ErrForbidden)
			}
			c.Abort()
			return
		}

		c.Next()
	}
}
