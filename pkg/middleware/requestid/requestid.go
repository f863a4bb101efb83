package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID. Inbound values are
// trusted and echoed back; otherwise a fresh UUID is assigned.
const Header = "X-Request-ID"

const contextKey = "request_id"

// Middleware tags every request with an ID and mirrors it on the response.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the request ID stored in the Gin context, or "" when the
// middleware did not run.
func Value(c *gin.Context) string {
	id, _ := c.Value(contextKey).(string)
	return id
}
