package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})
	return r, &seen
}

func TestMiddlewareAssignsID(t *testing.T) {
	r, seen := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	id := w.Header().Get(Header)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, *seen)
}

func TestMiddlewareEchoesInboundID(t *testing.T) {
	r, seen := newEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(Header, "upstream-id")
	r.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id", w.Header().Get(Header))
	assert.Equal(t, "upstream-id", *seen)
}
