package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddlewareSetsUUID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		got = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
}

func TestRealIPPrefersForwardedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	engine := gin.New()
	engine.Use(RealIP())
	engine.GET("/ping", func(c *gin.Context) {
		got = c.GetString("real_ip")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, "203.0.113.9", got)
}
