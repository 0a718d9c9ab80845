package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimitMiddleware(rps, burst, testLogger()))
	router.POST("/verify", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"verified": true})
	})
	return router
}

func TestRateLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	router := setupRateLimitRouter(10, 5)

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/verify", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
	}
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	// Burst of 1 with a very low refill rate: the second request must be rejected.
	router := setupRateLimitRouter(0.001, 1)

	req := httptest.NewRequest(http.MethodPost, "/verify", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	req = httptest.NewRequest(http.MethodPost, "/verify", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.NotEmpty(t, recorder.Header().Get("Retry-After"))
}

func TestRateLimitMiddleware_SeparateLimitsPerCaller(t *testing.T) {
	router := setupRateLimitRouter(0.001, 1)

	first := httptest.NewRequest(http.MethodPost, "/verify", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, first)
	assert.Equal(t, http.StatusOK, recorder.Code)

	second := httptest.NewRequest(http.MethodPost, "/verify", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, second)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
