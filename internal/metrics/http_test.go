package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(t *testing.T) (*gin.Engine, *Provider) {
		t.Helper()
		provider, err := NewProvider("cards_test")
		require.NoError(t, err)
		t.Cleanup(func() {
			assert.NoError(t, provider.Shutdown(context.Background()))
		})

		router := gin.New()
		router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "cards_test"))
		return router, provider
	}

	t.Run("records successful requests", func(t *testing.T) {
		router, _ := newRouter(t)
		router.GET("/v1/cards", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"cards": []string{}})
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/cards", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("records mixed methods and statuses", func(t *testing.T) {
		router, _ := newRouter(t)
		router.POST("/v1/cards", func(c *gin.Context) {
			c.JSON(http.StatusCreated, gin.H{"cardId": 1})
		})
		router.GET("/boom", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/cards", nil))
			assert.Equal(t, http.StatusCreated, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("uses route pattern for parameterized paths", func(t *testing.T) {
		router, _ := newRouter(t)
		router.GET("/v1/cards/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
		})

		// Distinct card ids must not fan out into distinct label values;
		// both requests resolve to the /v1/cards/:id pattern.
		for _, path := range []string{"/v1/cards/11", "/v1/cards/42"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("unmatched routes still pass through", func(t *testing.T) {
		router, _ := newRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouteLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "route pattern", input: "/v1/cards/:id", expected: "/v1/cards/:id"},
		{name: "nested pattern", input: "/v1/cards/:id/verify/:cardNumber", expected: "/v1/cards/:id/verify/:cardNumber"},
		{name: "empty means unmatched", input: "", expected: "unknown"},
		{name: "root", input: "/", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, routeLabel(tt.input))
		})
	}
}
