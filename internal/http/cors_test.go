package http

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name       string
		enabled    bool
		origins    string
		wantNil    bool
	}{
		{name: "disabled", enabled: false, origins: "https://portal.example.com", wantNil: true},
		{name: "enabled without origins", enabled: true, origins: "", wantNil: true},
		{name: "enabled with only whitespace origins", enabled: true, origins: " , ", wantNil: true},
		{name: "single origin", enabled: true, origins: "https://portal.example.com", wantNil: false},
		{name: "multiple origins with whitespace", enabled: true, origins: " https://portal.example.com , https://ops.example.com ", wantNil: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			middleware := createCORSMiddleware(tt.enabled, tt.origins, logger)
			if tt.wantNil {
				assert.Nil(t, middleware)
			} else {
				assert.NotNil(t, middleware)
			}
		})
	}
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "single", input: "https://portal.example.com", want: []string{"https://portal.example.com"}},
		{
			name:  "multiple trimmed",
			input: " https://portal.example.com , https://ops.example.com ",
			want:  []string{"https://portal.example.com", "https://ops.example.com"},
		},
		{name: "drops empty entries", input: "https://portal.example.com,,", want: []string{"https://portal.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseOrigins(tt.input))
		})
	}
}

func TestCORSMiddlewareSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	middleware := createCORSMiddleware(true, "https://portal.example.com", slog.Default())
	assert.NotNil(t, middleware)

	router := gin.New()
	router.Use(middleware)
	router.GET("/v1/cards", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("allowed origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/cards", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://portal.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/v1/cards", nil)
		req.Header.Set("Origin", "https://portal.example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("disallowed origin gets no allow header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/cards", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		router.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}
