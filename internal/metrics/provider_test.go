package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider("cards")
	require.NoError(t, err)

	assert.NotNil(t, provider.meterProvider)
	assert.NotNil(t, provider.exporter)
	assert.NotNil(t, provider.registry)
}

func TestProviderHandlerServesExposition(t *testing.T) {
	provider, err := NewProvider("cards")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestProviderShutdown(t *testing.T) {
	t.Run("shuts down cleanly", func(t *testing.T) {
		provider, err := NewProvider("cards")
		require.NoError(t, err)
		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("tolerates nil meter provider", func(t *testing.T) {
		provider := &Provider{}
		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
