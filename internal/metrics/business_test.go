package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scrape renders the provider's Prometheus output as a string.
func scrape(t *testing.T, provider *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestBusinessMetricsRecordOperation(t *testing.T) {
	provider, err := NewProvider("cards")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "cards")
	require.NoError(t, err)

	bm.RecordOperation(context.Background(), "cards", "issue", "success")
	bm.RecordOperation(context.Background(), "cards", "issue", "success")
	bm.RecordOperation(context.Background(), "cards", "verify_external", "error")
	bm.RecordOperation(context.Background(), "plans", "create", "success")

	output := scrape(t, provider)
	assert.Contains(t, output, "cards_operations_total")
	// Counter values survive label splits; the exporter may add OTel
	// scope labels, so match on the domain/operation fragments only.
	assert.Regexp(t, `cards_operations_total\{[^}]*operation="issue"[^}]*\} 2`, output)
	assert.Regexp(t, `cards_operations_total\{[^}]*domain="plans"[^}]*\} 1`, output)
}

func TestBusinessMetricsRecordDuration(t *testing.T) {
	provider, err := NewProvider("cards")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	bm, err := NewBusinessMetrics(provider.MeterProvider(), "cards")
	require.NoError(t, err)

	bm.RecordDuration(context.Background(), "cards", "issue", 40*time.Millisecond, "success")
	bm.RecordDuration(context.Background(), "cards", "verify_internal", 5*time.Millisecond, "error")

	output := scrape(t, provider)
	assert.Contains(t, output, "cards_operation_duration_seconds")
	assert.Regexp(t, `cards_operation_duration_seconds_count\{[^}]*operation="issue"[^}]*\} 1`, output)
}

func TestNoOpBusinessMetrics(t *testing.T) {
	bm := NewNoOpBusinessMetrics()

	// Must be callable without a provider and never panic.
	bm.RecordOperation(context.Background(), "cards", "issue", "success")
	bm.RecordDuration(context.Background(), "cards", "issue", time.Second, "error")
}
