package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cards/internal/errors"
)

func TestHTTPResolver_Resolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/by-token", r.URL.Path)
		assert.Equal(t, "Bearer valid-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"accountId":3,"userId":7,"role":"USER","currency":"USD"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, 5*time.Second)
	account, err := resolver.Resolve(context.Background(), "valid-token")

	require.NoError(t, err)
	assert.Equal(t, int64(3), account.AccountID)
	assert.Equal(t, int64(7), account.UserID)
	assert.Equal(t, "USER", account.Role)
	assert.Equal(t, "USD", account.Currency)
	assert.False(t, account.IsAdmin())
}

func TestHTTPResolver_ResolveAdminRole(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accountId":1,"userId":1,"role":"admin","currency":"EUR"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, 5*time.Second)
	account, err := resolver.Resolve(context.Background(), "admin-token")

	require.NoError(t, err)
	assert.True(t, account.IsAdmin())
}

func TestHTTPResolver_ResolveRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, 5*time.Second)
	account, err := resolver.Resolve(context.Background(), "bad-token")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestHTTPResolver_ResolveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, 5*time.Second)
	account, err := resolver.Resolve(context.Background(), "any-token")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, errors.ErrInternal))
}

func TestHTTPResolver_ResolveMissingIdentifiers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"role":"USER","currency":"USD"}`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, 5*time.Second)
	account, err := resolver.Resolve(context.Background(), "incomplete-token")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, errors.ErrInternal))
}

func TestHTTPResolver_ResolveUnreachable(t *testing.T) {
	resolver := NewHTTPResolver("http://127.0.0.1:1", 200*time.Millisecond)
	account, err := resolver.Resolve(context.Background(), "any-token")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, errors.ErrInternal))
}

func TestHTTPResolver_ResolveMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not-json`))
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL, 5*time.Second)
	account, err := resolver.Resolve(context.Background(), "any-token")

	assert.Nil(t, account)
	assert.True(t, errors.Is(err, errors.ErrInternal))
}
