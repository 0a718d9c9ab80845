// Package service provides the identity resolver client.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/allisson/cards/internal/errors"
	"github.com/allisson/cards/internal/identity/domain"
)

// Resolver resolves an access token into the caller's account identity.
type Resolver interface {
	// Resolve exchanges a plain access token for the account it belongs to.
	// Returns ErrUnauthorized when the identity service rejects the token and
	// ErrInternal when the service is unreachable or returns a malformed body.
	Resolve(ctx context.Context, token string) (*domain.AccountInfo, error)
}

// HTTPResolver resolves tokens against the identity service over HTTP.
type HTTPResolver struct {
	baseURL string
	client  *http.Client
}

// NewHTTPResolver creates an HTTPResolver for the given base URL and timeout.
func NewHTTPResolver(baseURL string, timeout time.Duration) *HTTPResolver {
	return &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// accountResponse is the identity service payload for a resolved token.
type accountResponse struct {
	AccountID int64  `json:"accountId"`
	UserID    int64  `json:"userId"`
	Role      string `json:"role"`
	Currency  string `json:"currency"`
}

// Resolve calls GET {base}/accounts/by-token with the token as a Bearer credential.
func (r *HTTPResolver) Resolve(ctx context.Context, token string) (*domain.AccountInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/accounts/by-token", nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to build identity request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, fmt.Sprintf("identity service unreachable: %v", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, errors.Wrap(errors.ErrUnauthorized, "identity service rejected token")
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Wrap(errors.ErrInternal,
			fmt.Sprintf("identity service returned status %d", resp.StatusCode))
	}

	var payload accountResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "failed to decode identity response")
	}
	if payload.AccountID == 0 || payload.UserID == 0 {
		return nil, errors.Wrap(errors.ErrInternal, "identity response missing account or user id")
	}

	return &domain.AccountInfo{
		AccountID: payload.AccountID,
		UserID:    payload.UserID,
		Role:      payload.Role,
		Currency:  payload.Currency,
	}, nil
}
