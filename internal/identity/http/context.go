// Package http provides the identity middleware and request context helpers.
package http

import (
	"context"

	"github.com/allisson/cards/internal/identity/domain"
)

// accountKey is a context key type for storing resolved accounts.
type accountKey struct{}

// WithAccount stores a resolved account in the context.
// This is typically called by the identity middleware after token resolution.
func WithAccount(ctx context.Context, account *domain.AccountInfo) context.Context {
	return context.WithValue(ctx, accountKey{}, account)
}

// GetAccount retrieves the resolved account from the context.
// Returns (account, true) if present, or (nil, false) if no account was set.
func GetAccount(ctx context.Context) (*domain.AccountInfo, bool) {
	account, ok := ctx.Value(accountKey{}).(*domain.AccountInfo)
	return account, ok
}
