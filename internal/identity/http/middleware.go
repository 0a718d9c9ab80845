package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/cards/internal/errors"
	"github.com/allisson/cards/internal/httputil"
	"github.com/allisson/cards/internal/identity/service"
)

// IdentityMiddleware resolves the caller identity from a Bearer token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Resolves the token into an account via the identity resolver
// 3. Stores the resolved account in the request context
// 4. Allows downstream handlers to access the account via GetAccount()
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Rejected token → 401 Unauthorized (from Resolver.Resolve)
//   - Identity service failures → 500 Internal Server Error
func IdentityMiddleware(resolver service.Resolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("identity resolution failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("identity resolution failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("identity resolution failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		account, err := resolver.Resolve(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("identity resolution failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithAccount(c.Request.Context(), account)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("identity resolution successful",
			slog.Int64("user_id", account.UserID),
			slog.Int64("account_id", account.AccountID))

		c.Next()
	}
}
