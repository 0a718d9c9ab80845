package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/cards/internal/cards/http/dto"
	"github.com/allisson/cards/internal/cards/usecase"
	apperrors "github.com/allisson/cards/internal/errors"
	"github.com/allisson/cards/internal/httputil"
	identityHTTP "github.com/allisson/cards/internal/identity/http"
	customValidation "github.com/allisson/cards/internal/validation"
)

// VerificationHandler handles HTTP requests for card verification checks.
type VerificationHandler struct {
	verificationUseCase usecase.VerificationUseCase
	logger              *slog.Logger
}

// NewVerificationHandler creates a new verification handler with required dependencies.
func NewVerificationHandler(verificationUseCase usecase.VerificationUseCase, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{
		verificationUseCase: verificationUseCase,
		logger:              logger,
	}
}

// ExternalVerifyHandler checks that a card exists, belongs to the given
// user, and is in a usable status.
// GET /v1/cards/:id/verify/:cardNumber - the path parameter is the target
// user ID; non-admin callers can only verify their own cards.
// Returns 200 OK when the card verifies and 400 Bad Request otherwise;
// the body carries no detail about why verification failed.
func (h *VerificationHandler) ExternalVerifyHandler(c *gin.Context) {
	account, ok := identityHTTP.GetAccount(c.Request.Context())
	if !ok || account == nil {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrUnauthorized, "Unauthorized: user not found in token"),
			h.logger)
		return
	}

	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be an integer"),
			h.logger)
		return
	}

	if !account.IsAdmin() && account.UserID != userID {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrForbidden, "Access denied. You can only verify your own cards"),
			h.logger)
		return
	}

	result := h.verificationUseCase.VerifyExternal(c.Request.Context(), userID, c.Param("cardNumber"))

	status := http.StatusOK
	if !result.Verified {
		status = http.StatusBadRequest
	}
	c.JSON(status, dto.ToExternalVerifyResponse(result))
}

// InternalVerifyHandler runs an internal verification challenge for
// service-to-service callers.
// POST /v1/cards/internal/verify - always returns 200 OK with a boolean;
// every semantic failure collapses into a negative result.
func (h *VerificationHandler) InternalVerifyHandler(c *gin.Context) {
	var req dto.InternalVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	verified := h.verificationUseCase.VerifyInternal(c.Request.Context(), dto.ToInternalVerificationRequest(req))

	c.JSON(http.StatusOK, dto.InternalVerifyResponse{Verified: verified})
}
