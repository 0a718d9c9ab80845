// Package http provides HTTP handlers for card lifecycle operations.
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
	identityDomain "github.com/allisson/cards/internal/identity/domain"
	identityHTTP "github.com/allisson/cards/internal/identity/http"
	customValidation "github.com/allisson/cards/internal/validation"
)

// CardHandler handles HTTP requests for card lifecycle operations.
// Caller identity comes from the identity middleware; handlers enforce
// the role checks and delegate everything else to the use case.
type CardHandler struct {
	cardUseCase usecase.CardUseCase
	logger      *slog.Logger
}

// NewCardHandler creates a new card handler with required dependencies.
func NewCardHandler(cardUseCase usecase.CardUseCase, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardUseCase: cardUseCase,
		logger:      logger,
	}
}

// account retrieves the resolved caller identity or writes a 401 response.
func (h *CardHandler) account(c *gin.Context) (*identityDomain.AccountInfo, bool) {
	account, ok := identityHTTP.GetAccount(c.Request.Context())
	if !ok || account == nil {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrUnauthorized, "Unauthorized: user not found in token"),
			h.logger)
		return nil, false
	}
	return account, true
}

// cardIDParam parses the card ID path parameter or writes a 422 response.
func (h *CardHandler) cardIDParam(c *gin.Context) (int64, bool) {
	cardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid card ID format: must be an integer"),
			h.logger)
		return 0, false
	}
	return cardID, true
}

// IssueHandler issues a new card for the authenticated account.
// POST /v1/cards - userId, accountId, and the account currency come from
// the resolved token identity, not the body.
// Returns 201 Created with the masked card summary.
func (h *CardHandler) IssueHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	var req dto.IssueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := dto.ToIssueCardRequest(req, account.UserID, account.AccountID, account.Currency)

	summary, err := h.cardUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToIssueCardResponse(summary))
}

// ListHandler lists cards with optional filters and pagination.
// GET /v1/cards - non-admin callers only ever see their own cards, and
// card numbers are masked for administrators.
func (h *CardHandler) ListHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	filters := usecase.ListFilters{
		Status:  c.Query("status"),
		Type:    c.Query("type"),
		Network: c.Query("network"),
	}
	if raw := c.Query("userId"); raw != "" {
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid userId filter: must be an integer"),
				h.logger)
			return
		}
		filters.UserID = &userID
	}
	if raw := c.Query("accountId"); raw != "" {
		accountID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid accountId filter: must be an integer"),
				h.logger)
			return
		}
		filters.AccountID = &accountID
	}

	entries, err := h.cardUseCase.List(c.Request.Context(), filters, account.IsAdmin(), account.UserID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToCardListResponse(entries, offset, limit))
}

// GetSensitiveDataHandler returns the full sensitive payload of a card.
// GET /v1/cards/:id - owner only.
func (h *CardHandler) GetSensitiveDataHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	details, err := h.cardUseCase.GetSensitiveData(c.Request.Context(), cardID, account.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToSensitiveDataResponse(details))
}

// GetCardNumberHandler returns the full card number of a card.
// GET /v1/cards/number/:id - owner only.
func (h *CardHandler) GetCardNumberHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	details, err := h.cardUseCase.GetSensitiveData(c.Request.Context(), cardID, account.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CardNumberResponse{CardNumber: details.CardNumber})
}

// GetCardCVVHandler returns the CVV of a card.
// GET /v1/cards/cvv/:id - owner only.
func (h *CardHandler) GetCardCVVHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	details, err := h.cardUseCase.GetSensitiveData(c.Request.Context(), cardID, account.UserID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CardCVVResponse{CardCVV: details.CardCVV})
}

// UpdateHandler updates the PIN and/or user-settable status of a card.
// PUT /v1/cards/:id - non-admin callers can only update their own cards.
func (h *CardHandler) UpdateHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Ownership gate for regular users; administrators may update any card.
	if !account.IsAdmin() {
		if _, err := h.cardUseCase.GetSensitiveData(c.Request.Context(), cardID, account.UserID); err != nil {
			if apperrors.Is(err, apperrors.ErrForbidden) {
				httputil.HandleErrorGin(c,
					apperrors.Wrap(apperrors.ErrForbidden, "Access denied. You can only update your own cards"),
					h.logger)
				return
			}
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	input := &usecase.UpdateCardRequest{
		PIN:    req.PIN,
		Status: req.Status,
	}

	if err := h.cardUseCase.Update(c.Request.Context(), cardID, input); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Card updated successfully"})
}

// BlockHandler blocks a card.
// PUT /v1/cards/:id/block - administrators only.
func (h *CardHandler) BlockHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	if !account.IsAdmin() {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrForbidden, "Access denied. Only ADMIN can block cards"),
			h.logger)
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	card, err := h.cardUseCase.Block(c.Request.Context(), cardID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusChangeResponse(card))
}

// UnblockHandler unblocks a card.
// PUT /v1/cards/:id/unblock - administrators only.
func (h *CardHandler) UnblockHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}
	if !account.IsAdmin() {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrForbidden, "Access denied. Only ADMIN can unblock cards"),
			h.logger)
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	card, err := h.cardUseCase.Unblock(c.Request.Context(), cardID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatusChangeResponse(card))
}

// DeliverHandler marks a pending card as delivered.
// PUT /v1/cards/deliver/:id - administrators only; the role check lives
// in the use case so the error message is uniform across transports.
func (h *CardHandler) DeliverHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	cardID, ok := h.cardIDParam(c)
	if !ok {
		return
	}

	var req dto.DeliverCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.cardUseCase.Deliver(c.Request.Context(), cardID, req.CardStatus, account.IsAdmin()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Card status set to " + req.CardStatus})
}

// ActivateHandler activates a delivered card using its credentials.
// POST /v1/cards/user/activate - the card must belong to the caller.
func (h *CardHandler) ActivateHandler(c *gin.Context) {
	account, ok := h.account(c)
	if !ok {
		return
	}

	var req dto.ActivateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.cardUseCase.ActivateByUser(c.Request.Context(), req.CardNumber, req.CardCVV, account.UserID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Card activated successfully"})
}
