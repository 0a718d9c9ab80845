// Package http provides HTTP handlers for the card plan catalog.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/cards/internal/errors"
	"github.com/allisson/cards/internal/httputil"
	identityHTTP "github.com/allisson/cards/internal/identity/http"
	"github.com/allisson/cards/internal/plans/http/dto"
	"github.com/allisson/cards/internal/plans/usecase"
	customValidation "github.com/allisson/cards/internal/validation"
)

// PlanHandler handles HTTP requests for card plan catalog operations.
// Reads are open to any authenticated caller; writes require the
// administrative role.
type PlanHandler struct {
	planUseCase usecase.PlanUseCase
	logger      *slog.Logger
}

// NewPlanHandler creates a new plan handler with required dependencies.
func NewPlanHandler(planUseCase usecase.PlanUseCase, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{
		planUseCase: planUseCase,
		logger:      logger,
	}
}

// requireAdmin checks the caller role or writes a 401/403 response.
func (h *PlanHandler) requireAdmin(c *gin.Context) bool {
	account, ok := identityHTTP.GetAccount(c.Request.Context())
	if !ok || account == nil {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return false
	}
	if !account.IsAdmin() {
		httputil.HandleErrorGin(c,
			apperrors.Wrap(apperrors.ErrForbidden, "Access denied. Only ADMIN can manage card plans"),
			h.logger)
		return false
	}
	return true
}

// planIDParam parses the plan ID path parameter or writes a 422 response.
func (h *PlanHandler) planIDParam(c *gin.Context) (int64, bool) {
	planID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid plan ID format: must be an integer"),
			h.logger)
		return 0, false
	}
	return planID, true
}

// CreateHandler creates a new card plan.
// POST /v1/card-plans - administrators only.
// Returns 201 Created with the plan data.
func (h *PlanHandler) CreateHandler(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req dto.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plan, err := h.planUseCase.Create(c.Request.Context(), usecase.CreatePlanInput{
		Name:        req.Name,
		LimitAmount: req.LimitAmount,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPlanResponse(plan))
}

// GetHandler retrieves a plan by ID.
// GET /v1/card-plans/:id
func (h *PlanHandler) GetHandler(c *gin.Context) {
	planID, ok := h.planIDParam(c)
	if !ok {
		return
	}

	plan, err := h.planUseCase.Get(c.Request.Context(), planID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanResponse(plan))
}

// ListHandler lists plans with pagination.
// GET /v1/card-plans
func (h *PlanHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	plans, err := h.planUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPlanListResponse(plans, offset, limit))
}

// DeleteHandler removes a plan from the catalog.
// DELETE /v1/card-plans/:id - administrators only.
// Returns 204 No Content on success.
func (h *PlanHandler) DeleteHandler(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	planID, ok := h.planIDParam(c)
	if !ok {
		return
	}

	if err := h.planUseCase.Delete(c.Request.Context(), planID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
