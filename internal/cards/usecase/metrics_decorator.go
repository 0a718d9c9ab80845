package usecase

import (
	"context"
	"time"

	cardsDomain "github.com/allisson/cards/internal/cards/domain"
	"github.com/allisson/cards/internal/metrics"
)

// cardUseCaseWithMetrics decorates CardUseCase with metrics instrumentation.
type cardUseCaseWithMetrics struct {
	next    CardUseCase
	metrics metrics.BusinessMetrics
}

// NewCardUseCaseWithMetrics wraps a CardUseCase with metrics recording.
func NewCardUseCaseWithMetrics(useCase CardUseCase, m metrics.BusinessMetrics) CardUseCase {
	return &cardUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *cardUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "cards", operation, status)
	c.metrics.RecordDuration(ctx, "cards", operation, time.Since(start), status)
}

// Issue records metrics for card issuance operations.
func (c *cardUseCaseWithMetrics) Issue(ctx context.Context, req *IssueCardRequest) (*CardSummary, error) {
	start := time.Now()
	summary, err := c.next.Issue(ctx, req)
	c.record(ctx, "issue", start, err)
	return summary, err
}

// Block records metrics for card block operations.
func (c *cardUseCaseWithMetrics) Block(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Block(ctx, cardID)
	c.record(ctx, "block", start, err)
	return card, err
}

// Unblock records metrics for card unblock operations.
func (c *cardUseCaseWithMetrics) Unblock(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Unblock(ctx, cardID)
	c.record(ctx, "unblock", start, err)
	return card, err
}

// Update records metrics for card update operations.
func (c *cardUseCaseWithMetrics) Update(ctx context.Context, cardID int64, req *UpdateCardRequest) error {
	start := time.Now()
	err := c.next.Update(ctx, cardID, req)
	c.record(ctx, "update", start, err)
	return err
}

// Deliver records metrics for card delivery operations.
func (c *cardUseCaseWithMetrics) Deliver(ctx context.Context, cardID int64, targetStatus string, isAdmin bool) error {
	start := time.Now()
	err := c.next.Deliver(ctx, cardID, targetStatus, isAdmin)
	c.record(ctx, "deliver", start, err)
	return err
}

// ActivateByUser records metrics for user activation operations.
func (c *cardUseCaseWithMetrics) ActivateByUser(ctx context.Context, cardNumber, cvv string, userID int64) error {
	start := time.Now()
	err := c.next.ActivateByUser(ctx, cardNumber, cvv, userID)
	c.record(ctx, "activate", start, err)
	return err
}

// List records metrics for card listing operations.
func (c *cardUseCaseWithMetrics) List(
	ctx context.Context,
	filters ListFilters,
	isAdmin bool,
	callerUserID int64,
	offset, limit int,
) ([]*CardListEntry, error) {
	start := time.Now()
	entries, err := c.next.List(ctx, filters, isAdmin, callerUserID, offset, limit)
	c.record(ctx, "list", start, err)
	return entries, err
}

// GetSensitiveData records metrics for sensitive data retrieval.
func (c *cardUseCaseWithMetrics) GetSensitiveData(ctx context.Context, cardID, callerUserID int64) (*SensitiveDetails, error) {
	start := time.Now()
	details, err := c.next.GetSensitiveData(ctx, cardID, callerUserID)
	c.record(ctx, "get_sensitive_data", start, err)
	return details, err
}

// verificationUseCaseWithMetrics decorates VerificationUseCase with
// metrics instrumentation. Verification has no error path; the status
// label carries the verification outcome instead.
type verificationUseCaseWithMetrics struct {
	next    VerificationUseCase
	metrics metrics.BusinessMetrics
}

// NewVerificationUseCaseWithMetrics wraps a VerificationUseCase with
// metrics recording.
func NewVerificationUseCaseWithMetrics(useCase VerificationUseCase, m metrics.BusinessMetrics) VerificationUseCase {
	return &verificationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// VerifyExternal records metrics for external verification checks.
func (v *verificationUseCaseWithMetrics) VerifyExternal(ctx context.Context, userID int64, cardNumber string) *ExternalVerification {
	start := time.Now()
	result := v.next.VerifyExternal(ctx, userID, cardNumber)

	status := "verified"
	if !result.Verified {
		status = "rejected"
	}
	v.metrics.RecordOperation(ctx, "cards", "verify_external", status)
	v.metrics.RecordDuration(ctx, "cards", "verify_external", time.Since(start), status)

	return result
}

// VerifyInternal records metrics for internal verification checks.
func (v *verificationUseCaseWithMetrics) VerifyInternal(ctx context.Context, req *InternalVerificationRequest) bool {
	start := time.Now()
	verified := v.next.VerifyInternal(ctx, req)

	status := "verified"
	if !verified {
		status = "rejected"
	}
	v.metrics.RecordOperation(ctx, "cards", "verify_internal", status)
	v.metrics.RecordDuration(ctx, "cards", "verify_internal", time.Since(start), status)

	return verified
}
