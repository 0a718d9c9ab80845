package http

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	cardsDomain "github.com/allisson/cards/internal/cards/domain"
	"github.com/allisson/cards/internal/cards/usecase"
	identityDomain "github.com/allisson/cards/internal/identity/domain"
	identityHTTP "github.com/allisson/cards/internal/identity/http"
)

// MockCardUseCase is a mock implementation of usecase.CardUseCase for testing.
type MockCardUseCase struct {
	mock.Mock
}

func (m *MockCardUseCase) Issue(ctx context.Context, req *usecase.IssueCardRequest) (*usecase.CardSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CardSummary), args.Error(1)
}

func (m *MockCardUseCase) Block(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) Unblock(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) Update(ctx context.Context, cardID int64, req *usecase.UpdateCardRequest) error {
	args := m.Called(ctx, cardID, req)
	return args.Error(0)
}

func (m *MockCardUseCase) Deliver(ctx context.Context, cardID int64, targetStatus string, isAdmin bool) error {
	args := m.Called(ctx, cardID, targetStatus, isAdmin)
	return args.Error(0)
}

func (m *MockCardUseCase) ActivateByUser(ctx context.Context, cardNumber, cvv string, userID int64) error {
	args := m.Called(ctx, cardNumber, cvv, userID)
	return args.Error(0)
}

func (m *MockCardUseCase) List(
	ctx context.Context,
	filters usecase.ListFilters,
	isAdmin bool,
	callerUserID int64,
	offset, limit int,
) ([]*usecase.CardListEntry, error) {
	args := m.Called(ctx, filters, isAdmin, callerUserID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.CardListEntry), args.Error(1)
}

func (m *MockCardUseCase) GetSensitiveData(ctx context.Context, cardID, callerUserID int64) (*usecase.SensitiveDetails, error) {
	args := m.Called(ctx, cardID, callerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SensitiveDetails), args.Error(1)
}

// MockVerificationUseCase is a mock implementation of usecase.VerificationUseCase for testing.
type MockVerificationUseCase struct {
	mock.Mock
}

func (m *MockVerificationUseCase) VerifyExternal(ctx context.Context, userID int64, cardNumber string) *usecase.ExternalVerification {
	args := m.Called(ctx, userID, cardNumber)
	return args.Get(0).(*usecase.ExternalVerification)
}

func (m *MockVerificationUseCase) VerifyInternal(ctx context.Context, req *usecase.InternalVerificationRequest) bool {
	args := m.Called(ctx, req)
	return args.Bool(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// withAccount injects a resolved account into the request context,
// standing in for the identity middleware.
func withAccount(account *identityDomain.AccountInfo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := identityHTTP.WithAccount(c.Request.Context(), account)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func userAccount() *identityDomain.AccountInfo {
	return &identityDomain.AccountInfo{AccountID: 3, UserID: 7, Role: "USER", Currency: "USD"}
}

func adminAccount() *identityDomain.AccountInfo {
	return &identityDomain.AccountInfo{AccountID: 1, UserID: 1, Role: "ADMIN", Currency: "USD"}
}
