package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/cards/internal/cards/usecase"
	identityDomain "github.com/allisson/cards/internal/identity/domain"
)

func setupVerificationRouter(verificationUseCase *MockVerificationUseCase, account *identityDomain.AccountInfo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewVerificationHandler(verificationUseCase, testLogger())

	router := gin.New()
	group := router.Group("/v1/cards")
	if account != nil {
		group.Use(withAccount(account))
	}
	group.GET("/:id/verify/:cardNumber", handler.ExternalVerifyHandler)
	group.POST("/internal/verify", handler.InternalVerifyHandler)
	return router
}

func TestVerificationHandler_ExternalVerifyHandler(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	verificationUseCase.On("VerifyExternal", mock.Anything, int64(7), "4123456789012345").
		Return(&usecase.ExternalVerification{
			Verified:     true,
			Message:      "Card verified successfully",
			UserID:       7,
			CardLastFour: "2345",
		})

	router := setupVerificationRouter(verificationUseCase, userAccount())
	recorder := performJSON(router, http.MethodGet, "/v1/cards/7/verify/4123456789012345", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, true, response["verified"])
	assert.Equal(t, "2345", response["cardLastFour"])
	verificationUseCase.AssertExpectations(t)
}

func TestVerificationHandler_ExternalVerifyHandlerNotVerified(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	verificationUseCase.On("VerifyExternal", mock.Anything, int64(7), "4000000000000000").
		Return(&usecase.ExternalVerification{
			Verified: false,
			Message:  "Card verification failed. Card not found, inactive, or doesn't belong to user",
			UserID:   7,
		})

	router := setupVerificationRouter(verificationUseCase, userAccount())
	recorder := performJSON(router, http.MethodGet, "/v1/cards/7/verify/4000000000000000", nil)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, false, response["verified"])
	assert.NotContains(t, response, "cardLastFour")
	verificationUseCase.AssertExpectations(t)
}

func TestVerificationHandler_ExternalVerifyHandlerOtherUser(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	router := setupVerificationRouter(verificationUseCase, userAccount())

	recorder := performJSON(router, http.MethodGet, "/v1/cards/99/verify/4123456789012345", nil)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	verificationUseCase.AssertNotCalled(t, "VerifyExternal")
}

func TestVerificationHandler_ExternalVerifyHandlerAdminVerifiesAnyUser(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	verificationUseCase.On("VerifyExternal", mock.Anything, int64(99), "4123456789012345").
		Return(&usecase.ExternalVerification{Verified: true, UserID: 99, CardLastFour: "2345"})

	router := setupVerificationRouter(verificationUseCase, adminAccount())
	recorder := performJSON(router, http.MethodGet, "/v1/cards/99/verify/4123456789012345", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	verificationUseCase.AssertExpectations(t)
}

func TestVerificationHandler_ExternalVerifyHandlerWithoutAccount(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	router := setupVerificationRouter(verificationUseCase, nil)

	recorder := performJSON(router, http.MethodGet, "/v1/cards/7/verify/4123456789012345", nil)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	verificationUseCase.AssertNotCalled(t, "VerifyExternal")
}

func TestVerificationHandler_InternalVerifyHandler(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	amount := 100.0
	verificationUseCase.On("VerifyInternal", mock.Anything, &usecase.InternalVerificationRequest{
		CardNumber: "4123456789012345",
		AccountID:  3,
		CVV:        "123",
		Amount:     &amount,
	}).Return(true)

	router := setupVerificationRouter(verificationUseCase, nil)
	recorder := performJSON(router, http.MethodPost, "/v1/cards/internal/verify", gin.H{
		"cardNumber": "4123456789012345",
		"accountId":  3,
		"cvv":        "123",
		"amount":     100.0,
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	var response map[string]bool
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.True(t, response["verified"])
	verificationUseCase.AssertExpectations(t)
}

func TestVerificationHandler_InternalVerifyHandlerRejected(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	verificationUseCase.On("VerifyInternal", mock.Anything, mock.Anything).Return(false)

	router := setupVerificationRouter(verificationUseCase, nil)
	recorder := performJSON(router, http.MethodPost, "/v1/cards/internal/verify", gin.H{
		"cardNumber": "4123456789012345",
		"accountId":  3,
		"pin":        "9999",
	})

	assert.Equal(t, http.StatusOK, recorder.Code)
	var response map[string]bool
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.False(t, response["verified"])
	verificationUseCase.AssertExpectations(t)
}

func TestVerificationHandler_InternalVerifyHandlerMissingCardNumber(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	router := setupVerificationRouter(verificationUseCase, nil)

	recorder := performJSON(router, http.MethodPost, "/v1/cards/internal/verify", gin.H{
		"accountId": 3,
		"pin":       "1234",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	verificationUseCase.AssertNotCalled(t, "VerifyInternal")
}

func TestVerificationHandler_InternalVerifyHandlerMalformedCardNumber(t *testing.T) {
	verificationUseCase := &MockVerificationUseCase{}
	router := setupVerificationRouter(verificationUseCase, nil)

	recorder := performJSON(router, http.MethodPost, "/v1/cards/internal/verify", gin.H{
		"cardNumber": "4123",
		"accountId":  3,
		"pin":        "1234",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "card number must be exactly 16 digits")
	verificationUseCase.AssertNotCalled(t, "VerifyInternal")
}
