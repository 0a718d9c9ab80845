package dto

import (
	"github.com/allisson/cards/internal/cards/domain"
	"github.com/allisson/cards/internal/cards/usecase"
)

// ToIssueCardRequest converts an issuance DTO and the resolved caller
// identity to a use case request.
func ToIssueCardRequest(req IssueCardRequest, userID, accountID int64, accountCurrency string) *usecase.IssueCardRequest {
	return &usecase.IssueCardRequest{
		UserID:          userID,
		AccountID:       accountID,
		PIN:             req.PIN,
		Type:            req.Type,
		Network:         req.Network,
		PlanID:          req.PlanID,
		Currency:        req.Currency,
		AccountCurrency: accountCurrency,
	}
}

// ToIssueCardResponse converts an issuance summary to a response DTO
func ToIssueCardResponse(summary *usecase.CardSummary) IssueCardResponse {
	return IssueCardResponse{
		CardID:           summary.CardID,
		MaskedCardNumber: summary.MaskedCardNumber,
		CardExpiry:       summary.CardExpiry,
		CardStatus:       string(summary.CardStatus),
		Type:             string(summary.Type),
		CreatedAt:        summary.CreatedAt,
	}
}

// ToCardListResponse converts a listing projection to a response DTO
func ToCardListResponse(entries []*usecase.CardListEntry, offset, limit int) CardListResponse {
	cards := make([]CardListEntryResponse, 0, len(entries))
	for _, entry := range entries {
		cards = append(cards, CardListEntryResponse{
			CardID:     entry.CardID,
			UserID:     entry.UserID,
			AccountID:  entry.AccountID,
			CardNumber: entry.CardNumber,
			CardExpiry: entry.CardExpiry,
			Type:       string(entry.Type),
			Network:    string(entry.Network),
			CardStatus: string(entry.CardStatus),
			CreatedAt:  entry.CreatedAt,
		})
	}
	return CardListResponse{
		Cards:  cards,
		Offset: offset,
		Limit:  limit,
	}
}

// ToSensitiveDataResponse converts the owner-only sensitive payload to a
// response DTO
func ToSensitiveDataResponse(details *usecase.SensitiveDetails) SensitiveDataResponse {
	return SensitiveDataResponse{
		CardID:     details.CardID,
		UserID:     details.UserID,
		AccountID:  details.AccountID,
		CardNumber: details.CardNumber,
		CardExpiry: details.CardExpiry,
		CardPIN:    details.CardPIN,
		CardCVV:    details.CardCVV,
		Type:       string(details.Type),
		CardStatus: string(details.CardStatus),
	}
}

// ToStatusChangeResponse converts a block or unblock result to a response
// DTO with the masked card number.
func ToStatusChangeResponse(card *domain.Card) StatusChangeResponse {
	masked := ""
	if card.Sensitive != nil {
		masked = domain.MaskCardNumber(card.Sensitive.CardNumber)
	}
	return StatusChangeResponse{
		CardID:           card.ID,
		MaskedCardNumber: masked,
		CardStatus:       string(card.Status),
	}
}

// ToExternalVerifyResponse converts an external verification outcome to a
// response DTO
func ToExternalVerifyResponse(result *usecase.ExternalVerification) ExternalVerifyResponse {
	return ExternalVerifyResponse{
		Verified:     result.Verified,
		Message:      result.Message,
		UserID:       result.UserID,
		CardLastFour: result.CardLastFour,
	}
}

// ToInternalVerificationRequest converts an internal verification DTO to a
// use case request.
func ToInternalVerificationRequest(req InternalVerifyRequest) *usecase.InternalVerificationRequest {
	return &usecase.InternalVerificationRequest{
		CardNumber: req.CardNumber,
		AccountID:  req.AccountID,
		PIN:        req.PIN,
		CVV:        req.CVV,
		Amount:     req.Amount,
	}
}
