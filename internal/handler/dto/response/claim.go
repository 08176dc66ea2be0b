package response

import (
	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/usecase/queries"
)

type ClaimResponse struct {
	ID                string  `json:"id"`
	OfferID           string  `json:"offer_id"`
	ListItemID        string  `json:"list_item_id"`
	Status            string  `json:"status"`
	TargetDescription string  `json:"target_description,omitempty"`
	Category          string  `json:"category,omitempty"`
	SavingsMinor      int64   `json:"savings_minor,omitempty"`
	ReceiptID         *string `json:"receipt_id,omitempty"`
	Reason            *string `json:"reason,omitempty"`
	CreatedAt         int64   `json:"created_at"`
	ExpiresAt         int64   `json:"expires_at"`
	ResolvedAt        *int64  `json:"resolved_at,omitempty"`
	ReviewFlaggedAt   *int64  `json:"review_flagged_at,omitempty"`
}

type FlaggedClaimResponse struct {
	ClaimResponse
	ClaimantID string `json:"claimant_id"`
}

func FromClaim(c *claim.Claim) *ClaimResponse {
	res := &ClaimResponse{
		ID:              c.ID().String(),
		OfferID:         c.OfferID().String(),
		ListItemID:      c.ListItemID().String(),
		Status:          c.Status().String(),
		ReceiptID:       uuidString(c.ReceiptID()),
		CreatedAt:       c.CreatedAt().Unix(),
		ExpiresAt:       c.ExpiresAt().Unix(),
		ResolvedAt:      unixPtr(c.ResolvedAt()),
		ReviewFlaggedAt: unixPtr(c.ReviewFlaggedAt()),
	}
	if reason := c.Reason(); reason != "" {
		res.Reason = &reason
	}
	return res
}

func FromClaimView(v *queries.ClaimView) *ClaimResponse {
	return &ClaimResponse{
		ID:                v.ID.String(),
		OfferID:           v.OfferID.String(),
		ListItemID:        v.ListItemID.String(),
		Status:            v.Status,
		TargetDescription: v.TargetDescription,
		Category:          v.Category,
		SavingsMinor:      v.SavingsMinor,
		ReceiptID:         uuidString(v.ReceiptID),
		Reason:            v.Reason,
		CreatedAt:         v.CreatedAt.Unix(),
		ExpiresAt:         v.ExpiresAt.Unix(),
		ResolvedAt:        unixPtr(v.ResolvedAt),
		ReviewFlaggedAt:   unixPtr(v.ReviewFlaggedAt),
	}
}

func FromClaimViews(views []*queries.ClaimView) []*ClaimResponse {
	res := make([]*ClaimResponse, len(views))
	for i, v := range views {
		res[i] = FromClaimView(v)
	}
	return res
}

func FromFlaggedClaimViews(views []*queries.ClaimView) []*FlaggedClaimResponse {
	res := make([]*FlaggedClaimResponse, len(views))
	for i, v := range views {
		res[i] = &FlaggedClaimResponse{ClaimResponse: *FromClaimView(v), ClaimantID: v.ClaimantID.String()}
	}
	return res
}
