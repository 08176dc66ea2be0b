package response

import "redemption-ledger/internal/usecase/queries"

type OfferResponse struct {
	ID                   string `json:"id"`
	Category             string `json:"category"`
	TargetDescription    string `json:"target_description"`
	SavingsMinor         int64  `json:"savings_minor"`
	RemainingRedemptions *int32 `json:"remaining_redemptions,omitempty"`
	ExpiresAt            *int64 `json:"expires_at,omitempty"`
}

func FromOfferViews(views []*queries.OfferView) []*OfferResponse {
	res := make([]*OfferResponse, len(views))
	for i, v := range views {
		res[i] = &OfferResponse{
			ID:                   v.ID.String(),
			Category:             v.Category,
			TargetDescription:    v.TargetDescription,
			SavingsMinor:         v.SavingsMinor,
			RemainingRedemptions: v.RemainingRedemptions,
			ExpiresAt:            unixPtr(v.ExpiresAt),
		}
	}
	return res
}
