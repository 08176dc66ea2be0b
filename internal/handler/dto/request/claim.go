package request

import (
	"redemption-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	OfferID    uuid.UUID `json:"offer_id" binding:"required"`
	ListItemID uuid.UUID `json:"list_item_id" binding:"required"`
}

func (r *CreateClaimRequest) ToCommand() commands.CreateClaimRequest {
	return commands.CreateClaimRequest{OfferID: r.OfferID, ListItemID: r.ListItemID}
}

type ListClaimsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=claimed redeemed expired rejected cancelled"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
