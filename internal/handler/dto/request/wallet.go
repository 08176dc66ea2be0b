package request

import (
	"redemption-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

// PayoutRequest is idempotent by RequestID.
type PayoutRequest struct {
	RequestID   uuid.UUID `json:"request_id" binding:"required"`
	AmountMinor int64     `json:"amount_minor" binding:"required,gt=0"`
}

func (r *PayoutRequest) ToCommand() commands.PayoutRequest {
	return commands.PayoutRequest{RequestID: r.RequestID, AmountMinor: r.AmountMinor}
}

type AdjustmentRequest struct {
	BeneficiaryID uuid.UUID `json:"beneficiary_id" binding:"required"`
	ReferenceID   uuid.UUID `json:"reference_id" binding:"required"`
	AmountMinor   int64     `json:"amount_minor" binding:"required,ne=0"`
	Memo          string    `json:"memo" binding:"required,max=500"`
}

func (r *AdjustmentRequest) ToCommand() commands.AdjustmentRequest {
	return commands.AdjustmentRequest{
		BeneficiaryID: r.BeneficiaryID,
		ReferenceID:   r.ReferenceID,
		AmountMinor:   r.AmountMinor,
		Memo:          r.Memo,
	}
}

type ListTransactionsQuery struct {
	After string `form:"after"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
