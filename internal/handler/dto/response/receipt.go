package response

import (
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/queries"
)

type SubmitReceiptResponse struct {
	ReceiptID string `json:"receipt_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

func FromSubmitReceiptResult(r *commands.SubmitReceiptResult) *SubmitReceiptResponse {
	return &SubmitReceiptResponse{
		ReceiptID: r.ReceiptID.String(),
		Status:    string(r.Status),
		Message:   r.Message,
	}
}

type ClaimOutcomeResponse struct {
	ClaimID           string   `json:"claim_id"`
	TargetDescription string   `json:"target_description"`
	ClaimStatus       string   `json:"claim_status"`
	Outcome           string   `json:"outcome"`
	LineItemIndex     *int32   `json:"line_item_index,omitempty"`
	Confidence        *float64 `json:"confidence,omitempty"`
	CreditMinor       *int64   `json:"credit_minor,omitempty"`
	Reason            *string  `json:"reason,omitempty"`
	Attempts          int32    `json:"attempts"`
}

type ReceiptOutcomeResponse struct {
	ID           string                  `json:"id"`
	Status       string                  `json:"status"`
	Message      *string                 `json:"message,omitempty"`
	StoreName    *string                 `json:"store_name,omitempty"`
	PurchaseDate *string                 `json:"purchase_date,omitempty"`
	TotalMinor   *int64                  `json:"total_minor,omitempty"`
	SubmittedAt  int64                   `json:"submitted_at"`
	ProcessedAt  *int64                  `json:"processed_at,omitempty"`
	Outcomes     []*ClaimOutcomeResponse `json:"outcomes"`
}

func FromReceiptOutcome(v *queries.ReceiptOutcomeView) *ReceiptOutcomeResponse {
	r := v.Receipt
	res := &ReceiptOutcomeResponse{
		ID:          r.ID.String(),
		Status:      r.Status,
		Message:     r.Message,
		StoreName:   r.StoreName,
		TotalMinor:  r.TotalMinor,
		SubmittedAt: r.SubmittedAt.Unix(),
		ProcessedAt: unixPtr(r.ProcessedAt),
		Outcomes:    make([]*ClaimOutcomeResponse, len(v.Outcomes)),
	}
	if r.PurchaseDate != nil {
		d := r.PurchaseDate.Format("2006-01-02")
		res.PurchaseDate = &d
	}
	for i, o := range v.Outcomes {
		res.Outcomes[i] = &ClaimOutcomeResponse{
			ClaimID:           o.ClaimID.String(),
			TargetDescription: o.TargetDescription,
			ClaimStatus:       o.ClaimStatus,
			Outcome:           o.Outcome,
			LineItemIndex:     o.LineItemIndex,
			Confidence:        o.Confidence,
			CreditMinor:       o.CreditMinor,
			Reason:            o.Reason,
			Attempts:          o.Attempts,
		}
	}
	return res
}
