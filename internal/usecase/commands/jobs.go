package commands

import (
	"encoding/json"
	"fmt"
	"time"

	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProcessReceiptPayload struct {
	ReceiptID uuid.UUID `json:"receipt_id"`
}

type RedeemClaimPayload struct {
	ReceiptID uuid.UUID `json:"receipt_id"`
	ClaimID   uuid.UUID `json:"claim_id"`
	Attempt   int       `json:"attempt"`
}

func processReceiptJob(receiptID uuid.UUID, runAt time.Time) (shared.NewJob, error) {
	payload, err := json.Marshal(ProcessReceiptPayload{ReceiptID: receiptID})
	if err != nil {
		return shared.NewJob{}, errs.Wrap(err, "encode process_receipt payload")
	}
	return shared.NewJob{
		Kind:      JobProcessReceipt,
		DedupeKey: fmt.Sprintf("%s:%s", JobProcessReceipt, receiptID),
		Payload:   payload,
		RunAt:     runAt,
	}, nil
}

// redeemClaimJob keys each attempt separately so a retry is scheduled once
// no matter how often the failing attempt is redelivered.
func redeemClaimJob(receiptID, claimID uuid.UUID, attempt int, runAt time.Time) (shared.NewJob, error) {
	payload, err := json.Marshal(RedeemClaimPayload{ReceiptID: receiptID, ClaimID: claimID, Attempt: attempt})
	if err != nil {
		return shared.NewJob{}, errs.Wrap(err, "encode redeem_claim payload")
	}
	return shared.NewJob{
		Kind:      JobRedeemClaim,
		DedupeKey: fmt.Sprintf("%s:%s:%s:%d", JobRedeemClaim, receiptID, claimID, attempt),
		Payload:   payload,
		RunAt:     runAt,
	}, nil
}
