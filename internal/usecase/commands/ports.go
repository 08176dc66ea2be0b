package commands

import (
	"context"

	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/domain/redemption"
)

// RedemptionGateway asks the offer authority to honour one claim.
// Implementations mark errors with errs.ErrGatewayRejected (final) or
// errs.ErrGatewayUnavailable (retry later).
type RedemptionGateway interface {
	Redeem(ctx context.Context, req redemption.Request) (redemption.Approval, error)
}

// ReceiptReader turns image bytes into structured receipt data.
type ReceiptReader interface {
	Extract(ctx context.Context, image []byte) (receipt.Extraction, error)
}

// Job kinds handled by the worker pool.
const (
	JobProcessReceipt = "process_receipt"
	JobRedeemClaim    = "redeem_claim"
)
