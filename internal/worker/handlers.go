package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/shared"
)

// ProcessReceiptHandler runs receipt processing. On the final attempt the
// receipt is marked failed so its submitter sees an outcome.
func ProcessReceiptHandler(uc commands.RedemptionCommands, maxAttempts int) Handler {
	return func(ctx context.Context, job *shared.Job) error {
		var payload commands.ProcessReceiptPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return errs.Mark(errs.Wrap(err, "decode process_receipt payload"), ErrPermanent)
		}

		err := uc.ProcessReceipt(ctx, payload.ReceiptID)
		if err != nil && job.Attempts >= maxAttempts {
			if ferr := uc.FailReceipt(context.WithoutCancel(ctx), payload.ReceiptID, err.Error()); ferr != nil {
				slog.Error("failed to mark receipt failed", "receipt_id", payload.ReceiptID.String(), "error", ferr)
			}
		}
		return err
	}
}

func RedeemClaimHandler(uc commands.RedemptionCommands) Handler {
	return func(ctx context.Context, job *shared.Job) error {
		var payload commands.RedeemClaimPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return errs.Mark(errs.Wrap(err, "decode redeem_claim payload"), ErrPermanent)
		}
		_, err := uc.RedeemMatch(ctx, payload.ReceiptID, payload.ClaimID, payload.Attempt)
		return err
	}
}
