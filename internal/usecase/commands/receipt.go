package commands

import (
	"context"
	"log/slog"

	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

const DuplicateReceiptMessage = "Looks like you already submitted this receipt!"

type SubmitReceiptResult struct {
	ReceiptID uuid.UUID
	Status    receipt.Status
	Message   string
}

type ReceiptCommands interface {
	// SubmitReceipt stores the image and schedules processing. A byte-identical
	// image yields the earlier receipt with status duplicate and no error.
	SubmitReceipt(ctx context.Context, submitterID uuid.UUID, image []byte) (*SubmitReceiptResult, error)
}

type receiptUseCaseImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	maxBytes int64
	metrics  *observability.Metrics
}

func NewReceiptUseCase(uow shared.UnitOfWork, clk clock.Clock, maxBytes int64, metrics *observability.Metrics) ReceiptCommands {
	return &receiptUseCaseImpl{uow: uow, clock: clk, maxBytes: maxBytes, metrics: metrics}
}

func (uc *receiptUseCaseImpl) SubmitReceipt(ctx context.Context, submitterID uuid.UUID, image []byte) (*SubmitReceiptResult, error) {
	now := uc.clock.Now()
	r, err := receipt.New(submitterID, image, uc.maxBytes, now)
	if err != nil {
		return nil, err
	}

	var dup *receipt.Receipt
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, err := tx.Receipts().FindByImageDigest(ctx, r.ImageDigest())
		switch {
		case err == nil:
			dup = existing
			return nil
		case !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		if err := tx.Receipts().Create(ctx, r, image); err != nil {
			return err
		}
		job, err := processReceiptJob(r.ID(), now)
		if err != nil {
			return err
		}
		_, err = tx.Jobs().Enqueue(ctx, job)
		return err
	})
	if err != nil && infra.IsKind(err, infra.KindDuplicateKey) {
		// lost a race with a concurrent upload of the same image
		dup, err = uc.findByDigest(ctx, r.ImageDigest())
	}
	if err != nil {
		return nil, err
	}

	if dup != nil {
		uc.metrics.Receipt(string(receipt.StatusDuplicate))
		slog.Info("duplicate receipt image",
			"receipt_id", dup.ID().String(),
			"submitter_id", submitterID.String())
		return &SubmitReceiptResult{
			ReceiptID: dup.ID(),
			Status:    receipt.StatusDuplicate,
			Message:   DuplicateReceiptMessage,
		}, nil
	}

	uc.metrics.Receipt(string(receipt.StatusAccepted))
	slog.Info("receipt accepted",
		"receipt_id", r.ID().String(),
		"submitter_id", submitterID.String(),
		"image_bytes", len(image))
	return &SubmitReceiptResult{
		ReceiptID: r.ID(),
		Status:    receipt.StatusAccepted,
		Message:   "Receipt received. We'll let you know what it earned.",
	}, nil
}

func (uc *receiptUseCaseImpl) findByDigest(ctx context.Context, digest string) (*receipt.Receipt, error) {
	var found *receipt.Receipt
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		found, err = tx.Receipts().FindByImageDigest(ctx, digest)
		return err
	})
	if err != nil {
		return nil, errs.Wrap(err, "find receipt after duplicate insert")
	}
	return found, nil
}
