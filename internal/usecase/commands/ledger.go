package commands

import (
	"context"
	"fmt"
	"log/slog"

	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreditResult struct {
	Transaction *ledger.Transaction
	// Created is false when the (reference, kind) pair was already recorded
	// and the earlier transaction is returned instead.
	Created bool
}

type PayoutRequest struct {
	RequestID   uuid.UUID
	AmountMinor int64
}

type AdjustmentRequest struct {
	BeneficiaryID uuid.UUID
	ReferenceID   uuid.UUID
	AmountMinor   int64
	Memo          string
}

type LedgerCommands interface {
	Credit(ctx context.Context, entry ledger.Entry) (*CreditResult, error)
	Payout(ctx context.Context, userID uuid.UUID, req PayoutRequest) (*CreditResult, error)
	Adjust(ctx context.Context, operatorID uuid.UUID, req AdjustmentRequest) (*CreditResult, error)
}

type ledgerUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics *observability.Metrics
}

func NewLedgerUseCase(uow shared.UnitOfWork, clk clock.Clock, metrics *observability.Metrics) LedgerCommands {
	return &ledgerUseCaseImpl{uow: uow, clock: clk, metrics: metrics}
}

func (uc *ledgerUseCaseImpl) Credit(ctx context.Context, entry ledger.Entry) (*CreditResult, error) {
	var out *CreditResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		out, err = appendEntry(ctx, tx, entry, uc.clock)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.record(out)
	return out, nil
}

func (uc *ledgerUseCaseImpl) Payout(ctx context.Context, userID uuid.UUID, req PayoutRequest) (*CreditResult, error) {
	if req.AmountMinor <= 0 {
		return nil, errs.Mark(errs.New("payout amount must be positive"), errs.ErrValidation)
	}
	return uc.Credit(ctx, ledger.Entry{
		BeneficiaryID: userID,
		Amount:        -req.AmountMinor,
		Kind:          ledger.KindPayout,
		ReferenceID:   req.RequestID,
		Memo:          "payout",
	})
}

func (uc *ledgerUseCaseImpl) Adjust(ctx context.Context, operatorID uuid.UUID, req AdjustmentRequest) (*CreditResult, error) {
	memo := req.Memo
	if memo == "" {
		memo = "operator adjustment"
	}
	res, err := uc.Credit(ctx, ledger.Entry{
		BeneficiaryID: req.BeneficiaryID,
		Amount:        req.AmountMinor,
		Kind:          ledger.KindAdjustment,
		ReferenceID:   req.ReferenceID,
		Memo:          memo,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("ledger adjustment",
		"operator_id", operatorID.String(),
		"beneficiary_id", req.BeneficiaryID.String(),
		"amount_minor", req.AmountMinor,
		"created", res.Created)
	return res, nil
}

func (uc *ledgerUseCaseImpl) record(res *CreditResult) {
	if res == nil || !res.Created {
		return
	}
	uc.metrics.LedgerAppend(res.Transaction.Kind.String(), res.Transaction.Amount)
}

// appendEntry is the only write path into the ledger. Under the
// beneficiary's lock it returns the recorded transaction for a known
// (reference, kind) pair, otherwise appends after the current balance.
// The timestamp is read after the lock so created_at follows balance_after.
func appendEntry(ctx context.Context, tx shared.Tx, e ledger.Entry, clk clock.Clock) (*CreditResult, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	repo := tx.Ledger()
	if err := repo.LockAccount(ctx, e.BeneficiaryID); err != nil {
		return nil, err
	}
	now := clk.Now()

	existing, err := repo.FindByReference(ctx, e.ReferenceID, e.Kind)
	switch {
	case err == nil:
		if existing.BeneficiaryID != e.BeneficiaryID || existing.Amount != e.Amount {
			slog.Warn("ledger reference reused with different terms",
				"reference_id", e.ReferenceID.String(),
				"kind", e.Kind.String())
			return nil, errs.Mark(
				errs.New(fmt.Sprintf("%s reference %s is already recorded with different terms", e.Kind, e.ReferenceID)),
				errs.ErrReferenceConflict)
		}
		return &CreditResult{Transaction: existing}, nil
	case !infra.IsKind(err, infra.KindNotFound):
		return nil, err
	}

	balance, err := repo.Balance(ctx, e.BeneficiaryID)
	if err != nil {
		return nil, err
	}
	t, err := ledger.Append(e, balance, now)
	if err != nil {
		return nil, err
	}
	if err := repo.Append(ctx, t); err != nil {
		return nil, err
	}
	return &CreditResult{Transaction: t, Created: true}, nil
}
