package commands

import (
	"context"
	"log/slog"
	"time"

	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/usecase/shared"
)

type SweepResult struct {
	ExpiredClaims  int64
	PurgedReceipts int64
}

type MaintenanceCommands interface {
	Sweep(ctx context.Context) (*SweepResult, error)
}

type maintenanceUseCaseImpl struct {
	uow       shared.UnitOfWork
	claims    ClaimCommands
	clock     clock.Clock
	retention time.Duration
}

func NewMaintenanceUseCase(uow shared.UnitOfWork, claims ClaimCommands, clk clock.Clock, retention time.Duration) MaintenanceCommands {
	return &maintenanceUseCaseImpl{uow: uow, claims: claims, clock: clk, retention: retention}
}

// Sweep expires overdue claims and purges receipts past retention. Receipts
// still waiting for processing are kept.
func (uc *maintenanceUseCaseImpl) Sweep(ctx context.Context) (*SweepResult, error) {
	expired, err := uc.claims.ExpireOverdue(ctx)
	if err != nil {
		return nil, err
	}

	var purged int64
	if uc.retention > 0 {
		cutoff := uc.clock.Now().Add(-uc.retention)
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			purged, err = tx.Receipts().PurgeBefore(ctx, cutoff)
			return err
		})
		if err != nil {
			return nil, err
		}
		if purged > 0 {
			slog.Info("purged receipts past retention", "count", purged, "cutoff", cutoff)
		}
	}
	return &SweepResult{ExpiredClaims: expired, PurgedReceipts: purged}, nil
}
