package commands

import (
	"context"
	"log/slog"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateClaimRequest struct {
	OfferID    uuid.UUID
	ListItemID uuid.UUID
}

type ClaimCommands interface {
	CreateClaim(ctx context.Context, req CreateClaimRequest, claimantID uuid.UUID) (*claim.Claim, error)
	CancelClaim(ctx context.Context, claimID, actorID uuid.UUID) (*claim.Claim, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}

type claimUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	ttl   time.Duration
}

func NewClaimUseCase(uow shared.UnitOfWork, clk clock.Clock, ttl time.Duration) ClaimCommands {
	if ttl <= 0 {
		ttl = claim.DefaultTTL
	}
	return &claimUseCaseImpl{uow: uow, clock: clk, ttl: ttl}
}

func (uc *claimUseCaseImpl) CreateClaim(ctx context.Context, req CreateClaimRequest, claimantID uuid.UUID) (*claim.Claim, error) {
	now := uc.clock.Now()
	c, err := claim.New(req.OfferID, req.ListItemID, claimantID, now, uc.ttl)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Offers().FindByID(ctx, req.OfferID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return err
		}
		if err := o.CheckClaimable(now); err != nil {
			return errs.Mark(err, errs.ErrOfferUnavailable)
		}
		if err := tx.Claims().Create(ctx, c); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrSlotAlreadyClaimed)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("claim created",
		"claim_id", c.ID().String(),
		"offer_id", req.OfferID.String(),
		"claimant_id", claimantID.String())
	return c, nil
}

// CancelClaim is idempotent for the claimant: cancelling a cancelled claim
// returns it unchanged.
func (uc *claimUseCaseImpl) CancelClaim(ctx context.Context, claimID, actorID uuid.UUID) (*claim.Claim, error) {
	var out *claim.Claim
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Claims().LockByID(ctx, claimID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrNotFound)
			}
			return err
		}
		if c.ClaimantID() != actorID {
			// other members' claims are invisible
			return errs.Mark(claim.ErrNotClaimant, errs.ErrNotFound)
		}
		changed, err := c.Cancel(actorID, uc.clock.Now())
		if err != nil {
			return err
		}
		if changed {
			if err := tx.Claims().Save(ctx, c); err != nil {
				return err
			}
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *claimUseCaseImpl) ExpireOverdue(ctx context.Context) (int64, error) {
	var n int64
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		n, err = tx.Claims().ExpireOverdue(ctx, uc.clock.Now())
		return err
	})
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("expired overdue claims", "count", n)
	}
	return n, nil
}
