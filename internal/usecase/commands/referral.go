package commands

import (
	"context"
	"log/slog"

	"redemption-ledger/internal/domain/referral"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// maxCodeAttempts bounds retries on code collisions.
const maxCodeAttempts = 5

type AttributeResult struct {
	ReferrerID uuid.UUID
	// Created is false when the user had already been attributed.
	Created bool
}

type ReferralCommands interface {
	IssueCode(ctx context.Context, userID uuid.UUID) (string, error)
	Attribute(ctx context.Context, referredID uuid.UUID, code string) (*AttributeResult, error)
}

type referralUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReferralUseCase(uow shared.UnitOfWork, clk clock.Clock) ReferralCommands {
	return &referralUseCaseImpl{uow: uow, clock: clk}
}

// IssueCode returns the user's code, creating one on first use.
func (uc *referralUseCaseImpl) IssueCode(ctx context.Context, userID uuid.UUID) (string, error) {
	for range maxCodeAttempts {
		var code string
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			existing, err := tx.Referrals().FindCodeByUser(ctx, userID)
			if err == nil {
				code = existing
				return nil
			}
			if !infra.IsKind(err, infra.KindNotFound) {
				return err
			}

			candidate, err := referral.NewCode()
			if err != nil {
				return err
			}
			created, err := tx.Referrals().CreateCode(ctx, userID, candidate, uc.clock.Now())
			if err != nil {
				return err
			}
			if !created {
				// a concurrent request issued the user's code first
				code, err = tx.Referrals().FindCodeByUser(ctx, userID)
				return err
			}
			code = candidate
			return nil
		})
		if err == nil {
			return code, nil
		}
		if !infra.IsKind(err, infra.KindDuplicateKey) {
			return "", err
		}
		slog.Warn("referral code collision, retrying", "user_id", userID.String())
	}
	return "", errs.New("could not allocate a unique referral code")
}

// Attribute records first-touch attribution. Later codes never replace it.
func (uc *referralUseCaseImpl) Attribute(ctx context.Context, referredID uuid.UUID, rawCode string) (*AttributeResult, error) {
	code, err := referral.NormalizeCode(rawCode)
	if err != nil {
		return nil, err
	}

	var out *AttributeResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		referrerID, err := tx.Referrals().FindUserByCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrReferralCodeUnknown)
			}
			return err
		}
		if referrerID == referredID {
			return errs.Mark(errs.New("users cannot refer themselves"), errs.ErrSelfReferral)
		}

		created, err := tx.Referrals().CreateEdge(ctx, referredID, referrerID, code, uc.clock.Now())
		if err != nil {
			return err
		}
		if !created {
			current, err := tx.Referrals().FindReferrer(ctx, referredID)
			if err != nil {
				return err
			}
			if current != nil {
				referrerID = *current
			}
		}
		out = &AttributeResult{ReferrerID: referrerID, Created: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out.Created {
		slog.Info("referral attributed",
			"referred_id", referredID.String(),
			"referrer_id", out.ReferrerID.String())
	}
	return out, nil
}
