package commands

import (
	"context"
	"log/slog"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/domain/referral"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/pkg/observability"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	unreadableMessage = "We couldn't read this receipt. Try a clearer photo."
	failedMessage     = "We couldn't process this receipt right now. Please try again later."
	// bookkeepingTimeout bounds the writes that record a gateway result, which
	// must survive the job deadline that may have cut the call short.
	bookkeepingTimeout = 10 * time.Second
)

type RedemptionCommands interface {
	// ProcessReceipt runs OCR, duplicate and staleness checks and matching for
	// an accepted receipt, then schedules one redemption per accepted match.
	// Receipts that already reached a final status are left alone.
	ProcessReceipt(ctx context.Context, receiptID uuid.UUID) error
	// FailReceipt gives up on a receipt whose processing kept failing.
	FailReceipt(ctx context.Context, receiptID uuid.UUID, cause string) error
	// RedeemMatch makes the given attempt at redeeming one matched claim.
	// Repeating an attempt that already ran is a no-op.
	RedeemMatch(ctx context.Context, receiptID, claimID uuid.UUID, attempt int) (redemption.Outcome, error)
}

type RedemptionConfig struct {
	Planner *redemption.Planner
	Policy  *referral.Policy
	Retry   redemption.RetryPolicy
}

type redemptionUseCaseImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	reader  ReceiptReader
	gateway RedemptionGateway
	planner *redemption.Planner
	policy  *referral.Policy
	retry   redemption.RetryPolicy
	metrics *observability.Metrics
	tracer  trace.Tracer
}

func NewRedemptionUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	reader ReceiptReader,
	gateway RedemptionGateway,
	cfg RedemptionConfig,
	metrics *observability.Metrics,
) RedemptionCommands {
	return &redemptionUseCaseImpl{
		uow:     uow,
		clock:   clk,
		reader:  reader,
		gateway: gateway,
		planner: cfg.Planner,
		policy:  cfg.Policy,
		retry:   cfg.Retry,
		metrics: metrics,
		tracer:  otel.Tracer("redemption/usecase"),
	}
}

func (uc *redemptionUseCaseImpl) ProcessReceipt(ctx context.Context, receiptID uuid.UUID) error {
	ctx, span := uc.tracer.Start(ctx, "redemption.process_receipt", trace.WithAttributes(
		attribute.String("receipt_id", receiptID.String()),
	))
	defer span.End()

	var (
		r     *receipt.Receipt
		image []byte
	)
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		r, err = tx.Receipts().FindByID(ctx, receiptID)
		if err != nil || r.Status().IsFinal() {
			return err
		}
		image, err = tx.Receipts().LoadImage(ctx, r.ImageDigest())
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("receipt not found for processing", "receipt_id", receiptID.String())
			return nil
		}
		return err
	}
	if r.Status().IsFinal() {
		return nil
	}

	ex, err := uc.reader.Extract(ctx, image)
	if err != nil {
		if errs.Is(err, receipt.ErrUnreadable) {
			return uc.finish(ctx, receiptID, receipt.StatusUnreadable, unreadableMessage)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return errs.Wrap(err, "extract receipt")
	}
	r.AttachExtraction(ex)

	// A concurrent receipt can claim the fingerprint between our lookup and
	// our write; the second pass then sees it and marks this one duplicate.
	for pass := 0; ; pass++ {
		var plan redemption.Plan
		plan, err = uc.applyPlan(ctx, r, ex)
		if err == nil {
			uc.metrics.Receipt(r.Status().String())
			span.SetAttributes(
				attribute.String("status", r.Status().String()),
				attribute.Int("matches", len(plan.Proposals)),
			)
			slog.Info("receipt processed",
				"receipt_id", receiptID.String(),
				"status", r.Status().String(),
				"matches", len(plan.Proposals))
			return nil
		}
		if pass > 0 || !infra.IsKind(err, infra.KindDuplicateKey) {
			return err
		}
	}
}

func (uc *redemptionUseCaseImpl) applyPlan(ctx context.Context, r *receipt.Receipt, ex receipt.Extraction) (redemption.Plan, error) {
	var plan redemption.Plan
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		plan = redemption.Plan{}
		current, err := tx.Receipts().FindByID(ctx, r.ID())
		if err != nil {
			return err
		}
		if current.Status().IsFinal() {
			*r = *current
			return nil
		}
		r.AttachExtraction(ex)
		now := uc.clock.Now()

		other, err := tx.Receipts().FindByFingerprint(ctx, r.Fingerprint())
		switch {
		case err == nil && other.ID() != r.ID():
			r.Finish(receipt.StatusDuplicate, DuplicateReceiptMessage, now)
			return tx.Receipts().Save(ctx, r)
		case err != nil && !infra.IsKind(err, infra.KindNotFound):
			return err
		}

		open, err := tx.Claims().ListOpenCandidates(ctx, r.SubmitterID(), now)
		if err != nil {
			return err
		}
		plan = uc.planner.Plan(ex, r.SubmittedAt(), open)
		r.Finish(plan.Status, plan.Message, now)
		if err := tx.Receipts().Save(ctx, r); err != nil {
			return err
		}

		for _, p := range plan.Proposals {
			inserted, err := tx.Matches().Insert(ctx, redemption.NewMatch(r.ID(), p.ClaimID, p.LineIndex, p.Confidence, now))
			if err != nil {
				return err
			}
			if !inserted {
				continue
			}
			job, err := redeemClaimJob(r.ID(), p.ClaimID, 1, now)
			if err != nil {
				return err
			}
			if _, err := tx.Jobs().Enqueue(ctx, job); err != nil {
				return err
			}
		}
		return nil
	})
	return plan, err
}

func (uc *redemptionUseCaseImpl) FailReceipt(ctx context.Context, receiptID uuid.UUID, cause string) error {
	slog.Error("giving up on receipt", "receipt_id", receiptID.String(), "cause", cause)
	return uc.finish(ctx, receiptID, receipt.StatusFailed, failedMessage)
}

func (uc *redemptionUseCaseImpl) finish(ctx context.Context, receiptID uuid.UUID, status receipt.Status, message string) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Receipts().FindByID(ctx, receiptID)
		if err != nil {
			return err
		}
		if r.Status().IsFinal() {
			return nil
		}
		r.Finish(status, message, uc.clock.Now())
		return tx.Receipts().Save(ctx, r)
	})
	if err != nil {
		return err
	}
	uc.metrics.Receipt(status.String())
	return nil
}

func (uc *redemptionUseCaseImpl) RedeemMatch(ctx context.Context, receiptID, claimID uuid.UUID, attempt int) (redemption.Outcome, error) {
	ctx, span := uc.tracer.Start(ctx, "redemption.redeem_match", trace.WithAttributes(
		attribute.String("receipt_id", receiptID.String()),
		attribute.String("claim_id", claimID.String()),
		attribute.Int("attempt", attempt),
	))
	defer span.End()

	var (
		m *redemption.Match
		c *claim.Claim
		r *receipt.Receipt
	)
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		if m, err = tx.Matches().Find(ctx, receiptID, claimID); err != nil {
			return err
		}
		if !attemptDue(m, attempt) {
			return nil
		}
		if c, err = tx.Claims().FindByID(ctx, claimID); err != nil {
			return err
		}
		r, err = tx.Receipts().FindByID(ctx, receiptID)
		return err
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("redemption target vanished",
				"receipt_id", receiptID.String(),
				"claim_id", claimID.String())
			return redemption.OutcomeUnmatched, nil
		}
		return "", err
	}
	if !attemptDue(m, attempt) {
		return m.Outcome, nil
	}

	var apply func(ctx context.Context, tx shared.Tx, m *redemption.Match, c *claim.Claim, now time.Time) error
	var credited []*CreditResult

	if c.Status().IsTerminal() {
		// resolve below records the skip under the claim lock
		apply = func(context.Context, shared.Tx, *redemption.Match, *claim.Claim, time.Time) error { return nil }
	} else {
		approval, gwErr := uc.gateway.Redeem(ctx, redemption.NewRequest(c.OfferID(), c.ID(), c.ClaimantID(), r, m.LineIndex))
		var rejection *redemption.Rejection
		switch {
		case gwErr == nil:
			apply = func(ctx context.Context, tx shared.Tx, m *redemption.Match, c *claim.Claim, now time.Time) error {
				var err error
				credited, err = uc.credit(ctx, tx, m, c, approval, now)
				return err
			}
		case errs.Is(gwErr, errs.ErrGatewayRejected) && errs.As(gwErr, &rejection):
			apply = func(ctx context.Context, tx shared.Tx, m *redemption.Match, c *claim.Claim, now time.Time) error {
				if _, err := c.Resolve(claim.OutcomeRejected, m.ReceiptID, rejection.Reason, now); err != nil {
					return err
				}
				m.Decline(rejection.Reason, now)
				return tx.Claims().Save(ctx, c)
			}
		default:
			span.RecordError(gwErr)
			slog.Warn("redemption attempt failed",
				"receipt_id", receiptID.String(),
				"claim_id", claimID.String(),
				"attempt", attempt,
				"error", gwErr.Error())
			apply = func(ctx context.Context, tx shared.Tx, m *redemption.Match, c *claim.Claim, now time.Time) error {
				return uc.scheduleRetry(ctx, tx, m, c, attempt, gwErr, now)
			}
		}
	}

	bookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bookkeepingTimeout)
	defer cancel()
	outcome, err := uc.resolve(bookCtx, receiptID, claimID, attempt, apply)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	for _, res := range credited {
		if res.Created {
			uc.metrics.LedgerAppend(res.Transaction.Kind.String(), res.Transaction.Amount)
		}
	}
	uc.metrics.MatchOutcome(outcome.String())
	span.SetAttributes(attribute.String("outcome", outcome.String()))
	slog.Info("redemption attempt finished",
		"receipt_id", receiptID.String(),
		"claim_id", claimID.String(),
		"attempt", attempt,
		"outcome", outcome.String())
	return outcome, nil
}

// resolve applies one attempt's result under the claim's row lock. Whoever
// takes the lock second sees the first writer's result: a terminal claim
// turns the match into a skip, and a match already past this attempt is
// left as it is.
func (uc *redemptionUseCaseImpl) resolve(
	ctx context.Context,
	receiptID, claimID uuid.UUID,
	attempt int,
	apply func(ctx context.Context, tx shared.Tx, m *redemption.Match, c *claim.Claim, now time.Time) error,
) (redemption.Outcome, error) {
	var outcome redemption.Outcome
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Claims().LockByID(ctx, claimID)
		if err != nil {
			return err
		}
		m, err := tx.Matches().Find(ctx, receiptID, claimID)
		if err != nil {
			return err
		}
		if !attemptDue(m, attempt) {
			outcome = m.Outcome
			return nil
		}

		now := uc.clock.Now()
		m.Attempts = attempt
		if c.Status().IsTerminal() {
			m.Skip("claim is already "+c.Status().String(), now)
		} else if err := apply(ctx, tx, m, c, now); err != nil {
			return err
		}
		if err := tx.Matches().Save(ctx, m); err != nil {
			return err
		}
		outcome = m.Outcome
		return nil
	})
	return outcome, err
}

// credit records an approved redemption: the claimant's credit, the
// referrer's share, the claim transition and the offer's counter.
func (uc *redemptionUseCaseImpl) credit(
	ctx context.Context,
	tx shared.Tx,
	m *redemption.Match,
	c *claim.Claim,
	approval redemption.Approval,
	now time.Time,
) ([]*CreditResult, error) {
	if _, err := c.Resolve(claim.OutcomeRedeemed, m.ReceiptID, "", now); err != nil {
		return nil, err
	}
	if err := tx.Claims().Save(ctx, c); err != nil {
		return nil, err
	}

	referrer, err := tx.Referrals().FindReferrer(ctx, c.ClaimantID())
	if err != nil {
		return nil, err
	}
	var results []*CreditResult
	for _, entry := range redemption.Settle(c, approval, referrer, uc.policy) {
		res, err := appendEntry(ctx, tx, entry, uc.clock)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	ok, err := tx.Offers().IncrementRedemptions(ctx, c.OfferID())
	if err != nil {
		return nil, err
	}
	if !ok {
		slog.Warn("offer redeemed past its cap", "offer_id", c.OfferID().String(), "claim_id", c.ID().String())
	}

	m.Credit(approval.CreditMinor, now)
	return results, nil
}

// scheduleRetry keeps the match pending with a follow-up attempt, or moves
// it to review and flags the claim once the schedule is exhausted. The claim
// itself stays claimed either way.
func (uc *redemptionUseCaseImpl) scheduleRetry(
	ctx context.Context,
	tx shared.Tx,
	m *redemption.Match,
	c *claim.Claim,
	attempt int,
	cause error,
	now time.Time,
) error {
	reason := "redemption authority unavailable"
	if errs.Is(cause, context.DeadlineExceeded) {
		reason = "redemption authority timed out"
	}

	delay, ok := uc.retry.Next(attempt)
	if ok {
		m.Failed(reason, false, now)
		job, err := redeemClaimJob(m.ReceiptID, m.ClaimID, attempt+1, now.Add(delay))
		if err != nil {
			return err
		}
		_, err = tx.Jobs().Enqueue(ctx, job)
		return err
	}

	m.Failed(reason, true, now)
	if c.FlagForReview(reason, now) {
		if err := tx.Claims().Save(ctx, c); err != nil {
			return err
		}
	}
	slog.Error("redemption retries exhausted, claim flagged for review",
		"claim_id", c.ID().String(),
		"receipt_id", m.ReceiptID.String(),
		"attempts", attempt)
	return nil
}

// attemptDue reports whether attempt still has work to do on m.
func attemptDue(m *redemption.Match, attempt int) bool {
	return m.Outcome == redemption.OutcomePending && m.Attempts < attempt
}
