package queries

import (
	"context"
	"time"

	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReceiptReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReceiptView, error)
	ListOutcomes(ctx context.Context, receiptID uuid.UUID) ([]*ClaimOutcome, error)
	ListOpenClaims(ctx context.Context, claimantID uuid.UUID, now time.Time) ([]*ClaimOutcome, error)
}

type ReceiptQueries interface {
	// GetOutcome is scoped to the submitter; other callers get ErrNotFound.
	GetOutcome(ctx context.Context, receiptID, actorID uuid.UUID) (*ReceiptOutcomeView, error)
}

type receiptQueriesImpl struct {
	store ReceiptReadStore
	clock clock.Clock
}

func NewReceiptQueries(store ReceiptReadStore, clk clock.Clock) ReceiptQueries {
	return &receiptQueriesImpl{store: store, clock: clk}
}

func (q *receiptQueriesImpl) GetOutcome(ctx context.Context, receiptID, actorID uuid.UUID) (*ReceiptOutcomeView, error) {
	rv, err := q.store.FindByID(ctx, receiptID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, err
	}
	if rv.SubmitterID != actorID {
		return nil, errs.Mark(errs.New("receipt belongs to another user"), errs.ErrNotFound)
	}

	outcomes, err := q.store.ListOutcomes(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.Status(rv.Status) == receipt.StatusProcessed {
		open, err := q.store.ListOpenClaims(ctx, rv.SubmitterID, q.clock.Now())
		if err != nil {
			return nil, err
		}
		outcomes = appendUnmatched(outcomes, open)
	}
	return &ReceiptOutcomeView{Receipt: rv, Outcomes: outcomes}, nil
}

func appendUnmatched(outcomes, open []*ClaimOutcome) []*ClaimOutcome {
	matched := make(map[uuid.UUID]struct{}, len(outcomes))
	for _, o := range outcomes {
		matched[o.ClaimID] = struct{}{}
	}
	for _, o := range open {
		if _, ok := matched[o.ClaimID]; ok {
			continue
		}
		o.Outcome = OutcomeUnmatched
		outcomes = append(outcomes, o)
	}
	return outcomes
}
