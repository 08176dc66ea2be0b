package queries

import (
	"context"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

type ClaimReadStore interface {
	ListByClaimant(ctx context.Context, claimantID uuid.UUID, status *string, limit int32) ([]*ClaimView, error)
	ListFlagged(ctx context.Context, limit int32) ([]*ClaimView, error)
}

type ClaimQueries interface {
	ListMine(ctx context.Context, claimantID uuid.UUID, status string, limit int) ([]*ClaimView, error)
	// ListFlagged returns claims whose redemption retries ran out, oldest flag first.
	ListFlagged(ctx context.Context, limit int) ([]*ClaimView, error)
}

type claimQueriesImpl struct {
	store ClaimReadStore
}

func NewClaimQueries(store ClaimReadStore) ClaimQueries {
	return &claimQueriesImpl{store: store}
}

func (q *claimQueriesImpl) ListMine(ctx context.Context, claimantID uuid.UUID, status string, limit int) ([]*ClaimView, error) {
	var filter *string
	if status != "" {
		if _, err := claim.ParseStatus(status); err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		filter = &status
	}
	return q.store.ListByClaimant(ctx, claimantID, filter, int32(ValidateLimit(limit)))
}

func (q *claimQueriesImpl) ListFlagged(ctx context.Context, limit int) ([]*ClaimView, error) {
	return q.store.ListFlagged(ctx, int32(ValidateLimit(limit)))
}
