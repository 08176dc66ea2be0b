package queries

import (
	"context"
	"time"

	"redemption-ledger/internal/pkg/clock"
)

type OfferReadStore interface {
	ListActive(ctx context.Context, now time.Time) ([]*OfferView, error)
}

type OfferQueries interface {
	ListActive(ctx context.Context) ([]*OfferView, error)
}

type offerQueriesImpl struct {
	store OfferReadStore
	clock clock.Clock
}

func NewOfferQueries(store OfferReadStore, clk clock.Clock) OfferQueries {
	return &offerQueriesImpl{store: store, clock: clk}
}

func (q *offerQueriesImpl) ListActive(ctx context.Context) ([]*OfferView, error) {
	return q.store.ListActive(ctx, q.clock.Now())
}
