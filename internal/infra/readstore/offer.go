package readstore

import (
	"context"
	"time"

	"redemption-ledger/internal/infra"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
	"redemption-ledger/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

type OfferViewQueries interface {
	ListActiveOffers(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]sqlc.Offers, error)
}

type OfferReadStore struct {
	queries OfferViewQueries
	db      sqlc.DBTX
}

func NewOfferReadStore(queries OfferViewQueries, db sqlc.DBTX) *OfferReadStore {
	return &OfferReadStore{queries: queries, db: db}
}

func (r *OfferReadStore) ListActive(ctx context.Context, now time.Time) ([]*queries.OfferView, error) {
	rows, err := r.queries.ListActiveOffers(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active offers", err)
	}
	views := make([]*queries.OfferView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toOfferView(row))
	}
	return views, nil
}

func toOfferView(row sqlc.Offers) *queries.OfferView {
	v := &queries.OfferView{
		ID:                row.ID,
		Category:          row.Category,
		TargetDescription: row.TargetDescription,
		SavingsMinor:      row.SavingsMinor,
		ExpiresAt:         pgconv.TimePtrFromPgtype(row.ExpiresAt),
	}
	if row.MaxRedemptions.Valid {
		remaining := max(row.MaxRedemptions.Int32-row.CurrentRedemptions, 0)
		v.RemainingRedemptions = &remaining
	}
	return v
}
