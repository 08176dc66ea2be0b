package repository

import (
	"context"

	"redemption-ledger/internal/domain/offer"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/infra/repository/converter"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type OfferWriteQueries interface {
	GetOfferByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Offers, error)
	IncrementOfferRedemptions(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type OfferRepository struct {
	queries OfferWriteQueries
	db      sqlc.DBTX
}

func NewOfferRepository(queries OfferWriteQueries, db sqlc.DBTX) *OfferRepository {
	return &OfferRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	row, err := r.queries.GetOfferByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("offer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get offer", err)
	}
	return converter.OfferFromRow(row), nil
}

func (r *OfferRepository) IncrementRedemptions(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.queries.IncrementOfferRedemptions(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment offer redemptions", err)
	}
	return n == 1, nil
}
