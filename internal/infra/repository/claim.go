package repository

import (
	"context"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/domain/matching"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/infra/repository/converter"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ClaimWriteQueries interface {
	CreateClaim(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateClaimParams) (sqlc.Claims, error)
	GetClaimByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Claims, error)
	GetClaimForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Claims, error)
	UpdateClaimState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateClaimStateParams) error
	ListOpenClaimsWithOffers(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOpenClaimsWithOffersParams) ([]sqlc.ListOpenClaimsWithOffersRow, error)
	ExpireOverdueClaims(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) (int64, error)
}

type ClaimRepository struct {
	queries ClaimWriteQueries
	db      sqlc.DBTX
}

func NewClaimRepository(queries ClaimWriteQueries, db sqlc.DBTX) *ClaimRepository {
	return &ClaimRepository{
		queries: queries,
		db:      db,
	}
}

// Create fails with KindDuplicateKey when the slot already has an open claim.
func (r *ClaimRepository) Create(ctx context.Context, c *claim.Claim) error {
	if _, err := r.queries.CreateClaim(ctx, r.db, converter.ClaimToCreateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to create claim", err)
	}
	return nil
}

func (r *ClaimRepository) FindByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error) {
	row, err := r.queries.GetClaimByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("claim not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get claim", err)
	}
	return r.toDomain(row)
}

func (r *ClaimRepository) LockByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error) {
	row, err := r.queries.GetClaimForUpdate(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("claim not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock claim", err)
	}
	return r.toDomain(row)
}

func (r *ClaimRepository) Save(ctx context.Context, c *claim.Claim) error {
	if err := r.queries.UpdateClaimState(ctx, r.db, converter.ClaimToUpdateParams(c)); err != nil {
		return infra.WrapRepoErr("failed to update claim", err)
	}
	return nil
}

func (r *ClaimRepository) ListOpenCandidates(ctx context.Context, claimantID uuid.UUID, now time.Time) ([]matching.Candidate, error) {
	rows, err := r.queries.ListOpenClaimsWithOffers(ctx, r.db, sqlc.ListOpenClaimsWithOffersParams{
		ClaimantID: claimantID,
		Now:        pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open claims", err)
	}
	candidates := make([]matching.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, matching.Candidate{
			ClaimID:     row.ID,
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
			Description: row.TargetDescription,
			Category:    row.Category,
		})
	}
	return candidates, nil
}

func (r *ClaimRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	n, err := r.queries.ExpireOverdueClaims(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire overdue claims", err)
	}
	return n, nil
}

func (r *ClaimRepository) toDomain(row sqlc.Claims) (*claim.Claim, error) {
	c, err := converter.ClaimFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert claim row", err)
	}
	return c, nil
}
