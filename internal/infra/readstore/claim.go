package readstore

import (
	"context"

	"redemption-ledger/internal/infra"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
	"redemption-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type ClaimViewQueries interface {
	ListClaimsByClaimant(ctx context.Context, db sqlc.DBTX, arg sqlc.ListClaimsByClaimantParams) ([]sqlc.ListClaimsByClaimantRow, error)
	ListFlaggedClaims(ctx context.Context, db sqlc.DBTX, rowLimit int32) ([]sqlc.ListFlaggedClaimsRow, error)
}

type ClaimReadStore struct {
	queries ClaimViewQueries
	db      sqlc.DBTX
}

func NewClaimReadStore(queries ClaimViewQueries, db sqlc.DBTX) *ClaimReadStore {
	return &ClaimReadStore{queries: queries, db: db}
}

func (r *ClaimReadStore) ListByClaimant(ctx context.Context, claimantID uuid.UUID, status *string, limit int32) ([]*queries.ClaimView, error) {
	rows, err := r.queries.ListClaimsByClaimant(ctx, r.db, sqlc.ListClaimsByClaimantParams{
		ClaimantID: claimantID,
		Status:     pgconv.StringPtrToPgtype(status),
		RowLimit:   limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list claims by claimant", err)
	}
	views := make([]*queries.ClaimView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toClaimView(sqlc.ListFlaggedClaimsRow(row)))
	}
	return views, nil
}

func (r *ClaimReadStore) ListFlagged(ctx context.Context, limit int32) ([]*queries.ClaimView, error) {
	rows, err := r.queries.ListFlaggedClaims(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list flagged claims", err)
	}
	views := make([]*queries.ClaimView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toClaimView(row))
	}
	return views, nil
}

// Both claim listings select the same columns, so one mapper serves them.
func toClaimView(row sqlc.ListFlaggedClaimsRow) *queries.ClaimView {
	return &queries.ClaimView{
		ID:                row.ID,
		OfferID:           row.OfferID,
		ListItemID:        row.ListItemID,
		ClaimantID:        row.ClaimantID,
		Status:            row.Status,
		TargetDescription: row.TargetDescription,
		Category:          row.Category,
		SavingsMinor:      row.SavingsMinor,
		ReceiptID:         pgconv.UUIDPtrFromPgtype(row.ReceiptID),
		Reason:            pgconv.StringPtrFromPgtype(row.Reason),
		CreatedAt:         pgconv.TimeFromPgtype(row.CreatedAt),
		ExpiresAt:         pgconv.TimeFromPgtype(row.ExpiresAt),
		ResolvedAt:        pgconv.TimePtrFromPgtype(row.ResolvedAt),
		ReviewFlaggedAt:   pgconv.TimePtrFromPgtype(row.ReviewFlaggedAt),
	}
}
