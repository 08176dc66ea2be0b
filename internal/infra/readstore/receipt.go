package readstore

import (
	"context"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/infra"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
	"redemption-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReceiptViewQueries interface {
	GetReceiptByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Receipts, error)
	ListReceiptMatchViews(ctx context.Context, db sqlc.DBTX, receiptID uuid.UUID) ([]sqlc.ListReceiptMatchViewsRow, error)
	ListOpenClaimsWithOffers(ctx context.Context, db sqlc.DBTX, arg sqlc.ListOpenClaimsWithOffersParams) ([]sqlc.ListOpenClaimsWithOffersRow, error)
}

type ReceiptReadStore struct {
	queries ReceiptViewQueries
	db      sqlc.DBTX
}

func NewReceiptReadStore(queries ReceiptViewQueries, db sqlc.DBTX) *ReceiptReadStore {
	return &ReceiptReadStore{queries: queries, db: db}
}

func (r *ReceiptReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReceiptView, error) {
	row, err := r.queries.GetReceiptByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("receipt not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get receipt view", err)
	}
	return &queries.ReceiptView{
		ID:           row.ID,
		SubmitterID:  row.SubmitterID,
		Status:       row.Status,
		Message:      pgconv.StringPtrFromPgtype(row.Message),
		StoreName:    pgconv.StringPtrFromPgtype(row.StoreName),
		PurchaseDate: pgconv.TimePtrFromPgtype(row.PurchaseDate),
		TotalMinor:   pgconv.Int64PtrFromPgtype(row.TotalMinor),
		SubmittedAt:  pgconv.TimeFromPgtype(row.SubmittedAt),
		ProcessedAt:  pgconv.TimePtrFromPgtype(row.ProcessedAt),
	}, nil
}

func (r *ReceiptReadStore) ListOutcomes(ctx context.Context, receiptID uuid.UUID) ([]*queries.ClaimOutcome, error) {
	rows, err := r.queries.ListReceiptMatchViews(ctx, r.db, receiptID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list receipt match views", err)
	}
	out := make([]*queries.ClaimOutcome, 0, len(rows))
	for _, row := range rows {
		idx, confidence := row.LineItemIndex, row.Confidence
		out = append(out, &queries.ClaimOutcome{
			ClaimID:           row.ClaimID,
			TargetDescription: row.TargetDescription,
			ClaimStatus:       row.ClaimStatus,
			Outcome:           row.Outcome,
			LineItemIndex:     &idx,
			Confidence:        &confidence,
			CreditMinor:       pgconv.Int64PtrFromPgtype(row.CreditMinor),
			Reason:            pgconv.StringPtrFromPgtype(row.Reason),
			Attempts:          row.Attempts,
			UpdatedAt:         pgconv.TimePtrFromPgtype(row.UpdatedAt),
		})
	}
	return out, nil
}

func (r *ReceiptReadStore) ListOpenClaims(ctx context.Context, claimantID uuid.UUID, now time.Time) ([]*queries.ClaimOutcome, error) {
	rows, err := r.queries.ListOpenClaimsWithOffers(ctx, r.db, sqlc.ListOpenClaimsWithOffersParams{
		ClaimantID: claimantID,
		Now:        pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open claims", err)
	}
	out := make([]*queries.ClaimOutcome, 0, len(rows))
	for _, row := range rows {
		out = append(out, &queries.ClaimOutcome{
			ClaimID:           row.ID,
			TargetDescription: row.TargetDescription,
			ClaimStatus:       claim.StatusClaimed.String(),
		})
	}
	return out, nil
}
