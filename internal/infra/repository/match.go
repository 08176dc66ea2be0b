package repository

import (
	"context"

	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/infra/repository/converter"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type MatchWriteQueries interface {
	InsertReceiptMatch(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertReceiptMatchParams) (int64, error)
	GetReceiptMatch(ctx context.Context, db sqlc.DBTX, arg sqlc.GetReceiptMatchParams) (sqlc.ReceiptMatches, error)
	UpdateReceiptMatch(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReceiptMatchParams) error
	ListReceiptMatches(ctx context.Context, db sqlc.DBTX, receiptID uuid.UUID) ([]sqlc.ReceiptMatches, error)
}

type MatchRepository struct {
	queries MatchWriteQueries
	db      sqlc.DBTX
}

func NewMatchRepository(queries MatchWriteQueries, db sqlc.DBTX) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      db,
	}
}

func (r *MatchRepository) Insert(ctx context.Context, m *redemption.Match) (bool, error) {
	n, err := r.queries.InsertReceiptMatch(ctx, r.db, converter.MatchToInsertParams(m))
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert receipt match", err)
	}
	return n == 1, nil
}

func (r *MatchRepository) Find(ctx context.Context, receiptID, claimID uuid.UUID) (*redemption.Match, error) {
	row, err := r.queries.GetReceiptMatch(ctx, r.db, sqlc.GetReceiptMatchParams{
		ReceiptID: receiptID,
		ClaimID:   claimID,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("receipt match not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get receipt match", err)
	}
	return converter.MatchFromRow(row), nil
}

func (r *MatchRepository) Save(ctx context.Context, m *redemption.Match) error {
	if err := r.queries.UpdateReceiptMatch(ctx, r.db, converter.MatchToUpdateParams(m)); err != nil {
		return infra.WrapRepoErr("failed to update receipt match", err)
	}
	return nil
}

func (r *MatchRepository) ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*redemption.Match, error) {
	rows, err := r.queries.ListReceiptMatches(ctx, r.db, receiptID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list receipt matches", err)
	}
	matches := make([]*redemption.Match, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, converter.MatchFromRow(row))
	}
	return matches, nil
}
