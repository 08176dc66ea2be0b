package readstore

import (
	"context"
	"time"

	"redemption-ledger/internal/infra"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
	"redemption-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type WalletViewQueries interface {
	SumLedgerBalance(ctx context.Context, db sqlc.DBTX, beneficiaryID uuid.UUID) (int64, error)
	ListLedgerTransactionsFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLedgerTransactionsFirstPageParams) ([]sqlc.LedgerTransactions, error)
	ListLedgerTransactionsKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListLedgerTransactionsKeysetParams) ([]sqlc.LedgerTransactions, error)
}

type WalletReadStore struct {
	queries WalletViewQueries
	db      sqlc.DBTX
}

func NewWalletReadStore(queries WalletViewQueries, db sqlc.DBTX) *WalletReadStore {
	return &WalletReadStore{queries: queries, db: db}
}

func (r *WalletReadStore) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	balance, err := r.queries.SumLedgerBalance(ctx, r.db, userID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum ledger balance", err)
	}
	return balance, nil
}

func (r *WalletReadStore) TransactionsFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.TransactionView, error) {
	rows, err := r.queries.ListLedgerTransactionsFirstPage(ctx, r.db, sqlc.ListLedgerTransactionsFirstPageParams{
		BeneficiaryID: userID,
		RowLimit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger transactions first page", err)
	}
	return toTransactionViews(rows), nil
}

func (r *WalletReadStore) TransactionsKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.TransactionView, error) {
	rows, err := r.queries.ListLedgerTransactionsKeyset(ctx, r.db, sqlc.ListLedgerTransactionsKeysetParams{
		BeneficiaryID: userID,
		CreatedAt:     pgconv.TimeToPgtype(lastCreatedAt),
		ID:            lastID,
		RowLimit:      limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger transactions keyset", err)
	}
	return toTransactionViews(rows), nil
}

func toTransactionViews(rows []sqlc.LedgerTransactions) []*queries.TransactionView {
	views := make([]*queries.TransactionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, &queries.TransactionView{
			ID:           row.ID,
			Kind:         row.Kind,
			AmountMinor:  row.AmountMinor,
			BalanceAfter: row.BalanceAfter,
			ReferenceID:  row.ReferenceID,
			Memo:         pgconv.StringPtrFromPgtype(row.Memo),
			CreatedAt:    pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return views
}
