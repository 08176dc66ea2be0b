package repository

import (
	"context"

	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/infra/repository/converter"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type LedgerWriteQueries interface {
	LockLedgerAccount(ctx context.Context, db sqlc.DBTX, beneficiaryID uuid.UUID) error
	GetLedgerTransactionByReference(ctx context.Context, db sqlc.DBTX, arg sqlc.GetLedgerTransactionByReferenceParams) (sqlc.LedgerTransactions, error)
	SumLedgerBalance(ctx context.Context, db sqlc.DBTX, beneficiaryID uuid.UUID) (int64, error)
	InsertLedgerTransaction(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertLedgerTransactionParams) (sqlc.LedgerTransactions, error)
}

type LedgerRepository struct {
	queries LedgerWriteQueries
	db      sqlc.DBTX
}

func NewLedgerRepository(queries LedgerWriteQueries, db sqlc.DBTX) *LedgerRepository {
	return &LedgerRepository{
		queries: queries,
		db:      db,
	}
}

func (r *LedgerRepository) LockAccount(ctx context.Context, beneficiaryID uuid.UUID) error {
	if err := r.queries.LockLedgerAccount(ctx, r.db, beneficiaryID); err != nil {
		return infra.WrapRepoErr("failed to lock ledger account", err)
	}
	return nil
}

func (r *LedgerRepository) FindByReference(ctx context.Context, referenceID uuid.UUID, kind ledger.Kind) (*ledger.Transaction, error) {
	row, err := r.queries.GetLedgerTransactionByReference(ctx, r.db, sqlc.GetLedgerTransactionByReferenceParams{
		ReferenceID: referenceID,
		Kind:        kind.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("ledger transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get ledger transaction by reference", err)
	}
	return converter.TransactionFromRow(row), nil
}

func (r *LedgerRepository) Balance(ctx context.Context, beneficiaryID uuid.UUID) (int64, error) {
	balance, err := r.queries.SumLedgerBalance(ctx, r.db, beneficiaryID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum ledger balance", err)
	}
	return balance, nil
}

func (r *LedgerRepository) Append(ctx context.Context, t *ledger.Transaction) error {
	if _, err := r.queries.InsertLedgerTransaction(ctx, r.db, converter.TransactionToInsertParams(t)); err != nil {
		return infra.WrapRepoErr("failed to append ledger transaction", err)
	}
	return nil
}
