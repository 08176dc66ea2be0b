package converter

import (
	"redemption-ledger/internal/domain/ledger"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
)

func TransactionToInsertParams(t *ledger.Transaction) sqlc.InsertLedgerTransactionParams {
	return sqlc.InsertLedgerTransactionParams{
		ID:            t.ID,
		BeneficiaryID: t.BeneficiaryID,
		AmountMinor:   t.Amount,
		Kind:          t.Kind.String(),
		ReferenceID:   t.ReferenceID,
		BalanceAfter:  t.BalanceAfter,
		Memo:          pgconv.TextOrNull(t.Memo),
		CreatedAt:     pgconv.TimeToPgtype(t.CreatedAt),
	}
}

func TransactionFromRow(row sqlc.LedgerTransactions) *ledger.Transaction {
	return &ledger.Transaction{
		ID:            row.ID,
		BeneficiaryID: row.BeneficiaryID,
		Amount:        row.AmountMinor,
		Kind:          ledger.Kind(row.Kind),
		ReferenceID:   row.ReferenceID,
		BalanceAfter:  row.BalanceAfter,
		Memo:          pgconv.StringFromPgtype(row.Memo),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
