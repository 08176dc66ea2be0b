// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.
// source: ledger.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getLedgerTransactionByReference = `-- name: GetLedgerTransactionByReference :one
SELECT id, beneficiary_id, amount_minor, kind, reference_id, balance_after, memo, created_at FROM ledger_transactions
WHERE reference_id = $1 AND kind = $2
`

type GetLedgerTransactionByReferenceParams struct {
	ReferenceID uuid.UUID `json:"reference_id"`
	Kind        string    `json:"kind"`
}

func (q *Queries) GetLedgerTransactionByReference(ctx context.Context, db DBTX, arg GetLedgerTransactionByReferenceParams) (LedgerTransactions, error) {
	row := db.QueryRow(ctx, getLedgerTransactionByReference, arg.ReferenceID, arg.Kind)
	var i LedgerTransactions
	err := row.Scan(
		&i.ID,
		&i.BeneficiaryID,
		&i.AmountMinor,
		&i.Kind,
		&i.ReferenceID,
		&i.BalanceAfter,
		&i.Memo,
		&i.CreatedAt,
	)
	return i, err
}

const insertLedgerTransaction = `-- name: InsertLedgerTransaction :one
INSERT INTO ledger_transactions (id, beneficiary_id, amount_minor, kind, reference_id, balance_after, memo, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, beneficiary_id, amount_minor, kind, reference_id, balance_after, memo, created_at
`

type InsertLedgerTransactionParams struct {
	ID            uuid.UUID          `json:"id"`
	BeneficiaryID uuid.UUID          `json:"beneficiary_id"`
	AmountMinor   int64              `json:"amount_minor"`
	Kind          string             `json:"kind"`
	ReferenceID   uuid.UUID          `json:"reference_id"`
	BalanceAfter  int64              `json:"balance_after"`
	Memo          pgtype.Text        `json:"memo"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) InsertLedgerTransaction(ctx context.Context, db DBTX, arg InsertLedgerTransactionParams) (LedgerTransactions, error) {
	row := db.QueryRow(ctx, insertLedgerTransaction,
		arg.ID,
		arg.BeneficiaryID,
		arg.AmountMinor,
		arg.Kind,
		arg.ReferenceID,
		arg.BalanceAfter,
		arg.Memo,
		arg.CreatedAt,
	)
	var i LedgerTransactions
	err := row.Scan(
		&i.ID,
		&i.BeneficiaryID,
		&i.AmountMinor,
		&i.Kind,
		&i.ReferenceID,
		&i.BalanceAfter,
		&i.Memo,
		&i.CreatedAt,
	)
	return i, err
}

const listLedgerTransactionsFirstPage = `-- name: ListLedgerTransactionsFirstPage :many
SELECT id, beneficiary_id, amount_minor, kind, reference_id, balance_after, memo, created_at FROM ledger_transactions
WHERE beneficiary_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`

type ListLedgerTransactionsFirstPageParams struct {
	BeneficiaryID uuid.UUID `json:"beneficiary_id"`
	RowLimit      int32     `json:"row_limit"`
}

func (q *Queries) ListLedgerTransactionsFirstPage(ctx context.Context, db DBTX, arg ListLedgerTransactionsFirstPageParams) ([]LedgerTransactions, error) {
	rows, err := db.Query(ctx, listLedgerTransactionsFirstPage, arg.BeneficiaryID, arg.RowLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerTransactions{}
	for rows.Next() {
		var i LedgerTransactions
		if err := rows.Scan(
			&i.ID,
			&i.BeneficiaryID,
			&i.AmountMinor,
			&i.Kind,
			&i.ReferenceID,
			&i.BalanceAfter,
			&i.Memo,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listLedgerTransactionsKeyset = `-- name: ListLedgerTransactionsKeyset :many
SELECT id, beneficiary_id, amount_minor, kind, reference_id, balance_after, memo, created_at FROM ledger_transactions
WHERE beneficiary_id = $1
  AND (created_at, id) < ($2::timestamptz, $3::uuid)
ORDER BY created_at DESC, id DESC
LIMIT $4
`

type ListLedgerTransactionsKeysetParams struct {
	BeneficiaryID uuid.UUID          `json:"beneficiary_id"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	ID            uuid.UUID          `json:"id"`
	RowLimit      int32              `json:"row_limit"`
}

func (q *Queries) ListLedgerTransactionsKeyset(ctx context.Context, db DBTX, arg ListLedgerTransactionsKeysetParams) ([]LedgerTransactions, error) {
	rows, err := db.Query(ctx, listLedgerTransactionsKeyset,
		arg.BeneficiaryID,
		arg.CreatedAt,
		arg.ID,
		arg.RowLimit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []LedgerTransactions{}
	for rows.Next() {
		var i LedgerTransactions
		if err := rows.Scan(
			&i.ID,
			&i.BeneficiaryID,
			&i.AmountMinor,
			&i.Kind,
			&i.ReferenceID,
			&i.BalanceAfter,
			&i.Memo,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const lockLedgerAccount = `-- name: LockLedgerAccount :exec
SELECT pg_advisory_xact_lock(hashtextextended($1::uuid::text, 0))
`

func (q *Queries) LockLedgerAccount(ctx context.Context, db DBTX, beneficiaryID uuid.UUID) error {
	_, err := db.Exec(ctx, lockLedgerAccount, beneficiaryID)
	return err
}

const sumLedgerBalance = `-- name: SumLedgerBalance :one
SELECT COALESCE(SUM(amount_minor), 0)::bigint AS balance
FROM ledger_transactions
WHERE beneficiary_id = $1
`

func (q *Queries) SumLedgerBalance(ctx context.Context, db DBTX, beneficiaryID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, sumLedgerBalance, beneficiaryID)
	var balance int64
	err := row.Scan(&balance)
	return balance, err
}
