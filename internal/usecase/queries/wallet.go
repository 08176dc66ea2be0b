package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const recentTransactions = 10

type WalletReadStore interface {
	Balance(ctx context.Context, userID uuid.UUID) (int64, error)
	TransactionsFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*TransactionView, error)
	TransactionsKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*TransactionView, error)
}

type WalletQueries interface {
	Summary(ctx context.Context, userID uuid.UUID) (*WalletView, error)
	Transactions(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*TransactionView, *Cursor, error)
}

type walletQueriesImpl struct {
	store WalletReadStore
}

func NewWalletQueries(store WalletReadStore) WalletQueries {
	return &walletQueriesImpl{store: store}
}

// Summary reads the derived balance and the newest transactions. The two
// reads are not in one snapshot; BalanceAfter on the rows is authoritative.
func (q *walletQueriesImpl) Summary(ctx context.Context, userID uuid.UUID) (*WalletView, error) {
	balance, err := q.store.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := q.store.TransactionsFirstPage(ctx, userID, recentTransactions)
	if err != nil {
		return nil, err
	}
	return &WalletView{UserID: userID, BalanceMinor: balance, Recent: recent}, nil
}

func (q *walletQueriesImpl) Transactions(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*TransactionView, *Cursor, error) {
	limit = ValidateLimit(limit)
	var rows []*TransactionView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.TransactionsFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.store.TransactionsKeyset(ctx, userID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
