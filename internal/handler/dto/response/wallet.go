package response

import (
	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/usecase/queries"
)

type TransactionResponse struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"`
	AmountMinor  int64   `json:"amount_minor"`
	BalanceAfter int64   `json:"balance_after"`
	ReferenceID  string  `json:"reference_id"`
	Memo         *string `json:"memo,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

type WalletResponse struct {
	BalanceMinor int64                  `json:"balance_minor"`
	Recent       []*TransactionResponse `json:"recent"`
}

func FromTransactionView(v *queries.TransactionView) *TransactionResponse {
	return &TransactionResponse{
		ID:           v.ID.String(),
		Kind:         v.Kind,
		AmountMinor:  v.AmountMinor,
		BalanceAfter: v.BalanceAfter,
		ReferenceID:  v.ReferenceID.String(),
		Memo:         v.Memo,
		CreatedAt:    v.CreatedAt.Unix(),
	}
}

func FromTransactionViews(views []*queries.TransactionView) []*TransactionResponse {
	res := make([]*TransactionResponse, len(views))
	for i, v := range views {
		res[i] = FromTransactionView(v)
	}
	return res
}

func FromWalletView(v *queries.WalletView) *WalletResponse {
	return &WalletResponse{BalanceMinor: v.BalanceMinor, Recent: FromTransactionViews(v.Recent)}
}

func FromTransaction(t *ledger.Transaction) *TransactionResponse {
	res := &TransactionResponse{
		ID:           t.ID.String(),
		Kind:         string(t.Kind),
		AmountMinor:  t.Amount,
		BalanceAfter: t.BalanceAfter,
		ReferenceID:  t.ReferenceID.String(),
		CreatedAt:    t.CreatedAt.Unix(),
	}
	if t.Memo != "" {
		memo := t.Memo
		res.Memo = &memo
	}
	return res
}
