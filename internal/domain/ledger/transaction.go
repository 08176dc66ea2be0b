package ledger

import (
	"time"

	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrMissingBeneficiary = errs.New("beneficiary is required")
	ErrMissingReference   = errs.New("reference is required")
	ErrZeroAmount         = errs.New("amount must not be zero")
	ErrSignMismatch       = errs.New("amount sign does not match transaction kind")
)

// Entry is a requested balance change before it is appended.
type Entry struct {
	BeneficiaryID uuid.UUID
	Amount        int64
	Kind          Kind
	ReferenceID   uuid.UUID
	Memo          string
}

func (e Entry) Validate() error {
	var err error
	switch {
	case e.BeneficiaryID == uuid.Nil:
		err = ErrMissingBeneficiary
	case e.ReferenceID == uuid.Nil:
		err = ErrMissingReference
	case !e.Kind.IsValid():
		err = ErrInvalidKind
	case e.Amount == 0:
		err = ErrZeroAmount
	case (e.Kind == KindRedemptionCredit || e.Kind == KindReferralCredit) && e.Amount < 0:
		err = ErrSignMismatch
	case e.Kind == KindPayout && e.Amount > 0:
		err = ErrSignMismatch
	}
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	return nil
}

// Transaction is an immutable ledger row. BalanceAfter is a snapshot of the
// derived balance at append time, never a source of truth.
type Transaction struct {
	ID            uuid.UUID
	BeneficiaryID uuid.UUID
	Amount        int64
	Kind          Kind
	ReferenceID   uuid.UUID
	BalanceAfter  int64
	Memo          string
	CreatedAt     time.Time
}

// Append builds the transaction that follows balance. Debits may not take
// the balance below zero; adjustments may, so operators can claw back.
func Append(e Entry, balance int64, now time.Time) (*Transaction, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	next := balance + e.Amount
	if e.Kind == KindPayout && next < 0 {
		return nil, errs.ErrInsufficientFunds
	}
	return &Transaction{
		ID:            uuid.New(),
		BeneficiaryID: e.BeneficiaryID,
		Amount:        e.Amount,
		Kind:          e.Kind,
		ReferenceID:   e.ReferenceID,
		BalanceAfter:  next,
		Memo:          e.Memo,
		CreatedAt:     now,
	}, nil
}

// Balance replays transactions into a balance.
func Balance(txs []*Transaction) int64 {
	var sum int64
	for _, t := range txs {
		sum += t.Amount
	}
	return sum
}
