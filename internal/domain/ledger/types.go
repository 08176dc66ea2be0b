package ledger

import "redemption-ledger/internal/pkg/errs"

type Kind string

const (
	KindRedemptionCredit Kind = "redemption-credit"
	KindReferralCredit   Kind = "referral-credit"
	KindPayout           Kind = "payout"
	KindAdjustment       Kind = "adjustment"
)

var ErrInvalidKind = errs.New("invalid ledger kind")

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	switch k {
	case KindRedemptionCredit, KindReferralCredit, KindPayout, KindAdjustment:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}
