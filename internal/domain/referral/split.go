package referral

import (
	"math/big"

	"redemption-ledger/internal/pkg/errs"
)

const DefaultRate = 0.30

type Base string

const (
	// BaseMargin splits the authority-reported platform margin.
	BaseMargin Base = "margin"
	// BaseCredit splits the consumer's credited discount instead.
	BaseCredit Base = "credit"
)

var (
	ErrInvalidRate = errs.New("referral rate must be within [0, 1]")
	ErrInvalidBase = errs.New("invalid referral base")
)

func ParseBase(s string) (Base, error) {
	switch Base(s) {
	case BaseMargin, "":
		return BaseMargin, nil
	case BaseCredit:
		return BaseCredit, nil
	default:
		return "", ErrInvalidBase
	}
}

type Policy struct {
	rate *big.Rat
	base Base
}

func NewPolicy(rate float64, base Base) (*Policy, error) {
	if rate < 0 || rate > 1 {
		return nil, ErrInvalidRate
	}
	if _, err := ParseBase(string(base)); err != nil {
		return nil, err
	}
	r := new(big.Rat)
	// SetString on the shortest decimal form keeps 0.30 exactly 3/10.
	if _, ok := r.SetString(big.NewFloat(rate).Text('f', -1)); !ok {
		return nil, ErrInvalidRate
	}
	if base == "" {
		base = BaseMargin
	}
	return &Policy{rate: r, base: base}, nil
}

func (p *Policy) Base() Base { return p.base }

// Share returns floor(revenue * rate). Non-positive revenue yields zero.
func (p *Policy) Share(revenue int64) int64 {
	if revenue <= 0 || p.rate.Sign() == 0 {
		return 0
	}
	n := new(big.Int).Mul(big.NewInt(revenue), p.rate.Num())
	n.Quo(n, p.rate.Denom())
	return n.Int64()
}

// ShareOf picks the configured base from an approved redemption.
func (p *Policy) ShareOf(creditMinor, marginMinor int64) int64 {
	if p.base == BaseCredit {
		return p.Share(creditMinor)
	}
	return p.Share(marginMinor)
}
