package offer

import (
	"time"

	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInactive         = errs.New("offer is not active")
	ErrExpired          = errs.New("offer has expired")
	ErrRedemptionsSpent = errs.New("offer has no redemptions left")
)

// Offer is the brand-funded discount a claim points at. Offers are authored
// elsewhere; the engine only reads them and counts redemptions.
type Offer struct {
	ID                 uuid.UUID
	ProviderOfferID    string
	Category           string
	TargetDescription  string
	SavingsMinor       int64
	MaxRedemptions     *int32
	CurrentRedemptions int32
	IsActive           bool
	ExpiresAt          *time.Time
	CreatedAt          time.Time
}

func (o *Offer) CheckClaimable(now time.Time) error {
	if !o.IsActive {
		return ErrInactive
	}
	if o.ExpiresAt != nil && !now.Before(*o.ExpiresAt) {
		return ErrExpired
	}
	if o.MaxRedemptions != nil && o.CurrentRedemptions >= *o.MaxRedemptions {
		return ErrRedemptionsSpent
	}
	return nil
}
