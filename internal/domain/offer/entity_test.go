//go:build unit

package offer_test

import (
	"testing"
	"time"

	"redemption-ledger/internal/domain/offer"
	"redemption-ledger/tests/common/builder"

	"github.com/stretchr/testify/assert"
)

func TestCheckClaimable(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func(*builder.OfferBuilder)
		errIs error
	}{
		{name: "active offer", build: func(*builder.OfferBuilder) {}},
		{name: "inactive", build: func(b *builder.OfferBuilder) { b.AsInactive() }, errIs: offer.ErrInactive},
		{name: "expired", build: func(b *builder.OfferBuilder) { b.ExpiringAt(now) }, errIs: offer.ErrExpired},
		{name: "expires later", build: func(b *builder.OfferBuilder) { b.ExpiringAt(now.Add(time.Minute)) }},
		{name: "cap reached", build: func(b *builder.OfferBuilder) { b.WithCap(3, 3) }, errIs: offer.ErrRedemptionsSpent},
		{name: "cap not reached", build: func(b *builder.OfferBuilder) { b.WithCap(3, 2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := builder.NewOfferBuilder().With(tt.build).BuildDomain()
			err := o.CheckClaimable(now)
			if tt.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}
