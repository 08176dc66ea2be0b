//go:build unit || e2e

package builder

import (
	"time"

	"redemption-ledger/internal/domain/offer"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OfferBuilder struct {
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

func NewOfferBuilder() *OfferBuilder {
	return &OfferBuilder{
		ID:                uuid.New(),
		ProviderOfferID:   "prov-" + uuid.NewString()[:8],
		Category:          "dairy",
		TargetDescription: "Organic Whole Milk",
		SavingsMinor:      150,
		IsActive:          true,
		CreatedAt:         time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(b)
	return b
}

func (b *OfferBuilder) WithDescription(description, category string) *OfferBuilder {
	b.TargetDescription = description
	b.Category = category
	return b
}

func (b *OfferBuilder) WithCap(maxRedemptions, current int32) *OfferBuilder {
	b.MaxRedemptions = &maxRedemptions
	b.CurrentRedemptions = current
	return b
}

func (b *OfferBuilder) AsInactive() *OfferBuilder {
	b.IsActive = false
	return b
}

func (b *OfferBuilder) ExpiringAt(t time.Time) *OfferBuilder {
	b.ExpiresAt = &t
	return b
}

func (b *OfferBuilder) BuildDomain() offer.Offer {
	return offer.Offer{
		ID:                 b.ID,
		ProviderOfferID:    b.ProviderOfferID,
		Category:           b.Category,
		TargetDescription:  b.TargetDescription,
		SavingsMinor:       b.SavingsMinor,
		MaxRedemptions:     b.MaxRedemptions,
		CurrentRedemptions: b.CurrentRedemptions,
		IsActive:           b.IsActive,
		ExpiresAt:          b.ExpiresAt,
		CreatedAt:          b.CreatedAt,
	}
}

func (b *OfferBuilder) BuildInfra() sqlc.Offers {
	row := sqlc.Offers{
		ID:                 b.ID,
		ProviderOfferID:    b.ProviderOfferID,
		Category:           b.Category,
		TargetDescription:  b.TargetDescription,
		SavingsMinor:       b.SavingsMinor,
		CurrentRedemptions: b.CurrentRedemptions,
		IsActive:           b.IsActive,
		CreatedAt:          pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
	if b.MaxRedemptions != nil {
		row.MaxRedemptions = pgtype.Int4{Int32: *b.MaxRedemptions, Valid: true}
	}
	if b.ExpiresAt != nil {
		row.ExpiresAt = pgtype.Timestamptz{Time: *b.ExpiresAt, Valid: true}
	}
	return row
}
