//go:build unit || e2e

package builder

import (
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type ClaimBuilder struct {
	ID         uuid.UUID
	OfferID    uuid.UUID
	ListItemID uuid.UUID
	ClaimantID uuid.UUID
	Status     claim.Status
	CreatedAt  time.Time
	TTL        time.Duration
}

func NewClaimBuilder() *ClaimBuilder {
	return &ClaimBuilder{
		ID:         uuid.New(),
		OfferID:    uuid.New(),
		ListItemID: uuid.New(),
		ClaimantID: uuid.New(),
		Status:     claim.StatusClaimed,
		CreatedAt:  time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
		TTL:        claim.DefaultTTL,
	}
}

func (b *ClaimBuilder) With(mutate func(*ClaimBuilder)) *ClaimBuilder {
	mutate(b)
	return b
}

func (b *ClaimBuilder) ForOffer(offerID uuid.UUID) *ClaimBuilder {
	b.OfferID = offerID
	return b
}

func (b *ClaimBuilder) ByClaimant(claimantID uuid.UUID) *ClaimBuilder {
	b.ClaimantID = claimantID
	return b
}

func (b *ClaimBuilder) CreatedAtTime(t time.Time) *ClaimBuilder {
	b.CreatedAt = t
	return b
}

func (b *ClaimBuilder) WithStatus(s claim.Status) *ClaimBuilder {
	b.Status = s
	return b
}

func (b *ClaimBuilder) BuildDomain() *claim.Claim {
	p := claim.ReconstructParams{
		ID:         b.ID,
		OfferID:    b.OfferID,
		ListItemID: b.ListItemID,
		ClaimantID: b.ClaimantID,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		ExpiresAt:  b.CreatedAt.Add(b.TTL),
		UpdatedAt:  b.CreatedAt,
	}
	if b.Status.IsTerminal() {
		resolved := b.CreatedAt.Add(time.Hour)
		p.ResolvedAt = &resolved
		p.UpdatedAt = resolved
	}
	return claim.Reconstruct(p)
}

func (b *ClaimBuilder) BuildView() *queries.ClaimView {
	return &queries.ClaimView{
		ID:                b.ID,
		OfferID:           b.OfferID,
		ListItemID:        b.ListItemID,
		ClaimantID:        b.ClaimantID,
		Status:            b.Status.String(),
		TargetDescription: "Organic Whole Milk",
		Category:          "dairy",
		SavingsMinor:      150,
		CreatedAt:         b.CreatedAt,
		ExpiresAt:         b.CreatedAt.Add(b.TTL),
	}
}
