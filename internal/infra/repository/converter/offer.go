package converter

import (
	"redemption-ledger/internal/domain/offer"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
)

func OfferFromRow(row sqlc.Offers) *offer.Offer {
	return &offer.Offer{
		ID:                 row.ID,
		ProviderOfferID:    row.ProviderOfferID,
		Category:           row.Category,
		TargetDescription:  row.TargetDescription,
		SavingsMinor:       row.SavingsMinor,
		MaxRedemptions:     pgconv.Int32PtrFromPgtype(row.MaxRedemptions),
		CurrentRedemptions: row.CurrentRedemptions,
		IsActive:           row.IsActive,
		ExpiresAt:          pgconv.TimePtrFromPgtype(row.ExpiresAt),
		CreatedAt:          pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
