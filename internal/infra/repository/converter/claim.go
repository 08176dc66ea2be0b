package converter

import (
	"redemption-ledger/internal/domain/claim"
	sqlc "redemption-ledger/internal/infra/sqlc/generated"
	"redemption-ledger/internal/pkg/pgconv"
)

func ClaimToCreateParams(c *claim.Claim) sqlc.CreateClaimParams {
	return sqlc.CreateClaimParams{
		ID:         c.ID(),
		OfferID:    c.OfferID(),
		ListItemID: c.ListItemID(),
		ClaimantID: c.ClaimantID(),
		Status:     c.Status().String(),
		CreatedAt:  pgconv.TimeToPgtype(c.CreatedAt()),
		ExpiresAt:  pgconv.TimeToPgtype(c.ExpiresAt()),
		UpdatedAt:  pgconv.TimeToPgtype(c.UpdatedAt()),
	}
}

func ClaimToUpdateParams(c *claim.Claim) sqlc.UpdateClaimStateParams {
	return sqlc.UpdateClaimStateParams{
		ID:              c.ID(),
		Status:          c.Status().String(),
		UpdatedAt:       pgconv.TimeToPgtype(c.UpdatedAt()),
		ResolvedAt:      pgconv.TimePtrToPgtype(c.ResolvedAt()),
		ReceiptID:       pgconv.UUIDPtrToPgtype(c.ReceiptID()),
		Reason:          pgconv.TextOrNull(c.Reason()),
		ReviewFlaggedAt: pgconv.TimePtrToPgtype(c.ReviewFlaggedAt()),
	}
}

func ClaimFromRow(row sqlc.Claims) (*claim.Claim, error) {
	status, err := claim.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return claim.Reconstruct(claim.ReconstructParams{
		ID:              row.ID,
		OfferID:         row.OfferID,
		ListItemID:      row.ListItemID,
		ClaimantID:      row.ClaimantID,
		Status:          status,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		ExpiresAt:       pgconv.TimeFromPgtype(row.ExpiresAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
		ResolvedAt:      pgconv.TimePtrFromPgtype(row.ResolvedAt),
		ReceiptID:       pgconv.UUIDPtrFromPgtype(row.ReceiptID),
		Reason:          pgconv.StringFromPgtype(row.Reason),
		ReviewFlaggedAt: pgconv.TimePtrFromPgtype(row.ReviewFlaggedAt),
	}), nil
}
