package redemption

import (
	"time"

	"redemption-ledger/internal/domain/receipt"

	"github.com/google/uuid"
)

// Request is what the authority needs to decide one redemption. The claim
// id doubles as the idempotency key, so a retried request is never counted
// twice by the authority.
type Request struct {
	OfferID      uuid.UUID
	ClaimID      uuid.UUID
	ClaimantID   uuid.UUID
	ReceiptID    uuid.UUID
	StoreName    string
	PurchaseDate time.Time
	TotalMinor   int64
	Line         receipt.LineItem
}

func NewRequest(offerID, claimID, claimantID uuid.UUID, r *receipt.Receipt, lineIndex int) Request {
	req := Request{
		OfferID:    offerID,
		ClaimID:    claimID,
		ClaimantID: claimantID,
		ReceiptID:  r.ID(),
	}
	if ex := r.Extraction(); ex != nil {
		req.StoreName = ex.StoreName
		req.PurchaseDate = ex.PurchaseDate
		req.TotalMinor = ex.TotalMinor
		if lineIndex >= 0 && lineIndex < len(ex.LineItems) {
			req.Line = ex.LineItems[lineIndex]
		}
	}
	return req
}

// Rejection is the authority's final refusal of a redemption.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string {
	if r.Reason == "" {
		return "redemption rejected"
	}
	return "redemption rejected: " + r.Reason
}
