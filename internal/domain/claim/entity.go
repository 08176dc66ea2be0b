package claim

import (
	"time"

	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

const DefaultTTL = 7 * 24 * time.Hour

var (
	ErrMissingOffer    = errs.New("offer id is required")
	ErrMissingListItem = errs.New("list item id is required")
	ErrMissingClaimant = errs.New("claimant id is required")
	ErrInvalidTTL      = errs.New("claim ttl must be positive")
	ErrNotClaimant     = errs.New("actor is not the claimant")
	ErrUnknownOutcome  = errs.New("unknown resolution outcome")
)

// Claim is a user's exclusive, time-bounded commitment to redeem an offer
// against one shopping-list entry.
type Claim struct {
	id              uuid.UUID
	offerID         uuid.UUID
	listItemID      uuid.UUID
	claimantID      uuid.UUID
	status          Status
	createdAt       time.Time
	expiresAt       time.Time
	updatedAt       time.Time
	resolvedAt      *time.Time
	receiptID       *uuid.UUID
	reason          string
	reviewFlaggedAt *time.Time
}

func New(offerID, listItemID, claimantID uuid.UUID, now time.Time, ttl time.Duration) (*Claim, error) {
	if offerID == uuid.Nil {
		return nil, ErrMissingOffer
	}
	if listItemID == uuid.Nil {
		return nil, ErrMissingListItem
	}
	if claimantID == uuid.Nil {
		return nil, ErrMissingClaimant
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	return &Claim{
		id:         uuid.New(),
		offerID:    offerID,
		listItemID: listItemID,
		claimantID: claimantID,
		status:     StatusClaimed,
		createdAt:  now,
		expiresAt:  now.Add(ttl),
		updatedAt:  now,
	}, nil
}

type ReconstructParams struct {
	ID              uuid.UUID
	OfferID         uuid.UUID
	ListItemID      uuid.UUID
	ClaimantID      uuid.UUID
	Status          Status
	CreatedAt       time.Time
	ExpiresAt       time.Time
	UpdatedAt       time.Time
	ResolvedAt      *time.Time
	ReceiptID       *uuid.UUID
	Reason          string
	ReviewFlaggedAt *time.Time
}

// Reconstruct rebuilds a claim loaded from storage without re-validating it.
func Reconstruct(p ReconstructParams) *Claim {
	return &Claim{
		id:              p.ID,
		offerID:         p.OfferID,
		listItemID:      p.ListItemID,
		claimantID:      p.ClaimantID,
		status:          p.Status,
		createdAt:       p.CreatedAt,
		expiresAt:       p.ExpiresAt,
		updatedAt:       p.UpdatedAt,
		resolvedAt:      p.ResolvedAt,
		receiptID:       p.ReceiptID,
		reason:          p.Reason,
		reviewFlaggedAt: p.ReviewFlaggedAt,
	}
}

func (c *Claim) ID() uuid.UUID               { return c.id }
func (c *Claim) OfferID() uuid.UUID          { return c.offerID }
func (c *Claim) ListItemID() uuid.UUID       { return c.listItemID }
func (c *Claim) ClaimantID() uuid.UUID       { return c.claimantID }
func (c *Claim) Status() Status              { return c.status }
func (c *Claim) CreatedAt() time.Time        { return c.createdAt }
func (c *Claim) ExpiresAt() time.Time        { return c.expiresAt }
func (c *Claim) UpdatedAt() time.Time        { return c.updatedAt }
func (c *Claim) ResolvedAt() *time.Time      { return c.resolvedAt }
func (c *Claim) ReceiptID() *uuid.UUID       { return c.receiptID }
func (c *Claim) Reason() string              { return c.reason }
func (c *Claim) ReviewFlaggedAt() *time.Time { return c.reviewFlaggedAt }

// IsOpen reports whether the claim can still be matched by a receipt at now.
func (c *Claim) IsOpen(now time.Time) bool {
	return c.status == StatusClaimed && now.Before(c.expiresAt)
}

// Cancel moves a claimed claim to cancelled. It reports false without error
// when the claim is already cancelled.
func (c *Claim) Cancel(actor uuid.UUID, now time.Time) (bool, error) {
	if actor != c.claimantID {
		return false, errs.Mark(ErrNotClaimant, errs.ErrInvalidTransition)
	}
	switch c.status {
	case StatusClaimed:
		c.terminate(StatusCancelled, now)
		return true, nil
	case StatusCancelled:
		return false, nil
	default:
		return false, errs.Mark(errs.New("claim is already "+c.status.String()), errs.ErrInvalidTransition)
	}
}

// Resolve applies a redemption outcome. A terminal claim is left untouched
// and false is returned.
func (c *Claim) Resolve(outcome Outcome, receiptID uuid.UUID, reason string, now time.Time) (bool, error) {
	target, ok := outcome.status()
	if !ok {
		return false, ErrUnknownOutcome
	}
	if c.status.IsTerminal() {
		return false, nil
	}
	c.terminate(target, now)
	c.receiptID = &receiptID
	c.reason = reason
	return true, nil
}

// Expire moves an overdue claimed claim to expired.
func (c *Claim) Expire(now time.Time) bool {
	if c.status != StatusClaimed || now.Before(c.expiresAt) {
		return false
	}
	c.terminate(StatusExpired, now)
	return true
}

// FlagForReview marks a claim whose redemption could not be completed after
// every retry. The claim stays claimed.
func (c *Claim) FlagForReview(reason string, now time.Time) bool {
	if c.status != StatusClaimed || c.reviewFlaggedAt != nil {
		return false
	}
	c.reviewFlaggedAt = &now
	c.reason = reason
	c.updatedAt = now
	return true
}

func (c *Claim) terminate(s Status, now time.Time) {
	c.status = s
	c.resolvedAt = &now
	c.updatedAt = now
}
