package shared

import (
	"context"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/domain/matching"
	"redemption-ledger/internal/domain/offer"
	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/domain/redemption"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single statements on the pool using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Offers() OfferRepository
	Claims() ClaimRepository
	Receipts() ReceiptRepository
	Matches() MatchRepository
	Ledger() LedgerRepository
	Referrals() ReferralRepository
	Jobs() JobRepository
}

type OfferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error)
	// IncrementRedemptions returns false when the offer has no redemptions left.
	IncrementRedemptions(ctx context.Context, id uuid.UUID) (bool, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, c *claim.Claim) error
	FindByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error)
	// LockByID reads the claim with a row lock held until the transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error)
	Save(ctx context.Context, c *claim.Claim) error
	ListOpenCandidates(ctx context.Context, claimantID uuid.UUID, now time.Time) ([]matching.Candidate, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type ReceiptRepository interface {
	Create(ctx context.Context, r *receipt.Receipt, image []byte) error
	FindByID(ctx context.Context, id uuid.UUID) (*receipt.Receipt, error)
	FindByImageDigest(ctx context.Context, digest string) (*receipt.Receipt, error)
	FindByFingerprint(ctx context.Context, fingerprint string) (*receipt.Receipt, error)
	LoadImage(ctx context.Context, digest string) ([]byte, error)
	Save(ctx context.Context, r *receipt.Receipt) error
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type MatchRepository interface {
	// Insert returns false when the match already exists.
	Insert(ctx context.Context, m *redemption.Match) (bool, error)
	Find(ctx context.Context, receiptID, claimID uuid.UUID) (*redemption.Match, error)
	Save(ctx context.Context, m *redemption.Match) error
	ListByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*redemption.Match, error)
}

type LedgerRepository interface {
	// LockAccount serializes appends for one beneficiary until the transaction ends.
	LockAccount(ctx context.Context, beneficiaryID uuid.UUID) error
	FindByReference(ctx context.Context, referenceID uuid.UUID, kind ledger.Kind) (*ledger.Transaction, error)
	Balance(ctx context.Context, beneficiaryID uuid.UUID) (int64, error)
	Append(ctx context.Context, t *ledger.Transaction) error
}

type ReferralRepository interface {
	FindCodeByUser(ctx context.Context, userID uuid.UUID) (string, error)
	FindUserByCode(ctx context.Context, code string) (uuid.UUID, error)
	// CreateCode returns false when the user already has a code.
	CreateCode(ctx context.Context, userID uuid.UUID, code string, now time.Time) (bool, error)
	// FindReferrer returns nil when the user was not referred.
	FindReferrer(ctx context.Context, referredID uuid.UUID) (*uuid.UUID, error)
	// CreateEdge returns false when the user is already attributed.
	CreateEdge(ctx context.Context, referredID, referrerID uuid.UUID, code string, now time.Time) (bool, error)
}

type JobRepository interface {
	// Enqueue returns false when a job with the same dedupe key exists.
	Enqueue(ctx context.Context, job NewJob) (bool, error)
	Lease(ctx context.Context, now, leaseUntil time.Time, batch int) ([]*Job, error)
	Complete(ctx context.Context, id uuid.UUID, now time.Time) error
	Reschedule(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string, now time.Time) error
	Bury(ctx context.Context, id uuid.UUID, lastErr string, now time.Time) error
}
