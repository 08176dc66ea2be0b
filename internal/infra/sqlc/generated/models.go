// Written in the layout sqlc v1.29.0 generates; regenerate with `sqlc generate`
// or keep in step with ../queries by hand.

package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Claims struct {
	ID              uuid.UUID          `json:"id"`
	OfferID         uuid.UUID          `json:"offer_id"`
	ListItemID      uuid.UUID          `json:"list_item_id"`
	ClaimantID      uuid.UUID          `json:"claimant_id"`
	Status          string             `json:"status"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
	ExpiresAt       pgtype.Timestamptz `json:"expires_at"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
	ResolvedAt      pgtype.Timestamptz `json:"resolved_at"`
	ReceiptID       pgtype.UUID        `json:"receipt_id"`
	Reason          pgtype.Text        `json:"reason"`
	ReviewFlaggedAt pgtype.Timestamptz `json:"review_flagged_at"`
}

type Jobs struct {
	ID          uuid.UUID          `json:"id"`
	Kind        string             `json:"kind"`
	DedupeKey   string             `json:"dedupe_key"`
	Payload     []byte             `json:"payload"`
	RunAt       pgtype.Timestamptz `json:"run_at"`
	Attempts    int32              `json:"attempts"`
	Status      string             `json:"status"`
	LockedUntil pgtype.Timestamptz `json:"locked_until"`
	LastError   pgtype.Text        `json:"last_error"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type LedgerTransactions struct {
	ID            uuid.UUID          `json:"id"`
	BeneficiaryID uuid.UUID          `json:"beneficiary_id"`
	AmountMinor   int64              `json:"amount_minor"`
	Kind          string             `json:"kind"`
	ReferenceID   uuid.UUID          `json:"reference_id"`
	BalanceAfter  int64              `json:"balance_after"`
	Memo          pgtype.Text        `json:"memo"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
}

type Offers struct {
	ID                 uuid.UUID          `json:"id"`
	ProviderOfferID    string             `json:"provider_offer_id"`
	Category           string             `json:"category"`
	TargetDescription  string             `json:"target_description"`
	SavingsMinor       int64              `json:"savings_minor"`
	MaxRedemptions     pgtype.Int4        `json:"max_redemptions"`
	CurrentRedemptions int32              `json:"current_redemptions"`
	IsActive           bool               `json:"is_active"`
	ExpiresAt          pgtype.Timestamptz `json:"expires_at"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
}

type ReceiptImages struct {
	Digest    string             `json:"digest"`
	Content   []byte             `json:"content"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type ReceiptMatches struct {
	ReceiptID     uuid.UUID          `json:"receipt_id"`
	ClaimID       uuid.UUID          `json:"claim_id"`
	LineItemIndex int32              `json:"line_item_index"`
	Confidence    float64            `json:"confidence"`
	Outcome       string             `json:"outcome"`
	Reason        pgtype.Text        `json:"reason"`
	CreditMinor   pgtype.Int8        `json:"credit_minor"`
	Attempts      int32              `json:"attempts"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type Receipts struct {
	ID           uuid.UUID          `json:"id"`
	SubmitterID  uuid.UUID          `json:"submitter_id"`
	ImageDigest  string             `json:"image_digest"`
	Fingerprint  pgtype.Text        `json:"fingerprint"`
	Status       string             `json:"status"`
	Message      pgtype.Text        `json:"message"`
	StoreName    pgtype.Text        `json:"store_name"`
	PurchaseDate pgtype.Timestamptz `json:"purchase_date"`
	TotalMinor   pgtype.Int8        `json:"total_minor"`
	LineItems    []byte             `json:"line_items"`
	SubmittedAt  pgtype.Timestamptz `json:"submitted_at"`
	ProcessedAt  pgtype.Timestamptz `json:"processed_at"`
}

type ReferralCodes struct {
	UserID    uuid.UUID          `json:"user_id"`
	Code      string             `json:"code"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

type ReferralEdges struct {
	ReferredID uuid.UUID          `json:"referred_id"`
	ReferrerID uuid.UUID          `json:"referrer_id"`
	Code       string             `json:"code"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}
