package queries

import (
	"time"

	"github.com/google/uuid"
)

// OfferView is an active offer as shown to members browsing their list.
type OfferView struct {
	ID                   uuid.UUID  `json:"id"`
	Category             string     `json:"category"`
	TargetDescription    string     `json:"target_description"`
	SavingsMinor         int64      `json:"savings_minor"`
	RemainingRedemptions *int32     `json:"remaining_redemptions,omitempty"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
}

// ClaimView joins a claim with the offer it commits to.
type ClaimView struct {
	ID                uuid.UUID  `json:"id"`
	OfferID           uuid.UUID  `json:"offer_id"`
	ListItemID        uuid.UUID  `json:"list_item_id"`
	ClaimantID        uuid.UUID  `json:"claimant_id"`
	Status            string     `json:"status"`
	TargetDescription string     `json:"target_description"`
	Category          string     `json:"category"`
	SavingsMinor      int64      `json:"savings_minor"`
	ReceiptID         *uuid.UUID `json:"receipt_id,omitempty"`
	Reason            *string    `json:"reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ExpiresAt         time.Time  `json:"expires_at"`
	ResolvedAt        *time.Time `json:"resolved_at,omitempty"`
	ReviewFlaggedAt   *time.Time `json:"review_flagged_at,omitempty"`
}

type TransactionView struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	AmountMinor  int64     `json:"amount_minor"`
	BalanceAfter int64     `json:"balance_after"`
	ReferenceID  uuid.UUID `json:"reference_id"`
	Memo         *string   `json:"memo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type WalletView struct {
	UserID       uuid.UUID          `json:"user_id"`
	BalanceMinor int64              `json:"balance_minor"`
	Recent       []*TransactionView `json:"recent"`
}

type ReceiptView struct {
	ID           uuid.UUID  `json:"id"`
	SubmitterID  uuid.UUID  `json:"submitter_id"`
	Status       string     `json:"status"`
	Message      *string    `json:"message,omitempty"`
	StoreName    *string    `json:"store_name,omitempty"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	TotalMinor   *int64     `json:"total_minor,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	ProcessedAt  *time.Time `json:"processed_at,omitempty"`
}

// ClaimOutcome is the per-claim result of a receipt. Open claims the
// receipt did not match are reported with OutcomeUnmatched.
type ClaimOutcome struct {
	ClaimID           uuid.UUID  `json:"claim_id"`
	TargetDescription string     `json:"target_description"`
	ClaimStatus       string     `json:"claim_status"`
	Outcome           string     `json:"outcome"`
	LineItemIndex     *int32     `json:"line_item_index,omitempty"`
	Confidence        *float64   `json:"confidence,omitempty"`
	CreditMinor       *int64     `json:"credit_minor,omitempty"`
	Reason            *string    `json:"reason,omitempty"`
	Attempts          int32      `json:"attempts"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

const OutcomeUnmatched = "unmatched"

type ReceiptOutcomeView struct {
	Receipt  *ReceiptView    `json:"receipt"`
	Outcomes []*ClaimOutcome `json:"outcomes"`
}
