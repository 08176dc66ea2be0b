package redemption

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomePending  Outcome = "pending"
	OutcomeCredited Outcome = "credited"
	OutcomeDeclined Outcome = "declined"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeReview   Outcome = "review"
	// OutcomeUnmatched is reported for open claims a receipt did not match.
	// It is never stored.
	OutcomeUnmatched Outcome = "unmatched"
)

func (o Outcome) String() string { return string(o) }

// IsSettled reports whether no further attempts will be made.
func (o Outcome) IsSettled() bool {
	return o == OutcomeCredited || o == OutcomeDeclined || o == OutcomeSkipped
}

// Match ties one receipt line to one claim and tracks its redemption.
type Match struct {
	ReceiptID   uuid.UUID
	ClaimID     uuid.UUID
	LineIndex   int
	Confidence  float64
	Outcome     Outcome
	Reason      string
	CreditMinor *int64
	Attempts    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewMatch(receiptID, claimID uuid.UUID, lineIndex int, confidence float64, now time.Time) *Match {
	return &Match{
		ReceiptID:  receiptID,
		ClaimID:    claimID,
		LineIndex:  lineIndex,
		Confidence: confidence,
		Outcome:    OutcomePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (m *Match) Credit(amount int64, now time.Time) {
	m.Outcome = OutcomeCredited
	m.CreditMinor = &amount
	m.Reason = ""
	m.UpdatedAt = now
}

func (m *Match) Decline(reason string, now time.Time) {
	m.Outcome = OutcomeDeclined
	m.Reason = reason
	m.UpdatedAt = now
}

func (m *Match) Skip(reason string, now time.Time) {
	m.Outcome = OutcomeSkipped
	m.Reason = reason
	m.UpdatedAt = now
}

// Failed records a transient failure. The match stays pending while retries
// remain and moves to review once they are exhausted.
func (m *Match) Failed(reason string, exhausted bool, now time.Time) {
	m.Reason = reason
	m.UpdatedAt = now
	if exhausted {
		m.Outcome = OutcomeReview
	}
}
