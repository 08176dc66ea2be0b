package shared

import (
	"time"

	"github.com/google/uuid"
)

type NewJob struct {
	Kind      string
	DedupeKey string
	Payload   []byte
	RunAt     time.Time
}

// Job is a leased unit of background work. Attempts counts leases,
// including the current one.
type Job struct {
	ID        uuid.UUID
	Kind      string
	DedupeKey string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
}
