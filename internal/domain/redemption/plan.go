package redemption

import (
	"fmt"
	"time"

	"redemption-ledger/internal/domain/matching"
	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/pkg/errs"
)

// Plan is the decision for one receipt, derived only from its extraction and
// the submitter's open claims. Re-running it on the same inputs gives the
// same plan, which is what makes job redelivery safe.
type Plan struct {
	Status    receipt.Status
	Message   string
	Proposals []matching.Proposal
	// Err carries the taxonomy error for receipts that stop before crediting.
	Err error
}

type Planner struct {
	engine *matching.Engine
	maxAge time.Duration
}

func NewPlanner(engine *matching.Engine, maxAge time.Duration) *Planner {
	return &Planner{engine: engine, maxAge: maxAge}
}

func (p *Planner) Plan(ex receipt.Extraction, submittedAt time.Time, open []matching.Candidate) Plan {
	if err := ex.Validate(submittedAt); err != nil {
		return Plan{
			Status:  receipt.StatusInvalid,
			Message: "We couldn't read the details on this receipt.",
			Err:     err,
		}
	}
	if ex.IsStale(submittedAt, p.maxAge) {
		return Plan{
			Status:  receipt.StatusStale,
			Message: fmt.Sprintf("Receipts must be submitted within %d days of purchase.", int(p.maxAge.Hours()/24)),
			Err:     errs.ErrStaleReceipt,
		}
	}

	items := make([]matching.Item, len(ex.LineItems))
	for i, li := range ex.LineItems {
		items[i] = matching.Item{Index: i, Description: li.Description}
	}
	proposals := p.engine.Match(open, items)
	if len(proposals) == 0 {
		return Plan{
			Status:  receipt.StatusProcessed,
			Message: "No claimed offers matched this receipt.",
			Err:     errs.ErrNoConfidentMatch,
		}
	}
	return Plan{
		Status:    receipt.StatusProcessed,
		Message:   fmt.Sprintf("Matched %d claimed offer(s).", len(proposals)),
		Proposals: proposals,
	}
}
