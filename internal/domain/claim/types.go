package claim

import "redemption-ledger/internal/pkg/errs"

type Status string

const (
	StatusClaimed   Status = "claimed"
	StatusRedeemed  Status = "redeemed"
	StatusExpired   Status = "expired"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var ErrInvalidStatus = errs.New("invalid claim status")

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusClaimed, StatusRedeemed, StatusExpired, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusClaimed
}

func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Outcome is the result the matching path asks resolve to apply.
type Outcome string

const (
	OutcomeRedeemed Outcome = "redeemed"
	OutcomeRejected Outcome = "rejected"
)

func (o Outcome) status() (Status, bool) {
	switch o {
	case OutcomeRedeemed:
		return StatusRedeemed, true
	case OutcomeRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}
