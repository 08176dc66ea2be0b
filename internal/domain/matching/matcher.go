package matching

import (
	"bytes"
	"sort"
	"time"

	"redemption-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultThreshold     = 0.75
	DefaultCategoryBoost = 0.10
)

type TieBreak string

const (
	TieBreakEarliestClaim TieBreak = "earliest_claim"
	TieBreakLatestClaim   TieBreak = "latest_claim"
)

var (
	ErrInvalidTieBreak  = errs.New("invalid tie break")
	ErrInvalidThreshold = errs.New("threshold must be within (0, 1]")
)

func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(s) {
	case TieBreakEarliestClaim, TieBreakLatestClaim:
		return TieBreak(s), nil
	case "":
		return TieBreakEarliestClaim, nil
	default:
		return "", ErrInvalidTieBreak
	}
}

type Options struct {
	Threshold     float64
	CategoryBoost float64
	TieBreak      TieBreak
}

func DefaultOptions() Options {
	return Options{
		Threshold:     DefaultThreshold,
		CategoryBoost: DefaultCategoryBoost,
		TieBreak:      TieBreakEarliestClaim,
	}
}

// Candidate is an open claim seen through its offer.
type Candidate struct {
	ClaimID     uuid.UUID
	CreatedAt   time.Time
	Description string
	Category    string
}

type Item struct {
	Index       int
	Description string
}

type Proposal struct {
	ClaimID       uuid.UUID
	LineIndex     int
	Similarity    float64
	CategoryMatch bool
	Confidence    float64
}

type Engine struct {
	normalizer *Normalizer
	opts       Options
}

func NewEngine(normalizer *Normalizer, opts Options) (*Engine, error) {
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return nil, ErrInvalidThreshold
	}
	if _, err := ParseTieBreak(string(opts.TieBreak)); err != nil {
		return nil, err
	}
	if opts.TieBreak == "" {
		opts.TieBreak = TieBreakEarliestClaim
	}
	return &Engine{normalizer: normalizer, opts: opts}, nil
}

func (e *Engine) Options() Options {
	return e.opts
}

// Score compares one candidate against one line item description.
func (e *Engine) Score(c Candidate, description string) Proposal {
	item := e.normalizer.Text(description)
	target := e.normalizer.Text(c.Description)

	sim := Similarity(item, target)
	catMatch := e.normalizer.CategoryMatch(item, c.Category)
	conf := sim
	if catMatch {
		conf = min(1, sim+e.opts.CategoryBoost)
	}
	return Proposal{
		ClaimID:       c.ClaimID,
		Similarity:    sim,
		CategoryMatch: catMatch,
		Confidence:    conf,
	}
}

// Match scores every (candidate, item) pair, drops pairs under the threshold
// and then pairs greedily by descending confidence. Each claim and each line
// item is used at most once.
func (e *Engine) Match(candidates []Candidate, items []Item) []Proposal {
	createdAt := make(map[uuid.UUID]time.Time, len(candidates))
	var scored []Proposal
	for _, c := range candidates {
		createdAt[c.ClaimID] = c.CreatedAt
		for _, it := range items {
			p := e.Score(c, it.Description)
			if p.Confidence < e.opts.Threshold {
				continue
			}
			p.LineIndex = it.Index
			scored = append(scored, p)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		ta, tb := createdAt[a.ClaimID], createdAt[b.ClaimID]
		if !ta.Equal(tb) {
			if e.opts.TieBreak == TieBreakLatestClaim {
				return ta.After(tb)
			}
			return ta.Before(tb)
		}
		if a.ClaimID != b.ClaimID {
			return bytes.Compare(a.ClaimID[:], b.ClaimID[:]) < 0
		}
		return a.LineIndex < b.LineIndex
	})

	usedClaims := make(map[uuid.UUID]struct{})
	usedItems := make(map[int]struct{})
	accepted := make([]Proposal, 0, min(len(candidates), len(items)))
	for _, p := range scored {
		if _, ok := usedClaims[p.ClaimID]; ok {
			continue
		}
		if _, ok := usedItems[p.LineIndex]; ok {
			continue
		}
		usedClaims[p.ClaimID] = struct{}{}
		usedItems[p.LineIndex] = struct{}{}
		accepted = append(accepted, p)
	}
	return accepted
}
