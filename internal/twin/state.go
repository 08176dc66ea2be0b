package twin

import "sync"

// OfferRule decides how the fake authority answers for one offer.
type OfferRule struct {
	Approve     bool   `json:"approve"`
	CreditMinor int64  `json:"credit_minor_units"`
	MarginMinor int64  `json:"margin_minor_units"`
	Reason      string `json:"reason,omitempty"`
}

func DefaultRule() OfferRule {
	return OfferRule{Approve: true, CreditMinor: 100, MarginMinor: 100}
}

type decision struct {
	status int
	body   []byte
}

type state struct {
	mu          sync.Mutex
	defaultRule OfferRule
	rules       map[string]OfferRule
	decisions   map[string]decision
	calls       map[string]int
}

func newState() *state {
	return &state{
		defaultRule: DefaultRule(),
		rules:       make(map[string]OfferRule),
		decisions:   make(map[string]decision),
		calls:       make(map[string]int),
	}
}

func (s *state) rule(offerID string) OfferRule {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rules[offerID]; ok {
		return r
	}
	return s.defaultRule
}

func (s *state) setRule(offerID string, r OfferRule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if offerID == "" {
		s.defaultRule = r
		return
	}
	s.rules[offerID] = r
}

// remember stores the first decision for key and returns whichever decision
// is now on record.
func (s *state) remember(key string, d decision) decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[key]++
	if prev, ok := s.decisions[key]; ok {
		return prev
	}
	s.decisions[key] = d
	return d
}

func (s *state) callCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.calls))
	for k, v := range s.calls {
		out[k] = v
	}
	return out
}

func (s *state) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultRule = DefaultRule()
	s.rules = make(map[string]OfferRule)
	s.decisions = make(map[string]decision)
	s.calls = make(map[string]int)
}
