//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork for usecase tests.
// Every unit of work runs under one mutex and a failed Within rolls the
// whole store back, which is enough to observe transactional behavior.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/domain/matching"
	"redemption-ledger/internal/domain/offer"
	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/infra"
	"redemption-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type matchKey struct {
	receiptID uuid.UUID
	claimID   uuid.UUID
}

type jobState struct {
	job         shared.Job
	status      string
	lockedUntil time.Time
	lastErr     string
}

type referralCode struct {
	code      string
	createdAt time.Time
}

type state struct {
	offers   map[uuid.UUID]offer.Offer
	claims   map[uuid.UUID]claim.ReconstructParams
	receipts map[uuid.UUID]receipt.ReconstructParams
	images   map[string][]byte
	matches  map[matchKey]redemption.Match
	ledger   []ledger.Transaction
	codes    map[uuid.UUID]referralCode
	edges    map[uuid.UUID]uuid.UUID
	jobs     []*jobState
}

func newState() *state {
	return &state{
		offers:   map[uuid.UUID]offer.Offer{},
		claims:   map[uuid.UUID]claim.ReconstructParams{},
		receipts: map[uuid.UUID]receipt.ReconstructParams{},
		images:   map[string][]byte{},
		matches:  map[matchKey]redemption.Match{},
		codes:    map[uuid.UUID]referralCode{},
		edges:    map[uuid.UUID]uuid.UUID{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.offers {
		c.offers[k] = v
	}
	for k, v := range s.claims {
		c.claims[k] = v
	}
	for k, v := range s.receipts {
		c.receipts[k] = v
	}
	for k, v := range s.images {
		c.images[k] = v
	}
	for k, v := range s.matches {
		c.matches[k] = v
	}
	c.ledger = append(c.ledger, s.ledger...)
	for k, v := range s.codes {
		c.codes[k] = v
	}
	for k, v := range s.edges {
		c.edges[k] = v
	}
	for _, j := range s.jobs {
		cp := *j
		c.jobs = append(c.jobs, &cp)
	}
	return c
}

// Store implements shared.UnitOfWork.
type Store struct {
	mu    sync.Mutex
	state *state

	// BeforeCommit, when set, runs at the end of every Within and can fail
	// the unit of work to exercise rollback paths.
	BeforeCommit func(tx shared.Tx) error

	// OnLockAccount, when set, observes every ledger account lock.
	OnLockAccount func(beneficiaryID uuid.UUID)
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	t := &tx{st: s.state, onLock: s.OnLockAccount}
	err := fn(ctx, t)
	if err == nil && s.BeforeCommit != nil {
		err = s.BeforeCommit(t)
	}
	if err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &tx{st: s.state.clone(), onLock: s.OnLockAccount})
}

func (s *Store) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &tx{st: s.state, onLock: s.OnLockAccount})
}

type tx struct {
	st     *state
	onLock func(uuid.UUID)
}

func (t *tx) Offers() shared.OfferRepository       { return offerRepo{t.st} }
func (t *tx) Claims() shared.ClaimRepository       { return claimRepo{t.st} }
func (t *tx) Receipts() shared.ReceiptRepository   { return receiptRepo{t.st} }
func (t *tx) Matches() shared.MatchRepository      { return matchRepo{t.st} }
func (t *tx) Ledger() shared.LedgerRepository      { return ledgerRepo{t.st, t.onLock} }
func (t *tx) Referrals() shared.ReferralRepository { return referralRepo{t.st} }
func (t *tx) Jobs() shared.JobRepository           { return jobRepo{t.st} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func duplicate(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindDuplicateKey)
}

// --- seeding and inspection ---

func (s *Store) PutOffer(o offer.Offer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.offers[o.ID] = o
}

func (s *Store) Offer(id uuid.UUID) (offer.Offer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.state.offers[id]
	return o, ok
}

func (s *Store) PutClaim(c *claim.Claim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.claims[c.ID()] = claimParams(c)
}

func (s *Store) Claim(id uuid.UUID) (*claim.Claim, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.claims[id]
	if !ok {
		return nil, false
	}
	return claim.Reconstruct(p), true
}

func (s *Store) PutReceipt(r *receipt.Receipt, image []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.receipts[r.ID()] = receiptParams(r)
	s.state.images[r.ImageDigest()] = image
}

func (s *Store) Receipt(id uuid.UUID) (*receipt.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.receipts[id]
	if !ok {
		return nil, false
	}
	return receipt.Reconstruct(p), true
}

func (s *Store) ReceiptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.receipts)
}

func (s *Store) Match(receiptID, claimID uuid.UUID) (redemption.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.state.matches[matchKey{receiptID, claimID}]
	return m, ok
}

// Transactions returns a beneficiary's ledger rows in append order.
func (s *Store) Transactions(beneficiaryID uuid.UUID) []ledger.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Transaction
	for _, t := range s.state.ledger {
		if t.BeneficiaryID == beneficiaryID {
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) Balance(beneficiaryID uuid.UUID) int64 {
	var sum int64
	for _, t := range s.Transactions(beneficiaryID) {
		sum += t.Amount
	}
	return sum
}

func (s *Store) PutReferralCode(userID uuid.UUID, code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.codes[userID] = referralCode{code: code}
}

func (s *Store) PutReferral(referredID, referrerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.edges[referredID] = referrerID
}

// QueuedJobs returns jobs of kind that are still waiting to run, ordered by
// run time. An empty kind matches every job.
func (s *Store) QueuedJobs(kind string) []shared.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []shared.Job
	for _, j := range s.state.jobs {
		if j.status != "queued" || (kind != "" && j.job.Kind != kind) {
			continue
		}
		out = append(out, j.job)
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].RunAt.Before(out[k].RunAt) })
	return out
}

// JobStatus reports the status and last error of the job with dedupeKey.
func (s *Store) JobStatus(dedupeKey string) (string, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.state.jobs {
		if j.job.DedupeKey == dedupeKey {
			return j.status, j.lastErr, true
		}
	}
	return "", "", false
}

// --- repositories ---

type offerRepo struct{ st *state }

func (r offerRepo) FindByID(_ context.Context, id uuid.UUID) (*offer.Offer, error) {
	o, ok := r.st.offers[id]
	if !ok {
		return nil, notFound("offer not found")
	}
	return &o, nil
}

func (r offerRepo) IncrementRedemptions(_ context.Context, id uuid.UUID) (bool, error) {
	o, ok := r.st.offers[id]
	if !ok {
		return false, nil
	}
	if o.MaxRedemptions != nil && o.CurrentRedemptions >= *o.MaxRedemptions {
		return false, nil
	}
	o.CurrentRedemptions++
	r.st.offers[id] = o
	return true, nil
}

type claimRepo struct{ st *state }

func claimParams(c *claim.Claim) claim.ReconstructParams {
	return claim.ReconstructParams{
		ID:              c.ID(),
		OfferID:         c.OfferID(),
		ListItemID:      c.ListItemID(),
		ClaimantID:      c.ClaimantID(),
		Status:          c.Status(),
		CreatedAt:       c.CreatedAt(),
		ExpiresAt:       c.ExpiresAt(),
		UpdatedAt:       c.UpdatedAt(),
		ResolvedAt:      c.ResolvedAt(),
		ReceiptID:       c.ReceiptID(),
		Reason:          c.Reason(),
		ReviewFlaggedAt: c.ReviewFlaggedAt(),
	}
}

func (r claimRepo) Create(_ context.Context, c *claim.Claim) error {
	if _, ok := r.st.offers[c.OfferID()]; !ok {
		return infra.WrapRepoErr("claim offer missing", nil, infra.KindForeignKeyViolated)
	}
	for _, p := range r.st.claims {
		if p.Status == claim.StatusClaimed && p.OfferID == c.OfferID() && p.ListItemID == c.ListItemID() {
			return duplicate("open slot already claimed")
		}
	}
	r.st.claims[c.ID()] = claimParams(c)
	return nil
}

func (r claimRepo) FindByID(_ context.Context, id uuid.UUID) (*claim.Claim, error) {
	p, ok := r.st.claims[id]
	if !ok {
		return nil, notFound("claim not found")
	}
	return claim.Reconstruct(p), nil
}

func (r claimRepo) LockByID(ctx context.Context, id uuid.UUID) (*claim.Claim, error) {
	return r.FindByID(ctx, id)
}

func (r claimRepo) Save(_ context.Context, c *claim.Claim) error {
	if _, ok := r.st.claims[c.ID()]; !ok {
		return notFound("claim not found")
	}
	r.st.claims[c.ID()] = claimParams(c)
	return nil
}

func (r claimRepo) ListOpenCandidates(_ context.Context, claimantID uuid.UUID, now time.Time) ([]matching.Candidate, error) {
	var out []matching.Candidate
	for _, p := range r.st.claims {
		if p.ClaimantID != claimantID || p.Status != claim.StatusClaimed || !p.ExpiresAt.After(now) {
			continue
		}
		o := r.st.offers[p.OfferID]
		out = append(out, matching.Candidate{
			ClaimID:     p.ID,
			CreatedAt:   p.CreatedAt,
			Description: o.TargetDescription,
			Category:    o.Category,
		})
	}
	sort.Slice(out, func(i, k int) bool {
		if !out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].CreatedAt.Before(out[k].CreatedAt)
		}
		return out[i].ClaimID.String() < out[k].ClaimID.String()
	})
	return out, nil
}

func (r claimRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, p := range r.st.claims {
		c := claim.Reconstruct(p)
		if c.Expire(now) {
			r.st.claims[id] = claimParams(c)
			n++
		}
	}
	return n, nil
}

type receiptRepo struct{ st *state }

func receiptParams(r *receipt.Receipt) receipt.ReconstructParams {
	return receipt.ReconstructParams{
		ID:          r.ID(),
		SubmitterID: r.SubmitterID(),
		ImageDigest: r.ImageDigest(),
		Fingerprint: r.Fingerprint(),
		Status:      r.Status(),
		Message:     r.Message(),
		Extraction:  r.Extraction(),
		SubmittedAt: r.SubmittedAt(),
		ProcessedAt: r.ProcessedAt(),
	}
}

func (r receiptRepo) Create(_ context.Context, rc *receipt.Receipt, image []byte) error {
	for _, p := range r.st.receipts {
		if p.ImageDigest == rc.ImageDigest() {
			return duplicate("receipt image already stored")
		}
	}
	r.st.images[rc.ImageDigest()] = image
	r.st.receipts[rc.ID()] = receiptParams(rc)
	return nil
}

func (r receiptRepo) FindByID(_ context.Context, id uuid.UUID) (*receipt.Receipt, error) {
	p, ok := r.st.receipts[id]
	if !ok {
		return nil, notFound("receipt not found")
	}
	return receipt.Reconstruct(p), nil
}

func (r receiptRepo) FindByImageDigest(_ context.Context, digest string) (*receipt.Receipt, error) {
	for _, p := range r.st.receipts {
		if p.ImageDigest == digest {
			return receipt.Reconstruct(p), nil
		}
	}
	return nil, notFound("receipt not found")
}

func (r receiptRepo) FindByFingerprint(_ context.Context, fingerprint string) (*receipt.Receipt, error) {
	if fingerprint == "" {
		return nil, notFound("receipt not found")
	}
	for _, p := range r.st.receipts {
		if p.Fingerprint == fingerprint {
			return receipt.Reconstruct(p), nil
		}
	}
	return nil, notFound("receipt not found")
}

func (r receiptRepo) LoadImage(_ context.Context, digest string) ([]byte, error) {
	img, ok := r.st.images[digest]
	if !ok {
		return nil, notFound("receipt image not found")
	}
	return img, nil
}

func (r receiptRepo) Save(_ context.Context, rc *receipt.Receipt) error {
	if _, ok := r.st.receipts[rc.ID()]; !ok {
		return notFound("receipt not found")
	}
	if fp := rc.Fingerprint(); fp != "" {
		for id, p := range r.st.receipts {
			if id != rc.ID() && p.Fingerprint == fp {
				return duplicate("receipt fingerprint already recorded")
			}
		}
	}
	r.st.receipts[rc.ID()] = receiptParams(rc)
	return nil
}

func (r receiptRepo) PurgeBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, p := range r.st.receipts {
		if p.Status != receipt.StatusAccepted && p.SubmittedAt.Before(cutoff) {
			delete(r.st.receipts, id)
			n++
		}
	}
	for digest := range r.st.images {
		used := false
		for _, p := range r.st.receipts {
			if p.ImageDigest == digest {
				used = true
				break
			}
		}
		if !used {
			delete(r.st.images, digest)
		}
	}
	return n, nil
}

type matchRepo struct{ st *state }

func (r matchRepo) Insert(_ context.Context, m *redemption.Match) (bool, error) {
	k := matchKey{m.ReceiptID, m.ClaimID}
	if _, ok := r.st.matches[k]; ok {
		return false, nil
	}
	r.st.matches[k] = *m
	return true, nil
}

func (r matchRepo) Find(_ context.Context, receiptID, claimID uuid.UUID) (*redemption.Match, error) {
	m, ok := r.st.matches[matchKey{receiptID, claimID}]
	if !ok {
		return nil, notFound("match not found")
	}
	return &m, nil
}

func (r matchRepo) Save(_ context.Context, m *redemption.Match) error {
	k := matchKey{m.ReceiptID, m.ClaimID}
	if _, ok := r.st.matches[k]; !ok {
		return notFound("match not found")
	}
	r.st.matches[k] = *m
	return nil
}

func (r matchRepo) ListByReceipt(_ context.Context, receiptID uuid.UUID) ([]*redemption.Match, error) {
	var out []*redemption.Match
	for k, m := range r.st.matches {
		if k.receiptID == receiptID {
			cp := m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].LineIndex < out[k].LineIndex })
	return out, nil
}

type ledgerRepo struct {
	st     *state
	onLock func(uuid.UUID)
}

func (r ledgerRepo) LockAccount(_ context.Context, beneficiaryID uuid.UUID) error {
	if r.onLock != nil {
		r.onLock(beneficiaryID)
	}
	return nil
}

func (r ledgerRepo) FindByReference(_ context.Context, referenceID uuid.UUID, kind ledger.Kind) (*ledger.Transaction, error) {
	for _, t := range r.st.ledger {
		if t.ReferenceID == referenceID && t.Kind == kind {
			cp := t
			return &cp, nil
		}
	}
	return nil, notFound("ledger transaction not found")
}

func (r ledgerRepo) Balance(_ context.Context, beneficiaryID uuid.UUID) (int64, error) {
	var sum int64
	for _, t := range r.st.ledger {
		if t.BeneficiaryID == beneficiaryID {
			sum += t.Amount
		}
	}
	return sum, nil
}

func (r ledgerRepo) Append(_ context.Context, t *ledger.Transaction) error {
	for _, existing := range r.st.ledger {
		if existing.ReferenceID == t.ReferenceID && existing.Kind == t.Kind {
			return duplicate("ledger reference already recorded")
		}
	}
	r.st.ledger = append(r.st.ledger, *t)
	return nil
}

type referralRepo struct{ st *state }

func (r referralRepo) FindCodeByUser(_ context.Context, userID uuid.UUID) (string, error) {
	c, ok := r.st.codes[userID]
	if !ok {
		return "", notFound("referral code not found")
	}
	return c.code, nil
}

func (r referralRepo) FindUserByCode(_ context.Context, code string) (uuid.UUID, error) {
	for userID, c := range r.st.codes {
		if c.code == code {
			return userID, nil
		}
	}
	return uuid.Nil, notFound("referral code not found")
}

func (r referralRepo) CreateCode(_ context.Context, userID uuid.UUID, code string, now time.Time) (bool, error) {
	if _, ok := r.st.codes[userID]; ok {
		return false, nil
	}
	for _, c := range r.st.codes {
		if c.code == code {
			return false, duplicate("referral code taken")
		}
	}
	r.st.codes[userID] = referralCode{code: code, createdAt: now}
	return true, nil
}

func (r referralRepo) FindReferrer(_ context.Context, referredID uuid.UUID) (*uuid.UUID, error) {
	referrer, ok := r.st.edges[referredID]
	if !ok {
		return nil, nil
	}
	return &referrer, nil
}

func (r referralRepo) CreateEdge(_ context.Context, referredID, referrerID uuid.UUID, _ string, _ time.Time) (bool, error) {
	if _, ok := r.st.edges[referredID]; ok {
		return false, nil
	}
	r.st.edges[referredID] = referrerID
	return true, nil
}

type jobRepo struct{ st *state }

func (r jobRepo) Enqueue(_ context.Context, j shared.NewJob) (bool, error) {
	for _, existing := range r.st.jobs {
		if existing.job.DedupeKey == j.DedupeKey {
			return false, nil
		}
	}
	r.st.jobs = append(r.st.jobs, &jobState{
		job: shared.Job{
			ID:        uuid.New(),
			Kind:      j.Kind,
			DedupeKey: j.DedupeKey,
			Payload:   j.Payload,
			RunAt:     j.RunAt,
		},
		status: "queued",
	})
	return true, nil
}

func (r jobRepo) Lease(_ context.Context, now, leaseUntil time.Time, batch int) ([]*shared.Job, error) {
	ready := make([]*jobState, 0)
	for _, j := range r.st.jobs {
		if (j.status == "queued" && !j.job.RunAt.After(now)) || (j.status == "running" && j.lockedUntil.Before(now)) {
			ready = append(ready, j)
		}
	}
	sort.SliceStable(ready, func(i, k int) bool { return ready[i].job.RunAt.Before(ready[k].job.RunAt) })
	if len(ready) > batch {
		ready = ready[:batch]
	}
	out := make([]*shared.Job, 0, len(ready))
	for _, j := range ready {
		j.status = "running"
		j.lockedUntil = leaseUntil
		j.job.Attempts++
		cp := j.job
		out = append(out, &cp)
	}
	return out, nil
}

func (r jobRepo) find(id uuid.UUID) (*jobState, error) {
	for _, j := range r.st.jobs {
		if j.job.ID == id {
			return j, nil
		}
	}
	return nil, notFound("job not found")
}

func (r jobRepo) Complete(_ context.Context, id uuid.UUID, _ time.Time) error {
	j, err := r.find(id)
	if err != nil {
		return err
	}
	j.status = "done"
	return nil
}

func (r jobRepo) Reschedule(_ context.Context, id uuid.UUID, runAt time.Time, lastErr string, _ time.Time) error {
	j, err := r.find(id)
	if err != nil {
		return err
	}
	j.status = "queued"
	j.job.RunAt = runAt
	j.lastErr = lastErr
	return nil
}

func (r jobRepo) Bury(_ context.Context, id uuid.UUID, lastErr string, _ time.Time) error {
	j, err := r.find(id)
	if err != nil {
		return err
	}
	j.status = "dead"
	j.lastErr = lastErr
	return nil
}
