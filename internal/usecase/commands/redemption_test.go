//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"testing"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/domain/matching"
	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/domain/referral"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/tests/common/builder"
	"redemption-ledger/tests/common/memstore"
	commandsmock "redemption-ledger/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RedemptionTestSuite struct {
	suite.Suite
	ctx      context.Context
	ctrl     *gomock.Controller
	store    *memstore.Store
	clock    *clock.MockClock
	reader   *commandsmock.MockReceiptReader
	gateway  *commandsmock.MockRedemptionGateway
	receipts commands.ReceiptCommands
	uc       commands.RedemptionCommands

	member   uuid.UUID
	referrer uuid.UUID
	milk     *builder.OfferBuilder
	claim    *claim.Claim
	receipt  *builder.ReceiptBuilder
}

func TestRedemptionSuite(t *testing.T) {
	suite.Run(t, new(RedemptionTestSuite))
}

func (s *RedemptionTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.receipt = builder.NewReceiptBuilder()
	s.clock = clock.NewMockClock(s.receipt.SubmittedAt)
	s.reader = commandsmock.NewMockReceiptReader(s.ctrl)
	s.gateway = commandsmock.NewMockRedemptionGateway(s.ctrl)

	vocab, err := matching.DefaultVocabulary()
	s.Require().NoError(err)
	engine, err := matching.NewEngine(matching.NewNormalizer(vocab), matching.DefaultOptions())
	s.Require().NoError(err)
	policy, err := referral.NewPolicy(0.30, referral.BaseMargin)
	s.Require().NoError(err)

	s.receipts = commands.NewReceiptUseCase(s.store, s.clock, 1<<20, nil)
	s.uc = commands.NewRedemptionUseCase(s.store, s.clock, s.reader, s.gateway, commands.RedemptionConfig{
		Planner: redemption.NewPlanner(engine, 14*24*time.Hour),
		Policy:  policy,
		Retry:   redemption.NewRetryPolicy([]time.Duration{time.Minute, 5 * time.Minute}),
	}, nil)

	s.member = uuid.New()
	s.referrer = uuid.New()
	s.receipt.BySubmitter(s.member)
	s.store.PutReferral(s.member, s.referrer)

	s.milk = builder.NewOfferBuilder().WithCap(10, 0)
	s.store.PutOffer(s.milk.BuildDomain())
	s.claim = builder.NewClaimBuilder().
		ForOffer(s.milk.ID).
		ByClaimant(s.member).
		CreatedAtTime(s.receipt.SubmittedAt.Add(-48 * time.Hour)).
		BuildDomain()
	s.store.PutClaim(s.claim)
}

func (s *RedemptionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// submitAndProcess uploads the builder's receipt and runs processing with
// the builder's extraction.
func (s *RedemptionTestSuite) submitAndProcess() uuid.UUID {
	return s.submitAndProcessReceipt(s.receipt)
}

func (s *RedemptionTestSuite) submitAndProcessReceipt(b *builder.ReceiptBuilder) uuid.UUID {
	res, err := s.receipts.SubmitReceipt(s.ctx, s.member, b.Image)
	s.Require().NoError(err)
	s.Require().Equal(receipt.StatusAccepted, res.Status)

	s.reader.EXPECT().Extract(gomock.Any(), b.Image).Return(b.BuildExtraction(), nil)
	s.Require().NoError(s.uc.ProcessReceipt(s.ctx, res.ReceiptID))
	return res.ReceiptID
}

func (s *RedemptionTestSuite) redeemJobs() []commands.RedeemClaimPayload {
	var out []commands.RedeemClaimPayload
	for _, j := range s.store.QueuedJobs(commands.JobRedeemClaim) {
		var p commands.RedeemClaimPayload
		s.Require().NoError(json.Unmarshal(j.Payload, &p))
		out = append(out, p)
	}
	return out
}

func (s *RedemptionTestSuite) TestApprovedRedemptionCreditsClaimantAndReferrer() {
	receiptID := s.submitAndProcess()

	r, ok := s.store.Receipt(receiptID)
	s.Require().True(ok)
	s.Equal(receipt.StatusProcessed, r.Status())
	s.NotEmpty(r.Fingerprint())

	jobs := s.redeemJobs()
	s.Require().Len(jobs, 1)
	s.Equal(commands.RedeemClaimPayload{ReceiptID: receiptID, ClaimID: s.claim.ID(), Attempt: 1}, jobs[0])

	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req redemption.Request) (redemption.Approval, error) {
			s.Equal(s.claim.ID(), req.ClaimID)
			s.Equal(s.milk.ID, req.OfferID)
			s.Equal("ORGANIC WHOLE MILK 1GAL", req.Line.Description)
			return redemption.Approval{CreditMinor: 150, MarginMinor: 50, AuthorityRef: "auth-1"}, nil
		})

	outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
	s.Require().NoError(err)
	s.Equal(redemption.OutcomeCredited, outcome)

	c, _ := s.store.Claim(s.claim.ID())
	s.Equal(claim.StatusRedeemed, c.Status())
	s.Require().NotNil(c.ReceiptID())
	s.Equal(receiptID, *c.ReceiptID())

	s.Equal(int64(150), s.store.Balance(s.member))
	s.Equal(int64(15), s.store.Balance(s.referrer))
	memberTxs := s.store.Transactions(s.member)
	s.Require().Len(memberTxs, 1)
	s.Equal(ledger.KindRedemptionCredit, memberTxs[0].Kind)
	s.Equal(s.claim.ID(), memberTxs[0].ReferenceID)
	s.Equal(int64(150), memberTxs[0].BalanceAfter)

	o, _ := s.store.Offer(s.milk.ID)
	s.Equal(int32(1), o.CurrentRedemptions)

	m, _ := s.store.Match(receiptID, s.claim.ID())
	s.Equal(1, m.Attempts)
	s.Require().NotNil(m.CreditMinor)
	s.Equal(int64(150), *m.CreditMinor)
}

func (s *RedemptionTestSuite) TestRedeliveredAttemptIsNoOp() {
	receiptID := s.submitAndProcess()
	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		Return(redemption.Approval{CreditMinor: 150, MarginMinor: 50}, nil).
		Times(1)

	for range 3 {
		outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
		s.Require().NoError(err)
		s.Equal(redemption.OutcomeCredited, outcome)
	}

	s.Len(s.store.Transactions(s.member), 1)
	s.Len(s.store.Transactions(s.referrer), 1)
	o, _ := s.store.Offer(s.milk.ID)
	s.Equal(int32(1), o.CurrentRedemptions)
}

func (s *RedemptionTestSuite) TestReprocessingKeepsOneMatchAndJob() {
	receiptID := s.submitAndProcess()

	// a finished receipt is not read again
	s.Require().NoError(s.uc.ProcessReceipt(s.ctx, receiptID))
	s.Len(s.redeemJobs(), 1)
}

func (s *RedemptionTestSuite) TestRejectedRedemption() {
	receiptID := s.submitAndProcess()
	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		Return(redemption.Approval{}, errs.Mark(&redemption.Rejection{Reason: "wrong product size"}, errs.ErrGatewayRejected))

	outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
	s.Require().NoError(err)
	s.Equal(redemption.OutcomeDeclined, outcome)

	c, _ := s.store.Claim(s.claim.ID())
	s.Equal(claim.StatusRejected, c.Status())
	s.Equal("wrong product size", c.Reason())
	s.Zero(s.store.Balance(s.member))
	s.Len(s.redeemJobs(), 1)
}

func (s *RedemptionTestSuite) TestTransientFailuresRetryThenFlagForReview() {
	receiptID := s.submitAndProcess()
	unavailable := errs.Mark(errs.New("connection refused"), errs.ErrGatewayUnavailable)
	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).Return(redemption.Approval{}, unavailable).Times(3)

	for attempt := 1; attempt <= 2; attempt++ {
		outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), attempt)
		s.Require().NoError(err)
		s.Equal(redemption.OutcomePending, outcome)

		jobs := s.redeemJobs()
		s.Require().Len(jobs, attempt+1)
		s.Equal(attempt+1, jobs[attempt].Attempt)
	}
	queued := s.store.QueuedJobs(commands.JobRedeemClaim)
	s.Equal(s.receipt.SubmittedAt.Add(5*time.Minute), queued[len(queued)-1].RunAt)

	outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 3)
	s.Require().NoError(err)
	s.Equal(redemption.OutcomeReview, outcome)
	s.Len(s.redeemJobs(), 3)

	c, _ := s.store.Claim(s.claim.ID())
	s.Equal(claim.StatusClaimed, c.Status())
	s.NotNil(c.ReviewFlaggedAt())
	s.Zero(s.store.Balance(s.member))

	m, _ := s.store.Match(receiptID, s.claim.ID())
	s.Equal(3, m.Attempts)
	s.Equal("redemption authority unavailable", m.Reason)
}

func (s *RedemptionTestSuite) TestTimeoutIsReportedAsTimeout() {
	receiptID := s.submitAndProcess()
	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		Return(redemption.Approval{}, errs.Mark(errs.Wrap(context.DeadlineExceeded, "authority"), errs.ErrGatewayUnavailable))

	outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
	s.Require().NoError(err)
	s.Equal(redemption.OutcomePending, outcome)

	m, _ := s.store.Match(receiptID, s.claim.ID())
	s.Equal("redemption authority timed out", m.Reason)
}

func (s *RedemptionTestSuite) TestClaimCancelledBeforeRedemptionIsSkipped() {
	receiptID := s.submitAndProcess()
	c, _ := s.store.Claim(s.claim.ID())
	_, err := c.Cancel(s.member, s.clock.Now())
	s.Require().NoError(err)
	s.store.PutClaim(c)

	outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
	s.Require().NoError(err)
	s.Equal(redemption.OutcomeSkipped, outcome)
	s.Zero(s.store.Balance(s.member))
}

func (s *RedemptionTestSuite) TestTwoReceiptsRacingForOneClaimCreditOnce() {
	first := s.submitAndProcess()
	// a different purchase of the same product
	other := builder.NewReceiptBuilder().BySubmitter(s.member).With(func(b *builder.ReceiptBuilder) {
		b.StoreName = "Corner Grocer"
	})
	second := s.submitAndProcessReceipt(other)
	s.Require().Len(s.redeemJobs(), 2)

	// both attempts may reach the authority before either resolves
	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		Return(redemption.Approval{CreditMinor: 150, MarginMinor: 50}, nil).
		MinTimes(1).MaxTimes(2)

	outcomes := make([]redemption.Outcome, 2)
	var wg sync.WaitGroup
	for i, receiptID := range []uuid.UUID{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
			s.NoError(err)
			outcomes[i] = outcome
		}()
	}
	wg.Wait()

	slices.Sort(outcomes)
	s.Equal([]redemption.Outcome{redemption.OutcomeCredited, redemption.OutcomeSkipped}, outcomes)
	s.Len(s.store.Transactions(s.member), 1)
	s.Len(s.store.Transactions(s.referrer), 1)
	s.Equal(int64(150), s.store.Balance(s.member))
	s.Equal(int64(15), s.store.Balance(s.referrer))

	c, _ := s.store.Claim(s.claim.ID())
	s.Equal(claim.StatusRedeemed, c.Status())
	o, _ := s.store.Offer(s.milk.ID)
	s.Equal(int32(1), o.CurrentRedemptions)
}

func (s *RedemptionTestSuite) TestCancelRacingRedemptionHasOneWinner() {
	receiptID := s.submitAndProcess()
	claims := commands.NewClaimUseCase(s.store, s.clock, 0)
	s.gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).
		Return(redemption.Approval{CreditMinor: 150, MarginMinor: 50}, nil).
		MaxTimes(1)

	var (
		wg        sync.WaitGroup
		outcome   redemption.Outcome
		redeemErr error
		cancelErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		outcome, redeemErr = s.uc.RedeemMatch(s.ctx, receiptID, s.claim.ID(), 1)
	}()
	go func() {
		defer wg.Done()
		_, cancelErr = claims.CancelClaim(s.ctx, s.claim.ID(), s.member)
	}()
	wg.Wait()

	s.Require().NoError(redeemErr)
	c, _ := s.store.Claim(s.claim.ID())
	switch outcome {
	case redemption.OutcomeCredited:
		s.True(errs.Is(cancelErr, errs.ErrInvalidTransition), "cancel after redemption: %v", cancelErr)
		s.Equal(claim.StatusRedeemed, c.Status())
		s.Equal(int64(150), s.store.Balance(s.member))
		s.Len(s.store.Transactions(s.member), 1)
	case redemption.OutcomeSkipped:
		s.NoError(cancelErr)
		s.Equal(claim.StatusCancelled, c.Status())
		s.Zero(s.store.Balance(s.member))
		s.Empty(s.store.Transactions(s.referrer))
	default:
		s.Failf("unexpected outcome", "got %q", outcome)
	}
}

func (s *RedemptionTestSuite) TestDuplicateContentIsDetected() {
	s.submitAndProcess()

	// same purchase photographed again: new bytes, same extraction
	again := s.receipt.Image
	s.receipt.Image = append([]byte("retake-"), again...)
	res, err := s.receipts.SubmitReceipt(s.ctx, s.member, s.receipt.Image)
	s.Require().NoError(err)

	s.reader.EXPECT().Extract(gomock.Any(), s.receipt.Image).Return(s.receipt.BuildExtraction(), nil)
	s.Require().NoError(s.uc.ProcessReceipt(s.ctx, res.ReceiptID))

	r, _ := s.store.Receipt(res.ReceiptID)
	s.Equal(receipt.StatusDuplicate, r.Status())
	s.Equal(commands.DuplicateReceiptMessage, r.Message())
	s.Len(s.redeemJobs(), 1)
}

func (s *RedemptionTestSuite) TestStaleReceipt() {
	s.receipt.PurchasedDaysAgo(20)
	receiptID := s.submitAndProcess()

	r, _ := s.store.Receipt(receiptID)
	s.Equal(receipt.StatusStale, r.Status())
	s.Empty(s.redeemJobs())
	_, matched := s.store.Match(receiptID, s.claim.ID())
	s.False(matched)
}

func (s *RedemptionTestSuite) TestUnreadableReceipt() {
	res, err := s.receipts.SubmitReceipt(s.ctx, s.member, s.receipt.Image)
	s.Require().NoError(err)
	s.reader.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(receipt.Extraction{}, errs.Wrap(receipt.ErrUnreadable, "ocr"))

	s.Require().NoError(s.uc.ProcessReceipt(s.ctx, res.ReceiptID))

	r, _ := s.store.Receipt(res.ReceiptID)
	s.Equal(receipt.StatusUnreadable, r.Status())
	s.Empty(s.redeemJobs())
}

func (s *RedemptionTestSuite) TestReaderFailureIsRetriedThenFailed() {
	res, err := s.receipts.SubmitReceipt(s.ctx, s.member, s.receipt.Image)
	s.Require().NoError(err)
	s.reader.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(receipt.Extraction{}, errs.New("ocr timeout"))

	err = s.uc.ProcessReceipt(s.ctx, res.ReceiptID)
	s.Require().Error(err)
	r, _ := s.store.Receipt(res.ReceiptID)
	s.Equal(receipt.StatusAccepted, r.Status())

	s.Require().NoError(s.uc.FailReceipt(s.ctx, res.ReceiptID, err.Error()))
	r, _ = s.store.Receipt(res.ReceiptID)
	s.Equal(receipt.StatusFailed, r.Status())
}

func (s *RedemptionTestSuite) TestUnknownTargetsAreIgnored() {
	s.Require().NoError(s.uc.ProcessReceipt(s.ctx, uuid.New()))

	outcome, err := s.uc.RedeemMatch(s.ctx, uuid.New(), s.claim.ID(), 1)
	s.Require().NoError(err)
	s.Equal(redemption.OutcomeUnmatched, outcome)
}

func TestOfferCapOverflowStillCredits(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := memstore.New()
	b := builder.NewReceiptBuilder()
	clk := clock.NewMockClock(b.SubmittedAt)
	reader := commandsmock.NewMockReceiptReader(ctrl)
	gateway := commandsmock.NewMockRedemptionGateway(ctrl)

	vocab, err := matching.DefaultVocabulary()
	require.NoError(t, err)
	engine, err := matching.NewEngine(matching.NewNormalizer(vocab), matching.DefaultOptions())
	require.NoError(t, err)
	uc := commands.NewRedemptionUseCase(store, clk, reader, gateway, commands.RedemptionConfig{
		Planner: redemption.NewPlanner(engine, 14*24*time.Hour),
		Retry:   redemption.NewRetryPolicy(nil),
	}, nil)

	member := uuid.New()
	o := builder.NewOfferBuilder().WithCap(1, 0)
	store.PutOffer(o.BuildDomain())
	c := builder.NewClaimBuilder().ForOffer(o.ID).ByClaimant(member).CreatedAtTime(b.SubmittedAt.Add(-time.Hour)).BuildDomain()
	store.PutClaim(c)
	// the last slot went to someone else after this claim was made
	store.PutOffer(o.WithCap(1, 1).BuildDomain())

	r := b.BySubmitter(member).BuildDomain()
	store.PutReceipt(r, b.Image)
	reader.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(b.BuildExtraction(), nil)
	require.NoError(t, uc.ProcessReceipt(ctx, r.ID()))

	gateway.EXPECT().Redeem(gomock.Any(), gomock.Any()).Return(redemption.Approval{CreditMinor: 150}, nil)
	outcome, err := uc.RedeemMatch(ctx, r.ID(), c.ID(), 1)
	require.NoError(t, err)
	assert.Equal(t, redemption.OutcomeCredited, outcome)
	assert.Equal(t, int64(150), store.Balance(member))

	stored, _ := store.Offer(o.ID)
	assert.Equal(t, int32(1), stored.CurrentRedemptions)
}
