//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"redemption-ledger/internal/domain/ledger"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// tickingClock advances one millisecond per reading and reports each
// reading to seen.
type tickingClock struct {
	mu   sync.Mutex
	now  time.Time
	seen func()
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen != nil {
		c.seen()
	}
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

type LedgerTestSuite struct {
	suite.Suite
	ctx    context.Context
	store  *memstore.Store
	clock  *clock.MockClock
	uc     commands.LedgerCommands
	member uuid.UUID
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))
	s.uc = commands.NewLedgerUseCase(s.store, s.clock, nil)
	s.member = uuid.New()
}

func (s *LedgerTestSuite) credit(amount int64) uuid.UUID {
	ref := uuid.New()
	res, err := s.uc.Credit(s.ctx, ledger.Entry{
		BeneficiaryID: s.member,
		Amount:        amount,
		Kind:          ledger.KindRedemptionCredit,
		ReferenceID:   ref,
	})
	s.Require().NoError(err)
	s.Require().True(res.Created)
	return ref
}

func (s *LedgerTestSuite) TestCreditRunsBalanceForward() {
	s.credit(150)
	s.clock.Add(time.Minute)
	s.credit(75)

	txs := s.store.Transactions(s.member)
	s.Require().Len(txs, 2)
	s.Equal(int64(150), txs[0].BalanceAfter)
	s.Equal(int64(225), txs[1].BalanceAfter)
	s.Equal(int64(225), s.store.Balance(s.member))
}

func (s *LedgerTestSuite) TestCreditIsIdempotentPerReference() {
	ref := s.credit(150)

	res, err := s.uc.Credit(s.ctx, ledger.Entry{
		BeneficiaryID: s.member,
		Amount:        150,
		Kind:          ledger.KindRedemptionCredit,
		ReferenceID:   ref,
	})

	s.Require().NoError(err)
	s.False(res.Created)
	s.Equal(int64(150), res.Transaction.BalanceAfter)
	s.Len(s.store.Transactions(s.member), 1)
}

func (s *LedgerTestSuite) TestSameReferenceDifferentKind() {
	ref := s.credit(150)

	res, err := s.uc.Adjust(s.ctx, uuid.New(), commands.AdjustmentRequest{
		BeneficiaryID: s.member,
		ReferenceID:   ref,
		AmountMinor:   -20,
	})

	s.Require().NoError(err)
	s.True(res.Created)
	s.Equal("operator adjustment", res.Transaction.Memo)
	s.Equal(int64(130), s.store.Balance(s.member))
}

func (s *LedgerTestSuite) TestPayout() {
	s.credit(500)
	req := commands.PayoutRequest{RequestID: uuid.New(), AmountMinor: 300}

	res, err := s.uc.Payout(s.ctx, s.member, req)
	s.Require().NoError(err)
	s.Equal(ledger.KindPayout, res.Transaction.Kind)
	s.Equal(int64(-300), res.Transaction.Amount)
	s.Equal(int64(200), res.Transaction.BalanceAfter)

	// retried request pays once
	again, err := s.uc.Payout(s.ctx, s.member, req)
	s.Require().NoError(err)
	s.False(again.Created)
	s.Equal(int64(200), s.store.Balance(s.member))
}

func (s *LedgerTestSuite) TestPayoutCannotOverdraw() {
	s.credit(100)

	_, err := s.uc.Payout(s.ctx, s.member, commands.PayoutRequest{RequestID: uuid.New(), AmountMinor: 101})

	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrInsufficientFunds))
	s.Equal(int64(100), s.store.Balance(s.member))
	s.Len(s.store.Transactions(s.member), 1)
}

func (s *LedgerTestSuite) TestPayoutRejectsNonPositiveAmount() {
	for _, amount := range []int64{0, -5} {
		_, err := s.uc.Payout(s.ctx, s.member, commands.PayoutRequest{RequestID: uuid.New(), AmountMinor: amount})
		s.True(errs.Is(err, errs.ErrValidation), "amount %d", amount)
	}
	s.Empty(s.store.Transactions(s.member))
}

func (s *LedgerTestSuite) TestCreditValidatesEntry() {
	_, err := s.uc.Credit(s.ctx, ledger.Entry{
		BeneficiaryID: s.member,
		Amount:        -10,
		Kind:          ledger.KindRedemptionCredit,
		ReferenceID:   uuid.New(),
	})

	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrValidation))
}

func (s *LedgerTestSuite) TestAdjustmentMayGoNegative() {
	s.credit(50)

	res, err := s.uc.Adjust(s.ctx, uuid.New(), commands.AdjustmentRequest{
		BeneficiaryID: s.member,
		ReferenceID:   uuid.New(),
		AmountMinor:   -80,
		Memo:          "chargeback",
	})

	s.Require().NoError(err)
	s.Equal(int64(-30), res.Transaction.BalanceAfter)
	s.Equal("chargeback", res.Transaction.Memo)
}

func (s *LedgerTestSuite) TestTimestampIsTakenUnderAccountLock() {
	var events []string
	s.store.OnLockAccount = func(uuid.UUID) { events = append(events, "lock") }
	clk := &tickingClock{now: s.clock.Now(), seen: func() { events = append(events, "now") }}
	uc := commands.NewLedgerUseCase(s.store, clk, nil)

	_, err := uc.Credit(s.ctx, ledger.Entry{
		BeneficiaryID: s.member,
		Amount:        150,
		Kind:          ledger.KindRedemptionCredit,
		ReferenceID:   uuid.New(),
	})

	s.Require().NoError(err)
	s.Equal([]string{"lock", "now"}, events)
}

func (s *LedgerTestSuite) TestConcurrentCreditsKeepCreatedAtInBalanceOrder() {
	uc := commands.NewLedgerUseCase(s.store, &tickingClock{now: s.clock.Now()}, nil)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Credit(s.ctx, ledger.Entry{
				BeneficiaryID: s.member,
				Amount:        10,
				Kind:          ledger.KindRedemptionCredit,
				ReferenceID:   uuid.New(),
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	txs := s.store.Transactions(s.member)
	s.Require().Len(txs, n)
	for i := 1; i < n; i++ {
		s.True(txs[i].CreatedAt.After(txs[i-1].CreatedAt), "row %d created before row %d", i, i-1)
		s.Greater(txs[i].BalanceAfter, txs[i-1].BalanceAfter)
	}
}

func (s *LedgerTestSuite) TestReferenceReusedByAnotherBeneficiaryIsRejected() {
	other := uuid.New()
	requestID := uuid.New()
	_, err := s.uc.Adjust(s.ctx, uuid.New(), commands.AdjustmentRequest{BeneficiaryID: other, ReferenceID: uuid.New(), AmountMinor: 500})
	s.Require().NoError(err)
	_, err = s.uc.Payout(s.ctx, other, commands.PayoutRequest{RequestID: requestID, AmountMinor: 200})
	s.Require().NoError(err)

	s.credit(500)
	res, err := s.uc.Payout(s.ctx, s.member, commands.PayoutRequest{RequestID: requestID, AmountMinor: 200})

	s.Require().Error(err)
	s.Nil(res)
	s.True(errs.Is(err, errs.ErrReferenceConflict))
	s.Equal(int64(500), s.store.Balance(s.member))
	s.Len(s.store.Transactions(s.member), 1)
}

func (s *LedgerTestSuite) TestReferenceReusedWithDifferentAmountIsRejected() {
	requestID := uuid.New()
	s.credit(500)
	_, err := s.uc.Payout(s.ctx, s.member, commands.PayoutRequest{RequestID: requestID, AmountMinor: 200})
	s.Require().NoError(err)

	_, err = s.uc.Payout(s.ctx, s.member, commands.PayoutRequest{RequestID: requestID, AmountMinor: 250})

	s.True(errs.Is(err, errs.ErrReferenceConflict))
	s.Equal(int64(300), s.store.Balance(s.member))
}
