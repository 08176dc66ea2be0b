//go:build unit

package worker_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"redemption-ledger/internal/domain/redemption"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/config"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/usecase/shared"
	"redemption-ledger/internal/worker"
	"redemption-ledger/tests/common/memstore"
	commandsmock "redemption-ledger/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PoolTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	clock *clock.MockClock
	pool  *worker.Pool
}

func (s *PoolTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	s.pool = worker.NewPool(s.store, s.clock, config.WorkerConfig{
		JobTimeout:  time.Second,
		MaxAttempts: 3,
	}, nil)
}

func TestPoolTestSuite(t *testing.T) {
	suite.Run(t, new(PoolTestSuite))
}

func (s *PoolTestSuite) enqueue(kind, key string) {
	err := s.store.WithDB(s.ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Jobs().Enqueue(ctx, shared.NewJob{
			Kind:      kind,
			DedupeKey: key,
			Payload:   []byte(`{}`),
			RunAt:     s.clock.Now(),
		})
		return err
	})
	s.Require().NoError(err)
}

func (s *PoolTestSuite) status(key string) (string, string) {
	status, lastErr, ok := s.store.JobStatus(key)
	s.Require().True(ok, "job %s not found", key)
	return status, lastErr
}

func (s *PoolTestSuite) TestCompletesSuccessfulJob() {
	calls := 0
	s.pool.Register("ping", func(context.Context, *shared.Job) error {
		calls++
		return nil
	})
	s.enqueue("ping", "ping:1")

	n, err := s.pool.RunOnce(s.ctx, 10)

	s.Require().NoError(err)
	s.Equal(1, n)
	s.Equal(1, calls)
	status, _ := s.status("ping:1")
	s.Equal("done", status)

	n, err = s.pool.RunOnce(s.ctx, 10)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *PoolTestSuite) TestReschedulesWithBackoff() {
	s.pool.Register("flaky", func(context.Context, *shared.Job) error {
		return errs.New("upstream hiccup")
	})
	s.enqueue("flaky", "flaky:1")

	_, err := s.pool.RunOnce(s.ctx, 1)
	s.Require().NoError(err)

	queued := s.store.QueuedJobs("flaky")
	s.Require().Len(queued, 1)
	s.Equal(s.clock.Now().Add(time.Second), queued[0].RunAt)
	_, lastErr := s.status("flaky:1")
	s.Contains(lastErr, "upstream hiccup")

	// not due yet
	n, err := s.pool.RunOnce(s.ctx, 1)
	s.Require().NoError(err)
	s.Zero(n)

	s.clock.Add(time.Second)
	_, err = s.pool.RunOnce(s.ctx, 1)
	s.Require().NoError(err)
	queued = s.store.QueuedJobs("flaky")
	s.Require().Len(queued, 1)
	s.Equal(s.clock.Now().Add(2*time.Second), queued[0].RunAt)
}

func (s *PoolTestSuite) TestBuriesAfterMaxAttempts() {
	s.pool.Register("flaky", func(context.Context, *shared.Job) error {
		return errs.New("still down")
	})
	s.enqueue("flaky", "flaky:2")

	for range 3 {
		_, err := s.pool.RunOnce(s.ctx, 1)
		s.Require().NoError(err)
		s.clock.Add(time.Minute)
	}

	status, lastErr := s.status("flaky:2")
	s.Equal("dead", status)
	s.Contains(lastErr, "still down")
}

func (s *PoolTestSuite) TestBuriesPermanentFailure() {
	s.pool.Register("broken", func(context.Context, *shared.Job) error {
		return errs.Mark(errs.New("bad payload"), worker.ErrPermanent)
	})
	s.enqueue("broken", "broken:1")

	_, err := s.pool.RunOnce(s.ctx, 1)

	s.Require().NoError(err)
	status, _ := s.status("broken:1")
	s.Equal("dead", status)
}

func (s *PoolTestSuite) TestBuriesUnknownKind() {
	s.enqueue("mystery", "mystery:1")

	_, err := s.pool.RunOnce(s.ctx, 1)

	s.Require().NoError(err)
	status, lastErr := s.status("mystery:1")
	s.Equal("dead", status)
	s.Contains(lastErr, "no handler for job kind mystery")
}

func (s *PoolTestSuite) TestRecoversFromPanic() {
	s.pool.Register("boom", func(context.Context, *shared.Job) error {
		panic("nil map")
	})
	s.enqueue("boom", "boom:1")

	_, err := s.pool.RunOnce(s.ctx, 1)

	s.Require().NoError(err)
	status, lastErr := s.status("boom:1")
	s.Equal("queued", status)
	s.Contains(lastErr, "panicked")
}

func (s *PoolTestSuite) TestHandlerRunsUnderTimeout() {
	s.pool.Register("slow", func(ctx context.Context, _ *shared.Job) error {
		deadline, ok := ctx.Deadline()
		s.True(ok)
		s.WithinDuration(time.Now().Add(time.Second), deadline, time.Second)
		return nil
	})
	s.enqueue("slow", "slow:1")

	_, err := s.pool.RunOnce(s.ctx, 1)

	s.Require().NoError(err)
}

func (s *PoolTestSuite) TestStartStop() {
	s.pool.Start(s.ctx)
	s.pool.Start(s.ctx)

	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()
	s.NoError(s.pool.Stop(ctx))
	s.NoError(s.pool.Stop(ctx))
}

func TestProcessReceiptHandler(t *testing.T) {
	ctx := context.Background()
	receiptID := uuid.New()
	payload, err := json.Marshal(commands.ProcessReceiptPayload{ReceiptID: receiptID})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := commandsmock.NewMockRedemptionCommands(ctrl)
		uc.EXPECT().ProcessReceipt(gomock.Any(), receiptID).Return(nil)

		err := worker.ProcessReceiptHandler(uc, 3)(ctx, &shared.Job{Payload: payload, Attempts: 1})

		assert.NoError(t, err)
	})

	t.Run("early failure is retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := commandsmock.NewMockRedemptionCommands(ctrl)
		uc.EXPECT().ProcessReceipt(gomock.Any(), receiptID).Return(errs.New("ocr timeout"))

		err := worker.ProcessReceiptHandler(uc, 3)(ctx, &shared.Job{Payload: payload, Attempts: 2})

		require.Error(t, err)
		assert.False(t, errs.Is(err, worker.ErrPermanent))
	})

	t.Run("final failure marks the receipt failed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := commandsmock.NewMockRedemptionCommands(ctrl)
		uc.EXPECT().ProcessReceipt(gomock.Any(), receiptID).Return(errs.New("ocr timeout"))
		uc.EXPECT().FailReceipt(gomock.Any(), receiptID, "ocr timeout").Return(nil)

		err := worker.ProcessReceiptHandler(uc, 3)(ctx, &shared.Job{Payload: payload, Attempts: 3})

		assert.Error(t, err)
	})

	t.Run("bad payload is permanent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uc := commandsmock.NewMockRedemptionCommands(ctrl)

		err := worker.ProcessReceiptHandler(uc, 3)(ctx, &shared.Job{Payload: []byte("{"), Attempts: 1})

		require.Error(t, err)
		assert.True(t, errs.Is(err, worker.ErrPermanent))
	})
}

func TestRedeemClaimHandler(t *testing.T) {
	ctx := context.Background()
	receiptID, claimID := uuid.New(), uuid.New()
	payload, err := json.Marshal(commands.RedeemClaimPayload{ReceiptID: receiptID, ClaimID: claimID, Attempt: 2})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	uc := commandsmock.NewMockRedemptionCommands(ctrl)
	uc.EXPECT().RedeemMatch(gomock.Any(), receiptID, claimID, 2).Return(redemption.OutcomeCredited, nil)

	assert.NoError(t, worker.RedeemClaimHandler(uc)(ctx, &shared.Job{Payload: payload}))

	err = worker.RedeemClaimHandler(uc)(ctx, &shared.Job{Payload: []byte("null,")})
	assert.True(t, errs.Is(err, worker.ErrPermanent))
}
