//go:build unit

package worker_test

import (
	"context"
	"testing"
	"time"

	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/internal/worker"
	commandsmock "redemption-ledger/tests/mock/commands"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSweeper(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := commandsmock.NewMockMaintenanceCommands(ctrl)
	swept := make(chan struct{}, 8)
	uc.EXPECT().Sweep(gomock.Any()).DoAndReturn(func(context.Context) (*commands.SweepResult, error) {
		select {
		case swept <- struct{}{}:
		default:
		}
		return &commands.SweepResult{}, nil
	}).MinTimes(1)

	s := worker.NewSweeper(uc, 10*time.Millisecond)
	s.Start(context.Background())

	select {
	case <-swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper never ran")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, s.Stop(ctx))
}
