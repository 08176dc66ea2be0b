//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"redemption-ledger/internal/domain/receipt"
	"redemption-ledger/internal/pkg/clock"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/commands"
	"redemption-ledger/tests/common/builder"
	"redemption-ledger/tests/common/memstore"
	commandsmock "redemption-ledger/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMaintenanceUseCase_Sweep(t *testing.T) {
	submitted := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	now := submitted.Add(100 * 24 * time.Hour)

	t.Run("purges finished receipts past retention", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := memstore.New()
		claims := commandsmock.NewMockClaimCommands(ctrl)
		claims.EXPECT().ExpireOverdue(gomock.Any()).Return(int64(2), nil)
		uc := commands.NewMaintenanceUseCase(store, claims, clock.NewMockClock(now), 90*24*time.Hour)

		old := builder.NewReceiptBuilder().With(func(b *builder.ReceiptBuilder) { b.SubmittedAt = submitted })
		processed := old.BuildDomain()
		processed.Finish(receipt.StatusProcessed, "", submitted)
		store.PutReceipt(processed, old.Image)

		waiting := builder.NewReceiptBuilder().With(func(b *builder.ReceiptBuilder) { b.SubmittedAt = submitted })
		pending := waiting.BuildDomain()
		store.PutReceipt(pending, waiting.Image)

		recent := builder.NewReceiptBuilder().With(func(b *builder.ReceiptBuilder) { b.SubmittedAt = now.Add(-time.Hour) })
		fresh := recent.BuildDomain()
		fresh.Finish(receipt.StatusProcessed, "", now)
		store.PutReceipt(fresh, recent.Image)

		res, err := uc.Sweep(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(2), res.ExpiredClaims)
		assert.Equal(t, int64(1), res.PurgedReceipts)
		_, ok := store.Receipt(processed.ID())
		assert.False(t, ok)
		_, ok = store.Receipt(pending.ID())
		assert.True(t, ok)
		_, ok = store.Receipt(fresh.ID())
		assert.True(t, ok)
	})

	t.Run("zero retention keeps receipts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := memstore.New()
		claims := commandsmock.NewMockClaimCommands(ctrl)
		claims.EXPECT().ExpireOverdue(gomock.Any()).Return(int64(0), nil)
		uc := commands.NewMaintenanceUseCase(store, claims, clock.NewMockClock(now), 0)

		b := builder.NewReceiptBuilder().With(func(b *builder.ReceiptBuilder) { b.SubmittedAt = submitted })
		r := b.BuildDomain()
		r.Finish(receipt.StatusProcessed, "", submitted)
		store.PutReceipt(r, b.Image)

		res, err := uc.Sweep(context.Background())

		require.NoError(t, err)
		assert.Zero(t, res.PurgedReceipts)
		assert.Equal(t, 1, store.ReceiptCount())
	})

	t.Run("expiry failure stops the sweep", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		claims := commandsmock.NewMockClaimCommands(ctrl)
		claims.EXPECT().ExpireOverdue(gomock.Any()).Return(int64(0), errs.New("db down"))
		uc := commands.NewMaintenanceUseCase(memstore.New(), claims, clock.NewMockClock(now), time.Hour)

		_, err := uc.Sweep(context.Background())

		assert.Error(t, err)
	})
}
