//go:build unit

package queries_test

import (
	"context"
	"testing"

	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/internal/usecase/queries"
	queriesmock "redemption-ledger/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestClaimQueries_ListMine(t *testing.T) {
	ctx := context.Background()
	member := uuid.New()

	t.Run("status filter is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockClaimReadStore(ctrl)
		status := "redeemed"
		store.EXPECT().ListByClaimant(ctx, member, &status, int32(50)).Return([]*queries.ClaimView{{ID: uuid.New(), Status: status}}, nil)

		views, err := queries.NewClaimQueries(store).ListMine(ctx, member, "redeemed", 50)

		require.NoError(t, err)
		assert.Len(t, views, 1)
	})

	t.Run("no filter uses default limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockClaimReadStore(ctrl)
		store.EXPECT().ListByClaimant(ctx, member, nil, int32(queries.DefaultListLimit)).Return(nil, nil)

		views, err := queries.NewClaimQueries(store).ListMine(ctx, member, "", 0)

		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("unknown status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockClaimReadStore(ctrl)

		_, err := queries.NewClaimQueries(store).ListMine(ctx, member, "pending", 10)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestClaimQueries_ListFlagged(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockClaimReadStore(ctrl)
	store.EXPECT().ListFlagged(ctx, int32(queries.MaxListLimit)).Return([]*queries.ClaimView{}, nil)

	_, err := queries.NewClaimQueries(store).ListFlagged(ctx, 10_000)

	assert.NoError(t, err)
}
