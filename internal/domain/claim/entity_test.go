//go:build unit

package claim_test

import (
	"testing"
	"time"

	"redemption-ledger/internal/domain/claim"
	"redemption-ledger/internal/pkg/errs"
	"redemption-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	offerID, itemID, claimantID := uuid.New(), uuid.New(), uuid.New()

	t.Run("creates a claimed claim expiring after ttl", func(t *testing.T) {
		c, err := claim.New(offerID, itemID, claimantID, now, time.Hour)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, c.ID())
		assert.Equal(t, claim.StatusClaimed, c.Status())
		assert.Equal(t, now.Add(time.Hour), c.ExpiresAt())
		assert.Nil(t, c.ResolvedAt())
		assert.True(t, c.IsOpen(now))
		assert.False(t, c.IsOpen(now.Add(time.Hour)))
	})

	tests := []struct {
		name       string
		offerID    uuid.UUID
		itemID     uuid.UUID
		claimantID uuid.UUID
		ttl        time.Duration
		errIs      error
	}{
		{"missing offer", uuid.Nil, itemID, claimantID, time.Hour, claim.ErrMissingOffer},
		{"missing list item", offerID, uuid.Nil, claimantID, time.Hour, claim.ErrMissingListItem},
		{"missing claimant", offerID, itemID, uuid.Nil, time.Hour, claim.ErrMissingClaimant},
		{"non-positive ttl", offerID, itemID, claimantID, 0, claim.ErrInvalidTTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := claim.New(tt.offerID, tt.itemID, tt.claimantID, now, tt.ttl)
			require.ErrorIs(t, err, tt.errIs)
			assert.Nil(t, c)
		})
	}
}

func TestCancel(t *testing.T) {
	t.Run("claimant cancels once and repeats are no-ops", func(t *testing.T) {
		c := builder.NewClaimBuilder().BuildDomain()

		changed, err := c.Cancel(c.ClaimantID(), now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, claim.StatusCancelled, c.Status())
		require.NotNil(t, c.ResolvedAt())

		changed, err = c.Cancel(c.ClaimantID(), now.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, now, *c.ResolvedAt())
	})

	t.Run("other users cannot cancel", func(t *testing.T) {
		c := builder.NewClaimBuilder().BuildDomain()

		_, err := c.Cancel(uuid.New(), now)
		require.ErrorIs(t, err, claim.ErrNotClaimant)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
		assert.Equal(t, claim.StatusClaimed, c.Status())
	})

	for _, status := range []claim.Status{claim.StatusRedeemed, claim.StatusExpired, claim.StatusRejected} {
		t.Run("cannot cancel a "+status.String()+" claim", func(t *testing.T) {
			c := builder.NewClaimBuilder().WithStatus(status).BuildDomain()

			_, err := c.Cancel(c.ClaimantID(), now)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
			assert.Equal(t, status, c.Status())
		})
	}
}

func TestResolve(t *testing.T) {
	receiptID := uuid.New()

	t.Run("redeemed outcome records the receipt", func(t *testing.T) {
		c := builder.NewClaimBuilder().BuildDomain()

		changed, err := c.Resolve(claim.OutcomeRedeemed, receiptID, "", now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, claim.StatusRedeemed, c.Status())
		require.NotNil(t, c.ReceiptID())
		assert.Equal(t, receiptID, *c.ReceiptID())
	})

	t.Run("rejected outcome keeps the reason", func(t *testing.T) {
		c := builder.NewClaimBuilder().BuildDomain()

		_, err := c.Resolve(claim.OutcomeRejected, receiptID, "wrong size", now)
		require.NoError(t, err)
		assert.Equal(t, claim.StatusRejected, c.Status())
		assert.Equal(t, "wrong size", c.Reason())
	})

	t.Run("terminal claims are left alone", func(t *testing.T) {
		c := builder.NewClaimBuilder().WithStatus(claim.StatusCancelled).BuildDomain()

		changed, err := c.Resolve(claim.OutcomeRedeemed, receiptID, "", now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, claim.StatusCancelled, c.Status())
		assert.Nil(t, c.ReceiptID())
	})

	t.Run("unknown outcome", func(t *testing.T) {
		c := builder.NewClaimBuilder().BuildDomain()

		_, err := c.Resolve(claim.Outcome("bogus"), receiptID, "", now)
		require.ErrorIs(t, err, claim.ErrUnknownOutcome)
	})
}

func TestExpire(t *testing.T) {
	c := builder.NewClaimBuilder().BuildDomain()

	assert.False(t, c.Expire(c.ExpiresAt().Add(-time.Second)))
	assert.Equal(t, claim.StatusClaimed, c.Status())

	assert.True(t, c.Expire(c.ExpiresAt()))
	assert.Equal(t, claim.StatusExpired, c.Status())

	assert.False(t, c.Expire(c.ExpiresAt().Add(time.Hour)))
}

func TestFlagForReview(t *testing.T) {
	c := builder.NewClaimBuilder().BuildDomain()

	assert.True(t, c.FlagForReview("authority unavailable", now))
	assert.Equal(t, claim.StatusClaimed, c.Status())
	require.NotNil(t, c.ReviewFlaggedAt())
	assert.Equal(t, "authority unavailable", c.Reason())

	assert.False(t, c.FlagForReview("again", now.Add(time.Hour)))
	assert.Equal(t, now, *c.ReviewFlaggedAt())

	redeemed := builder.NewClaimBuilder().WithStatus(claim.StatusRedeemed).BuildDomain()
	assert.False(t, redeemed.FlagForReview("late", now))
}

func TestParseStatus(t *testing.T) {
	s, err := claim.ParseStatus("redeemed")
	require.NoError(t, err)
	assert.Equal(t, claim.StatusRedeemed, s)
	assert.True(t, s.IsTerminal())
	assert.False(t, claim.StatusClaimed.IsTerminal())

	_, err = claim.ParseStatus("pending")
	require.ErrorIs(t, err, claim.ErrInvalidStatus)
}
