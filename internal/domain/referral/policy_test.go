//go:build unit

package referral_test

import (
	"strings"
	"testing"

	"redemption-ledger/internal/domain/referral"
	"redemption-ledger/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyShare(t *testing.T) {
	p, err := referral.NewPolicy(0.30, referral.BaseMargin)
	require.NoError(t, err)

	tests := []struct {
		revenue int64
		want    int64
	}{
		{revenue: 100, want: 30},
		{revenue: 101, want: 30},
		{revenue: 110, want: 33},
		{revenue: 3, want: 0},
		{revenue: 0, want: 0},
		{revenue: -50, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Share(tt.revenue), "share of %d", tt.revenue)
	}
}

func TestPolicyShareOf(t *testing.T) {
	margin, err := referral.NewPolicy(0.30, referral.BaseMargin)
	require.NoError(t, err)
	credit, err := referral.NewPolicy(0.30, referral.BaseCredit)
	require.NoError(t, err)

	assert.Equal(t, int64(15), margin.ShareOf(150, 50))
	assert.Equal(t, int64(45), credit.ShareOf(150, 50))
}

func TestNewPolicy(t *testing.T) {
	_, err := referral.NewPolicy(1.5, referral.BaseMargin)
	require.ErrorIs(t, err, referral.ErrInvalidRate)

	_, err = referral.NewPolicy(0.3, referral.Base("gross"))
	require.ErrorIs(t, err, referral.ErrInvalidBase)

	p, err := referral.NewPolicy(0, "")
	require.NoError(t, err)
	assert.Equal(t, referral.BaseMargin, p.Base())
	assert.Zero(t, p.Share(1000))
}

func TestCodes(t *testing.T) {
	code, err := referral.NewCode()
	require.NoError(t, err)
	assert.Len(t, code, referral.CodeLength)

	normalized, err := referral.NormalizeCode("  " + strings.ToLower(code) + " ")
	require.NoError(t, err)
	assert.Equal(t, code, normalized)

	for _, bad := range []string{"", "SHORT", "ABCDEFG0", "ABCDEFGHJ"} {
		_, err := referral.NormalizeCode(bad)
		require.ErrorIs(t, err, referral.ErrInvalidCode, bad)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	}
}
