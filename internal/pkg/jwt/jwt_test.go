//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"redemption-ledger/internal/domain/auth"
	"redemption-ledger/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	fixed := func() time.Time { return now }
	userID := uuid.New()

	t.Run("round trip keeps identity and role", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Hour, jwt.WithNow(fixed), jwt.WithIssuer("idp"))
		token, err := svc.GenerateToken(userID, auth.RoleOperator)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "operator", claims.Role)
		assert.Equal(t, "idp", claims.Issuer)
	})

	t.Run("expired tokens are distinguished", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Minute, jwt.WithNow(fixed))
		token, err := svc.GenerateToken(userID, auth.RoleMember)
		require.NoError(t, err)

		later := jwt.NewService("secret", time.Minute, jwt.WithNow(func() time.Time { return now.Add(2 * time.Minute) }))
		_, err = later.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("leeway absorbs small skew", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Minute, jwt.WithNow(fixed))
		token, err := svc.GenerateToken(userID, auth.RoleMember)
		require.NoError(t, err)

		skewed := jwt.NewService("secret", time.Minute,
			jwt.WithLeeway(30*time.Second),
			jwt.WithNow(func() time.Time { return now.Add(70 * time.Second) }))
		_, err = skewed.ValidateToken(token)
		assert.NoError(t, err)
	})

	t.Run("issuer mismatch is rejected", func(t *testing.T) {
		token, err := jwt.NewService("secret", time.Hour, jwt.WithNow(fixed), jwt.WithIssuer("other")).
			GenerateToken(userID, auth.RoleMember)
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Hour, jwt.WithNow(fixed), jwt.WithIssuer("idp")).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("subject stands in for a missing user id", func(t *testing.T) {
		raw := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
		})
		token, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)

		claims, err := jwt.NewService("secret", time.Hour, jwt.WithNow(fixed)).ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("other algorithms are rejected", func(t *testing.T) {
		raw := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
			"user_id": userID.String(),
			"exp":     now.Add(time.Hour).Unix(),
		})
		token, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Hour, jwt.WithNow(fixed)).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
