package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	sessionID := uuid.New().String()

	t.Run("should issue and validate tokens", func(t *testing.T) {
		svc := NewTokenService("secret", time.Hour)
		token, err := svc.Issue(sessionID)
		require.NoError(t, err)

		got, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, sessionID, got)
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		token, err := NewTokenService("other", time.Hour).Issue(sessionID)
		require.NoError(t, err)

		_, err = NewTokenService("secret", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		svc := NewTokenService("secret", time.Minute)
		issued := time.Now().Add(-time.Hour)
		svc.now = func() time.Time { return issued }
		token, err := svc.Issue(sessionID)
		require.NoError(t, err)

		svc.now = time.Now
		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject tokens without a session", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "someone",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = NewTokenService("secret", time.Hour).Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := NewTokenService("secret", time.Hour).Validate("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
