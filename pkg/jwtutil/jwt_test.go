package jwtutil

import (
	"testing"
	"time"

	"pos-service/internal/model"
	"pos-service/pkg/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTUtil(t *testing.T) {
	cfg := &config.JWTConfig{SigningKey: "test-key", ExpirationHours: 1}
	admin := model.Users[0]

	t.Run("GenerateToken_RoundTripsClaims", func(t *testing.T) {
		util := NewJWTUtil(cfg)

		token, issued, err := util.GenerateToken(admin)
		require.NoError(t, err)
		require.NotEmpty(t, issued.SessionID())

		claims, err := util.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.UserID)
		assert.Equal(t, admin.Name, claims.Name)
		assert.Equal(t, model.RoleAdmin, claims.Role)
		assert.Equal(t, issued.SessionID(), claims.SessionID())
	})

	t.Run("GenerateToken_NewSessionEachTime", func(t *testing.T) {
		util := NewJWTUtil(cfg)

		_, first, err := util.GenerateToken(admin)
		require.NoError(t, err)
		_, second, err := util.GenerateToken(admin)
		require.NoError(t, err)
		assert.NotEqual(t, first.SessionID(), second.SessionID())
	})

	t.Run("ValidateToken_RejectsOtherKey", func(t *testing.T) {
		token, _, err := NewJWTUtil(&config.JWTConfig{SigningKey: "other", ExpirationHours: 1}).GenerateToken(admin)
		require.NoError(t, err)

		_, err = NewJWTUtil(cfg).ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("ValidateToken_RejectsExpired", func(t *testing.T) {
		util := NewJWTUtil(cfg)
		util.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, _, err := util.GenerateToken(admin)
		require.NoError(t, err)

		_, err = NewJWTUtil(cfg).ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("ValidateToken_RejectsMissingSession", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, UserClaims{UserID: 1, Role: model.RoleAdmin}).
			SignedString([]byte(cfg.SigningKey))
		require.NoError(t, err)

		_, err = NewJWTUtil(cfg).ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("ValidateToken_RequiresConfig", func(t *testing.T) {
		_, err := NewJWTUtil(nil).ValidateToken("x")
		require.Error(t, err)
	})
}
