package services

import (
	"testing"
	"time"

	"orvia_back_end/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAuthTokens(t *testing.T) {
	cfg := newTestConfig(t)
	issuer := NewTokenIssuer(cfg)
	user := testUser(t)

	before := time.Now()
	tokens, err := issuer.GenerateAuthTokens(user)
	require.NoError(t, err)
	after := time.Now()

	assert.NotEmpty(t, tokens.Access.Token)
	assert.WithinRange(t, tokens.Access.Expires,
		before.Add(30*time.Minute), after.Add(30*time.Minute))

	sub, err := issuer.Verify(tokens.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)
}

func TestGenerateToken_Claims(t *testing.T) {
	cfg := newTestConfig(t)
	issuer := NewTokenIssuer(cfg)
	exp := time.Now().Add(10 * time.Minute).Unix()

	signed, err := issuer.GenerateToken("user-42", exp, TokenTypeAccess)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-42", claims["sub"])
	assert.Equal(t, "ACCESS", claims["type"])
	assert.Equal(t, float64(exp), claims["exp"])
	assert.NotZero(t, claims["iat"])
}

func TestVerify_Rejections(t *testing.T) {
	cfg := newTestConfig(t)
	issuer := NewTokenIssuer(cfg)

	t.Run("token expiré", func(t *testing.T) {
		expired, err := issuer.GenerateToken("user-42", time.Now().Add(-time.Minute).Unix(), TokenTypeAccess)
		require.NoError(t, err)

		_, err = issuer.Verify(expired)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.EqualError(t, err, "Please authenticate")
	})

	t.Run("limite d'expiration", func(t *testing.T) {
		// Un token est accepté jusqu'à exp, rejeté juste après.
		stillValid, err := issuer.GenerateToken("user-42", time.Now().Add(time.Second).Unix(), TokenTypeAccess)
		require.NoError(t, err)
		sub, err := issuer.Verify(stillValid)
		require.NoError(t, err)
		assert.Equal(t, "user-42", sub)

		justExpired, err := issuer.GenerateToken("user-42", time.Now().Add(-time.Second).Unix(), TokenTypeAccess)
		require.NoError(t, err)
		_, err = issuer.Verify(justExpired)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("mauvais secret", func(t *testing.T) {
		otherCfg := newTestConfig(t)
		otherCfg.JWTSecret = "autre_secret"
		forged, err := NewTokenIssuer(otherCfg).GenerateToken("user-42", time.Now().Add(time.Hour).Unix(), TokenTypeAccess)
		require.NoError(t, err)

		_, err = issuer.Verify(forged)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("mauvais type de token", func(t *testing.T) {
		wrong, err := issuer.GenerateToken("user-42", time.Now().Add(time.Hour).Unix(), "REFRESH")
		require.NoError(t, err)

		_, err = issuer.Verify(wrong)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("chaîne arbitraire", func(t *testing.T) {
		_, err := issuer.Verify("pas-un-jwt")
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})
}
