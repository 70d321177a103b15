package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/lapsell-backend/internal/repository/memstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	store := memstore.New()
	_, err := store.Users.Insert(context.Background(), &models.User{Email: "buyer@example.com", AccountType: models.AccountBuyer})
	require.NoError(t, err)

	return NewTokenService(store.Users, &config.Config{
		JWTSecret:       "test-secret",
		JWTAccessExpiry: time.Hour,
	})
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTokenService(t)

	token, err := svc.Issue(context.Background(), "buyer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", email)
}

func TestIssueUnknownUser(t *testing.T) {
	svc := newTokenService(t)

	token, err := svc.Issue(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, token)

	token, err = svc.Issue(context.Background(), "")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, token)
}

func TestVerifyExpiry(t *testing.T) {
	svc := newTokenService(t)
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	email, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", email)

	svc.now = func() time.Time { return issuedAt.Add(61 * time.Minute) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejects(t *testing.T) {
	svc := newTokenService(t)
	valid, err := svc.Issue(context.Background(), "buyer@example.com")
	require.NoError(t, err)

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		Email: "buyer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{Email: "buyer@example.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, TokenClaims{
		Email: "buyer@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":       "not-a-jwt",
		"hs512":         otherAlg,
		"tampered":      valid + "x",
		"other key":     otherKey,
		"alg none":      unsigned,
		"missing email": noEmail,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Verify(raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestKeyfuncPinsHS256(t *testing.T) {
	svc := newTokenService(t)

	key, err := svc.Keyfunc(jwt.New(jwt.SigningMethodHS256))
	require.NoError(t, err)
	assert.NotNil(t, key)

	for _, method := range []jwt.SigningMethod{jwt.SigningMethodHS384, jwt.SigningMethodHS512, jwt.SigningMethodNone} {
		_, err := svc.Keyfunc(jwt.New(method))
		assert.Error(t, err, method.Alg())
	}
}

func TestVerifyMissingToken(t *testing.T) {
	svc := newTokenService(t)
	_, err := svc.Verify("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
