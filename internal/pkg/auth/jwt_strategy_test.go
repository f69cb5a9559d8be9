package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTStrategy_IssueAndParse(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Hour})

	token, err := strategy.IssueToken(Claims{UserID: 5, Login: "layla"})
	require.NoError(t, err)

	claims, err := strategy.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: 5, Login: "layla"}, claims)
	assert.Equal(t, "jwt", strategy.Name())
	assert.Equal(t, defaultIssuer, strategy.issuer)
}

func TestJWTStrategy_RejectsExpired(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{TTL: time.Minute})
	strategy.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := strategy.IssueToken(Claims{UserID: 5})
	require.NoError(t, err)

	strategy.now = time.Now
	_, err = strategy.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTStrategy_RejectsForeignTokens(t *testing.T) {
	strategy := NewJWTStrategy("secret", Options{})

	foreignSecret, err := NewJWTStrategy("other", Options{}).IssueToken(Claims{UserID: 1})
	require.NoError(t, err)

	foreignIssuer, err := NewJWTStrategy("secret", Options{Issuer: "someone-else"}).IssueToken(Claims{UserID: 1})
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    defaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "abc",
		Issuer:    defaultIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "1",
		Issuer:  defaultIssuer,
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":        "not.a.jwt",
		"foreign secret": foreignSecret,
		"foreign issuer": foreignIssuer,
		"none algorithm": noneAlg,
		"bad subject":    badSubject,
		"no expiry":      noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := strategy.ParseToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
