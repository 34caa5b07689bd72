package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	tok, err := NewAdminToken("secret", 60)
	require.NoError(t, err)
	assert.Len(t, tok.JTI, 32)
	assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

	claims, err := ParseAdminToken("secret", tok.Token)
	require.NoError(t, err)
	assert.Equal(t, AdminRole, claims.Role)
	assert.Equal(t, AdminSubject, claims.Subject)
	assert.Equal(t, tok.JTI, claims.ID)
}

func TestParseAdminTokenRejects(t *testing.T) {
	good, err := NewAdminToken("secret", 60)
	require.NoError(t, err)

	expired, err := NewAdminToken("secret", -1)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": AdminSubject, "role": AdminRole, "jti": "x",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct{ secret, raw string }{
		"wrong secret": {"other", good.Token},
		"expired":      {"secret", expired.Token},
		"alg none":     {"secret", none},
		"garbage":      {"secret", "not.a.token"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAdminToken(tc.secret, tc.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("admin", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "admin"))
	assert.False(t, VerifyPassword(hash, "Admin"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestAdminPasswordHash(t *testing.T) {
	hash, err := AdminPasswordHash("door", "", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "door"))

	kept, err := AdminPasswordHash("ignored", hash, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, hash, kept)

	_, err = AdminPasswordHash("", "", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrNoAdminPassword)

	_, err = AdminPasswordHash("", "not-a-hash", bcrypt.MinCost)
	assert.Error(t, err)
}
