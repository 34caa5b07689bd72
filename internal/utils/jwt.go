package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"  // secure random number generation for token ids
	"encoding/hex" // hex encoding of the random id
	"errors"
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminSubject and AdminRole are the fixed subject and role claims of an
// admin capability token.  There is a single shared admin identity.
const (
	AdminSubject = "admin"
	AdminRole    = "ADMIN"
)

// ErrInvalidToken is returned by ParseAdminToken for any token that is
// malformed, expired, signed with another key or algorithm, or that does
// not carry the admin claims.
var ErrInvalidToken = errors.New("invalid token")

// AdminClaims are the claims carried by an admin token.  ID (jti) identifies
// the token so that logout can revoke it before it expires.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AdminToken represents a signed admin JWT along with its id and expiry.
type AdminToken struct {
	Token string    // the serialized JWT string
	JTI   string    // unique token id
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for the admin.  ttlMin is the
// lifetime in minutes.  The token includes sub, role, jti, exp and iat.
func NewAdminToken(secret string, ttlMin int) (AdminToken, error) {
	jti, err := randomHex(16)
	if err != nil {
		return AdminToken{}, err
	}
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := AdminClaims{
		Role: AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   AdminSubject,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, JTI: jti, Exp: exp}, nil
}

// ParseAdminToken verifies the signature and expiry of raw and returns its
// claims.  Only HS256 is accepted.
func ParseAdminToken(secret, raw string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject != AdminSubject || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
