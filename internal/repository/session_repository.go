package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionRepo records revoked admin tokens by their jti.  Entries expire
// together with the token they revoke.
type SessionRepo struct {
	rdb    *redis.Client
	prefix string
}

// NewSessionRepo returns a SessionRepo.  A nil client yields a repo that
// never reports a token as revoked.
func NewSessionRepo(rdb *redis.Client, prefix string) *SessionRepo {
	if prefix == "" {
		prefix = "livehouse:session:revoked"
	}
	return &SessionRepo{rdb: rdb, prefix: prefix}
}

func (r *SessionRepo) key(jti string) string { return r.prefix + ":" + jti }

// Enabled reports whether revocations are persisted.
func (r *SessionRepo) Enabled() bool { return r != nil && r.rdb != nil }

// Revoke marks jti as revoked until the given expiry.  Tokens that already
// expired need no entry.
func (r *SessionRepo) Revoke(ctx context.Context, jti string, until time.Time) error {
	if !r.Enabled() || jti == "" {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, r.key(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked.
func (r *SessionRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !r.Enabled() || jti == "" {
		return false, nil
	}
	n, err := r.rdb.Exists(ctx, r.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
