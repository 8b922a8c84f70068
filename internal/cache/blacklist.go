package cache

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// TokenBlacklist remembers revoked bearer tokens until they would have expired
// anyway. Entries evict themselves through the Redis TTL.
type TokenBlacklist struct {
	cache *RedisCache
	now   func() time.Time
}

func NewTokenBlacklist(c *RedisCache) *TokenBlacklist {
	return &TokenBlacklist{cache: c, now: time.Now}
}

// keyForToken never stores the raw token.
func keyForToken(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "blacklist:token:" + hex.EncodeToString(sum[:])
}

// Revoke blacklists token until expiresAt. Tokens that already expired are
// not stored; they are rejected by expiry on their own.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.cache.Client.Set(ctx, keyForToken(token), 1, ttl).Err()
}

// IsRevoked reports whether token is currently blacklisted. A nil blacklist
// revokes nothing.
func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	if b == nil {
		return false, nil
	}
	n, err := b.cache.Client.Exists(ctx, keyForToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
