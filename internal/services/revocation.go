package services

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// MemoryRevocationList keeps revoked token ids in process. Entries expire
// after ttl, which should be at least the refresh token lifetime. The list
// is unbounded: evicting a live entry would make a logged out token valid
// again.
type MemoryRevocationList struct {
	ids *expirable.LRU[string, struct{}]
}

func NewMemoryRevocationList(ttl time.Duration) *MemoryRevocationList {
	// size 0 turns off LRU eviction; only expiry removes entries
	return &MemoryRevocationList{ids: expirable.NewLRU[string, struct{}](0, nil, ttl)}
}

func (l *MemoryRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	l.ids.Add(tokenID, struct{}{})
	return nil
}

func (l *MemoryRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, ok := l.ids.Get(tokenID)
	return ok, nil
}

// RedisRevocationList shares revocations between instances. Each key expires
// when the token itself would have.
type RedisRevocationList struct {
	rdb *redis.Client
}

func NewRedisRevocationList(rdb *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{rdb: rdb}
}

func (l *RedisRevocationList) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return l.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (l *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
