package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"schedsync/internal/core/ports"
)

const (
	lockKeyPrefix = "lock:generate:"
	lockValue     = "locked"
)

var errInvalidTTL = errors.New("lock ttl must be positive")

type GenerationGuard struct {
	client goredis.Cmdable
}

var _ ports.GenerationGuard = (*GenerationGuard)(nil)

func NewGenerationGuard(client goredis.Cmdable) *GenerationGuard {
	return &GenerationGuard{client: client}
}

// Acquire issues SET key value NX EX ttl, so checking and taking the lock is
// one atomic step on the server.
func (g *GenerationGuard) Acquire(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, errInvalidTTL
	}
	ok, err := g.client.SetNX(ctx, lockKey(userID), lockValue, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("set generation lock: %w", err)
	}
	return ok, nil
}

func (g *GenerationGuard) Release(ctx context.Context, userID string) error {
	if err := g.client.Del(ctx, lockKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete generation lock: %w", err)
	}
	return nil
}

func (g *GenerationGuard) IsHeld(ctx context.Context, userID string) (bool, error) {
	n, err := g.client.Exists(ctx, lockKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("check generation lock: %w", err)
	}
	return n > 0, nil
}

func lockKey(userID string) string {
	return lockKeyPrefix + userID
}
