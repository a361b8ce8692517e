package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupGuard(t *testing.T) (*GenerationGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewGenerationGuard(client), mr
}

func TestGenerationGuard_AcquireReleaseAcquire(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "u1", 20*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 20*time.Second, mr.TTL("lock:generate:u1"))

	ok, err = guard.Acquire(ctx, "u1", 20*time.Second)
	require.NoError(t, err)
	require.False(t, ok)

	held, err := guard.IsHeld(ctx, "u1")
	require.NoError(t, err)
	require.True(t, held)

	require.NoError(t, guard.Release(ctx, "u1"))

	held, err = guard.IsHeld(ctx, "u1")
	require.NoError(t, err)
	require.False(t, held)

	ok, err = guard.Acquire(ctx, "u1", 20*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGenerationGuard_ExpiresAfterTTL(t *testing.T) {
	guard, mr := setupGuard(t)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "u1", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(1500 * time.Millisecond)

	ok, err = guard.Acquire(ctx, "u1", time.Second)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGenerationGuard_UsersDoNotContend(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()

	ok, err := guard.Acquire(ctx, "u1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = guard.Acquire(ctx, "u2", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestGenerationGuard_ConcurrentAcquireHasOneWinner(t *testing.T) {
	guard, _ := setupGuard(t)
	ctx := context.Background()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := guard.Acquire(ctx, "u1", time.Minute)
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), winners.Load())
}

func TestGenerationGuard_ReleaseWithoutLockIsNoop(t *testing.T) {
	guard, _ := setupGuard(t)

	require.NoError(t, guard.Release(context.Background(), "nobody"))
}

func TestGenerationGuard_RejectsNonPositiveTTL(t *testing.T) {
	guard, _ := setupGuard(t)

	_, err := guard.Acquire(context.Background(), "u1", 0)
	require.ErrorIs(t, err, errInvalidTTL)
}

func TestGenerationGuard_StoreUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer func() {
		_ = client.Close()
	}()
	guard := NewGenerationGuard(client)
	mr.Close()

	_, err = guard.Acquire(context.Background(), "u1", time.Minute)
	require.Error(t, err)
	require.Error(t, guard.Release(context.Background(), "u1"))
}
