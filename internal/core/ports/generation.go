package ports

import (
	"context"
	"time"

	"schedsync/internal/core/domain"
)

// GenerationGuard is a per-user lock backed by a store shared by every
// server instance.
type GenerationGuard interface {
	// Acquire sets the lock only if it is absent, with the given expiry, in a
	// single atomic step. It reports whether the caller now holds the lock.
	Acquire(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, userID string) error
	IsHeld(ctx context.Context, userID string) (bool, error)
}

// ScheduleGenerator proposes a non-overlapping task list for a user. The
// returned tasks carry no IDs.
type ScheduleGenerator interface {
	Generate(ctx context.Context, profile domain.UserProfile) (domain.TaskList, error)
}

type GenerationService interface {
	Generate(ctx context.Context, userID string, profile domain.UserProfile) (domain.Schedule, error)
	IsGenerating(ctx context.Context, userID string) (bool, error)
}
