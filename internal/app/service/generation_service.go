package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"schedsync/internal/core/domain"
	"schedsync/internal/core/ports"
)

const releaseTimeout = 2 * time.Second

type GenerationService struct {
	guard      ports.GenerationGuard
	generator  ports.ScheduleGenerator
	repository ports.ScheduleRepository
	schedules  *ScheduleService
	lockTTL    time.Duration
	timeout    time.Duration
	now        func() time.Time
}

type GenerationConfig struct {
	LockTTL time.Duration
	Timeout time.Duration
	// Now defaults to time.Now; the schedule day is taken from it in UTC.
	Now func() time.Time
}

func NewGenerationService(
	guard ports.GenerationGuard,
	generator ports.ScheduleGenerator,
	repository ports.ScheduleRepository,
	schedules *ScheduleService,
	cfg GenerationConfig,
) *GenerationService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &GenerationService{
		guard:      guard,
		generator:  generator,
		repository: repository,
		schedules:  schedules,
		lockTTL:    cfg.LockTTL,
		timeout:    cfg.Timeout,
		now:        now,
	}
}

var _ ports.GenerationService = (*GenerationService)(nil)

// Generate asks the generator for today's tasks and stores them, replacing
// any schedule the user already has for the day. At most one generation per
// user runs at a time; a concurrent call fails with ErrGenerationInProgress.
func (s *GenerationService) Generate(ctx context.Context, userID string, profile domain.UserProfile) (domain.Schedule, error) {
	if err := validateID("user_id", userID); err != nil {
		return domain.Schedule{}, err
	}

	acquired, err := s.guard.Acquire(ctx, userID, s.lockTTL)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("acquire generation lock: %w", err)
	}
	if !acquired {
		zap.L().Info("schedule generation already in progress", zap.String("user_id", userID))
		return domain.Schedule{}, domain.ErrGenerationInProgress
	}
	defer s.release(ctx, userID)

	tasks, err := s.propose(ctx, profile)
	if err != nil {
		return domain.Schedule{}, err
	}

	day := truncateToDay(s.now())
	schedule, err := s.repository.FindScheduleForDay(ctx, userID, day)
	if errors.Is(err, domain.ErrScheduleNotFound) {
		return s.repository.CreateSchedule(ctx, userID, day, tasks)
	}
	if err != nil {
		return domain.Schedule{}, err
	}

	replaced, err := s.schedules.ReplaceAll(ctx, schedule.ID, tasks)
	if err != nil {
		return domain.Schedule{}, err
	}
	schedule.Tasks = replaced
	return schedule, nil
}

func (s *GenerationService) IsGenerating(ctx context.Context, userID string) (bool, error) {
	if err := validateID("user_id", userID); err != nil {
		return false, err
	}
	return s.guard.IsHeld(ctx, userID)
}

func (s *GenerationService) propose(ctx context.Context, profile domain.UserProfile) (domain.TaskList, error) {
	generateCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		generateCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	tasks, err := s.generator.Generate(generateCtx, profile)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%w: empty task list", domain.ErrGenerationFailed)
	}

	proposed := tasks.Clone()
	sort.SliceStable(proposed, func(i, j int) bool { return proposed[i].Time < proposed[j].Time })
	for i := range proposed {
		proposed[i].ID = ""
		if err := proposed[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
		}
		if i > 0 && proposed[i-1].End() > proposed[i].Time {
			return nil, fmt.Errorf("%w: %s overlaps %s", domain.ErrGenerationFailed, proposed[i-1].Name, proposed[i].Name)
		}
	}
	return proposed, nil
}

// release runs even when the request context is already cancelled; the lock
// TTL covers the case where it cannot reach the store at all.
func (s *GenerationService) release(ctx context.Context, userID string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	if err := s.guard.Release(releaseCtx, userID); err != nil {
		zap.L().Warn("failed to release generation lock", zap.String("user_id", userID), zap.Error(err))
	}
}

func truncateToDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
