// Package memory keeps schedules in process memory. It is used for local
// runs without MySQL and as the storage behind service tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"schedsync/internal/core/domain"
	"schedsync/internal/core/ports"
)

type ScheduleRepository struct {
	mu          sync.Mutex
	schedules   map[string]domain.Schedule
	adjustments map[string][]domain.Adjustment
	now         func() time.Time
}

var _ ports.ScheduleRepository = (*ScheduleRepository)(nil)

func NewScheduleRepository() *ScheduleRepository {
	return &ScheduleRepository{
		schedules:   make(map[string]domain.Schedule),
		adjustments: make(map[string][]domain.Adjustment),
		now:         time.Now,
	}
}

func (r *ScheduleRepository) GetSchedule(_ context.Context, scheduleID string) (domain.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule, ok := r.schedules[scheduleID]
	if !ok {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}
	schedule.Tasks = schedule.Tasks.Clone()
	return schedule, nil
}

func (r *ScheduleRepository) FindScheduleForDay(_ context.Context, userID string, day time.Time) (domain.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, schedule := range r.schedules {
		if schedule.UserID == userID && sameDay(schedule.Day, day) {
			schedule.Tasks = schedule.Tasks.Clone()
			return schedule, nil
		}
	}
	return domain.Schedule{}, domain.ErrScheduleNotFound
}

func (r *ScheduleRepository) CreateSchedule(_ context.Context, userID string, day time.Time, tasks domain.TaskList) (domain.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.schedules {
		if existing.UserID == userID && sameDay(existing.Day, day) {
			return domain.Schedule{}, fmt.Errorf("%w: schedule for %s on %s already exists", domain.ErrPersistence, userID, day.Format(time.DateOnly))
		}
	}

	schedule := domain.Schedule{
		ID:        uuid.NewString(),
		UserID:    userID,
		Day:       day,
		CreatedAt: r.now().UTC(),
	}
	schedule.Tasks = assignIDs(tasks.Clone(), schedule.ID)
	r.schedules[schedule.ID] = schedule

	out := schedule
	out.Tasks = schedule.Tasks.Clone()
	return out, nil
}

func (r *ScheduleRepository) MutateTasks(_ context.Context, scheduleID string, mutate ports.TaskMutation) (domain.TaskList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	schedule, ok := r.schedules[scheduleID]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}

	before := schedule.Tasks
	after, err := mutate(before.Clone())
	if err != nil {
		return nil, err
	}
	after = assignIDs(after.Clone(), scheduleID)

	if changes := domain.DiffTasks(before, after); len(changes) > 0 {
		r.adjustments[scheduleID] = append(r.adjustments[scheduleID], domain.Adjustment{
			ID:         uuid.NewString(),
			ScheduleID: scheduleID,
			Changes:    changes,
			CreatedAt:  r.now().UTC(),
		})
	}

	schedule.Tasks = after
	r.schedules[scheduleID] = schedule
	return after.Clone(), nil
}

func (r *ScheduleRepository) ReplaceTasks(ctx context.Context, scheduleID string, tasks domain.TaskList) (domain.TaskList, error) {
	return r.MutateTasks(ctx, scheduleID, func(domain.TaskList) (domain.TaskList, error) {
		return tasks, nil
	})
}

func (r *ScheduleRepository) ListAdjustments(_ context.Context, scheduleID string) ([]domain.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	adjustments := make([]domain.Adjustment, len(r.adjustments[scheduleID]))
	copy(adjustments, r.adjustments[scheduleID])
	return adjustments, nil
}

func assignIDs(tasks domain.TaskList, scheduleID string) domain.TaskList {
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
		tasks[i].ScheduleID = scheduleID
	}
	return tasks
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
