package service

import (
	"context"
	"strings"

	"schedsync/internal/core/domain"
	"schedsync/internal/core/ports"
	"schedsync/internal/core/reconcile"
)

type ScheduleService struct {
	repository      ports.ScheduleRepository
	compactOnDelete bool
}

type ScheduleOption func(*ScheduleService)

// WithDeleteCompaction pulls the tasks after a deleted one back so the gap
// it leaves is closed.
func WithDeleteCompaction(enabled bool) ScheduleOption {
	return func(s *ScheduleService) {
		s.compactOnDelete = enabled
	}
}

func NewScheduleService(repository ports.ScheduleRepository, opts ...ScheduleOption) *ScheduleService {
	s := &ScheduleService{repository: repository}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ScheduleService = (*ScheduleService)(nil)

func (s *ScheduleService) GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error) {
	if err := validateID("schedule_id", scheduleID); err != nil {
		return domain.Schedule{}, err
	}
	return s.repository.GetSchedule(ctx, scheduleID)
}

func (s *ScheduleService) Reorder(ctx context.Context, scheduleID string, sourceIndex, targetIndex int) (domain.TaskList, error) {
	if err := validateID("schedule_id", scheduleID); err != nil {
		return nil, err
	}
	if sourceIndex < 0 || targetIndex < 0 {
		return nil, indexError("index", "must not be negative")
	}

	return s.repository.MutateTasks(ctx, scheduleID, func(tasks domain.TaskList) (domain.TaskList, error) {
		if sourceIndex >= len(tasks) {
			return nil, indexError("source_index", "out of range")
		}
		if targetIndex >= len(tasks) {
			return nil, indexError("target_index", "out of range")
		}
		return withinDay(reconcile.Move(tasks, sourceIndex, targetIndex))
	})
}

func (s *ScheduleService) EditTask(ctx context.Context, scheduleID, taskID string, input domain.UpdateTaskInput) (domain.TaskList, error) {
	if err := validateID("schedule_id", scheduleID); err != nil {
		return nil, err
	}
	if err := validateID("task_id", taskID); err != nil {
		return nil, err
	}
	if input.IsEmpty() {
		return nil, domain.NewValidationError("task", "no fields to update")
	}

	return s.repository.MutateTasks(ctx, scheduleID, func(tasks domain.TaskList) (domain.TaskList, error) {
		index := tasks.IndexOf(taskID)
		if index < 0 {
			return nil, domain.ErrTaskNotFound
		}
		updated := input.Apply(tasks[index])
		if err := updated.Validate(); err != nil {
			return nil, err
		}
		return withinDay(reconcile.Edit(tasks, updated))
	})
}

func (s *ScheduleService) AddTask(ctx context.Context, scheduleID string, input domain.CreateTaskInput) (domain.TaskList, error) {
	if err := validateID("schedule_id", scheduleID); err != nil {
		return nil, err
	}
	task := input.Task()
	if err := task.Validate(); err != nil {
		return nil, err
	}

	return s.repository.MutateTasks(ctx, scheduleID, func(tasks domain.TaskList) (domain.TaskList, error) {
		task.ScheduleID = scheduleID
		return append(tasks, task), nil
	})
}

func (s *ScheduleService) DeleteTask(ctx context.Context, scheduleID, taskID string) (domain.TaskList, error) {
	if err := validateID("schedule_id", scheduleID); err != nil {
		return nil, err
	}
	if err := validateID("task_id", taskID); err != nil {
		return nil, err
	}

	return s.repository.MutateTasks(ctx, scheduleID, func(tasks domain.TaskList) (domain.TaskList, error) {
		index := tasks.IndexOf(taskID)
		if index < 0 {
			return nil, domain.ErrTaskNotFound
		}
		removed := tasks[index]
		remaining := append(tasks[:index:index], tasks[index+1:]...)
		if s.compactOnDelete {
			remaining = reconcile.Cascade(remaining, index, removed.Time)
		}
		return remaining, nil
	})
}

func (s *ScheduleService) ReplaceAll(ctx context.Context, scheduleID string, tasks domain.TaskList) (domain.TaskList, error) {
	if err := validateID("schedule_id", scheduleID); err != nil {
		return nil, err
	}
	if err := tasks.Validate(); err != nil {
		return nil, err
	}
	return s.repository.ReplaceTasks(ctx, scheduleID, tasks)
}

func (s *ScheduleService) ListAdjustments(ctx context.Context, scheduleID string) ([]domain.Adjustment, error) {
	if _, err := s.GetSchedule(ctx, scheduleID); err != nil {
		return nil, err
	}
	return s.repository.ListAdjustments(ctx, scheduleID)
}

func withinDay(tasks domain.TaskList) (domain.TaskList, error) {
	if late, overflow := reconcile.Overflow(tasks); overflow {
		return nil, &domain.ValidationError{
			Field:  "time",
			Reason: "task " + late.Name + " would end at " + late.End().String(),
			Err:    domain.ErrScheduleOverflow,
		}
	}
	return tasks, nil
}

func validateID(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "is required")
	}
	return nil
}

func indexError(field, reason string) error {
	return &domain.ValidationError{Field: field, Reason: reason, Err: domain.ErrInvalidIndex}
}
