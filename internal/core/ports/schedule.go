package ports

import (
	"context"
	"time"

	"schedsync/internal/core/domain"
)

// TaskMutation transforms the current task list of a schedule into the list
// that replaces it. Returning an error aborts the write.
type TaskMutation func(current domain.TaskList) (domain.TaskList, error)

type ScheduleRepository interface {
	GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error)
	FindScheduleForDay(ctx context.Context, userID string, day time.Time) (domain.Schedule, error)
	CreateSchedule(ctx context.Context, userID string, day time.Time, tasks domain.TaskList) (domain.Schedule, error)
	// MutateTasks loads, transforms and replaces the task list as one atomic
	// unit. Concurrent calls for the same schedule are serialized. Tasks
	// without an ID are assigned one.
	MutateTasks(ctx context.Context, scheduleID string, mutate TaskMutation) (domain.TaskList, error)
	ReplaceTasks(ctx context.Context, scheduleID string, tasks domain.TaskList) (domain.TaskList, error)
	ListAdjustments(ctx context.Context, scheduleID string) ([]domain.Adjustment, error)
}

type ScheduleService interface {
	GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error)
	Reorder(ctx context.Context, scheduleID string, sourceIndex, targetIndex int) (domain.TaskList, error)
	EditTask(ctx context.Context, scheduleID, taskID string, input domain.UpdateTaskInput) (domain.TaskList, error)
	AddTask(ctx context.Context, scheduleID string, input domain.CreateTaskInput) (domain.TaskList, error)
	DeleteTask(ctx context.Context, scheduleID, taskID string) (domain.TaskList, error)
	ReplaceAll(ctx context.Context, scheduleID string, tasks domain.TaskList) (domain.TaskList, error)
	ListAdjustments(ctx context.Context, scheduleID string) ([]domain.Adjustment, error)
}
