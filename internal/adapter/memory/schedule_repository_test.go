package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"schedsync/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestScheduleRepository_CreateAndFind(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	created, err := repo.CreateSchedule(ctx, "u1", day, domain.TaskList{{Name: "Run", Time: 420, Duration: 30}})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Tasks, 1)
	require.NotEmpty(t, created.Tasks[0].ID)
	require.Equal(t, created.ID, created.Tasks[0].ScheduleID)

	found, err := repo.FindScheduleForDay(ctx, "u1", day)
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = repo.FindScheduleForDay(ctx, "u1", day.AddDate(0, 0, 1))
	require.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestScheduleRepository_CreateScheduleOncePerUserAndDay(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := repo.CreateSchedule(ctx, "u1", day, nil)
	require.NoError(t, err)

	_, err = repo.CreateSchedule(ctx, "u1", day.Add(6*time.Hour), nil)
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.Contains(t, err.Error(), "already exists")

	_, err = repo.CreateSchedule(ctx, "u2", day, nil)
	require.NoError(t, err)
	_, err = repo.CreateSchedule(ctx, "u1", day.AddDate(0, 0, 1), nil)
	require.NoError(t, err)
}

func TestScheduleRepository_MutateTasksRecordsAdjustment(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()
	created, err := repo.CreateSchedule(ctx, "u1", time.Now(), domain.TaskList{{Name: "Run", Time: 420, Duration: 30}})
	require.NoError(t, err)
	taskID := created.Tasks[0].ID

	tasks, err := repo.MutateTasks(ctx, created.ID, func(current domain.TaskList) (domain.TaskList, error) {
		current[0].Time = 450
		return current, nil
	})
	require.NoError(t, err)
	require.Equal(t, domain.Clock(450), tasks[0].Time)

	adjustments, err := repo.ListAdjustments(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	require.Equal(t, []domain.Change{domain.TimeChange{TaskID: taskID, From: 420, To: 450}}, adjustments[0].Changes)
}

func TestScheduleRepository_MutateTasksAbortsOnError(t *testing.T) {
	repo := NewScheduleRepository()
	ctx := context.Background()
	created, err := repo.CreateSchedule(ctx, "u1", time.Now(), domain.TaskList{{Name: "Run", Time: 420, Duration: 30}})
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = repo.MutateTasks(ctx, created.ID, func(current domain.TaskList) (domain.TaskList, error) {
		current[0].Time = 0
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	loaded, err := repo.GetSchedule(ctx, created.ID)
	require.NoError(t, err)
	tasks := loaded.Tasks
	require.Equal(t, domain.Clock(420), tasks[0].Time)

	_, err = repo.MutateTasks(ctx, "missing", nil)
	require.ErrorIs(t, err, domain.ErrScheduleNotFound)
}
