package tests

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schedsync/internal/core/domain"
)

type scheduleServiceMock struct {
	mock.Mock
}

func tasksResult(args mock.Arguments) (domain.TaskList, error) {
	var tasks domain.TaskList
	if value := args.Get(0); value != nil {
		tasks = value.(domain.TaskList)
	}
	return tasks, args.Error(1)
}

func (m *scheduleServiceMock) GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error) {
	args := m.Called(ctx, scheduleID)
	return args.Get(0).(domain.Schedule), args.Error(1)
}

func (m *scheduleServiceMock) Reorder(ctx context.Context, scheduleID string, sourceIndex, targetIndex int) (domain.TaskList, error) {
	return tasksResult(m.Called(ctx, scheduleID, sourceIndex, targetIndex))
}

func (m *scheduleServiceMock) EditTask(ctx context.Context, scheduleID, taskID string, input domain.UpdateTaskInput) (domain.TaskList, error) {
	return tasksResult(m.Called(ctx, scheduleID, taskID, input))
}

func (m *scheduleServiceMock) AddTask(ctx context.Context, scheduleID string, input domain.CreateTaskInput) (domain.TaskList, error) {
	return tasksResult(m.Called(ctx, scheduleID, input))
}

func (m *scheduleServiceMock) DeleteTask(ctx context.Context, scheduleID, taskID string) (domain.TaskList, error) {
	return tasksResult(m.Called(ctx, scheduleID, taskID))
}

func (m *scheduleServiceMock) ReplaceAll(ctx context.Context, scheduleID string, tasks domain.TaskList) (domain.TaskList, error) {
	return tasksResult(m.Called(ctx, scheduleID, tasks))
}

func (m *scheduleServiceMock) ListAdjustments(ctx context.Context, scheduleID string) ([]domain.Adjustment, error) {
	args := m.Called(ctx, scheduleID)

	var adjustments []domain.Adjustment
	if value := args.Get(0); value != nil {
		adjustments = value.([]domain.Adjustment)
	}
	return adjustments, args.Error(1)
}

type generationServiceMock struct {
	mock.Mock
}

func (m *generationServiceMock) Generate(ctx context.Context, userID string, profile domain.UserProfile) (domain.Schedule, error) {
	args := m.Called(ctx, userID, profile)
	return args.Get(0).(domain.Schedule), args.Error(1)
}

func (m *generationServiceMock) IsGenerating(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
