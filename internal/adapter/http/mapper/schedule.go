package mapper

import (
	"time"

	"schedsync/internal/adapter/http/dto"
	"schedsync/internal/core/domain"
)

func ToTaskItems(tasks domain.TaskList) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	return dto.TaskItem{
		ID:                task.ID,
		Name:              task.Name,
		Time:              task.Time.String(),
		Duration:          task.Duration,
		EndTime:           task.End().String(),
		IsEmailEnabled:    task.EmailEnabled,
		IsWhatsAppEnabled: task.WhatsAppEnabled,
		IsTelegramEnabled: task.TelegramEnabled,
		IsCallEnabled:     task.CallEnabled,
	}
}

func ToTaskListResponse(scheduleID string, tasks domain.TaskList) dto.TaskListResponse {
	return dto.TaskListResponse{ScheduleID: scheduleID, Tasks: ToTaskItems(tasks)}
}

func ToScheduleItem(schedule domain.Schedule) dto.ScheduleItem {
	return dto.ScheduleItem{
		ID:        schedule.ID,
		UserID:    schedule.UserID,
		Day:       schedule.Day.Format(time.DateOnly),
		CreatedAt: schedule.CreatedAt.Format(time.RFC3339),
		Tasks:     ToTaskItems(schedule.Tasks),
	}
}
