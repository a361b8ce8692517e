package dto

type TaskItem struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Time              string `json:"time"`
	Duration          int    `json:"duration"`
	EndTime           string `json:"end_time"`
	IsEmailEnabled    bool   `json:"is_email_enabled"`
	IsWhatsAppEnabled bool   `json:"is_whatsapp_enabled"`
	IsTelegramEnabled bool   `json:"is_telegram_enabled"`
	IsCallEnabled     bool   `json:"is_call_enabled"`
}

type ScheduleItem struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Day       string     `json:"day"`
	CreatedAt string     `json:"created_at"`
	Tasks     []TaskItem `json:"tasks"`
}

// TaskListResponse is returned by every mutation: the full reconciled board.
type TaskListResponse struct {
	ScheduleID string     `json:"schedule_id"`
	Tasks      []TaskItem `json:"tasks"`
}

type ReorderRequest struct {
	SourceIndex *int `json:"source_index" binding:"required"`
	TargetIndex *int `json:"target_index" binding:"required"`
}

type CreateTaskRequest struct {
	Name              string `json:"name" binding:"required,max=255"`
	Time              string `json:"time" binding:"required"`
	Duration          int    `json:"duration" binding:"required"`
	IsEmailEnabled    *bool  `json:"is_email_enabled"`
	IsWhatsAppEnabled *bool  `json:"is_whatsapp_enabled"`
	IsTelegramEnabled *bool  `json:"is_telegram_enabled"`
	IsCallEnabled     *bool  `json:"is_call_enabled"`
}

type UpdateTaskRequest struct {
	Name              *string `json:"name" binding:"omitempty,max=255"`
	Time              *string `json:"time"`
	Duration          *int    `json:"duration"`
	IsEmailEnabled    *bool   `json:"is_email_enabled"`
	IsWhatsAppEnabled *bool   `json:"is_whatsapp_enabled"`
	IsTelegramEnabled *bool   `json:"is_telegram_enabled"`
	IsCallEnabled     *bool   `json:"is_call_enabled"`
}
