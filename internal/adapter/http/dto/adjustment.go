package dto

type ChangeItem struct {
	TaskID     string         `json:"task_id"`
	ChangeType string         `json:"change_type"`
	Details    map[string]any `json:"details"`
}

type AdjustmentItem struct {
	ID        string       `json:"id"`
	CreatedAt string       `json:"created_at"`
	Changes   []ChangeItem `json:"changes"`
}
