package dto

type ProfileRequest struct {
	Profession string   `json:"profession" binding:"max=255"`
	WakeTime   string   `json:"wake_time" binding:"required"`
	SleepTime  string   `json:"sleep_time" binding:"required"`
	WorkStart  string   `json:"work_start" binding:"required"`
	WorkEnd    string   `json:"work_end" binding:"required"`
	Hobbies    []string `json:"hobbies" binding:"max=20,dive,max=100"`
}

type GenerateRequest struct {
	UserID  string         `json:"user_id" binding:"required,max=64"`
	Profile ProfileRequest `json:"profile"`
}

type GenerationStatus struct {
	UserID     string `json:"user_id"`
	Generating bool   `json:"generating"`
}
