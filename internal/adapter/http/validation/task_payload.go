package validation

import (
	"bytes"
	"encoding/json"
	"strings"

	"schedsync/internal/adapter/http/dto"
	"schedsync/internal/core/domain"
)

var taskUpdateFields = []string{
	"name", "time", "duration",
	"is_email_enabled", "is_whatsapp_enabled", "is_telegram_enabled", "is_call_enabled",
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	if err := rejectNullFields(raw); err != nil {
		return domain.CreateTaskInput{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateTaskInput{}, domain.NewValidationError("name", "must not be empty")
	}

	start, err := parseTime("time", req.Time)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	if req.Duration <= 0 {
		return domain.CreateTaskInput{}, domain.NewValidationError("duration", "must be a positive number of minutes")
	}

	return domain.CreateTaskInput{
		Name:            name,
		Time:            start,
		Duration:        req.Duration,
		EmailEnabled:    flag(req.IsEmailEnabled),
		WhatsAppEnabled: flag(req.IsWhatsAppEnabled),
		TelegramEnabled: flag(req.IsTelegramEnabled),
		CallEnabled:     flag(req.IsCallEnabled),
	}, nil
}

// BuildUpdateTaskInput requires at least one known field. A field sent as
// null is rejected rather than read as "unchanged".
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasAnyField(raw, taskUpdateFields) {
		return domain.UpdateTaskInput{}, domain.NewValidationError("body", "no updatable field provided")
	}
	if err := rejectNullFields(raw); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	input := domain.UpdateTaskInput{
		Duration:        req.Duration,
		EmailEnabled:    req.IsEmailEnabled,
		WhatsAppEnabled: req.IsWhatsAppEnabled,
		TelegramEnabled: req.IsTelegramEnabled,
		CallEnabled:     req.IsCallEnabled,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.UpdateTaskInput{}, domain.NewValidationError("name", "must not be empty")
		}
		input.Name = &name
	}

	if req.Time != nil {
		start, err := parseTime("time", *req.Time)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.Time = &start
	}

	if req.Duration != nil && *req.Duration <= 0 {
		return domain.UpdateTaskInput{}, domain.NewValidationError("duration", "must be a positive number of minutes")
	}

	return input, nil
}

func BuildUserProfile(req dto.ProfileRequest) (domain.UserProfile, error) {
	profile := domain.UserProfile{Profession: strings.TrimSpace(req.Profession)}

	clocks := []struct {
		field string
		value string
		dest  *domain.Clock
	}{
		{field: "profile.wake_time", value: req.WakeTime, dest: &profile.WakeTime},
		{field: "profile.sleep_time", value: req.SleepTime, dest: &profile.SleepTime},
		{field: "profile.work_start", value: req.WorkStart, dest: &profile.WorkStart},
		{field: "profile.work_end", value: req.WorkEnd, dest: &profile.WorkEnd},
	}

	for _, c := range clocks {
		parsed, err := parseTime(c.field, c.value)
		if err != nil {
			return domain.UserProfile{}, err
		}
		*c.dest = parsed
	}

	if profile.WorkEnd <= profile.WorkStart {
		return domain.UserProfile{}, domain.NewValidationError("profile.work_end", "must be after work_start")
	}

	for _, hobby := range req.Hobbies {
		if hobby = strings.TrimSpace(hobby); hobby != "" {
			profile.Hobbies = append(profile.Hobbies, hobby)
		}
	}

	return profile, nil
}

func parseTime(field, value string) (domain.Clock, error) {
	start, err := domain.ParseClock(strings.TrimSpace(value))
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Reason: "must be HH:MM", Err: err}
	}
	return start, nil
}

func rejectNullFields(raw map[string]json.RawMessage) error {
	for _, field := range taskUpdateFields {
		if value, ok := raw[field]; ok && isJSONNull(value) {
			return domain.NewValidationError(field, "must not be null")
		}
	}
	return nil
}

func hasAnyField(raw map[string]json.RawMessage, fields []string) bool {
	for _, field := range fields {
		if _, ok := raw[field]; ok {
			return true
		}
	}
	return false
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

func flag(value *bool) bool {
	return value != nil && *value
}
