package domain

import (
	"strings"
	"time"
)

type Task struct {
	ID              string
	ScheduleID      string
	Name            string
	Time            Clock
	Duration        int
	EmailEnabled    bool
	WhatsAppEnabled bool
	TelegramEnabled bool
	CallEnabled     bool
}

func (t Task) End() Clock {
	return t.Time.Add(t.Duration)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("name", "must not be empty")
	}
	if !t.Time.Valid() {
		return NewValidationError("time", "must be between 00:00 and 23:59")
	}
	if t.Duration <= 0 {
		return NewValidationError("duration", "must be a positive number of minutes")
	}
	if t.End() > MinutesPerDay {
		return &ValidationError{
			Field:  "duration",
			Reason: "task " + t.Name + " ends at " + t.End().String(),
			Err:    ErrScheduleOverflow,
		}
	}
	return nil
}

// TaskList is the ordered task sequence of one schedule. Position is state:
// presentation and reconciliation both depend on it.
type TaskList []Task

func (l TaskList) Clone() TaskList {
	if l == nil {
		return TaskList{}
	}
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}

func (l TaskList) IndexOf(taskID string) int {
	for i, task := range l {
		if task.ID == taskID {
			return i
		}
	}
	return -1
}

// Equal reports whether both lists hold the same tasks, field for field, in
// the same order.
func (l TaskList) Equal(other TaskList) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

func (l TaskList) Validate() error {
	for _, task := range l {
		if err := task.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type Schedule struct {
	ID        string
	UserID    string
	Day       time.Time
	CreatedAt time.Time
	Tasks     TaskList
}

type CreateTaskInput struct {
	Name            string
	Time            Clock
	Duration        int
	EmailEnabled    bool
	WhatsAppEnabled bool
	TelegramEnabled bool
	CallEnabled     bool
}

func (in CreateTaskInput) Task() Task {
	return Task{
		Name:            strings.TrimSpace(in.Name),
		Time:            in.Time,
		Duration:        in.Duration,
		EmailEnabled:    in.EmailEnabled,
		WhatsAppEnabled: in.WhatsAppEnabled,
		TelegramEnabled: in.TelegramEnabled,
		CallEnabled:     in.CallEnabled,
	}
}

// UpdateTaskInput carries only the fields the caller wants to change.
type UpdateTaskInput struct {
	Name            *string
	Time            *Clock
	Duration        *int
	EmailEnabled    *bool
	WhatsAppEnabled *bool
	TelegramEnabled *bool
	CallEnabled     *bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Name == nil && in.Time == nil && in.Duration == nil &&
		in.EmailEnabled == nil && in.WhatsAppEnabled == nil &&
		in.TelegramEnabled == nil && in.CallEnabled == nil
}

func (in UpdateTaskInput) Apply(task Task) Task {
	if in.Name != nil {
		task.Name = strings.TrimSpace(*in.Name)
	}
	if in.Time != nil {
		task.Time = *in.Time
	}
	if in.Duration != nil {
		task.Duration = *in.Duration
	}
	if in.EmailEnabled != nil {
		task.EmailEnabled = *in.EmailEnabled
	}
	if in.WhatsAppEnabled != nil {
		task.WhatsAppEnabled = *in.WhatsAppEnabled
	}
	if in.TelegramEnabled != nil {
		task.TelegramEnabled = *in.TelegramEnabled
	}
	if in.CallEnabled != nil {
		task.CallEnabled = *in.CallEnabled
	}
	return task
}

// UserProfile holds the onboarding answers handed to the schedule generator.
type UserProfile struct {
	Profession string
	WakeTime   Clock
	SleepTime  Clock
	WorkStart  Clock
	WorkEnd    Clock
	Hobbies    []string
}
