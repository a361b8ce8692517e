package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type ChangeType string

const (
	ChangeTypeTime        ChangeType = "time_adjustment"
	ChangeTypeDuration    ChangeType = "duration_adjustment"
	ChangeTypeTaskAdded   ChangeType = "task_added"
	ChangeTypeTaskRemoved ChangeType = "task_removed"
)

// Change is one entry of an adjustment log. The set of variants is closed:
// TimeChange, DurationChange, TaskAdded and TaskRemoved.
type Change interface {
	Type() ChangeType
	TaskRef() string
	isChange()
}

type TimeChange struct {
	TaskID string
	From   Clock
	To     Clock
}

type DurationChange struct {
	TaskID string
	From   int
	To     int
}

type TaskAdded struct {
	TaskID   string
	Name     string
	Time     Clock
	Duration int
}

type TaskRemoved struct {
	TaskID   string
	Name     string
	Time     Clock
	Duration int
}

func (c TimeChange) Type() ChangeType     { return ChangeTypeTime }
func (c DurationChange) Type() ChangeType { return ChangeTypeDuration }
func (c TaskAdded) Type() ChangeType      { return ChangeTypeTaskAdded }
func (c TaskRemoved) Type() ChangeType    { return ChangeTypeTaskRemoved }

func (c TimeChange) TaskRef() string     { return c.TaskID }
func (c DurationChange) TaskRef() string { return c.TaskID }
func (c TaskAdded) TaskRef() string      { return c.TaskID }
func (c TaskRemoved) TaskRef() string    { return c.TaskID }

func (TimeChange) isChange()     {}
func (DurationChange) isChange() {}
func (TaskAdded) isChange()      {}
func (TaskRemoved) isChange()    {}

type Adjustment struct {
	ID         string
	ScheduleID string
	Changes    []Change
	CreatedAt  time.Time
}

// DiffTasks lists the changes that turn before into after, matching tasks by ID.
// Changes for surviving and new tasks follow the order of after; removals
// follow the order of before.
func DiffTasks(before, after TaskList) []Change {
	previous := make(map[string]Task, len(before))
	for _, task := range before {
		previous[task.ID] = task
	}

	var changes []Change
	kept := make(map[string]struct{}, len(after))
	for _, task := range after {
		old, ok := previous[task.ID]
		if !ok {
			changes = append(changes, TaskAdded{TaskID: task.ID, Name: task.Name, Time: task.Time, Duration: task.Duration})
			continue
		}
		kept[task.ID] = struct{}{}
		if old.Time != task.Time {
			changes = append(changes, TimeChange{TaskID: task.ID, From: old.Time, To: task.Time})
		}
		if old.Duration != task.Duration {
			changes = append(changes, DurationChange{TaskID: task.ID, From: old.Duration, To: task.Duration})
		}
	}

	for _, task := range before {
		if _, ok := kept[task.ID]; ok {
			continue
		}
		changes = append(changes, TaskRemoved{TaskID: task.ID, Name: task.Name, Time: task.Time, Duration: task.Duration})
	}

	return changes
}

type changeRecord struct {
	TaskID     string          `json:"task_id"`
	ChangeType ChangeType      `json:"change_type"`
	Details    json.RawMessage `json:"details"`
}

type timeDetails struct {
	FromTime string `json:"from_time"`
	ToTime   string `json:"to_time"`
}

type durationDetails struct {
	FromDuration int `json:"from_duration"`
	ToDuration   int `json:"to_duration"`
}

type taskDetails struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

// EncodeChanges serializes a change set as a list of
// {task_id, change_type, details} records.
func EncodeChanges(changes []Change) ([]byte, error) {
	records := make([]changeRecord, 0, len(changes))
	for _, change := range changes {
		var details any
		switch c := change.(type) {
		case TimeChange:
			details = timeDetails{FromTime: c.From.String(), ToTime: c.To.String()}
		case DurationChange:
			details = durationDetails{FromDuration: c.From, ToDuration: c.To}
		case TaskAdded:
			details = taskDetails{Name: c.Name, Time: c.Time.String(), Duration: c.Duration}
		case TaskRemoved:
			details = taskDetails{Name: c.Name, Time: c.Time.String(), Duration: c.Duration}
		default:
			return nil, fmt.Errorf("unknown change %T", change)
		}
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, err
		}
		records = append(records, changeRecord{TaskID: change.TaskRef(), ChangeType: change.Type(), Details: raw})
	}
	return json.Marshal(records)
}

func DecodeChanges(data []byte) ([]Change, error) {
	var records []changeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode changes: %w", err)
	}

	changes := make([]Change, 0, len(records))
	for _, record := range records {
		change, err := decodeChange(record)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, nil
}

func decodeChange(record changeRecord) (Change, error) {
	switch record.ChangeType {
	case ChangeTypeTime:
		var d timeDetails
		if err := json.Unmarshal(record.Details, &d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", record.ChangeType, err)
		}
		from, err := ParseClock(d.FromTime)
		if err != nil {
			return nil, err
		}
		to, err := ParseClock(d.ToTime)
		if err != nil {
			return nil, err
		}
		return TimeChange{TaskID: record.TaskID, From: from, To: to}, nil
	case ChangeTypeDuration:
		var d durationDetails
		if err := json.Unmarshal(record.Details, &d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", record.ChangeType, err)
		}
		return DurationChange{TaskID: record.TaskID, From: d.FromDuration, To: d.ToDuration}, nil
	case ChangeTypeTaskAdded, ChangeTypeTaskRemoved:
		var d taskDetails
		if err := json.Unmarshal(record.Details, &d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", record.ChangeType, err)
		}
		at, err := ParseClock(d.Time)
		if err != nil {
			return nil, err
		}
		if record.ChangeType == ChangeTypeTaskAdded {
			return TaskAdded{TaskID: record.TaskID, Name: d.Name, Time: at, Duration: d.Duration}, nil
		}
		return TaskRemoved{TaskID: record.TaskID, Name: d.Name, Time: at, Duration: d.Duration}, nil
	default:
		return nil, fmt.Errorf("unknown change type %q", record.ChangeType)
	}
}
