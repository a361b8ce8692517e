package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"schedsync/internal/core/domain"
	"schedsync/internal/core/ports"
)

const systemPrompt = `You are a personal scheduling assistant. Build one realistic day for the user.

Rules:
1. Use 24-hour time (HH:MM) for every start time.
2. Durations are whole minutes, at least 5.
3. Tasks must not overlap and must be listed in chronological order.
4. Start no earlier than the wake time and finish before the sleep time.
5. Keep the work block between the work start and work end.
6. Include meals, breaks and time for the listed hobbies.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "tasks": [
    {"name": "string", "time": "HH:MM", "duration": 30}
  ]
}`

type proposal struct {
	Tasks []proposedTask `json:"tasks"`
}

type proposedTask struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

// Generator asks a chat model for a day plan built from the onboarding profile.
type Generator struct {
	client Client
}

var _ ports.ScheduleGenerator = (*Generator)(nil)

func NewGenerator(client Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Generate(ctx context.Context, profile domain.UserProfile) (domain.TaskList, error) {
	messages := []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: userPrompt(profile)},
	}

	var reply proposal
	if err := g.client.ChatJSON(ctx, messages, &reply); err != nil {
		return nil, err
	}
	if len(reply.Tasks) == 0 {
		return nil, errors.New("model proposed no tasks")
	}

	tasks := make(domain.TaskList, 0, len(reply.Tasks))
	for i, item := range reply.Tasks {
		start, err := domain.ParseClock(strings.TrimSpace(item.Time))
		if err != nil {
			return nil, fmt.Errorf("task %d (%q): %w", i, item.Name, err)
		}
		tasks = append(tasks, domain.Task{
			Name:     strings.TrimSpace(item.Name),
			Time:     start,
			Duration: item.Duration,
		})
	}

	zap.L().Debug("schedule proposed", zap.Int("tasks", len(tasks)))
	return tasks, nil
}

func userPrompt(profile domain.UserProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profession: %s\n", orUnknown(profile.Profession))
	fmt.Fprintf(&b, "Wake time: %s\n", profile.WakeTime)
	fmt.Fprintf(&b, "Sleep time: %s\n", profile.SleepTime)
	fmt.Fprintf(&b, "Work hours: %s to %s\n", profile.WorkStart, profile.WorkEnd)
	if len(profile.Hobbies) > 0 {
		fmt.Fprintf(&b, "Hobbies: %s\n", strings.Join(profile.Hobbies, ", "))
	}
	return b.String()
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "not specified"
	}
	return value
}
