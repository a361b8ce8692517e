package mapper

import (
	"time"

	"schedsync/internal/adapter/http/dto"
	"schedsync/internal/core/domain"
)

func ToAdjustmentItems(adjustments []domain.Adjustment) []dto.AdjustmentItem {
	items := make([]dto.AdjustmentItem, 0, len(adjustments))
	for _, adjustment := range adjustments {
		changes := make([]dto.ChangeItem, 0, len(adjustment.Changes))
		for _, change := range adjustment.Changes {
			changes = append(changes, ToChangeItem(change))
		}
		items = append(items, dto.AdjustmentItem{
			ID:        adjustment.ID,
			CreatedAt: adjustment.CreatedAt.Format(time.RFC3339),
			Changes:   changes,
		})
	}
	return items
}

func ToChangeItem(change domain.Change) dto.ChangeItem {
	item := dto.ChangeItem{TaskID: change.TaskRef(), ChangeType: string(change.Type())}

	switch c := change.(type) {
	case domain.TimeChange:
		item.Details = map[string]any{"from_time": c.From.String(), "to_time": c.To.String()}
	case domain.DurationChange:
		item.Details = map[string]any{"from_duration": c.From, "to_duration": c.To}
	case domain.TaskAdded:
		item.Details = map[string]any{"name": c.Name, "time": c.Time.String(), "duration": c.Duration}
	case domain.TaskRemoved:
		item.Details = map[string]any{"name": c.Name, "time": c.Time.String(), "duration": c.Duration}
	}

	return item
}
