// Package reconcile recomputes task start times after a schedule changes.
// All functions are pure: they never modify their input and the returned list
// never shares its backing array with it.
package reconcile

import "schedsync/internal/core/domain"

// Move relocates the task at sourceIndex to targetIndex and lays the affected
// window out contiguously from the window's original start, so that the
// window ends where it ended before the move. Tasks outside the window keep
// their times. Both indices must be valid.
func Move(tasks domain.TaskList, sourceIndex, targetIndex int) domain.TaskList {
	out := tasks.Clone()
	if sourceIndex == targetIndex {
		return out
	}

	windowStart := min(sourceIndex, targetIndex)
	windowEnd := max(sourceIndex, targetIndex)
	originalStart := tasks[windowStart].Time
	originalEnd := tasks[windowEnd].End()

	moved := tasks[sourceIndex]
	cursor := originalStart

	if targetIndex < sourceIndex {
		moved.Time = cursor
		cursor = cursor.Add(moved.Duration)
		for i := targetIndex; i < sourceIndex; i++ {
			displaced := tasks[i]
			displaced.Time = cursor
			cursor = cursor.Add(displaced.Duration)
			out[i+1] = displaced
		}
		out[targetIndex] = moved
	} else {
		for i := sourceIndex; i < targetIndex; i++ {
			shifted := tasks[i+1]
			shifted.Time = cursor
			cursor = cursor.Add(shifted.Duration)
			out[i] = shifted
		}
		moved.Time = cursor
		out[targetIndex] = moved
	}

	if out[windowEnd].End() != originalEnd {
		layout(out, windowStart, windowEnd, originalStart)
	}

	return out
}

// Edit replaces the task with edited.ID in place. When its time or duration
// changed, every later task is pushed to start where its predecessor ends.
// Earlier tasks are never touched. An unknown ID returns an unchanged copy.
func Edit(tasks domain.TaskList, edited domain.Task) domain.TaskList {
	out := tasks.Clone()
	index := out.IndexOf(edited.ID)
	if index < 0 {
		return out
	}

	previous := out[index]
	out[index] = edited
	if previous.Time == edited.Time && previous.Duration == edited.Duration {
		return out
	}

	if index+1 < len(out) {
		layout(out, index+1, len(out)-1, edited.End())
	}
	return out
}

// Cascade lays out tasks[from:] back to back starting at start.
func Cascade(tasks domain.TaskList, from int, start domain.Clock) domain.TaskList {
	out := tasks.Clone()
	if from < 0 || from >= len(out) {
		return out
	}
	layout(out, from, len(out)-1, start)
	return out
}

// layout writes contiguous times over tasks[first..last] in place.
func layout(tasks domain.TaskList, first, last int, start domain.Clock) {
	cursor := start
	for i := first; i <= last; i++ {
		tasks[i].Time = cursor
		cursor = cursor.Add(tasks[i].Duration)
	}
}

// Overflow returns the first task that ends after midnight.
func Overflow(tasks domain.TaskList) (domain.Task, bool) {
	for _, task := range tasks {
		if task.End() > domain.MinutesPerDay {
			return task, true
		}
	}
	return domain.Task{}, false
}
