package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// AssignTasks places prioritized tasks into free slots with a single
// greedy first-fit pass. For every task, slots are scanned in
// chronological order restricted to the task's context; the first slot
// big enough receives the task's leading sub-interval and shrinks by
// that amount. There is no backtracking: an earlier assignment is never
// revisited even if a later task would have fit it better. Tasks that
// fit nowhere in the horizon come back in the unscheduled list; that
// is an outcome, not an error.
//
// slots is mutated: consumed slots shrink from the front and empty
// slots are removed.
func AssignTasks(
	now time.Time,
	tasks []model.Task,
	slots []FreeSlot,
	hotDays map[string]bool,
	loc *time.Location,
) (assignments []model.Assignment, unscheduled []model.Task) {
	remaining := slots

	for _, t := range tasks {
		idx := findSlot(t, now, remaining, hotDays, loc)
		if idx < 0 {
			unscheduled = append(unscheduled, t)
			continue
		}

		slot := &remaining[idx]
		used := model.TimeInterval{
			Start: slot.Interval.Start,
			End:   slot.Interval.Start.Add(t.EstimatedDuration),
		}
		assignments = append(assignments, model.Assignment{
			ID:       uuid.NewString(),
			Task:     t,
			Interval: used,
		})

		slot.Interval.Start = used.End
		if slot.Interval.Duration() <= 0 {
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
	}
	return assignments, unscheduled
}

// findSlot returns the index of the first fitting slot, or -1. A slot
// starting at or after the task's deadline is never used; overdue tasks
// are exempt, their deadline has passed and they go wherever they fit
// soonest.
func findSlot(t model.Task, now time.Time, slots []FreeSlot, hotDays map[string]bool, loc *time.Location) int {
	for i, slot := range slots {
		if slot.Context != t.Context {
			continue
		}
		if slot.Interval.Duration() < t.EstimatedDuration {
			continue
		}
		if t.HasDeadline() && t.Deadline.After(now) && !slot.Interval.Start.Before(t.Deadline) {
			continue
		}
		day := slot.Interval.Start.In(loc).Format(DateFormatISO)
		if WeatherIneligible(t, day, hotDays) {
			continue
		}
		return i
	}
	return -1
}
