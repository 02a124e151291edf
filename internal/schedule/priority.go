package schedule

import (
	"sort"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// maxDuration caps the duration signal at a full working day.
const maxDuration = 8 * time.Hour

// Score is a task's primary priority score: a weighted normalized sum
// of importance and deadline proximity. Energy and duration deliberately
// do not contribute here; they only break ties between tasks of equal
// primary score.
func Score(t model.Task, now time.Time, w Weights) float64 {
	return w.Importance*importanceNorm(t) + w.Deadline*deadlineProximity(t, now)
}

// deadlineProximity is the inverse of the distance to the deadline in
// days. Overdue tasks clip to maximal proximity rather than going
// negative; tasks without a deadline have zero urgency.
func deadlineProximity(t model.Task, now time.Time) float64 {
	if !t.HasDeadline() {
		return 0
	}
	days := t.Deadline.Sub(now).Hours() / 24
	if days < 0 {
		return 1
	}
	return 1 / (days + 1)
}

func importanceNorm(t model.Task) float64 {
	return float64(t.Importance) / float64(model.ImportanceVeryHigh)
}

// tieBreak ranks tasks of equal primary score using the energy and
// duration weights.
func tieBreak(t model.Task, w Weights) float64 {
	energy := float64(t.EnergyLevel) / float64(model.EnergyHigh)
	dur := float64(t.EstimatedDuration) / float64(maxDuration)
	if dur > 1 {
		dur = 1
	}
	return w.Energy*energy + w.Duration*dur
}

// Prioritize returns a new slice sorted by descending priority score.
// The sort is stable: tasks that tie on both the primary score and the
// tie-break keep their original fetch order.
func Prioritize(tasks []model.Task, now time.Time, w Weights) []model.Task {
	ordered := make([]model.Task, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		si, sj := Score(ordered[i], now, w), Score(ordered[j], now, w)
		if si != sj {
			return si > sj
		}
		return tieBreak(ordered[i], w) > tieBreak(ordered[j], w)
	})
	return ordered
}
