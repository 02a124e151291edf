package schedule

import (
	"sort"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/interval"
	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// BuildFreeSlots carves per-day free slots for both contexts across the
// horizon by subtracting same-context busy intervals from each day's
// bounding window. Work and personal windows may overlap in wall-clock
// time; their slots are computed independently and both kept; context
// is a hard matching constraint downstream.
func BuildFreeSlots(now time.Time, cfg Config, busy []BufferedBusyInterval) []FreeSlot {
	busyByContext := map[model.Context][]model.TimeInterval{}
	for _, b := range busy {
		busyByContext[b.Context] = append(busyByContext[b.Context], b.Interval)
	}
	// Suppression directives act as busy time for their context
	// (both contexts when unset), so partially covered days keep the
	// uncovered remainder.
	for _, s := range cfg.Suppressions {
		if s.Context == "" {
			busyByContext[model.ContextWork] = append(busyByContext[model.ContextWork], s.Range)
			busyByContext[model.ContextPersonal] = append(busyByContext[model.ContextPersonal], s.Range)
			continue
		}
		busyByContext[s.Context] = append(busyByContext[s.Context], s.Range)
	}

	local := now.In(cfg.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, cfg.Location)

	windows := []struct {
		ctx model.Context
		win DayWindow
	}{
		{model.ContextWork, cfg.WorkDayWindow},
		{model.ContextPersonal, cfg.PersonalDayWindow},
	}

	var slots []FreeSlot
	for day := 0; day < cfg.HorizonDays; day++ {
		dayStart := midnight.AddDate(0, 0, day)

		for _, w := range windows {
			window := model.TimeInterval{
				Start: dayStart.Add(w.win.Start),
				End:   dayStart.Add(w.win.End),
			}
			// Never offer time that has already passed.
			if !window.End.After(now) {
				continue
			}
			if window.Start.Before(now) {
				window.Start = now
			}

			for _, free := range interval.Subtract(window, busyByContext[w.ctx]) {
				slots = append(slots, FreeSlot{Interval: free, Context: w.ctx})
			}
		}
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].Interval.Start.Before(slots[j].Interval.Start)
	})
	return slots
}
