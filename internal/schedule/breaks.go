package schedule

import (
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/interval"
	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// breakStep is the granularity at which a break slides within its window
// looking for a conflict-free placement.
const breakStep = 15 * time.Minute

// insertDailyBreaks reserves each configured break on every day of the
// horizon and returns the reservations as busy intervals. A break
// slides through its window in fixed steps and takes the longest
// placement, up to its full duration, that avoids same-context busy
// time. When meetings cover the whole window the break is forced at
// the window start at its minimum length; recovery time is protected
// even on packed days.
func insertDailyBreaks(now time.Time, cfg Config, busy []BufferedBusyInterval) []BufferedBusyInterval {
	if len(cfg.DailyBreaks) == 0 {
		return nil
	}

	busyByContext := map[model.Context][]model.TimeInterval{}
	for _, b := range busy {
		busyByContext[b.Context] = append(busyByContext[b.Context], b.Interval)
	}

	local := now.In(cfg.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, cfg.Location)

	var out []BufferedBusyInterval
	for day := 0; day < cfg.HorizonDays; day++ {
		dayStart := midnight.AddDate(0, 0, day)
		for _, brk := range cfg.DailyBreaks {
			placed := placeBreak(dayStart, brk, busyByContext[brk.Context])
			if !placed.End.After(now) {
				continue
			}
			out = append(out, BufferedBusyInterval{
				Interval: placed,
				Origin:   OriginDailyBreak,
				Context:  brk.Context,
			})
		}
	}
	return out
}

// placeBreak picks the break's interval within one day's window.
func placeBreak(dayStart time.Time, brk DailyBreak, busy []model.TimeInterval) model.TimeInterval {
	winStart := dayStart.Add(brk.Window.Start)
	winEnd := dayStart.Add(brk.Window.End)

	var best model.TimeInterval
	for start := winStart; !start.Add(brk.MinDuration).After(winEnd); start = start.Add(breakStep) {
		end := start.Add(brk.Duration)
		if end.After(winEnd) {
			end = winEnd
		}
		cand := model.TimeInterval{Start: start, End: end}
		if conflictsAny(cand, busy) {
			continue
		}
		if cand.Duration() > best.Duration() {
			best = cand
		}
	}

	if best.Duration() == 0 {
		best = model.TimeInterval{Start: winStart, End: winStart.Add(brk.MinDuration)}
	}
	return best
}

func conflictsAny(cand model.TimeInterval, busy []model.TimeInterval) bool {
	for _, b := range busy {
		if interval.Overlaps(cand, b) {
			return true
		}
	}
	return false
}
