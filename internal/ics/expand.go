package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/kiri-thornalley/virtual-assistant/pkg/gcalendar"
)

// maxOccurrences caps expansion of a single recurring event so a
// malformed RRULE cannot flood the horizon.
const maxOccurrences = 5000

// Expand turns parsed feed events into concrete occurrences inside
// [from, to). Recurring events are unrolled via their RRULE with EXDATE
// exceptions removed. Output uses the same shape as Google Calendar
// events so the one classifier serves both sources.
func Expand(events []ParsedEvent, from, to time.Time) []gcalendar.Event {
	out := make([]gcalendar.Event, 0, len(events))
	for _, ev := range events {
		if ev.RawRRule == "" {
			if ev.End.After(from) && ev.Start.Before(to) {
				out = append(out, toEvent(ev, ev.Start, ev.End))
			}
			continue
		}
		out = append(out, expandRecurring(ev, from, to)...)
	}
	return out
}

func expandRecurring(ev ParsedEvent, from, to time.Time) []gcalendar.Event {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Between selects by start time, so the query reaches back one
	// event duration: an occurrence straddling the horizon start is
	// still busy time.
	dur := ev.End.Sub(ev.Start)
	starts := set.Between(from.Add(-dur).In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(starts) > maxOccurrences {
		starts = starts[:maxOccurrences]
	}

	out := make([]gcalendar.Event, 0, len(starts))
	for _, start := range starts {
		end := start.Add(dur)
		if ev.AllDay {
			day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			start = day
			end = day.Add(dur)
		}
		if !end.After(from) || !start.Before(to) {
			continue
		}
		out = append(out, toEvent(ev, start, end))
	}
	return out
}

func toEvent(ev ParsedEvent, start, end time.Time) gcalendar.Event {
	return gcalendar.Event{
		// Instance IDs must stay unique across a recurring series.
		ID:          fmt.Sprintf("%s/%s", ev.UID, start.Format(time.RFC3339)),
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		StartTime:   start,
		EndTime:     end,
		AllDay:      ev.AllDay,
	}
}
