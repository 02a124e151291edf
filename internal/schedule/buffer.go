package schedule

import (
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// ExpandEvent converts one calendar event into its buffered busy
// intervals, ordered by start:
//
//   - in-person meetings get a travel buffer immediately before;
//   - virtual meetings get a rest buffer immediately after;
//   - other busy blocks and multiday blocks pass through unchanged.
//
// All output intervals keep the originating event's context.
func ExpandEvent(ev model.CalendarEvent, travel, rest time.Duration) []BufferedBusyInterval {
	meeting := BufferedBusyInterval{
		Interval: ev.Interval,
		Origin:   OriginMeeting,
		Context:  ev.Context,
		EventID:  ev.ID,
	}

	switch ev.Kind {
	case model.KindInPersonMeeting:
		if travel <= 0 {
			return []BufferedBusyInterval{meeting}
		}
		return []BufferedBusyInterval{
			{
				Interval: model.TimeInterval{Start: ev.Interval.Start.Add(-travel), End: ev.Interval.Start},
				Origin:   OriginTravelBuffer,
				Context:  ev.Context,
				EventID:  ev.ID,
			},
			meeting,
		}
	case model.KindVirtualMeeting:
		if rest <= 0 {
			return []BufferedBusyInterval{meeting}
		}
		return []BufferedBusyInterval{
			meeting,
			{
				Interval: model.TimeInterval{Start: ev.Interval.End, End: ev.Interval.End.Add(rest)},
				Origin:   OriginRestBuffer,
				Context:  ev.Context,
				EventID:  ev.ID,
			},
		}
	default:
		return []BufferedBusyInterval{meeting}
	}
}

// expandAll buffers every event and returns the full busy set plus the
// artificial buffers on their own, for callers that persist them.
func expandAll(events []model.CalendarEvent, travel, rest time.Duration) (busy, buffers []BufferedBusyInterval) {
	for _, ev := range events {
		for _, b := range ExpandEvent(ev, travel, rest) {
			busy = append(busy, b)
			if b.Origin != OriginMeeting {
				buffers = append(buffers, b)
			}
		}
	}
	return busy, buffers
}
