package calendar

import (
	"strings"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
	"github.com/kiri-thornalley/virtual-assistant/pkg/gcalendar"
)

// Markers written into event descriptions by this scheduler. Events
// carrying them are our own output and must not be read back as busy
// time, otherwise a rerun would see its previous answer as input.
const (
	TaskMarker   = "Scheduled by task scheduler"
	BufferMarker = "Parent Meeting ID:"
)

// virtualKeywords identify a meeting as remote. Matched case-insensitively
// against the location and conferencing fields.
var virtualKeywords = []string{
	"zoom",
	"google meet",
	"teams",
	"skype",
	"webex",
	"attendanywhere",
}

// IsSchedulerCreated reports whether the event was written by a previous
// run of the scheduler, either a placed task or a persisted buffer.
func IsSchedulerCreated(ev gcalendar.Event) bool {
	return strings.Contains(ev.Description, TaskMarker) ||
		strings.Contains(ev.Description, BufferMarker)
}

// ExistingTaskEvent is a task event a previous run wrote to a calendar.
// The writer reconciles against these instead of creating duplicates.
type ExistingTaskEvent struct {
	TaskID     string
	EventID    string
	CalendarID string
	Interval   model.TimeInterval
}

// TaskIDFromDescription extracts the task ID a previous run recorded in
// an event description, if any.
func TaskIDFromDescription(desc string) (string, bool) {
	if !strings.Contains(desc, TaskMarker) {
		return "", false
	}
	for _, line := range strings.Split(desc, "\n") {
		if id, ok := strings.CutPrefix(strings.TrimSpace(line), "Task ID:"); ok {
			id = strings.TrimSpace(id)
			if id != "" {
				return id, true
			}
		}
	}
	return "", false
}

// CollectTaskEvents gathers the scheduler's own task events from one
// calendar's read pass so a rerun can move or retire them.
func CollectTaskEvents(events []gcalendar.Event, calendarID string) []ExistingTaskEvent {
	var out []ExistingTaskEvent
	for _, ev := range events {
		taskID, ok := TaskIDFromDescription(ev.Description)
		if !ok {
			continue
		}
		out = append(out, ExistingTaskEvent{
			TaskID:     taskID,
			EventID:    ev.ID,
			CalendarID: calendarID,
			Interval:   model.TimeInterval{Start: ev.StartTime, End: ev.EndTime},
		})
	}
	return out
}

func isVirtual(ev gcalendar.Event) bool {
	haystack := strings.ToLower(ev.Location + " " + ev.Description)
	for _, kw := range virtualKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// Classify converts a raw calendar event into a typed busy block.
// eventCtx is the context of the source calendar, not of the event
// itself: the work calendar yields work events and so on.
func Classify(ev gcalendar.Event, eventCtx model.Context) model.CalendarEvent {
	out := model.CalendarEvent{
		ID:      ev.ID,
		Summary: ev.Summary,
		Context: eventCtx,
		Interval: model.TimeInterval{
			Start: ev.StartTime,
			End:   ev.EndTime,
		},
	}

	switch {
	case ev.AllDay && ev.EndTime.Sub(ev.StartTime) > 24*time.Hour:
		out.Kind = model.KindMultidayBlock
	case ev.AllDay:
		out.Kind = model.KindOtherBusy
	case isVirtual(ev):
		out.Kind = model.KindVirtualMeeting
	case ev.Location != "":
		out.Kind = model.KindInPersonMeeting
	default:
		out.Kind = model.KindOtherBusy
	}
	return out
}

// ClassifyAll classifies every event from one calendar, dropping events
// a previous scheduler run created.
func ClassifyAll(events []gcalendar.Event, eventCtx model.Context) []model.CalendarEvent {
	out := make([]model.CalendarEvent, 0, len(events))
	for _, ev := range events {
		if IsSchedulerCreated(ev) {
			continue
		}
		out = append(out, Classify(ev, eventCtx))
	}
	return out
}
