package model

// EventKind classifies a calendar event for buffer expansion.
type EventKind string

const (
	KindInPersonMeeting EventKind = "in_person_meeting"
	KindVirtualMeeting  EventKind = "virtual_meeting"
	KindOtherBusy       EventKind = "other_busy"
	KindMultidayBlock   EventKind = "multiday_block"
)

// Context separates the work and personal scheduling domains.
// A task is only ever placed in a slot of its own context.
type Context string

const (
	ContextWork     Context = "work"
	ContextPersonal Context = "personal"
)

// CalendarEvent is a busy block read from an external calendar.
// Read-only to the scheduling core.
type CalendarEvent struct {
	ID       string
	Summary  string
	Interval TimeInterval
	Kind     EventKind
	Context  Context
}
