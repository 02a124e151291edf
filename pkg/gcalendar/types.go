package gcalendar

import "time"

// CreateEventRequest is the input for creating a Google Calendar event.
type CreateEventRequest struct {
	CalendarID  string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string // e.g. "Europe/London"
	ColorID     string // Google Calendar colour ID ("1".."11"), optional
}

// UpdateEventRequest is the input for rewriting an existing event in place.
type UpdateEventRequest struct {
	CalendarID  string
	EventID     string
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string
	ColorID     string
}

// Event is a simplified representation of a Google Calendar event.
type Event struct {
	ID          string
	Summary     string
	Description string
	Location    string
	HtmlLink    string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool // date-only events (no time component)
}

// ListEventsRequest is the input for listing Google Calendar events.
type ListEventsRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
}
