package calendar

import (
	"context"
	"fmt"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
	"github.com/kiri-thornalley/virtual-assistant/internal/schedule"
	"github.com/kiri-thornalley/virtual-assistant/pkg/gcalendar"
	"github.com/kiri-thornalley/virtual-assistant/pkg/log"
)

// EventStore is the slice of the calendar client the writer needs.
type EventStore interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
	UpdateEvent(ctx context.Context, req gcalendar.UpdateEventRequest) (*gcalendar.Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// classColors maps a task classification to a Google Calendar colour ID.
var classColors = map[model.Classification]string{
	model.ClassEmail:        "3",
	model.ClassAdmin:        "9",
	model.ClassWriting:      "7",
	model.ClassDataAnalysis: "10",
	model.ClassThinking:     "2",
	model.ClassReading:      "6",
	model.ClassTalks:        "4",
}

// WriterConfig tells the writer which calendar backs each context and
// whether derived buffers should be persisted as events of their own.
type WriterConfig struct {
	WorkCalendarID     string
	PersonalCalendarID string
	Timezone           string
	PersistBuffers     bool
}

// Writer pushes a finished run back to Google Calendar.
type Writer struct {
	store EventStore
	cfg   WriterConfig
	l     log.Logger
}

func NewWriter(store EventStore, cfg WriterConfig, l log.Logger) *Writer {
	return &Writer{store: store, cfg: cfg, l: l}
}

func (w *Writer) calendarFor(c model.Context) string {
	if c == model.ContextPersonal {
		return w.cfg.PersonalCalendarID
	}
	return w.cfg.WorkCalendarID
}

// WriteAssignments reconciles this run's placements against the task
// events previous runs wrote. A task already on the calendar has its
// event moved when its placement changed and is left alone when it did
// not; tasks placed for the first time get a fresh event whose
// description carries the task marker so a later run can tell our
// events apart from real ones. Existing task events with no placement
// this run are deleted: the task was completed, removed, or pushed out
// of the horizon, and a stale block would keep occupying the calendar.
// The first failure aborts the batch; writes already made stay.
func (w *Writer) WriteAssignments(ctx context.Context, assignments []model.Assignment, existing []ExistingTaskEvent) error {
	existingByTask := make(map[string]ExistingTaskEvent, len(existing))
	for _, ev := range existing {
		existingByTask[ev.TaskID] = ev
	}

	for _, a := range assignments {
		prev, ok := existingByTask[a.Task.ID]
		if ok {
			delete(existingByTask, a.Task.ID)
			if prev.Interval.Start.Equal(a.Interval.Start) && prev.Interval.End.Equal(a.Interval.End) {
				w.l.Debugf(ctx, "calendar.Writer.WriteAssignments: task %s unchanged at %s", a.Task.ID, a.Interval.Start)
				continue
			}
			req := gcalendar.UpdateEventRequest{
				CalendarID:  prev.CalendarID,
				EventID:     prev.EventID,
				Summary:     a.Task.Name,
				Description: fmt.Sprintf("%s\nTask ID: %s", TaskMarker, a.Task.ID),
				StartTime:   a.Interval.Start,
				EndTime:     a.Interval.End,
				Timezone:    w.cfg.Timezone,
				ColorID:     classColors[a.Task.Classification],
			}
			if _, err := w.store.UpdateEvent(ctx, req); err != nil {
				return fmt.Errorf("update event for task %s: %w", a.Task.ID, err)
			}
			w.l.Debugf(ctx, "calendar.Writer.WriteAssignments: moved task %s to %s", a.Task.ID, a.Interval.Start)
			continue
		}

		req := gcalendar.CreateEventRequest{
			CalendarID:  w.calendarFor(a.Task.Context),
			Summary:     a.Task.Name,
			Description: fmt.Sprintf("%s\nTask ID: %s", TaskMarker, a.Task.ID),
			StartTime:   a.Interval.Start,
			EndTime:     a.Interval.End,
			Timezone:    w.cfg.Timezone,
			ColorID:     classColors[a.Task.Classification],
		}
		if _, err := w.store.CreateEvent(ctx, req); err != nil {
			return fmt.Errorf("create event for task %s: %w", a.Task.ID, err)
		}
		w.l.Debugf(ctx, "calendar.Writer.WriteAssignments: wrote task %s at %s", a.Task.ID, a.Interval.Start)
	}

	for _, prev := range existingByTask {
		if err := w.store.DeleteEvent(ctx, prev.CalendarID, prev.EventID); err != nil {
			return fmt.Errorf("delete stale event for task %s: %w", prev.TaskID, err)
		}
		w.l.Debugf(ctx, "calendar.Writer.WriteAssignments: removed stale event for task %s", prev.TaskID)
	}
	return nil
}

// WriteBuffers persists derived travel and rest buffers, when enabled.
// Each buffer event names its parent meeting so reruns can skip it.
func (w *Writer) WriteBuffers(ctx context.Context, buffers []schedule.BufferedBusyInterval) error {
	if !w.cfg.PersistBuffers {
		return nil
	}
	for _, b := range buffers {
		if b.Origin != schedule.OriginTravelBuffer && b.Origin != schedule.OriginRestBuffer {
			continue
		}
		summary := "Screen-Free Time"
		if b.Origin == schedule.OriginTravelBuffer {
			summary = "Travel"
		}
		req := gcalendar.CreateEventRequest{
			CalendarID:  w.calendarFor(b.Context),
			Summary:     summary,
			Description: fmt.Sprintf("%s %s", BufferMarker, b.EventID),
			StartTime:   b.Interval.Start,
			EndTime:     b.Interval.End,
			Timezone:    w.cfg.Timezone,
		}
		if _, err := w.store.CreateEvent(ctx, req); err != nil {
			return fmt.Errorf("create buffer for event %s: %w", b.EventID, err)
		}
	}
	return nil
}
