package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// feedFixture is a small feed with a one-off event, a weekly recurring
// event with one cancelled instance, and a multi-day all-day block.
var feedFixture = strings.ReplaceAll(`BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:single-1
SUMMARY:Dentist
LOCATION:High Street Practice
DTSTART:20250602T140000Z
DTEND:20250602T143000Z
END:VEVENT
BEGIN:VEVENT
UID:weekly-1
SUMMARY:Yoga
DTSTART:20250602T180000Z
DTEND:20250602T190000Z
RRULE:FREQ=WEEKLY;BYDAY=MO
EXDATE:20250609T180000Z
END:VEVENT
BEGIN:VEVENT
UID:trip-1
SUMMARY:Holiday
DTSTART;VALUE=DATE:20250610
DTEND;VALUE=DATE:20250613
END:VEVENT
END:VCALENDAR
`, "\n", "\r\n")

func TestParse(t *testing.T) {
	events, err := Parse([]byte(feedFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	byUID := make(map[string]ParsedEvent)
	for _, ev := range events {
		byUID[ev.UID] = ev
	}

	dentist := byUID["single-1"]
	if dentist.Location != "High Street Practice" {
		t.Errorf("location = %q", dentist.Location)
	}
	if dentist.AllDay || dentist.RawRRule != "" {
		t.Errorf("one-off timed event misparsed: %+v", dentist)
	}
	if !dentist.Start.Equal(time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s", dentist.Start)
	}

	yoga := byUID["weekly-1"]
	if yoga.RawRRule != "FREQ=WEEKLY;BYDAY=MO" {
		t.Errorf("rrule = %q", yoga.RawRRule)
	}
	if len(yoga.ExDates) != 1 {
		t.Fatalf("expected 1 exdate, got %d", len(yoga.ExDates))
	}

	trip := byUID["trip-1"]
	if !trip.AllDay {
		t.Errorf("date-only event should be all-day")
	}
	if trip.End.Sub(trip.Start) != 72*time.Hour {
		t.Errorf("trip span = %s", trip.End.Sub(trip.Start))
	}
}

func TestParse_EmptyBody(t *testing.T) {
	if _, err := Parse(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestExpand(t *testing.T) {
	parsed, err := Parse([]byte(feedFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)
	events := Expand(parsed, from, to)

	var yogaCount int
	for _, ev := range events {
		if ev.Summary != "Yoga" {
			continue
		}
		yogaCount++
		if ev.StartTime.Weekday() != time.Monday {
			t.Errorf("yoga occurrence on %s", ev.StartTime.Weekday())
		}
		if ev.EndTime.Sub(ev.StartTime) != time.Hour {
			t.Errorf("yoga duration = %s", ev.EndTime.Sub(ev.StartTime))
		}
		if ev.StartTime.Day() == 9 {
			t.Errorf("cancelled instance should be excluded")
		}
	}
	// Mondays Jun 2, 16, 23; Jun 9 removed by EXDATE.
	if yogaCount != 3 {
		t.Errorf("expected 3 yoga occurrences, got %d", yogaCount)
	}

	// 1 one-off + 3 recurring + 1 all-day block.
	if len(events) != 5 {
		t.Errorf("expected 5 occurrences total, got %d", len(events))
	}
}

func TestExpand_OutsideRange(t *testing.T) {
	parsed, _ := Parse([]byte(feedFixture))
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	events := Expand(parsed, from, to)
	for _, ev := range events {
		if ev.Summary == "Dentist" || ev.Summary == "Holiday" {
			t.Errorf("non-recurring event leaked outside range: %s", ev.Summary)
		}
	}
}

func TestExpand_OccurrenceStraddlingRangeStart(t *testing.T) {
	parsed, _ := Parse([]byte(feedFixture))

	// Yoga runs 18:00-19:00 on Mondays. A range opening mid-class must
	// still see that instance as busy even though it started earlier.
	from := time.Date(2025, 6, 2, 18, 30, 0, 0, time.UTC)
	to := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	events := Expand(parsed, from, to)
	var found bool
	for _, ev := range events {
		if ev.Summary == "Yoga" && ev.StartTime.Equal(time.Date(2025, 6, 2, 18, 0, 0, 0, time.UTC)) {
			found = true
		}
	}
	if !found {
		t.Error("occurrence overlapping the range start was dropped")
	}
}

func TestFetchEvents(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedFixture))
	}))
	defer ts.Close()

	f := NewFetcher(mockLogger{})
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC)

	events, err := f.FetchEvents(context.Background(), ts.URL+"/feed.ics?token=secret", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 5 {
		t.Errorf("expected 5 occurrences, got %d", len(events))
	}
}

func TestFetchEvents_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	f := NewFetcher(mockLogger{})
	if _, err := f.FetchEvents(context.Background(), ts.URL, time.Now(), time.Now().Add(time.Hour)); err == nil {
		t.Fatal("expected error")
	}
	if _, err := f.FetchEvents(context.Background(), ts.URL, time.Now(), time.Now().Add(time.Hour)); err != nil && !strings.Contains(err.Error(), "403") {
		t.Errorf("error should carry status: %v", err)
	}
}
