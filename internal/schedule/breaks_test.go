package schedule

import (
	"testing"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/interval"
	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

func busyAt(day time.Time, from, to time.Duration) BufferedBusyInterval {
	return BufferedBusyInterval{
		Interval: model.TimeInterval{Start: day.Add(from), End: day.Add(to)},
		Origin:   OriginMeeting,
		Context:  model.ContextWork,
		EventID:  "m1",
	}
}

func TestInsertDailyBreaks_EmptyDay(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 1
	cfg.DailyBreaks = DefaultDailyBreaks()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	breaks := insertDailyBreaks(day, cfg, nil)
	if len(breaks) != 3 {
		t.Fatalf("expected 3 breaks on an empty day, got %d", len(breaks))
	}

	// Morning pause at the window start, full hour of lunch at noon,
	// afternoon pause at half three.
	wants := []model.TimeInterval{
		{Start: day.Add(9*time.Hour + 30*time.Minute), End: day.Add(9*time.Hour + 45*time.Minute)},
		{Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)},
		{Start: day.Add(15*time.Hour + 30*time.Minute), End: day.Add(15*time.Hour + 45*time.Minute)},
	}
	for i, want := range wants {
		got := breaks[i]
		if got.Origin != OriginDailyBreak || got.Context != model.ContextWork {
			t.Errorf("break %d tagged %s/%s", i, got.Origin, got.Context)
		}
		if !got.Interval.Start.Equal(want.Start) || !got.Interval.End.Equal(want.End) {
			t.Errorf("break %d = %v, want %v", i, got.Interval, want)
		}
	}
}

func TestInsertDailyBreaks_LunchSlidesAroundMeeting(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 1
	cfg.DailyBreaks = DefaultDailyBreaks()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// A meeting over 12:00-13:00 leaves 13:00-14:00 as the longest
	// conflict-free lunch block.
	busy := []BufferedBusyInterval{busyAt(day, 12*time.Hour, 13*time.Hour)}
	breaks := insertDailyBreaks(day, cfg, busy)

	lunch := breaks[1]
	if !lunch.Interval.Start.Equal(day.Add(13*time.Hour)) || !lunch.Interval.End.Equal(day.Add(14*time.Hour)) {
		t.Errorf("lunch = %v, want 13:00-14:00", lunch.Interval)
	}
}

func TestInsertDailyBreaks_PackedDayForcesMinimumLunch(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 1
	cfg.DailyBreaks = DefaultDailyBreaks()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	// Meetings cover the whole lunch window: the break is still taken,
	// at minimum length, at the window start.
	busy := []BufferedBusyInterval{busyAt(day, 11*time.Hour, 15*time.Hour)}
	breaks := insertDailyBreaks(day, cfg, busy)

	lunch := breaks[1]
	if !lunch.Interval.Start.Equal(day.Add(12*time.Hour)) || !lunch.Interval.End.Equal(day.Add(12*time.Hour+30*time.Minute)) {
		t.Errorf("forced lunch = %v, want 12:00-12:30", lunch.Interval)
	}
}

func TestInsertDailyBreaks_OtherContextDoesNotConflict(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 1
	cfg.DailyBreaks = DefaultDailyBreaks()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	personal := busyAt(day, 12*time.Hour, 14*time.Hour)
	personal.Context = model.ContextPersonal
	breaks := insertDailyBreaks(day, cfg, []BufferedBusyInterval{personal})

	lunch := breaks[1]
	if !lunch.Interval.Start.Equal(day.Add(12*time.Hour)) || !lunch.Interval.End.Equal(day.Add(13*time.Hour)) {
		t.Errorf("personal busy time moved a work lunch: %v", lunch.Interval)
	}
}

func TestBuildFreeSlots_BreaksProtectedFromTasks(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 1
	cfg.DailyBreaks = DefaultDailyBreaks()
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	busy := insertDailyBreaks(day, cfg, nil)
	slots := BuildFreeSlots(day, cfg, busy)

	for _, b := range busy {
		for _, s := range slots {
			if s.Context == b.Context && interval.Overlaps(s.Interval, b.Interval) {
				t.Errorf("free slot %v overlaps protected break %v", s.Interval, b.Interval)
			}
		}
	}
}
