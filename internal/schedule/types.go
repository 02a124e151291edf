package schedule

import (
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// DateFormatISO is the key format for per-day lookups (forecast, hot days).
const DateFormatISO = "2006-01-02"

// BufferOrigin tags how a busy interval came to exist.
type BufferOrigin string

const (
	OriginMeeting      BufferOrigin = "meeting"
	OriginTravelBuffer BufferOrigin = "travel_buffer"
	OriginRestBuffer   BufferOrigin = "rest_buffer"
	OriginDailyBreak   BufferOrigin = "daily_break"
)

// BufferedBusyInterval is a busy block derived from a calendar event,
// possibly an artificial travel or rest buffer around it.
type BufferedBusyInterval struct {
	Interval model.TimeInterval
	Origin   BufferOrigin
	Context  model.Context
	EventID  string // originating calendar event
}

// FreeSlot is a contiguous window eligible for task assignment.
// It only ever shrinks as the matcher fills it, and is discarded once empty.
type FreeSlot struct {
	Interval model.TimeInterval
	Context  model.Context
}

// DayWindow bounds one context's schedulable hours within a day,
// as offsets from local midnight.
type DayWindow struct {
	Start time.Duration
	End   time.Duration
}

// Weights are the priority score weights. They are configuration;
// DefaultWeights is the equal-weighted normalized sum.
type Weights struct {
	Importance float64
	Deadline   float64
	Energy     float64
	Duration   float64
}

// DefaultWeights returns the equal-weighted default.
func DefaultWeights() Weights {
	return Weights{Importance: 0.25, Deadline: 0.25, Energy: 0.25, Duration: 0.25}
}

// DailyBreak protects recovery time inside each day before matching.
// Window bounds where in the day the break may fall; Duration is the
// time to protect, shortened to MinDuration when meetings crowd the
// window.
type DailyBreak struct {
	Window      DayWindow
	Duration    time.Duration
	MinDuration time.Duration
	Context     model.Context
}

// DefaultDailyBreaks returns the standard work-day breaks: a short
// morning and afternoon pause and a lunch block of up to an hour
// somewhere between noon and two.
func DefaultDailyBreaks() []DailyBreak {
	return []DailyBreak{
		{
			Window:      DayWindow{Start: 9*time.Hour + 30*time.Minute, End: 10 * time.Hour},
			Duration:    15 * time.Minute,
			MinDuration: 15 * time.Minute,
			Context:     model.ContextWork,
		},
		{
			Window:      DayWindow{Start: 12 * time.Hour, End: 14 * time.Hour},
			Duration:    time.Hour,
			MinDuration: 30 * time.Minute,
			Context:     model.ContextWork,
		},
		{
			Window:      DayWindow{Start: 15*time.Hour + 30*time.Minute, End: 16 * time.Hour},
			Duration:    15 * time.Minute,
			MinDuration: 15 * time.Minute,
			Context:     model.ContextWork,
		},
	}
}

// Suppression is a first-class scheduling blackout: no free slots are
// produced inside Range for the given context (empty context = both).
// Multiday calendar blocks remain accepted as a backward-compatible
// input shape with the same effect.
type Suppression struct {
	Range   model.TimeInterval
	Context model.Context
}

// Config is the engine configuration. All values are plumbed from the
// configuration surface; the engine itself reads no ambient state.
type Config struct {
	TravelBuffer        time.Duration
	RestBuffer          time.Duration
	HotWeatherThreshold float64 // feels-like °C above which a day is "hot"
	WorkDayWindow       DayWindow
	PersonalDayWindow   DayWindow
	HorizonDays         int
	Location            *time.Location // fixed UTC offset, not DST-aware
	Weights             Weights
	Suppressions        []Suppression
	DailyBreaks         []DailyBreak
}

// DayForecast is one day's aggregated forecast.
type DayForecast struct {
	Date         string // DateFormatISO
	MaxFeelsLike float64
}

// RunInput is everything a scheduling run consumes. All inputs are
// fetched up front by collaborators; the engine is deterministic given
// this value.
type RunInput struct {
	Now           time.Time
	Events        []model.CalendarEvent
	Tasks         []model.Task
	ForecastByDay map[string]DayForecast
}

// RunOutput is the Done state of a run.
type RunOutput struct {
	RunID       string
	Assignments []model.Assignment
	Unscheduled []model.Task
	// Buffers are the travel/rest buffers derived this run, exposed so
	// the caller can persist them as visible calendar events.
	Buffers []BufferedBusyInterval
	// SkippedInput lists per-record input problems that were isolated
	// instead of aborting the run.
	SkippedInput []InputIssue
}

// InputIssue records a malformed event or task that was dropped from
// the run instead of aborting it.
type InputIssue struct {
	RecordID string
	Reason   string
}

// State is the engine state machine position. Each run walks
// Idle → Loading → SlotsBuilt → Scheduling → Done; a failure during
// Loading aborts back to Idle.
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateSlotsBuilt State = "slots_built"
	StateScheduling State = "scheduling"
	StateDone       State = "done"
)
