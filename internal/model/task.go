package model

import "time"

// EnergyLevel is the effort a task demands, mapped from Todoist labels.
type EnergyLevel int

const (
	EnergyUnset  EnergyLevel = 0
	EnergyLow    EnergyLevel = 1
	EnergyMedium EnergyLevel = 2
	EnergyHigh   EnergyLevel = 3
)

// Importance is the impact rating of a task, mapped from Todoist labels.
type Importance int

const (
	ImportanceUnset    Importance = 0
	ImportanceLow      Importance = 1
	ImportanceMedium   Importance = 2
	ImportanceHigh     Importance = 3
	ImportanceVeryHigh Importance = 4
)

// Classification groups tasks by the kind of work they involve.
// Used only for calendar event colouring on write-back.
type Classification string

const (
	ClassEmail        Classification = "email"
	ClassAdmin        Classification = "admin"
	ClassWriting      Classification = "writing"
	ClassDataAnalysis Classification = "data_analysis"
	ClassReading      Classification = "reading_searching"
	ClassThinking     Classification = "thinking_planning"
	ClassTalks        Classification = "giving_talks"
)

// Task is a normalized task from the external task source.
// Immutable after scoring; the weather eligibility flag is advisory
// state computed per run, not stored here.
type Task struct {
	ID                string
	Name              string
	Context           Context
	EnergyLevel       EnergyLevel
	Importance        Importance
	Classification    Classification
	EstimatedDuration time.Duration
	Deadline          time.Time // zero means no deadline
}

// HasDeadline reports whether the task carries a deadline.
func (t Task) HasDeadline() bool {
	return !t.Deadline.IsZero()
}
