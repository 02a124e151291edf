package model

import (
	"fmt"
	"time"
)

// TimeInterval is a half-open time window [Start, End).
// Invariant: Start < End. Intervals are values; derived intervals are new values.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval builds an interval, rejecting empty or inverted windows.
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	if !start.Before(end) {
		return TimeInterval{}, fmt.Errorf("invalid interval: start %s is not before end %s", start, end)
	}
	return TimeInterval{Start: start, End: end}, nil
}

// Duration returns the interval length.
func (iv TimeInterval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// IsZero reports whether the interval is unset.
func (iv TimeInterval) IsZero() bool {
	return iv.Start.IsZero() && iv.End.IsZero()
}

// Contains reports whether other lies fully inside iv.
func (iv TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

func (iv TimeInterval) String() string {
	return fmt.Sprintf("%s → %s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}
