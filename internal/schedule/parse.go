package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// ParseDayWindow parses a "HH:MM-HH:MM" daily window into offsets from
// local midnight. The end must lie after the start and within the day.
func ParseDayWindow(s string) (DayWindow, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return DayWindow{}, fmt.Errorf("%w: day window %q must be HH:MM-HH:MM", ErrBadConfig, s)
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return DayWindow{}, fmt.Errorf("%w: day window %q: %v", ErrBadConfig, s, err)
	}
	end, err := parseClock(parts[1])
	if err != nil {
		return DayWindow{}, fmt.Errorf("%w: day window %q: %v", ErrBadConfig, s, err)
	}

	if end <= start {
		return DayWindow{}, fmt.Errorf("%w: day window %q ends before it starts", ErrBadConfig, s)
	}
	return DayWindow{Start: start, End: end}, nil
}

func parseClock(s string) (time.Duration, error) {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("bad clock value %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute, nil
}

// ParseSuppression parses one configured blackout. Timestamps are
// RFC 3339; context may be empty to cover both domains.
func ParseSuppression(from, to, context string) (Suppression, error) {
	start, err := time.Parse(time.RFC3339, from)
	if err != nil {
		return Suppression{}, fmt.Errorf("%w: suppression from %q: %v", ErrBadConfig, from, err)
	}
	end, err := time.Parse(time.RFC3339, to)
	if err != nil {
		return Suppression{}, fmt.Errorf("%w: suppression to %q: %v", ErrBadConfig, to, err)
	}
	return NewSuppression(start, end, context)
}

// NewSuppression builds a blackout from already-resolved times.
func NewSuppression(start, end time.Time, context string) (Suppression, error) {
	if !end.After(start) {
		return Suppression{}, fmt.Errorf("%w: suppression %s..%s is empty", ErrBadConfig, start, end)
	}

	out := Suppression{}
	out.Range.Start = start
	out.Range.End = end
	switch context {
	case "", "work", "personal":
		out.Context = contextFromString(context)
	default:
		return Suppression{}, fmt.Errorf("%w: suppression context %q", ErrBadConfig, context)
	}
	return out, nil
}

func contextFromString(s string) model.Context {
	switch s {
	case "work":
		return model.ContextWork
	case "personal":
		return model.ContextPersonal
	default:
		return ""
	}
}
