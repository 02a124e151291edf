package schedule

import "errors"

// Domain-specific errors for the scheduling engine.
var (
	ErrNoSchedulableTasks = errors.New("no schedulable tasks in input")
	ErrMissingNow         = errors.New("run input has no reference time")
	ErrBadConfig          = errors.New("invalid scheduler configuration")
)
