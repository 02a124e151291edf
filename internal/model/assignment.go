package model

// Assignment is the terminal output of the scheduling core: one task
// placed into the leading sub-interval of a free slot.
type Assignment struct {
	ID       string // run-local UUID, used as calendar write key
	Task     Task
	Interval TimeInterval
}
