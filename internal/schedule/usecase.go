package schedule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

// Run executes one scheduling pass. The state machine is run-local:
// Idle → Loading → SlotsBuilt → Scheduling → Done. A validation failure
// during Loading aborts back to Idle with an error; after that, nothing
// in the pipeline can fail: tasks that fit nowhere are reported, not
// raised.
func (uc *implUseCase) Run(ctx context.Context, sc model.Scope, input RunInput) (RunOutput, error) {
	runID := uuid.NewString()

	state := StateLoading
	uc.l.Infof(ctx, "run %s: state=%s events=%d tasks=%d", runID, state, len(input.Events), len(input.Tasks))

	if input.Now.IsZero() {
		return RunOutput{}, ErrMissingNow
	}

	events, tasks, skipped := uc.validateInput(ctx, input)
	for _, issue := range skipped {
		uc.l.Warnf(ctx, "run %s: skipping record %s: %s", runID, issue.RecordID, issue.Reason)
	}
	if len(tasks) == 0 && len(input.Tasks) > 0 {
		// Every task was malformed; the task set is effectively unreadable.
		return RunOutput{}, fmt.Errorf("%w: all %d tasks failed validation", ErrNoSchedulableTasks, len(input.Tasks))
	}

	busy, buffers := expandAll(events, uc.cfg.TravelBuffer, uc.cfg.RestBuffer)
	breaks := insertDailyBreaks(input.Now, uc.cfg, busy)
	busy = append(busy, breaks...)
	slots := BuildFreeSlots(input.Now, uc.cfg, busy)
	state = StateSlotsBuilt
	uc.l.Infof(ctx, "run %s: state=%s busy=%d breaks=%d slots=%d", runID, state, len(busy), len(breaks), len(slots))

	prioritized := Prioritize(tasks, input.Now, uc.cfg.Weights)
	hotDays := HotDays(input.ForecastByDay, uc.cfg.HotWeatherThreshold)
	if len(hotDays) > 0 {
		uc.l.Infof(ctx, "run %s: %d hot day(s) above %.1f°C, high-energy personal tasks gated", runID, len(hotDays), uc.cfg.HotWeatherThreshold)
	}

	state = StateScheduling
	uc.l.Debugf(ctx, "run %s: state=%s prioritized=%d", runID, state, len(prioritized))
	assignments, unscheduled := AssignTasks(input.Now, prioritized, slots, hotDays, uc.cfg.Location)

	state = StateDone
	uc.l.Infof(ctx, "run %s: state=%s assigned=%d unscheduled=%d", runID, state, len(assignments), len(unscheduled))

	return RunOutput{
		RunID:        runID,
		Assignments:  assignments,
		Unscheduled:  unscheduled,
		Buffers:      buffers,
		SkippedInput: skipped,
	}, nil
}

// validateInput isolates malformed records instead of failing the run.
// Events need a valid interval; tasks additionally need a context and a
// positive estimated duration. Anything else is dropped and reported.
func (uc *implUseCase) validateInput(ctx context.Context, input RunInput) ([]model.CalendarEvent, []model.Task, []InputIssue) {
	var issues []InputIssue

	events := make([]model.CalendarEvent, 0, len(input.Events))
	for _, ev := range input.Events {
		if !ev.Interval.Start.Before(ev.Interval.End) {
			issues = append(issues, InputIssue{RecordID: ev.ID, Reason: "event interval start is not before end"})
			continue
		}
		if ev.Context != model.ContextWork && ev.Context != model.ContextPersonal {
			issues = append(issues, InputIssue{RecordID: ev.ID, Reason: "event has no context"})
			continue
		}
		events = append(events, ev)
	}

	tasks := make([]model.Task, 0, len(input.Tasks))
	for _, t := range input.Tasks {
		switch {
		case t.Context != model.ContextWork && t.Context != model.ContextPersonal:
			issues = append(issues, InputIssue{RecordID: t.ID, Reason: "task has no context"})
		case t.EstimatedDuration <= 0:
			issues = append(issues, InputIssue{RecordID: t.ID, Reason: "task has no estimated duration"})
		default:
			tasks = append(tasks, t)
		}
	}
	return events, tasks, issues
}
