package todoist

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
	"github.com/kiri-thornalley/virtual-assistant/internal/task/repository"
	pkgLog "github.com/kiri-thornalley/virtual-assistant/pkg/log"
)

// defaultDuration is assumed when a task description carries no
// parsable time estimate.
const defaultDuration = 60 * time.Minute

type implRepository struct {
	client *Client
	loc    *time.Location
	l      pkgLog.Logger
}

// New creates a TaskRepository backed by the Todoist REST API. loc is
// the scheduler's fixed-offset location, used to anchor date-only
// deadlines.
func New(client *Client, loc *time.Location, l pkgLog.Logger) repository.TaskRepository {
	if loc == nil {
		loc = time.UTC
	}
	return &implRepository{client: client, loc: loc, l: l}
}

// ListTasks fetches and normalizes the backlog. Only tasks labelled
// work or personal are schedulable; everything else is ignored
// silently. Tasks with a context but otherwise malformed fields are
// skipped and reported.
func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, []repository.SkippedRecord, error) {
	raw, err := r.client.ListTasks(ctx, opt.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list todoist tasks: %w", err)
	}

	var (
		tasks   []model.Task
		skipped []repository.SkippedRecord
	)
	for _, rt := range raw {
		task, err := r.normalize(rt)
		if err != nil {
			if errors.Is(err, errNotSchedulable) {
				continue
			}
			skipped = append(skipped, repository.SkippedRecord{ID: rt.ID, Reason: err.Error()})
			continue
		}
		tasks = append(tasks, task)
	}

	r.l.Infof(ctx, "todoist: %d schedulable tasks, %d skipped, %d ignored", len(tasks), len(skipped), len(raw)-len(tasks)-len(skipped))
	return tasks, skipped, nil
}

var errNotSchedulable = errors.New("task has neither work nor personal label")

// normalize maps one raw Todoist record into the strict task shape.
func (r *implRepository) normalize(rt RawTask) (model.Task, error) {
	attrs := mapLabels(rt.Labels)
	if attrs.context == "" {
		return model.Task{}, errNotSchedulable
	}
	if rt.ID == "" {
		return model.Task{}, fmt.Errorf("task record has no id")
	}
	if rt.Content == "" {
		return model.Task{}, fmt.Errorf("task %s has no content", rt.ID)
	}

	deadline, err := r.parseDue(rt.Due)
	if err != nil {
		return model.Task{}, fmt.Errorf("task %s: %w", rt.ID, err)
	}

	return model.Task{
		ID:                rt.ID,
		Name:              rt.Content,
		Context:           attrs.context,
		EnergyLevel:       attrs.energy,
		Importance:        attrs.importance,
		Classification:    attrs.classification,
		EstimatedDuration: parseEstimatedDuration(rt.Description),
		Deadline:          deadline,
	}, nil
}

type labelAttributes struct {
	context        model.Context
	energy         model.EnergyLevel
	importance     model.Importance
	classification model.Classification
}

var classificationLabels = map[string]model.Classification{
	"emails":            model.ClassEmail,
	"admin":             model.ClassAdmin,
	"writing":           model.ClassWriting,
	"data_analysis":     model.ClassDataAnalysis,
	"reading_searching": model.ClassReading,
	"thinking_planning": model.ClassThinking,
	"giving_talks":      model.ClassTalks,
}

// mapLabels maps Todoist labels to task attributes. Unknown labels are
// ignored; the last matching label of each group wins.
func mapLabels(labels []string) labelAttributes {
	var attrs labelAttributes
	for _, label := range labels {
		switch label {
		case "work":
			attrs.context = model.ContextWork
		case "personal":
			attrs.context = model.ContextPersonal
		case "high_energy":
			attrs.energy = model.EnergyHigh
		case "medium_energy":
			attrs.energy = model.EnergyMedium
		case "low_energy":
			attrs.energy = model.EnergyLow
		case "veryhigh_impact":
			attrs.importance = model.ImportanceVeryHigh
		case "high_impact":
			attrs.importance = model.ImportanceHigh
		case "medium_impact":
			attrs.importance = model.ImportanceMedium
		case "low_impact":
			attrs.importance = model.ImportanceLow
		}
		if class, ok := classificationLabels[label]; ok {
			attrs.classification = class
		}
	}
	return attrs
}

var (
	compactTimeRe    = regexp.MustCompile(`(\d+)\s*([hm])\b`)
	naturalTimeRe    = regexp.MustCompile(`(\d+)\s*(hour|minute)`)
	fractionalHourRe = regexp.MustCompile(`(\d*\.\d+)\s*hour`)
)

// parseEstimatedDuration extracts a time estimate from a task
// description. Accepts compact ("1h", "30m"), natural ("2 hours",
// "45 minutes") and fractional ("0.5 hours") forms; defaults to one
// hour when nothing matches.
func parseEstimatedDuration(description string) time.Duration {
	desc := strings.ToLower(description)

	// Fractional first: "0.5 hours" must not read as "5 hours".
	if m := fractionalHourRe.FindStringSubmatch(desc); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		return time.Duration(hours * float64(time.Hour))
	}

	if m := compactTimeRe.FindStringSubmatch(desc); m != nil {
		value, _ := strconv.Atoi(m[1])
		if m[2] == "h" {
			return time.Duration(value) * time.Hour
		}
		return time.Duration(value) * time.Minute
	}

	if m := naturalTimeRe.FindStringSubmatch(desc); m != nil {
		value, _ := strconv.Atoi(m[1])
		if m[2] == "hour" {
			return time.Duration(value) * time.Hour
		}
		return time.Duration(value) * time.Minute
	}

	return defaultDuration
}

// parseDue resolves a Todoist due object. Date-only deadlines become
// end of that day in the scheduler's location. A nil due means no
// deadline, which is valid.
func (r *implRepository) parseDue(due *RawDue) (time.Time, error) {
	if due == nil {
		return time.Time{}, nil
	}
	if due.Datetime != "" {
		dt, err := time.Parse(time.RFC3339, due.Datetime)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due datetime %q: %w", due.Datetime, err)
		}
		return dt.In(r.loc), nil
	}
	if due.Date != "" {
		d, err := time.ParseInLocation("2006-01-02", due.Date, r.loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date %q: %w", due.Date, err)
		}
		return d.Add(24*time.Hour - time.Second), nil
	}
	return time.Time{}, nil
}
