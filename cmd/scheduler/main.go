package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/config"
	"github.com/kiri-thornalley/virtual-assistant/internal/calendar"
	"github.com/kiri-thornalley/virtual-assistant/internal/ics"
	"github.com/kiri-thornalley/virtual-assistant/internal/model"
	"github.com/kiri-thornalley/virtual-assistant/internal/schedule"
	"github.com/kiri-thornalley/virtual-assistant/internal/task/repository"
	todoistRepo "github.com/kiri-thornalley/virtual-assistant/internal/task/repository/todoist"
	"github.com/kiri-thornalley/virtual-assistant/pkg/datemath"
	"github.com/kiri-thornalley/virtual-assistant/pkg/gcalendar"
	"github.com/kiri-thornalley/virtual-assistant/pkg/log"
	"github.com/kiri-thornalley/virtual-assistant/pkg/metoffice"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting scheduling run...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatalf(ctx, "Scheduling run failed: %v", err)
	}
	logger.Info(ctx, "Scheduling run completed")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// 3. Engine configuration
	engineCfg, err := buildEngineConfig(cfg.Scheduler, cfg.GoogleCalendar.Timezone)
	if err != nil {
		return err
	}
	engine, err := schedule.New(logger, engineCfg)
	if err != nil {
		return err
	}

	now := time.Now().In(engineCfg.Location)
	horizonEnd := now.AddDate(0, 0, cfg.Scheduler.HorizonDays)

	// 4. Tasks
	todoistClient := todoistRepo.NewClient("", cfg.Todoist.APIToken)
	taskRepo := todoistRepo.New(todoistClient, engineCfg.Location, logger)

	tasks, skipped, err := taskRepo.ListTasks(ctx, repository.ListTasksOptions{ProjectID: cfg.Todoist.ProjectID})
	if err != nil {
		return fmt.Errorf("fetch tasks: %w", err)
	}
	reportSkippedRecords(ctx, logger, skipped)
	logger.Infof(ctx, "Fetched %d schedulable tasks", len(tasks))

	// 5. Calendars
	calClient, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
	if err != nil {
		return fmt.Errorf("init calendar client: %w", err)
	}

	events, ownEvents, err := loadEvents(ctx, cfg, logger, calClient, now, horizonEnd)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "Loaded %d busy events across calendars, %d previously scheduled tasks", len(events), len(ownEvents))

	// 6. Weather (advisory; a failed fetch never blocks the run)
	forecast := loadForecast(ctx, cfg, logger, engineCfg.Location)

	// 7. Run the engine
	out, err := engine.Run(ctx, model.Scope{AccountID: cfg.Environment.Name}, schedule.RunInput{
		Now:           now,
		Events:        events,
		Tasks:         tasks,
		ForecastByDay: forecast,
	})
	if err != nil {
		return fmt.Errorf("scheduling run: %w", err)
	}

	for _, issue := range out.SkippedInput {
		logger.Warnf(ctx, "Skipped malformed input %s: %s", issue.RecordID, issue.Reason)
	}
	for _, t := range out.Unscheduled {
		logger.Warnf(ctx, "Could not place task %s (%s): no free slot before horizon", t.ID, t.Name)
	}
	logger.Infof(ctx, "Run %s placed %d of %d tasks", out.RunID, len(out.Assignments), len(tasks))

	// 8. Write the finished run back
	writer := calendar.NewWriter(calClient, calendar.WriterConfig{
		WorkCalendarID:     cfg.GoogleCalendar.WorkCalendarID,
		PersonalCalendarID: cfg.GoogleCalendar.PersonalCalendarID,
		Timezone:           cfg.GoogleCalendar.Timezone,
		PersistBuffers:     cfg.Scheduler.PersistBuffers,
	}, logger)

	if err := writer.WriteAssignments(ctx, out.Assignments, ownEvents); err != nil {
		return fmt.Errorf("write assignments: %w", err)
	}
	if err := writer.WriteBuffers(ctx, out.Buffers); err != nil {
		return fmt.Errorf("write buffers: %w", err)
	}
	return nil
}

func buildEngineConfig(sc config.SchedulerConfig, tz string) (schedule.Config, error) {
	workWindow, err := schedule.ParseDayWindow(sc.WorkDayWindow)
	if err != nil {
		return schedule.Config{}, err
	}
	personalWindow, err := schedule.ParseDayWindow(sc.PersonalDayWindow)
	if err != nil {
		return schedule.Config{}, err
	}

	suppressions, err := parseSuppressions(sc.Suppress, tz)
	if err != nil {
		return schedule.Config{}, err
	}

	loc := time.UTC
	if sc.TimezoneOffsetMinutes != 0 {
		loc = time.FixedZone(fmt.Sprintf("UTC%+d", sc.TimezoneOffsetMinutes/60), sc.TimezoneOffsetMinutes*60)
	}

	var breaks []schedule.DailyBreak
	if sc.ProtectBreaks {
		breaks = schedule.DefaultDailyBreaks()
	}

	return schedule.Config{
		TravelBuffer:        time.Duration(sc.TravelBufferMinutes) * time.Minute,
		RestBuffer:          time.Duration(sc.RestBufferMinutes) * time.Minute,
		HotWeatherThreshold: sc.HotWeatherThresholdCelsius,
		WorkDayWindow:       workWindow,
		PersonalDayWindow:   personalWindow,
		HorizonDays:         sc.HorizonDays,
		Location:            loc,
		Weights: schedule.Weights{
			Importance: sc.PriorityWeights.Importance,
			Deadline:   sc.PriorityWeights.Deadline,
			Energy:     sc.PriorityWeights.Energy,
			Duration:   sc.PriorityWeights.Duration,
		},
		Suppressions: suppressions,
		DailyBreaks:  breaks,
	}, nil
}

// parseSuppressions builds configured blackouts. Bounds are RFC 3339
// timestamps, or relative phrases like "next monday" and "in 2 weeks"
// resolved against the current time. A relative "to" covers the whole
// named day.
func parseSuppressions(raw []config.SuppressionConfig, timezone string) ([]schedule.Suppression, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	relParser, err := datemath.NewParser(timezone)
	if err != nil {
		return nil, fmt.Errorf("suppression timezone: %w", err)
	}

	now := time.Now()
	out := make([]schedule.Suppression, 0, len(raw))
	for _, s := range raw {
		start, serr := resolveBound(relParser, s.From, now, false)
		if serr != nil {
			return nil, serr
		}
		end, serr := resolveBound(relParser, s.To, now, true)
		if serr != nil {
			return nil, serr
		}
		sup, serr := schedule.NewSuppression(start, end, s.Context)
		if serr != nil {
			return nil, serr
		}
		out = append(out, sup)
	}
	return out, nil
}

func resolveBound(relParser *datemath.Parser, value string, now time.Time, isEnd bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := relParser.Parse(value, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("suppression bound %q: %w", value, err)
	}
	if isEnd {
		t = relParser.EndOfDay(t)
	}
	return t, nil
}

// loadEvents gathers busy events from both Google calendars and any
// subscribed ICS feeds, classified into the engine's event model. Task
// events written by a previous run are kept out of the busy set and
// returned separately so the writer can reconcile against them.
func loadEvents(ctx context.Context, cfg *config.Config, logger log.Logger, calClient *gcalendar.Client, from, to time.Time) ([]model.CalendarEvent, []calendar.ExistingTaskEvent, error) {
	var events []model.CalendarEvent
	var ownEvents []calendar.ExistingTaskEvent

	calendars := []struct {
		id      string
		context model.Context
	}{
		{cfg.GoogleCalendar.WorkCalendarID, model.ContextWork},
		{cfg.GoogleCalendar.PersonalCalendarID, model.ContextPersonal},
	}
	for _, cal := range calendars {
		if cal.id == "" {
			continue
		}
		raw, err := calClient.ListEvents(ctx, gcalendar.ListEventsRequest{
			CalendarID: cal.id,
			TimeMin:    from,
			TimeMax:    to,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("list events for %s calendar: %w", cal.context, err)
		}
		events = append(events, calendar.ClassifyAll(raw, cal.context)...)
		ownEvents = append(ownEvents, calendar.CollectTaskEvents(raw, cal.id)...)
	}

	fetcher := ics.NewFetcher(logger)
	for _, feed := range cfg.ICS.Feeds {
		raw, err := fetcher.FetchEvents(ctx, feed.URL, from, to)
		if err != nil {
			return nil, nil, fmt.Errorf("fetch ics feed: %w", err)
		}
		feedCtx := model.ContextPersonal
		if feed.Context == "work" {
			feedCtx = model.ContextWork
		}
		events = append(events, calendar.ClassifyAll(raw, feedCtx)...)
	}

	return events, ownEvents, nil
}

// loadForecast fetches the hourly forecast and folds it into per-day
// maxima. Weather only gates a narrow class of tasks, so any failure
// here degrades to "no weather data" instead of aborting.
func loadForecast(ctx context.Context, cfg *config.Config, logger log.Logger, loc *time.Location) map[string]schedule.DayForecast {
	if cfg.MetOffice.APIKey == "" {
		logger.Info(ctx, "No Met Office API key configured; skipping weather checks")
		return nil
	}

	weatherClient := metoffice.NewClient("", cfg.MetOffice.APIKey, logger)
	points, err := weatherClient.HourlyForecast(ctx, cfg.MetOffice.Latitude, cfg.MetOffice.Longitude)
	if err != nil {
		logger.Warnf(ctx, "Weather fetch failed, continuing without forecast: %v", err)
		return nil
	}

	forecast := make(map[string]schedule.DayForecast)
	for day, maxFeelsLike := range metoffice.DailyMaxFeelsLike(points, loc) {
		forecast[day] = schedule.DayForecast{Date: day, MaxFeelsLike: maxFeelsLike}
	}
	return forecast
}

func reportSkippedRecords(ctx context.Context, logger log.Logger, skipped []repository.SkippedRecord) {
	for _, rec := range skipped {
		logger.Warnf(ctx, "Skipped task record %s: %s", rec.ID, rec.Reason)
	}
}
