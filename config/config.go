package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig
	Logger      LoggerConfig

	// Input sources
	Todoist        TodoistConfig
	GoogleCalendar GoogleCalendarConfig
	ICS            ICSConfig
	MetOffice      MetOfficeConfig

	// Scheduling behaviour
	Scheduler SchedulerConfig
}

type EnvironmentConfig struct {
	Name string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TodoistConfig struct {
	APIToken  string
	ProjectID string // empty means all active tasks
}

type GoogleCalendarConfig struct {
	CredentialsPath    string
	WorkCalendarID     string
	PersonalCalendarID string
	Timezone           string // IANA name for created events, e.g. "Europe/London"
}

// ICSFeedConfig is one subscribed ICS feed. Context decides which
// scheduling domain its events block.
type ICSFeedConfig struct {
	URL     string
	Context string // "work" or "personal"
}

type ICSConfig struct {
	Feeds []ICSFeedConfig
}

type MetOfficeConfig struct {
	APIKey    string
	Latitude  float64
	Longitude float64
}

// SuppressionConfig is one configured scheduling blackout. From and To
// are RFC 3339 timestamps; an empty context suppresses both domains.
type SuppressionConfig struct {
	From    string
	To      string
	Context string
}

// SchedulerConfig carries the engine knobs as read from the file.
// Parsing into engine types happens at wiring time.
type SchedulerConfig struct {
	TravelBufferMinutes        int
	RestBufferMinutes          int
	HotWeatherThresholdCelsius float64
	WorkDayWindow              string // "09:00-17:30"
	PersonalDayWindow          string
	TimezoneOffsetMinutes      int
	HorizonDays                int
	PersistBuffers             bool
	ProtectBreaks              bool
	PriorityWeights            PriorityWeightsConfig
	Suppress                   []SuppressionConfig
}

type PriorityWeightsConfig struct {
	Importance float64
	Deadline   float64
	Energy     float64
	Duration   float64
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & logging
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Todoist
	cfg.Todoist.APIToken = viper.GetString("todoist.api_token")
	cfg.Todoist.ProjectID = viper.GetString("todoist.project_id")
	if token := viper.GetString("todoist_api_token"); token != "" {
		cfg.Todoist.APIToken = token
	}

	// Google Calendar
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.WorkCalendarID = viper.GetString("google_calendar.work_calendar_id")
	cfg.GoogleCalendar.PersonalCalendarID = viper.GetString("google_calendar.personal_calendar_id")
	cfg.GoogleCalendar.Timezone = viper.GetString("google_calendar.timezone")
	if creds := viper.GetString("google_calendar_credentials"); creds != "" {
		cfg.GoogleCalendar.CredentialsPath = creds
	}

	// ICS feeds
	if viper.IsSet("ics.feeds") {
		if feedsList, ok := viper.Get("ics.feeds").([]interface{}); ok {
			for _, f := range feedsList {
				if feedMap, ok := f.(map[string]interface{}); ok {
					cfg.ICS.Feeds = append(cfg.ICS.Feeds, ICSFeedConfig{
						URL:     getStringFromMap(feedMap, "url"),
						Context: getStringFromMap(feedMap, "context"),
					})
				}
			}
		}
	}

	// Met Office DataHub
	cfg.MetOffice.APIKey = viper.GetString("met_office.api_key")
	cfg.MetOffice.Latitude = viper.GetFloat64("met_office.latitude")
	cfg.MetOffice.Longitude = viper.GetFloat64("met_office.longitude")
	if key := viper.GetString("met_office_api_key"); key != "" {
		cfg.MetOffice.APIKey = key
	}

	// Scheduler
	cfg.Scheduler.TravelBufferMinutes = viper.GetInt("scheduler.travel_buffer_minutes")
	cfg.Scheduler.RestBufferMinutes = viper.GetInt("scheduler.rest_buffer_minutes")
	cfg.Scheduler.HotWeatherThresholdCelsius = viper.GetFloat64("scheduler.hot_weather_threshold_celsius")
	cfg.Scheduler.WorkDayWindow = viper.GetString("scheduler.work_day_window")
	cfg.Scheduler.PersonalDayWindow = viper.GetString("scheduler.personal_day_window")
	cfg.Scheduler.TimezoneOffsetMinutes = viper.GetInt("scheduler.timezone_offset_minutes")
	cfg.Scheduler.HorizonDays = viper.GetInt("scheduler.horizon_days")
	cfg.Scheduler.PersistBuffers = viper.GetBool("scheduler.persist_buffers")
	cfg.Scheduler.ProtectBreaks = viper.GetBool("scheduler.protect_breaks")
	cfg.Scheduler.PriorityWeights.Importance = viper.GetFloat64("scheduler.priority_weights.importance")
	cfg.Scheduler.PriorityWeights.Deadline = viper.GetFloat64("scheduler.priority_weights.deadline")
	cfg.Scheduler.PriorityWeights.Energy = viper.GetFloat64("scheduler.priority_weights.energy")
	cfg.Scheduler.PriorityWeights.Duration = viper.GetFloat64("scheduler.priority_weights.duration")

	if viper.IsSet("scheduler.suppress") {
		if suppressList, ok := viper.Get("scheduler.suppress").([]interface{}); ok {
			for _, s := range suppressList {
				if suppressMap, ok := s.(map[string]interface{}); ok {
					cfg.Scheduler.Suppress = append(cfg.Scheduler.Suppress, SuppressionConfig{
						From:    getStringFromMap(suppressMap, "from"),
						To:      getStringFromMap(suppressMap, "to"),
						Context: getStringFromMap(suppressMap, "context"),
					})
				}
			}
		}
	}

	if cfg.Todoist.APIToken == "" {
		return nil, fmt.Errorf("todoist.api_token is required - set it in config.yaml or TODOIST_API_TOKEN")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("google_calendar.timezone", "Europe/London")

	viper.SetDefault("scheduler.travel_buffer_minutes", 30)
	viper.SetDefault("scheduler.rest_buffer_minutes", 15)
	viper.SetDefault("scheduler.hot_weather_threshold_celsius", 22.0)
	viper.SetDefault("scheduler.work_day_window", "09:00-17:30")
	viper.SetDefault("scheduler.personal_day_window", "07:00-21:30")
	viper.SetDefault("scheduler.timezone_offset_minutes", 0)
	viper.SetDefault("scheduler.horizon_days", 28)
	viper.SetDefault("scheduler.persist_buffers", false)
	viper.SetDefault("scheduler.protect_breaks", true)
	viper.SetDefault("scheduler.priority_weights.importance", 0.25)
	viper.SetDefault("scheduler.priority_weights.deadline", 0.25)
	viper.SetDefault("scheduler.priority_weights.energy", 0.25)
	viper.SetDefault("scheduler.priority_weights.duration", 0.25)
}

// Helper to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
