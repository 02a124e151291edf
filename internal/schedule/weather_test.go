package schedule

import (
	"testing"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

func TestHotDays(t *testing.T) {
	forecast := map[string]DayForecast{
		"2025-06-02": {Date: "2025-06-02", MaxFeelsLike: 32},
		"2025-06-03": {Date: "2025-06-03", MaxFeelsLike: 28}, // at threshold, not above
		"2025-06-04": {Date: "2025-06-04", MaxFeelsLike: 19},
	}

	hot := HotDays(forecast, 28)
	if !hot["2025-06-02"] {
		t.Error("32°C above a 28°C threshold should be hot")
	}
	if hot["2025-06-03"] {
		t.Error("exactly at threshold should not be hot")
	}
	if hot["2025-06-04"] {
		t.Error("19°C should not be hot")
	}
}

func TestWeatherIneligible(t *testing.T) {
	hot := map[string]bool{"2025-06-02": true}

	tests := []struct {
		name    string
		context model.Context
		energy  model.EnergyLevel
		date    string
		want    bool
	}{
		{"high-energy personal on hot day", model.ContextPersonal, model.EnergyHigh, "2025-06-02", true},
		{"high-energy work on hot day unaffected", model.ContextWork, model.EnergyHigh, "2025-06-02", false},
		{"low-energy personal on hot day", model.ContextPersonal, model.EnergyLow, "2025-06-02", false},
		{"no energy level set is always eligible", model.ContextPersonal, model.EnergyUnset, "2025-06-02", false},
		{"high-energy personal on cool day", model.ContextPersonal, model.EnergyHigh, "2025-06-03", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := model.Task{
				ID:                "t",
				Context:           tt.context,
				EnergyLevel:       tt.energy,
				EstimatedDuration: time.Hour,
			}
			if got := WeatherIneligible(task, tt.date, hot); got != tt.want {
				t.Errorf("WeatherIneligible() = %v, want %v", got, tt.want)
			}
		})
	}
}
