package schedule

import "github.com/kiri-thornalley/virtual-assistant/internal/model"

// HotDays returns the dates whose maximum feels-like temperature
// exceeds the threshold.
func HotDays(forecast map[string]DayForecast, thresholdCelsius float64) map[string]bool {
	hot := make(map[string]bool, len(forecast))
	for date, f := range forecast {
		if f.MaxFeelsLike > thresholdCelsius {
			hot[date] = true
		}
	}
	return hot
}

// WeatherIneligible reports whether a task may not be scheduled on the
// given date. Only high-energy personal tasks are gated, and only on
// hot days; work tasks and tasks without an energy level are always
// eligible. This is advisory input to the matcher and never alters
// a task's priority score.
func WeatherIneligible(t model.Task, date string, hotDays map[string]bool) bool {
	if t.Context != model.ContextPersonal {
		return false
	}
	if t.EnergyLevel != model.EnergyHigh {
		return false
	}
	return hotDays[date]
}
