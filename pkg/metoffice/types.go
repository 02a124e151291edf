package metoffice

import "time"

// pointTimeLayout is the DataHub timestamp format. Minute precision,
// always UTC, no seconds.
const pointTimeLayout = "2006-01-02T15:04Z07:00"

// HourlyPoint is one hour of the site-specific forecast. Only the
// fields this service reads are decoded.
type HourlyPoint struct {
	Time                 string  `json:"time"`
	FeelsLikeTemperature float64 `json:"feelsLikeTemperature"`
}

// At parses the point's timestamp.
func (p HourlyPoint) At() (time.Time, error) {
	return time.Parse(pointTimeLayout, p.Time)
}

// ---- Response types scoped to this package ----

type hourlyResponse struct {
	Features []feature `json:"features"`
}

type feature struct {
	Properties featureProperties `json:"properties"`
}

type featureProperties struct {
	TimeSeries []HourlyPoint `json:"timeSeries"`
}

// DailyMaxFeelsLike folds hourly points into the per-day maximum
// feels-like temperature, keyed by local date. Points with unparseable
// timestamps are skipped.
func DailyMaxFeelsLike(points []HourlyPoint, loc *time.Location) map[string]float64 {
	out := make(map[string]float64)
	for _, p := range points {
		at, err := p.At()
		if err != nil {
			continue
		}
		day := at.In(loc).Format("2006-01-02")
		if max, ok := out[day]; !ok || p.FeelsLikeTemperature > max {
			out[day] = p.FeelsLikeTemperature
		}
	}
	return out
}
