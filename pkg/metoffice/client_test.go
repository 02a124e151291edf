package metoffice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

const forecastBody = `{
	"features": [
		{
			"properties": {
				"timeSeries": [
					{"time": "2025-06-02T12:00Z", "feelsLikeTemperature": 19.4},
					{"time": "2025-06-02T15:00Z", "feelsLikeTemperature": 24.1},
					{"time": "2025-06-03T12:00Z", "feelsLikeTemperature": 17.0}
				]
			}
		}
	]
}`

func TestHourlyForecast(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/point/hourly" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("missing apikey header")
		}
		if r.URL.Query().Get("latitude") != "53.9500" {
			t.Errorf("latitude = %s", r.URL.Query().Get("latitude"))
		}
		w.Write([]byte(forecastBody))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", mockLogger{})
	points, err := c.HourlyForecast(context.Background(), 53.95, -1.08)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[1].FeelsLikeTemperature != 24.1 {
		t.Errorf("feels-like = %v", points[1].FeelsLikeTemperature)
	}

	// Second call for the same coordinate must come from cache.
	if _, err := c.HourlyForecast(context.Background(), 53.95, -1.08); err != nil {
		t.Fatalf("unexpected error on cached call: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call, got %d", calls)
	}
}

func TestHourlyForecast_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "bad-key", mockLogger{})
	if _, err := c.HourlyForecast(context.Background(), 53.95, -1.08); err == nil {
		t.Fatal("expected error")
	}
}

func TestHourlyForecast_NoFeatures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features": []}`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, "test-key", mockLogger{})
	if _, err := c.HourlyForecast(context.Background(), 53.95, -1.08); err == nil {
		t.Fatal("expected error for empty features")
	}
}

func TestDailyMaxFeelsLike(t *testing.T) {
	points := []HourlyPoint{
		{Time: "2025-06-02T12:00Z", FeelsLikeTemperature: 19.4},
		{Time: "2025-06-02T15:00Z", FeelsLikeTemperature: 24.1},
		{Time: "2025-06-02T18:00Z", FeelsLikeTemperature: 21.0},
		{Time: "2025-06-03T12:00Z", FeelsLikeTemperature: 17.0},
		{Time: "not-a-time", FeelsLikeTemperature: 99.0},
	}

	byDay := DailyMaxFeelsLike(points, time.UTC)
	if len(byDay) != 2 {
		t.Fatalf("expected 2 days, got %d", len(byDay))
	}
	if byDay["2025-06-02"] != 24.1 {
		t.Errorf("max for 2025-06-02 = %v", byDay["2025-06-02"])
	}
	if byDay["2025-06-03"] != 17.0 {
		t.Errorf("max for 2025-06-03 = %v", byDay["2025-06-03"])
	}
}

func TestDailyMaxFeelsLike_TimezoneRollover(t *testing.T) {
	// 23:00Z on the 2nd is already the 3rd at UTC+2.
	points := []HourlyPoint{
		{Time: "2025-06-02T23:00Z", FeelsLikeTemperature: 20.0},
	}
	byDay := DailyMaxFeelsLike(points, time.FixedZone("UTC+2", 2*60*60))
	if _, ok := byDay["2025-06-03"]; !ok {
		t.Errorf("point should land on the local date: %v", byDay)
	}
}
