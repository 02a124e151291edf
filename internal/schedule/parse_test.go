package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/kiri-thornalley/virtual-assistant/internal/model"
)

func TestParseDayWindow(t *testing.T) {
	tcs := []struct {
		in      string
		want    DayWindow
		wantErr bool
	}{
		{in: "09:00-17:30", want: DayWindow{Start: 9 * time.Hour, End: 17*time.Hour + 30*time.Minute}},
		{in: "07:00-21:30", want: DayWindow{Start: 7 * time.Hour, End: 21*time.Hour + 30*time.Minute}},
		{in: "00:00-24:00", want: DayWindow{Start: 0, End: 24 * time.Hour}},
		{in: "17:30-09:00", wantErr: true},
		{in: "09:00", wantErr: true},
		{in: "9am-5pm", wantErr: true},
		{in: "09:00-25:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tcs {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDayWindow(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				if !errors.Is(err, ErrBadConfig) {
					t.Errorf("error should wrap ErrBadConfig: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseSuppression(t *testing.T) {
	got, err := ParseSuppression("2025-06-10T00:00:00Z", "2025-06-13T00:00:00Z", "personal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Context != model.ContextPersonal {
		t.Errorf("context = %q", got.Context)
	}
	if got.Range.Duration() != 72*time.Hour {
		t.Errorf("range = %s", got.Range.Duration())
	}

	if _, err := ParseSuppression("2025-06-10T00:00:00Z", "2025-06-13T00:00:00Z", ""); err != nil {
		t.Errorf("empty context should cover both domains: %v", err)
	}
	if _, err := ParseSuppression("next tuesday", "2025-06-13T00:00:00Z", ""); err == nil {
		t.Error("expected error for bad timestamp")
	}
	if _, err := ParseSuppression("2025-06-13T00:00:00Z", "2025-06-10T00:00:00Z", ""); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := ParseSuppression("2025-06-10T00:00:00Z", "2025-06-13T00:00:00Z", "weekend"); err == nil {
		t.Error("expected error for unknown context")
	}
}
