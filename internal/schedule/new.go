package schedule

import (
	"fmt"
	"time"

	pkgLog "github.com/kiri-thornalley/virtual-assistant/pkg/log"
)

type implUseCase struct {
	l   pkgLog.Logger
	cfg Config
}

// New creates a scheduling engine instance. The config is validated
// once here so Run can assume it is sound.
func New(l pkgLog.Logger, cfg Config) (UseCase, error) {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.HorizonDays <= 0 {
		return nil, fmt.Errorf("%w: horizon must be at least one day", ErrBadConfig)
	}
	if cfg.WorkDayWindow.End <= cfg.WorkDayWindow.Start {
		return nil, fmt.Errorf("%w: work day window is empty", ErrBadConfig)
	}
	if cfg.PersonalDayWindow.End <= cfg.PersonalDayWindow.Start {
		return nil, fmt.Errorf("%w: personal day window is empty", ErrBadConfig)
	}
	if cfg.TravelBuffer < 0 || cfg.RestBuffer < 0 {
		return nil, fmt.Errorf("%w: buffers must not be negative", ErrBadConfig)
	}
	return &implUseCase{l: l, cfg: cfg}, nil
}
