package service

import (
	"context"
	"errors"
	"time"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

// EnsureDefaults seeds the fixed stopwatch timer and the settings document
// when they are missing. Called once at startup.
func EnsureDefaults(ctx context.Context, timers storage.TimerRepository, settings storage.SettingsRepository, now time.Time) error {
	if _, err := timers.GetTimer(ctx, internal.StopwatchID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		stopwatch := &internal.Timer{
			ID:        internal.StopwatchID,
			Name:      "Stopwatch",
			Duration:  0,
			Type:      internal.TimerStopwatch,
			CreatedAt: now,
		}
		if err := timers.SaveTimer(ctx, stopwatch); err != nil {
			return err
		}
	}

	if _, err := settings.GetSettings(ctx); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err := settings.SaveSettings(ctx, internal.DefaultSettings()); err != nil {
			return err
		}
	}
	return nil
}
