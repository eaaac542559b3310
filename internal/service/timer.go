package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

var validate = validator.New()

type TimerCreateRequest struct {
	Name     string `json:"name" validate:"required"`
	Duration int    `json:"duration" validate:"gte=0"`
	Image    string `json:"image,omitempty"`
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=countdown stopwatch"`
}

type TimerUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Duration *int    `json:"duration,omitempty" validate:"omitempty,gte=0"`
	Image    *string `json:"image,omitempty"`
}

func ValidateTimerCreateRequest(req *TimerCreateRequest) error {
	return validate.Struct(req)
}

func CreateTimer(ctx context.Context, timers storage.TimerRepository, req *TimerCreateRequest, now time.Time) (*internal.Timer, error) {
	existing, err := timers.ListTimers(ctx)
	if err != nil {
		return nil, err
	}
	nextOrder := 0
	for _, t := range existing {
		if t.Order >= nextOrder {
			nextOrder = t.Order + 1
		}
	}

	// The app owns a single stopwatch under a fixed id, seeded at startup.
	if req.Type == internal.TimerStopwatch {
		return nil, internal.ErrInvalidState("only one stopwatch timer is allowed")
	}
	kind := req.Type
	if kind == "" {
		kind = internal.TimerCountdown
	}

	timer := &internal.Timer{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Duration:  req.Duration,
		Image:     req.Image,
		Type:      kind,
		Order:     nextOrder,
		CreatedAt: now,
	}
	if err := timers.SaveTimer(ctx, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// UpdateTimer applies a partial update. The fixed stopwatch timer only
// accepts image changes.
func UpdateTimer(ctx context.Context, timers storage.TimerRepository, id string, req *TimerUpdateRequest) (*internal.Timer, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	timer, err := timers.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}

	if timer.Type == internal.TimerStopwatch {
		if req.Image != nil {
			timer.Image = *req.Image
		}
	} else {
		if req.Name != nil {
			timer.Name = *req.Name
		}
		if req.Duration != nil {
			timer.Duration = *req.Duration
		}
		if req.Image != nil {
			timer.Image = *req.Image
		}
	}

	if err := timers.SaveTimer(ctx, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// DeleteTimer refuses to remove a running timer or the fixed stopwatch.
func DeleteTimer(ctx context.Context, timers storage.TimerRepository, sessions *ActiveSessions, id string) error {
	if id == internal.StopwatchID {
		return internal.ErrInvalidState("the stopwatch timer cannot be deleted")
	}
	if _, err := timers.GetTimer(ctx, id); err != nil {
		return err
	}
	if sessions.IsActive(id) {
		return internal.ErrInvalidState("timer is currently active")
	}
	return timers.DeleteTimer(ctx, id)
}

func ToggleFavorite(ctx context.Context, timers storage.TimerRepository, id string) (*internal.Timer, error) {
	timer, err := timers.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	timer.IsFavorite = !timer.IsFavorite
	if err := timers.SaveTimer(ctx, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// ReorderTimers assigns ascending order indexes following the given id list.
func ReorderTimers(ctx context.Context, timers storage.TimerRepository, ids []string) error {
	for i, id := range ids {
		timer, err := timers.GetTimer(ctx, id)
		if err != nil {
			return err
		}
		timer.Order = i
		if err := timers.SaveTimer(ctx, timer); err != nil {
			return err
		}
	}
	return nil
}

// StartTimer records the start time for a timer. A second start overwrites
// the previous one, which restarts the session.
func StartTimer(ctx context.Context, timers storage.TimerRepository, sessions *ActiveSessions, id string, now time.Time) (time.Time, error) {
	if _, err := timers.GetTimer(ctx, id); err != nil {
		return time.Time{}, err
	}
	sessions.Start(id, now)
	return now, nil
}

// StopTimer ends the active session. When tag is empty the session is
// discarded without persistence; otherwise a Record is created with the
// timer name denormalized into it.
func StopTimer(ctx context.Context, timers storage.TimerRepository, records storage.RecordRepository, sessions *ActiveSessions, id, tag, stamp, comment string, now time.Time) (*internal.Record, error) {
	timer, err := timers.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	start, ok := sessions.Stop(id)
	if !ok {
		return nil, internal.ErrInvalidState("timer is not running")
	}
	if tag == "" {
		return nil, nil
	}

	record := &internal.Record{
		ID:        NewRecordID(now),
		TimerID:   timer.ID,
		TimerName: timer.Name,
		StartTime: start,
		EndTime:   now,
		Duration:  int(now.Sub(start).Seconds()),
		Date:      now.Format("2006-01-02"),
		Tag:       tag,
		Stamp:     stamp,
		Comment:   comment,
	}
	if err := records.SaveRecord(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
