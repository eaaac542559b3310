package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

type PomodoroCreateRequest struct {
	TimerID         string `json:"timerId" validate:"required"`
	TaskDescription string `json:"taskDescription" validate:"required"`
	PomodoroCount   int    `json:"pomodoroCount" validate:"gte=0"`
}

type PomodoroUpdateRequest struct {
	Status             string  `json:"status" validate:"required,oneof=in_progress completed interrupted"`
	CompletedPomodoros *int    `json:"completedPomodoros,omitempty" validate:"omitempty,gte=0"`
	ActualDuration     *int    `json:"actualDuration,omitempty" validate:"omitempty,gte=0"`
	Note               *string `json:"note,omitempty"`
}

func CreatePomodoroSession(ctx context.Context, sessions storage.PomodoroRepository, req *PomodoroCreateRequest, now time.Time) (*internal.PomodoroSession, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	count := req.PomodoroCount
	if count == 0 {
		count = 4
	}
	session := &internal.PomodoroSession{
		ID:              uuid.NewString(),
		TimerID:         req.TimerID,
		TaskDescription: req.TaskDescription,
		PomodoroCount:   count,
		Status:          internal.PomodoroInProgress,
		StartedAt:       now,
	}
	if err := sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdatePomodoroSession overwrites the status and applies any supplied
// progress fields. CompletedAt is stamped when the session moves into
// completed or interrupted.
func UpdatePomodoroSession(ctx context.Context, sessions storage.PomodoroRepository, id string, req *PomodoroUpdateRequest, now time.Time) (*internal.PomodoroSession, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	session, err := sessions.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Status = req.Status
	if req.CompletedPomodoros != nil {
		session.CompletedPomodoros = *req.CompletedPomodoros
	}
	if req.ActualDuration != nil {
		session.ActualDuration = *req.ActualDuration
	}
	if req.Note != nil {
		session.Note = *req.Note
	}
	if req.Status == internal.PomodoroCompleted || req.Status == internal.PomodoroInterrupted {
		at := now
		session.CompletedAt = &at
	}

	if err := sessions.SaveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

type TaskBreakdown struct {
	Task      string `json:"task"`
	Pomodoros int    `json:"pomodoros"`
	Duration  int    `json:"duration"` // minutes
}

type PomodoroStats struct {
	TotalPomodoros int             `json:"totalPomodoros"`
	TotalDuration  int             `json:"totalDuration"` // minutes
	TodayPomodoros int             `json:"todayPomodoros"`
	WeekPomodoros  int             `json:"weekPomodoros"`
	MonthPomodoros int             `json:"monthPomodoros"`
	TaskBreakdown  []TaskBreakdown `json:"taskBreakdown"`
}

// CalculatePomodoroStats aggregates completed sessions. The time windows
// are midnight today, Monday of the current week, and the first of the
// current month, all in now's location.
func CalculatePomodoroStats(sessions []internal.PomodoroSession, now time.Time) PomodoroStats {
	loc := now.Location()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	weekStart := todayStart.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

	stats := PomodoroStats{TaskBreakdown: []TaskBreakdown{}}
	taskIdx := make(map[string]int)
	totalSeconds := 0

	for _, s := range sessions {
		stats.TotalPomodoros += s.CompletedPomodoros
		totalSeconds += s.ActualDuration

		if !s.StartedAt.Before(todayStart) {
			stats.TodayPomodoros += s.CompletedPomodoros
		}
		if !s.StartedAt.Before(weekStart) {
			stats.WeekPomodoros += s.CompletedPomodoros
		}
		if !s.StartedAt.Before(monthStart) {
			stats.MonthPomodoros += s.CompletedPomodoros
		}

		i, ok := taskIdx[s.TaskDescription]
		if !ok {
			i = len(stats.TaskBreakdown)
			taskIdx[s.TaskDescription] = i
			stats.TaskBreakdown = append(stats.TaskBreakdown, TaskBreakdown{Task: s.TaskDescription})
		}
		stats.TaskBreakdown[i].Pomodoros += s.CompletedPomodoros
		stats.TaskBreakdown[i].Duration += s.ActualDuration / 60
	}

	stats.TotalDuration = totalSeconds / 60
	return stats
}

// MarkTimerPomodoro flags a timer as pomodoro-mode with default settings.
func MarkTimerPomodoro(ctx context.Context, timers storage.TimerRepository, id string) (*internal.Timer, error) {
	timer, err := timers.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	timer.IsPomodoroMode = true
	timer.PomodoroSettings = &internal.PomodoroSettings{
		WorkDuration:           25,
		ShortBreak:             5,
		LongBreak:              15,
		SessionsUntilLongBreak: 4,
	}
	if err := timers.SaveTimer(ctx, timer); err != nil {
		return nil, err
	}
	return timer, nil
}
