package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kearth1516-lgtm/my-app/internal"
)

func TestCreatePomodoroSessionDefaults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	session, err := CreatePomodoroSession(ctx, store, &PomodoroCreateRequest{
		TimerID:         "t1",
		TaskDescription: "write report",
	}, now)
	assert.NoError(t, err)
	assert.Equal(t, 4, session.PomodoroCount)
	assert.Equal(t, internal.PomodoroInProgress, session.Status)
	assert.Equal(t, now, session.StartedAt)
	assert.Nil(t, session.CompletedAt)
}

func TestUpdatePomodoroSessionStampsCompletedAt(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	session, err := CreatePomodoroSession(ctx, store, &PomodoroCreateRequest{
		TimerID:         "t1",
		TaskDescription: "write report",
		PomodoroCount:   2,
	}, time.Now().UTC())
	assert.NoError(t, err)

	done := 2
	duration := 3000
	now := time.Now().UTC()
	updated, err := UpdatePomodoroSession(ctx, store, session.ID, &PomodoroUpdateRequest{
		Status:             internal.PomodoroCompleted,
		CompletedPomodoros: &done,
		ActualDuration:     &duration,
	}, now)
	assert.NoError(t, err)
	assert.Equal(t, internal.PomodoroCompleted, updated.Status)
	assert.Equal(t, 2, updated.CompletedPomodoros)
	assert.Equal(t, 3000, updated.ActualDuration)
	assert.NotNil(t, updated.CompletedAt)
	assert.Equal(t, now, *updated.CompletedAt)

	_, err = UpdatePomodoroSession(ctx, store, session.ID, &PomodoroUpdateRequest{Status: "paused"}, now)
	assert.Error(t, err)
}

func TestCalculatePomodoroStatsWindows(t *testing.T) {
	// Wednesday; the week window opens on Monday the 16th, the month
	// window on the 1st.
	now := time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

	sessions := []internal.PomodoroSession{
		{TaskDescription: "report", CompletedPomodoros: 2, ActualDuration: 3000, StartedAt: now.Add(-time.Hour)},
		{TaskDescription: "report", CompletedPomodoros: 1, ActualDuration: 1500, StartedAt: time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC)},
		{TaskDescription: "chores", CompletedPomodoros: 3, ActualDuration: 600, StartedAt: time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)},
		{TaskDescription: "chores", CompletedPomodoros: 1, ActualDuration: 59, StartedAt: time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)},
	}

	stats := CalculatePomodoroStats(sessions, now)

	assert.Equal(t, 7, stats.TotalPomodoros)
	assert.Equal(t, 2, stats.TodayPomodoros)
	assert.Equal(t, 3, stats.WeekPomodoros)
	assert.Equal(t, 6, stats.MonthPomodoros)
	// 5159 seconds floor to 85 minutes.
	assert.Equal(t, 85, stats.TotalDuration)

	assert.Len(t, stats.TaskBreakdown, 2)
	assert.Equal(t, "report", stats.TaskBreakdown[0].Task)
	assert.Equal(t, 3, stats.TaskBreakdown[0].Pomodoros)
	assert.Equal(t, 75, stats.TaskBreakdown[0].Duration)
	assert.Equal(t, "chores", stats.TaskBreakdown[1].Task)
	assert.Equal(t, 10, stats.TaskBreakdown[1].Duration)

	assert.GreaterOrEqual(t, stats.WeekPomodoros, stats.TodayPomodoros)
	assert.GreaterOrEqual(t, stats.MonthPomodoros, stats.WeekPomodoros)
	assert.GreaterOrEqual(t, stats.TotalPomodoros, stats.MonthPomodoros)
}

func TestMarkTimerPomodoro(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	timer, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Deep work"}, time.Now())
	assert.NoError(t, err)

	marked, err := MarkTimerPomodoro(ctx, store, timer.ID)
	assert.NoError(t, err)
	assert.True(t, marked.IsPomodoroMode)
	assert.NotNil(t, marked.PomodoroSettings)
	assert.Equal(t, 25, marked.PomodoroSettings.WorkDuration)
	assert.Equal(t, 5, marked.PomodoroSettings.ShortBreak)
	assert.Equal(t, 15, marked.PomodoroSettings.LongBreak)
	assert.Equal(t, 4, marked.PomodoroSettings.SessionsUntilLongBreak)
}
