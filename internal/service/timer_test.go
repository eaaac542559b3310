package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

func setupTestStore(t *testing.T) *storage.FileStore {
	store, err := storage.NewFileStore(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateTimerAssignsNextOrder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	first, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Study", Duration: 1500}, now)
	assert.NoError(t, err)
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, internal.TimerCountdown, first.Type)

	second, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Reading", Duration: 600}, now)
	assert.NoError(t, err)
	assert.Equal(t, 1, second.Order)
}

func TestCreateTimerRejectsStopwatchType(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	err := EnsureDefaults(ctx, store, store, now)
	assert.NoError(t, err)

	_, err = CreateTimer(ctx, store, &TimerCreateRequest{Name: "Another Stopwatch", Type: internal.TimerStopwatch}, now)
	assert.Error(t, err)
	assert.Equal(t, 400, internal.StatusOf(err))

	timers, err := store.ListTimers(ctx)
	assert.NoError(t, err)
	count := 0
	for _, tm := range timers {
		if tm.Type == internal.TimerStopwatch {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStopTimerWithoutStart(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sessions := NewActiveSessions()

	timer, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Study"}, time.Now())
	assert.NoError(t, err)

	_, err = StopTimer(ctx, store, store, sessions, timer.ID, "focus", "", "", time.Now())
	assert.Error(t, err)
	assert.Equal(t, 400, internal.StatusOf(err))
}

func TestStopTimerDiscardsUntagged(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sessions := NewActiveSessions()

	timer, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Study"}, time.Now())
	assert.NoError(t, err)

	start := time.Now()
	_, err = StartTimer(ctx, store, sessions, timer.ID, start)
	assert.NoError(t, err)

	record, err := StopTimer(ctx, store, store, sessions, timer.ID, "", "", "", start.Add(time.Minute))
	assert.NoError(t, err)
	assert.Nil(t, record)

	records, err := store.ListRecords(ctx, storage.RecordFilter{})
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.False(t, sessions.IsActive(timer.ID))
}

func TestStopTimerCreatesRecord(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sessions := NewActiveSessions()

	timer, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Study"}, time.Now())
	assert.NoError(t, err)

	start := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	_, err = StartTimer(ctx, store, sessions, timer.ID, start)
	assert.NoError(t, err)

	record, err := StopTimer(ctx, store, store, sessions, timer.ID, "focus", "⭐", "morning", end)
	assert.NoError(t, err)
	assert.NotNil(t, record)
	assert.Equal(t, timer.ID, record.TimerID)
	assert.Equal(t, "Study", record.TimerName)
	assert.Equal(t, 90, record.Duration)
	assert.Equal(t, "2026-03-18", record.Date)
	assert.Equal(t, "focus", record.Tag)

	records, err := store.ListRecords(ctx, storage.RecordFilter{TimerID: timer.ID})
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStartTimerTwiceRestarts(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sessions := NewActiveSessions()

	timer, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Study"}, time.Now())
	assert.NoError(t, err)

	t0 := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(5 * time.Minute)
	t2 := t1.Add(30 * time.Second)

	_, err = StartTimer(ctx, store, sessions, timer.ID, t0)
	assert.NoError(t, err)
	_, err = StartTimer(ctx, store, sessions, timer.ID, t1)
	assert.NoError(t, err)

	record, err := StopTimer(ctx, store, store, sessions, timer.ID, "focus", "", "", t2)
	assert.NoError(t, err)
	assert.Equal(t, 30, record.Duration)
}

func TestDeleteTimerGuards(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	sessions := NewActiveSessions()

	err := EnsureDefaults(ctx, store, store, time.Now())
	assert.NoError(t, err)

	// The fixed stopwatch is never deletable.
	err = DeleteTimer(ctx, store, sessions, internal.StopwatchID)
	assert.Error(t, err)
	assert.Equal(t, 400, internal.StatusOf(err))

	timer, err := CreateTimer(ctx, store, &TimerCreateRequest{Name: "Study"}, time.Now())
	assert.NoError(t, err)

	_, err = StartTimer(ctx, store, sessions, timer.ID, time.Now())
	assert.NoError(t, err)
	err = DeleteTimer(ctx, store, sessions, timer.ID)
	assert.Error(t, err)
	assert.Equal(t, 400, internal.StatusOf(err))

	_, ok := sessions.Stop(timer.ID)
	assert.True(t, ok)
	err = DeleteTimer(ctx, store, sessions, timer.ID)
	assert.NoError(t, err)

	_, err = store.GetTimer(ctx, timer.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateStopwatchOnlyAcceptsImage(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := EnsureDefaults(ctx, store, store, time.Now())
	assert.NoError(t, err)

	name := "Renamed"
	duration := 300
	image := "/uploads/sw.png"
	updated, err := UpdateTimer(ctx, store, internal.StopwatchID, &TimerUpdateRequest{
		Name:     &name,
		Duration: &duration,
		Image:    &image,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Stopwatch", updated.Name)
	assert.Equal(t, 0, updated.Duration)
	assert.Equal(t, image, updated.Image)
}

func TestReorderTimers(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	now := time.Now()

	a, _ := CreateTimer(ctx, store, &TimerCreateRequest{Name: "A"}, now)
	b, _ := CreateTimer(ctx, store, &TimerCreateRequest{Name: "B"}, now)
	c, _ := CreateTimer(ctx, store, &TimerCreateRequest{Name: "C"}, now)

	err := ReorderTimers(ctx, store, []string{c.ID, a.ID, b.ID})
	assert.NoError(t, err)

	timers, err := store.ListTimers(ctx)
	assert.NoError(t, err)
	assert.Len(t, timers, 3)
	assert.Equal(t, "C", timers[0].Name)
	assert.Equal(t, "A", timers[1].Name)
	assert.Equal(t, "B", timers[2].Name)
}
