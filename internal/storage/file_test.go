package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kearth1516-lgtm/my-app/internal"
)

func newStore(t *testing.T, dir string) *FileStore {
	store, err := NewFileStore(dir, internal.NopLogger{})
	assert.NoError(t, err)
	return store
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store := newStore(t, dir)
	err := store.SaveTimer(ctx, &internal.Timer{ID: "t1", Name: "Study", Type: internal.TimerCountdown})
	assert.NoError(t, err)
	err = store.SaveSettings(ctx, &internal.Settings{ID: internal.SettingsID, Theme: "blue", SoundEnabled: true})
	assert.NoError(t, err)
	// Close flushes the debounced writers.
	assert.NoError(t, store.Close())

	reopened := newStore(t, dir)
	defer reopened.Close()

	timer, err := reopened.GetTimer(ctx, "t1")
	assert.NoError(t, err)
	assert.Equal(t, "Study", timer.Name)

	settings, err := reopened.GetSettings(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "blue", settings.Theme)
}

func TestFileStoreGetMissing(t *testing.T) {
	store := newStore(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	_, err := store.GetTimer(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.GetSettings(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	err = store.DeleteTodo(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreRecordFilters(t *testing.T) {
	store := newStore(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	records := []*internal.Record{
		{ID: "r1", TimerID: "t1", Tag: "focus", Date: "2026-03-15", StartTime: base},
		{ID: "r2", TimerID: "t1", Tag: "break", Date: "2026-03-16", StartTime: base.AddDate(0, 0, 1)},
		{ID: "r3", TimerID: "t2", Tag: "focus", Date: "2026-03-17", StartTime: base.AddDate(0, 0, 2)},
	}
	for _, r := range records {
		assert.NoError(t, store.SaveRecord(ctx, r))
	}

	out, err := store.ListRecords(ctx, RecordFilter{TimerID: "t1"})
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	// Sorted by start time descending.
	assert.Equal(t, "r2", out[0].ID)

	out, err = store.ListRecords(ctx, RecordFilter{Tag: "focus"})
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = store.ListRecords(ctx, RecordFilter{StartDate: "2026-03-16", EndDate: "2026-03-17"})
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = store.ListRecords(ctx, RecordFilter{TimerID: "t1", Tag: "focus"})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "r1", out[0].ID)
}

func TestFileStoreSessionFilterAndLimit(t *testing.T) {
	store := newStore(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	base := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{
		internal.PomodoroCompleted,
		internal.PomodoroCompleted,
		internal.PomodoroInterrupted,
		internal.PomodoroInProgress,
	} {
		err := store.SaveSession(ctx, &internal.PomodoroSession{
			ID:        string(rune('a' + i)),
			TimerID:   "t1",
			Status:    status,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		})
		assert.NoError(t, err)
	}

	out, err := store.ListSessions(ctx, SessionFilter{Status: internal.PomodoroCompleted})
	assert.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = store.ListSessions(ctx, SessionFilter{Limit: 3})
	assert.NoError(t, err)
	assert.Len(t, out, 3)
	// Newest first.
	assert.Equal(t, internal.PomodoroInProgress, out[0].Status)
}

func TestFileStoreTodoOrdering(t *testing.T) {
	store := newStore(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 1)
	later := now.AddDate(0, 0, 5)

	todos := []*internal.Todo{
		{ID: "done", Title: "done", Completed: true, CreatedAt: now},
		{ID: "later", Title: "later", DueDate: &later, CreatedAt: now},
		{ID: "soon", Title: "soon", DueDate: &soon, CreatedAt: now},
		{ID: "undated", Title: "undated", CreatedAt: now.Add(time.Hour)},
	}
	for _, td := range todos {
		assert.NoError(t, store.SaveTodo(ctx, td))
	}

	out, err := store.ListTodos(ctx, TodoFilter{})
	assert.NoError(t, err)
	assert.Len(t, out, 4)
	// Incomplete first, earliest due date first, undated last among open.
	assert.Equal(t, "soon", out[0].ID)
	assert.Equal(t, "later", out[1].ID)
	assert.Equal(t, "undated", out[2].ID)
	assert.Equal(t, "done", out[3].ID)

	completed := true
	out, err = store.ListTodos(ctx, TodoFilter{Completed: &completed})
	assert.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestFileStoreCopySemantics(t *testing.T) {
	store := newStore(t, t.TempDir())
	defer store.Close()
	ctx := context.Background()

	timer := &internal.Timer{ID: "t1", Name: "Study"}
	assert.NoError(t, store.SaveTimer(ctx, timer))

	// Mutating the caller's struct after save must not leak into the store.
	timer.Name = "Changed"
	got, err := store.GetTimer(ctx, "t1")
	assert.NoError(t, err)
	assert.Equal(t, "Study", got.Name)

	// Mutating a returned struct must not leak either.
	got.Name = "Other"
	again, err := store.GetTimer(ctx, "t1")
	assert.NoError(t, err)
	assert.Equal(t, "Study", again.Name)
}
