package storage

import (
	"context"
	"errors"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// ErrNotFound is returned by every backend when a document id is absent.
var ErrNotFound = errors.New("storage: not found")

// RecordFilter fields are conjunctive; zero values mean "no constraint".
// StartDate/EndDate compare against the record's YYYY-MM-DD date string.
type RecordFilter struct {
	TimerID   string
	Tag       string
	StartDate string
	EndDate   string
}

type SessionFilter struct {
	TimerID string
	Status  string
	Limit   int
}

type TodoFilter struct {
	Priority  string
	Category  string
	Tag       string
	Completed *bool
	Limit     int
}

type TimerRepository interface {
	ListTimers(ctx context.Context) ([]internal.Timer, error)
	GetTimer(ctx context.Context, id string) (*internal.Timer, error)
	SaveTimer(ctx context.Context, t *internal.Timer) error
	DeleteTimer(ctx context.Context, id string) error
}

type TagRepository interface {
	ListTags(ctx context.Context) ([]internal.Tag, error)
	SaveTag(ctx context.Context, t *internal.Tag) error
}

type RecordRepository interface {
	// ListRecords returns matches sorted by StartTime descending.
	ListRecords(ctx context.Context, f RecordFilter) ([]internal.Record, error)
	GetRecord(ctx context.Context, id string) (*internal.Record, error)
	SaveRecord(ctx context.Context, r *internal.Record) error
	DeleteRecord(ctx context.Context, id string) error
}

type PomodoroRepository interface {
	// ListSessions returns matches sorted by StartedAt descending.
	ListSessions(ctx context.Context, f SessionFilter) ([]internal.PomodoroSession, error)
	GetSession(ctx context.Context, id string) (*internal.PomodoroSession, error)
	SaveSession(ctx context.Context, s *internal.PomodoroSession) error
	DeleteSession(ctx context.Context, id string) error
}

type TodoRepository interface {
	// ListTodos returns matches ordered incomplete-first, then by due date.
	ListTodos(ctx context.Context, f TodoFilter) ([]internal.Todo, error)
	GetTodo(ctx context.Context, id string) (*internal.Todo, error)
	SaveTodo(ctx context.Context, t *internal.Todo) error
	DeleteTodo(ctx context.Context, id string) error
}

type SettingsRepository interface {
	// GetSettings returns ErrNotFound when the singleton document is absent.
	GetSettings(ctx context.Context) (*internal.Settings, error)
	SaveSettings(ctx context.Context, s *internal.Settings) error
}

type RecipeRepository interface {
	ListRecipes(ctx context.Context) ([]internal.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*internal.Recipe, error)
	SaveRecipe(ctx context.Context, r *internal.Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
}

type FashionRepository interface {
	ListFashionItems(ctx context.Context) ([]internal.FashionItem, error)
	SaveFashionItem(ctx context.Context, it *internal.FashionItem) error
	ListOutfits(ctx context.Context) ([]internal.Outfit, error)
	SaveOutfit(ctx context.Context, o *internal.Outfit) error
}

type HomeImageRepository interface {
	ListHomeImages(ctx context.Context) ([]internal.HomeImage, error)
	SaveHomeImage(ctx context.Context, img *internal.HomeImage) error
}

// Store aggregates every repository plus lifecycle hooks; both backends
// implement it.
type Store interface {
	TimerRepository
	TagRepository
	RecordRepository
	PomodoroRepository
	TodoRepository
	SettingsRepository
	RecipeRepository
	FashionRepository
	HomeImageRepository
	Close() error
}
