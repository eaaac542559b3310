package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// PostgresStore persists each collection as a document table
// (id text primary key, doc jsonb), matching the partition-key-per-id
// layout of the document database it replaces.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

var pgSchema = `
CREATE TABLE IF NOT EXISTS timers (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS tags (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS records (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS pomodoro_sessions (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS todos (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS settings (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS recipes (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS fashion_items (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS outfits (id text PRIMARY KEY, doc jsonb NOT NULL);
CREATE TABLE IF NOT EXISTS home_images (id text PRIMARY KEY, doc jsonb NOT NULL);
`

func NewPostgresStore(dsn string, logger internal.Logger) (*PostgresStore, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		logger.Errorf("failed to initialize schema: %v", err)
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool, logger: logger}, nil
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}

func (p *PostgresStore) upsert(ctx context.Context, table, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO `+table+` (id, doc) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc`, id, body)
	if err != nil {
		p.logger.Errorf("failed to upsert into %s: %v", table, err)
	}
	return err
}

func (p *PostgresStore) get(ctx context.Context, table, id string, out any) error {
	var body []byte
	err := p.pool.QueryRow(ctx, `SELECT doc FROM `+table+` WHERE id = $1`, id).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		p.logger.Errorf("failed to read from %s: %v", table, err)
		return err
	}
	return json.Unmarshal(body, out)
}

func (p *PostgresStore) delete(ctx context.Context, table, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		p.logger.Errorf("failed to delete from %s: %v", table, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func queryDocs[T any](ctx context.Context, p *PostgresStore, query string, args ...any) ([]T, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Errorf("query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var item T
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// --- TimerRepository ---

func (p *PostgresStore) ListTimers(ctx context.Context) ([]internal.Timer, error) {
	return queryDocs[internal.Timer](ctx, p,
		`SELECT doc FROM timers ORDER BY (doc->>'order')::int ASC, doc->>'createdAt' ASC`)
}

func (p *PostgresStore) GetTimer(ctx context.Context, id string) (*internal.Timer, error) {
	var t internal.Timer
	if err := p.get(ctx, "timers", id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStore) SaveTimer(ctx context.Context, t *internal.Timer) error {
	return p.upsert(ctx, "timers", t.ID, t)
}

func (p *PostgresStore) DeleteTimer(ctx context.Context, id string) error {
	return p.delete(ctx, "timers", id)
}

// --- TagRepository ---

func (p *PostgresStore) ListTags(ctx context.Context) ([]internal.Tag, error) {
	return queryDocs[internal.Tag](ctx, p,
		`SELECT doc FROM tags ORDER BY doc->>'createdAt' ASC`)
}

func (p *PostgresStore) SaveTag(ctx context.Context, t *internal.Tag) error {
	return p.upsert(ctx, "tags", t.ID, t)
}

// --- RecordRepository ---

func (p *PostgresStore) ListRecords(ctx context.Context, f RecordFilter) ([]internal.Record, error) {
	return queryDocs[internal.Record](ctx, p,
		`SELECT doc FROM records
		 WHERE ($1 = '' OR doc->>'timerId' = $1)
		   AND ($2 = '' OR doc->>'tag' = $2)
		   AND ($3 = '' OR doc->>'date' >= $3)
		   AND ($4 = '' OR doc->>'date' <= $4)
		 ORDER BY doc->>'startTime' DESC`,
		f.TimerID, f.Tag, f.StartDate, f.EndDate)
}

func (p *PostgresStore) GetRecord(ctx context.Context, id string) (*internal.Record, error) {
	var r internal.Record
	if err := p.get(ctx, "records", id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *PostgresStore) SaveRecord(ctx context.Context, r *internal.Record) error {
	return p.upsert(ctx, "records", r.ID, r)
}

func (p *PostgresStore) DeleteRecord(ctx context.Context, id string) error {
	return p.delete(ctx, "records", id)
}

// --- PomodoroRepository ---

func (p *PostgresStore) ListSessions(ctx context.Context, f SessionFilter) ([]internal.PomodoroSession, error) {
	sessions, err := queryDocs[internal.PomodoroSession](ctx, p,
		`SELECT doc FROM pomodoro_sessions
		 WHERE ($1 = '' OR doc->>'timerId' = $1)
		   AND ($2 = '' OR doc->>'status' = $2)
		 ORDER BY doc->>'startedAt' DESC`,
		f.TimerID, f.Status)
	if err != nil {
		return nil, err
	}
	return limitCount(sessions, f.Limit), nil
}

func (p *PostgresStore) GetSession(ctx context.Context, id string) (*internal.PomodoroSession, error) {
	var s internal.PomodoroSession
	if err := p.get(ctx, "pomodoro_sessions", id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) SaveSession(ctx context.Context, s *internal.PomodoroSession) error {
	return p.upsert(ctx, "pomodoro_sessions", s.ID, s)
}

func (p *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	return p.delete(ctx, "pomodoro_sessions", id)
}

// --- TodoRepository ---

// ListTodos filters in memory with the shared matcher; tag membership and
// the nullable completed flag don't map cleanly onto jsonb predicates.
func (p *PostgresStore) ListTodos(ctx context.Context, f TodoFilter) ([]internal.Todo, error) {
	todos, err := queryDocs[internal.Todo](ctx, p, `SELECT doc FROM todos`)
	if err != nil {
		return nil, err
	}
	out := todos[:0]
	for i := range todos {
		if f.Matches(&todos[i]) {
			out = append(out, todos[i])
		}
	}
	sortTodos(out)
	return limitCount(out, f.Limit), nil
}

func (p *PostgresStore) GetTodo(ctx context.Context, id string) (*internal.Todo, error) {
	var t internal.Todo
	if err := p.get(ctx, "todos", id, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStore) SaveTodo(ctx context.Context, t *internal.Todo) error {
	return p.upsert(ctx, "todos", t.ID, t)
}

func (p *PostgresStore) DeleteTodo(ctx context.Context, id string) error {
	return p.delete(ctx, "todos", id)
}

// --- SettingsRepository ---

func (p *PostgresStore) GetSettings(ctx context.Context) (*internal.Settings, error) {
	var s internal.Settings
	if err := p.get(ctx, "settings", internal.SettingsID, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PostgresStore) SaveSettings(ctx context.Context, s *internal.Settings) error {
	return p.upsert(ctx, "settings", internal.SettingsID, s)
}

// --- RecipeRepository ---

func (p *PostgresStore) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	return queryDocs[internal.Recipe](ctx, p,
		`SELECT doc FROM recipes ORDER BY doc->>'createdAt' DESC`)
}

func (p *PostgresStore) GetRecipe(ctx context.Context, id string) (*internal.Recipe, error) {
	var r internal.Recipe
	if err := p.get(ctx, "recipes", id, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *PostgresStore) SaveRecipe(ctx context.Context, r *internal.Recipe) error {
	return p.upsert(ctx, "recipes", r.ID, r)
}

func (p *PostgresStore) DeleteRecipe(ctx context.Context, id string) error {
	return p.delete(ctx, "recipes", id)
}

// --- FashionRepository ---

func (p *PostgresStore) ListFashionItems(ctx context.Context) ([]internal.FashionItem, error) {
	return queryDocs[internal.FashionItem](ctx, p,
		`SELECT doc FROM fashion_items ORDER BY doc->>'createdAt' DESC`)
}

func (p *PostgresStore) SaveFashionItem(ctx context.Context, it *internal.FashionItem) error {
	return p.upsert(ctx, "fashion_items", it.ID, it)
}

func (p *PostgresStore) ListOutfits(ctx context.Context) ([]internal.Outfit, error) {
	return queryDocs[internal.Outfit](ctx, p,
		`SELECT doc FROM outfits ORDER BY doc->>'date' DESC`)
}

func (p *PostgresStore) SaveOutfit(ctx context.Context, o *internal.Outfit) error {
	return p.upsert(ctx, "outfits", o.ID, o)
}

// --- HomeImageRepository ---

func (p *PostgresStore) ListHomeImages(ctx context.Context) ([]internal.HomeImage, error) {
	return queryDocs[internal.HomeImage](ctx, p, `SELECT doc FROM home_images`)
}

func (p *PostgresStore) SaveHomeImage(ctx context.Context, img *internal.HomeImage) error {
	return p.upsert(ctx, "home_images", img.ID, img)
}

// --- Compile-time assertion ---
var _ Store = (*PostgresStore)(nil)
