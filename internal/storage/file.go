package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// FileStore keeps every collection in memory behind one RWMutex and
// persists each collection to its own JSON file through a debounced save
// worker, so bursts of writes collapse into a single disk write.
type FileStore struct {
	mu sync.RWMutex

	timers       map[string]*internal.Timer
	tags         map[string]*internal.Tag
	records      map[string]*internal.Record
	sessions     map[string]*internal.PomodoroSession
	todos        map[string]*internal.Todo
	settings     *internal.Settings
	recipes      map[string]*internal.Recipe
	fashionItems map[string]*internal.FashionItem
	outfits      map[string]*internal.Outfit
	homeImages   map[string]*internal.HomeImage

	dataDir   string
	saveDelay time.Duration
	dirty     map[string]chan struct{}
	shutdown  chan struct{}
	logger    internal.Logger
}

const (
	colTimers    = "timers"
	colTags      = "tags"
	colRecords   = "records"
	colSessions  = "pomodoro_sessions"
	colTodos     = "todos"
	colSettings  = "settings"
	colRecipes   = "recipes"
	colFashion   = "fashion_items"
	colOutfits   = "outfits"
	colHomeImage = "home_images"
)

var fileCollections = []string{
	colTimers, colTags, colRecords, colSessions, colTodos,
	colSettings, colRecipes, colFashion, colOutfits, colHomeImage,
}

func NewFileStore(dataDir string, logger internal.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	s := &FileStore{
		timers:       make(map[string]*internal.Timer),
		tags:         make(map[string]*internal.Tag),
		records:      make(map[string]*internal.Record),
		sessions:     make(map[string]*internal.PomodoroSession),
		todos:        make(map[string]*internal.Todo),
		recipes:      make(map[string]*internal.Recipe),
		fashionItems: make(map[string]*internal.FashionItem),
		outfits:      make(map[string]*internal.Outfit),
		homeImages:   make(map[string]*internal.HomeImage),
		dataDir:      dataDir,
		saveDelay:    500 * time.Millisecond,
		dirty:        make(map[string]chan struct{}),
		shutdown:     make(chan struct{}),
		logger:       logger,
	}

	if err := s.loadAll(); err != nil {
		logger.Errorf("storage: failed to load data: %v", err)
		return nil, err
	}

	for _, name := range fileCollections {
		ch := make(chan struct{}, 1)
		s.dirty[name] = ch
		go s.saveWorker(name, ch)
	}

	return s, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

func loadJSON(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStore) loadAll() error {
	var timers []*internal.Timer
	if err := loadJSON(s.path(colTimers), &timers); err != nil {
		return err
	}
	for _, t := range timers {
		s.timers[t.ID] = t
	}

	var tags []*internal.Tag
	if err := loadJSON(s.path(colTags), &tags); err != nil {
		return err
	}
	for _, t := range tags {
		s.tags[t.ID] = t
	}

	var records []*internal.Record
	if err := loadJSON(s.path(colRecords), &records); err != nil {
		return err
	}
	for _, r := range records {
		s.records[r.ID] = r
	}

	var sessions []*internal.PomodoroSession
	if err := loadJSON(s.path(colSessions), &sessions); err != nil {
		return err
	}
	for _, p := range sessions {
		s.sessions[p.ID] = p
	}

	var todos []*internal.Todo
	if err := loadJSON(s.path(colTodos), &todos); err != nil {
		return err
	}
	for _, t := range todos {
		s.todos[t.ID] = t
	}

	if err := loadJSON(s.path(colSettings), &s.settings); err != nil {
		return err
	}

	var recipes []*internal.Recipe
	if err := loadJSON(s.path(colRecipes), &recipes); err != nil {
		return err
	}
	for _, r := range recipes {
		s.recipes[r.ID] = r
	}

	var items []*internal.FashionItem
	if err := loadJSON(s.path(colFashion), &items); err != nil {
		return err
	}
	for _, it := range items {
		s.fashionItems[it.ID] = it
	}

	var outfits []*internal.Outfit
	if err := loadJSON(s.path(colOutfits), &outfits); err != nil {
		return err
	}
	for _, o := range outfits {
		s.outfits[o.ID] = o
	}

	var images []*internal.HomeImage
	if err := loadJSON(s.path(colHomeImage), &images); err != nil {
		return err
	}
	for _, img := range images {
		s.homeImages[img.ID] = img
	}

	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// snapshot returns the serializable form of one collection.
func (s *FileStore) snapshot(name string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch name {
	case colTimers:
		out := make([]*internal.Timer, 0, len(s.timers))
		for _, t := range s.timers {
			out = append(out, t)
		}
		return out
	case colTags:
		out := make([]*internal.Tag, 0, len(s.tags))
		for _, t := range s.tags {
			out = append(out, t)
		}
		return out
	case colRecords:
		out := make([]*internal.Record, 0, len(s.records))
		for _, r := range s.records {
			out = append(out, r)
		}
		return out
	case colSessions:
		out := make([]*internal.PomodoroSession, 0, len(s.sessions))
		for _, p := range s.sessions {
			out = append(out, p)
		}
		return out
	case colTodos:
		out := make([]*internal.Todo, 0, len(s.todos))
		for _, t := range s.todos {
			out = append(out, t)
		}
		return out
	case colSettings:
		return s.settings
	case colRecipes:
		out := make([]*internal.Recipe, 0, len(s.recipes))
		for _, r := range s.recipes {
			out = append(out, r)
		}
		return out
	case colFashion:
		out := make([]*internal.FashionItem, 0, len(s.fashionItems))
		for _, it := range s.fashionItems {
			out = append(out, it)
		}
		return out
	case colOutfits:
		out := make([]*internal.Outfit, 0, len(s.outfits))
		for _, o := range s.outfits {
			out = append(out, o)
		}
		return out
	case colHomeImage:
		out := make([]*internal.HomeImage, 0, len(s.homeImages))
		for _, img := range s.homeImages {
			out = append(out, img)
		}
		return out
	}
	return nil
}

func (s *FileStore) saveCollection(name string) error {
	return atomicWriteFileJSON(s.path(name), s.snapshot(name))
}

// saveWorker batches save operations to avoid frequent disk writes.
func (s *FileStore) saveWorker(name string, ch chan struct{}) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-ch:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.saveCollection(name); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdown:
			return
		}
	}
}

func (s *FileStore) markDirty(name string) {
	select {
	case s.dirty[name] <- struct{}{}:
	default:
	}
}

// Close stops the workers and flushes every collection synchronously.
func (s *FileStore) Close() error {
	close(s.shutdown)
	for _, name := range fileCollections {
		if err := s.saveCollection(name); err != nil {
			return err
		}
	}
	return nil
}

// --- TimerRepository ---

func (s *FileStore) ListTimers(ctx context.Context) ([]internal.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Timer, 0, len(s.timers))
	for _, t := range s.timers {
		out = append(out, *t)
	}
	sortTimers(out)
	return out, nil
}

func (s *FileStore) GetTimer(ctx context.Context, id string) (*internal.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.timers[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *FileStore) SaveTimer(ctx context.Context, t *internal.Timer) error {
	s.mu.Lock()
	cp := *t
	s.timers[t.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colTimers)
	return nil
}

func (s *FileStore) DeleteTimer(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.timers[id]
	if ok {
		delete(s.timers, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.markDirty(colTimers)
	return nil
}

// --- TagRepository ---

func (s *FileStore) ListTags(ctx context.Context) ([]internal.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, *t)
	}
	sortTagsByCreation(out)
	return out, nil
}

func (s *FileStore) SaveTag(ctx context.Context, t *internal.Tag) error {
	s.mu.Lock()
	cp := *t
	s.tags[t.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colTags)
	return nil
}

// --- RecordRepository ---

func (s *FileStore) ListRecords(ctx context.Context, f RecordFilter) ([]internal.Record, error) {
	s.mu.RLock()
	out := make([]internal.Record, 0, len(s.records))
	for _, r := range s.records {
		if f.Matches(r) {
			out = append(out, *r)
		}
	}
	s.mu.RUnlock()
	sortRecordsDesc(out)
	return out, nil
}

func (s *FileStore) GetRecord(ctx context.Context, id string) (*internal.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *FileStore) SaveRecord(ctx context.Context, r *internal.Record) error {
	s.mu.Lock()
	cp := *r
	s.records[r.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colRecords)
	return nil
}

func (s *FileStore) DeleteRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.records[id]
	if ok {
		delete(s.records, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.markDirty(colRecords)
	return nil
}

// --- PomodoroRepository ---

func (s *FileStore) ListSessions(ctx context.Context, f SessionFilter) ([]internal.PomodoroSession, error) {
	s.mu.RLock()
	out := make([]internal.PomodoroSession, 0, len(s.sessions))
	for _, p := range s.sessions {
		if f.Matches(p) {
			out = append(out, *p)
		}
	}
	s.mu.RUnlock()
	sortSessionsDesc(out)
	return limitCount(out, f.Limit), nil
}

func (s *FileStore) GetSession(ctx context.Context, id string) (*internal.PomodoroSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *FileStore) SaveSession(ctx context.Context, p *internal.PomodoroSession) error {
	s.mu.Lock()
	cp := *p
	s.sessions[p.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colSessions)
	return nil
}

func (s *FileStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.markDirty(colSessions)
	return nil
}

// --- TodoRepository ---

func (s *FileStore) ListTodos(ctx context.Context, f TodoFilter) ([]internal.Todo, error) {
	s.mu.RLock()
	out := make([]internal.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if f.Matches(t) {
			out = append(out, *t)
		}
	}
	s.mu.RUnlock()
	sortTodos(out)
	return limitCount(out, f.Limit), nil
}

func (s *FileStore) GetTodo(ctx context.Context, id string) (*internal.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *FileStore) SaveTodo(ctx context.Context, t *internal.Todo) error {
	s.mu.Lock()
	cp := *t
	s.todos[t.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colTodos)
	return nil
}

func (s *FileStore) DeleteTodo(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.todos[id]
	if ok {
		delete(s.todos, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.markDirty(colTodos)
	return nil
}

// --- SettingsRepository ---

func (s *FileStore) GetSettings(ctx context.Context) (*internal.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil, ErrNotFound
	}
	cp := *s.settings
	return &cp, nil
}

func (s *FileStore) SaveSettings(ctx context.Context, st *internal.Settings) error {
	s.mu.Lock()
	cp := *st
	s.settings = &cp
	s.mu.Unlock()
	s.markDirty(colSettings)
	return nil
}

// --- RecipeRepository ---

func (s *FileStore) ListRecipes(ctx context.Context) ([]internal.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, *r)
	}
	sortRecipesByCreationDesc(out)
	return out, nil
}

func (s *FileStore) GetRecipe(ctx context.Context, id string) (*internal.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *FileStore) SaveRecipe(ctx context.Context, r *internal.Recipe) error {
	s.mu.Lock()
	cp := *r
	s.recipes[r.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colRecipes)
	return nil
}

func (s *FileStore) DeleteRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.recipes[id]
	if ok {
		delete(s.recipes, id)
	}
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.markDirty(colRecipes)
	return nil
}

// --- FashionRepository ---

func (s *FileStore) ListFashionItems(ctx context.Context) ([]internal.FashionItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.FashionItem, 0, len(s.fashionItems))
	for _, it := range s.fashionItems {
		out = append(out, *it)
	}
	sortFashionItemsByCreationDesc(out)
	return out, nil
}

func (s *FileStore) SaveFashionItem(ctx context.Context, it *internal.FashionItem) error {
	s.mu.Lock()
	cp := *it
	s.fashionItems[it.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colFashion)
	return nil
}

func (s *FileStore) ListOutfits(ctx context.Context) ([]internal.Outfit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Outfit, 0, len(s.outfits))
	for _, o := range s.outfits {
		out = append(out, *o)
	}
	sortOutfitsByDateDesc(out)
	return out, nil
}

func (s *FileStore) SaveOutfit(ctx context.Context, o *internal.Outfit) error {
	s.mu.Lock()
	cp := *o
	s.outfits[o.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colOutfits)
	return nil
}

// --- HomeImageRepository ---

func (s *FileStore) ListHomeImages(ctx context.Context) ([]internal.HomeImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.HomeImage, 0, len(s.homeImages))
	for _, img := range s.homeImages {
		out = append(out, *img)
	}
	return out, nil
}

func (s *FileStore) SaveHomeImage(ctx context.Context, img *internal.HomeImage) error {
	s.mu.Lock()
	cp := *img
	s.homeImages[img.ID] = &cp
	s.mu.Unlock()
	s.markDirty(colHomeImage)
	return nil
}

// --- Compile-time assertion ---
var _ Store = (*FileStore)(nil)
