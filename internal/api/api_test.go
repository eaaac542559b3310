package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/auth"
	"github.com/kearth1516-lgtm/my-app/internal/config"
	"github.com/kearth1516-lgtm/my-app/internal/scrape"
	"github.com/kearth1516-lgtm/my-app/internal/service"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
	"github.com/kearth1516-lgtm/my-app/internal/weather"
)

type stubScraper struct {
	recipe *scrape.Recipe
	err    error
}

func (s *stubScraper) Scrape(ctx context.Context, url string) (*scrape.Recipe, error) {
	return s.recipe, s.err
}

type stubSuggester struct {
	suggestion string
	err        error
}

func (s *stubSuggester) Suggest(ctx context.Context, ingredients []string) (string, error) {
	return s.suggestion, s.err
}

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Meta  map[string]any     `json:"meta"`
	Error *internal.AppError `json:"error"`
}

type testServer struct {
	router    *gin.Engine
	store     *storage.FileStore
	uploadDir string
	token     string
}

func setupTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	store, err := storage.NewFileStore(t.TempDir(), internal.NopLogger{})
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	assert.NoError(t, service.EnsureDefaults(ctx, store, store, time.Now().UTC()))

	uploadDir := t.TempDir()
	cfg := &config.Config{
		Env:         "development",
		UploadDir:   uploadDir,
		CORSOrigins: []string{"http://localhost:3000"},
	}
	tokens := auth.NewTokenService("test-secret", "admin", "secret123", time.Hour, internal.NopLogger{})
	app := NewApp(
		internal.NopLogger{},
		store,
		service.NewActiveSessions(),
		&stubScraper{recipe: &scrape.Recipe{
			Name:        "Imported Curry",
			Ingredients: []string{"chicken"},
			Steps:       []string{"simmer"},
			CookingTime: 45,
			Tags:        []string{"cookpad"},
		}},
		&stubSuggester{suggestion: "Make a stir fry."},
		weather.NewClient("", internal.NopLogger{}),
	)

	ts := &testServer{
		router:    BuildRouter(app, tokens, cfg),
		store:     store,
		uploadDir: uploadDir,
	}
	ts.token = ts.login(t)
	return ts
}

func (ts *testServer) login(t *testing.T) string {
	w := ts.doRaw(t, "POST", "/api/auth/login", `{"username":"admin","password":"secret123"}`, "")
	assert.Equal(t, 200, w.Code)

	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data struct {
		AccessToken string `json:"accessToken"`
		TokenType   string `json:"tokenType"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "bearer", data.TokenType)
	assert.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func (ts *testServer) doRaw(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req, err := http.NewRequest(method, path, reader)
	assert.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func (ts *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := ts.doRaw(t, method, path, body, ts.token)
	var env envelope
	if w.Body.Len() > 0 {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.doRaw(t, "GET", "/health", "", "")
	assert.Equal(t, 200, w.Code)

	w = ts.doRaw(t, "GET", "/api/timers", "", "")
	assert.Equal(t, 401, w.Code)

	w = ts.doRaw(t, "GET", "/api/timers", "", "not-a-token")
	assert.Equal(t, 401, w.Code)

	w = ts.doRaw(t, "GET", "/api/timers", "", ts.token)
	assert.Equal(t, 200, w.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.doRaw(t, "GET", "/health", "", "")
	assert.Equal(t, 200, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(requestIDHeader, "trace-42")
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, "trace-42", w.Header().Get(requestIDHeader))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.doRaw(t, "POST", "/api/auth/login", `{"username":"admin","password":"wrong"}`, "")
	assert.Equal(t, 401, w.Code)
}

func TestTimerLifecycle(t *testing.T) {
	ts := setupTestServer(t)

	w, env := ts.do(t, "POST", "/api/timers", `{"name":"Study","duration":1500}`)
	assert.Equal(t, 201, w.Code)
	var timer internal.Timer
	assert.NoError(t, json.Unmarshal(env.Data, &timer))
	assert.Equal(t, "Study", timer.Name)
	assert.Equal(t, internal.TimerCountdown, timer.Type)

	w, _ = ts.do(t, "POST", "/api/timers/"+timer.ID+"/start", "")
	assert.Equal(t, 200, w.Code)

	w, env = ts.do(t, "POST", "/api/timers/"+timer.ID+"/stop?tag=focus", "")
	assert.Equal(t, 200, w.Code)
	var record internal.Record
	assert.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, "focus", record.Tag)
	assert.Equal(t, "Study", record.TimerName)
	assert.GreaterOrEqual(t, record.Duration, 0)

	w, env = ts.do(t, "GET", "/api/timers/"+timer.ID+"/records", "")
	assert.Equal(t, 200, w.Code)
	var records []internal.Record
	assert.NoError(t, json.Unmarshal(env.Data, &records))
	assert.Len(t, records, 1)

	// Stopping again without a start fails.
	w, _ = ts.do(t, "POST", "/api/timers/"+timer.ID+"/stop?tag=focus", "")
	assert.Equal(t, 400, w.Code)
}

func TestTimerValidation(t *testing.T) {
	ts := setupTestServer(t)

	w, _ := ts.do(t, "POST", "/api/timers", `{"duration":1500}`)
	assert.Equal(t, 400, w.Code)

	w, _ = ts.do(t, "DELETE", "/api/timers/"+internal.StopwatchID, "")
	assert.Equal(t, 400, w.Code)

	w, _ = ts.do(t, "GET", "/api/timers/nonexistent/records", "")
	assert.Equal(t, 404, w.Code)
}

func TestSettingsPartialUpdate(t *testing.T) {
	ts := setupTestServer(t)

	w, env := ts.do(t, "PUT", "/api/settings", `{"theme":"green"}`)
	assert.Equal(t, 200, w.Code)
	var settings internal.Settings
	assert.NoError(t, json.Unmarshal(env.Data, &settings))
	assert.Equal(t, "green", settings.Theme)
	assert.True(t, settings.SoundEnabled)

	w, env = ts.do(t, "GET", "/api/settings", "")
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &settings))
	assert.Equal(t, "green", settings.Theme)

	w, _ = ts.do(t, "PUT", "/api/settings", `{"theme":"crimson"}`)
	assert.Equal(t, 400, w.Code)
}

func TestRecipeImportAndCook(t *testing.T) {
	ts := setupTestServer(t)

	w, env := ts.do(t, "POST", "/api/recipes/import", `{"url":"https://cookpad.com/recipe/123"}`)
	assert.Equal(t, 201, w.Code)
	var recipe internal.Recipe
	assert.NoError(t, json.Unmarshal(env.Data, &recipe))
	assert.Equal(t, "Imported Curry", recipe.Name)
	assert.Equal(t, "https://cookpad.com/recipe/123", recipe.Source)
	assert.Equal(t, 0, recipe.TimesCooked)

	w, env = ts.do(t, "POST", "/api/recipes/"+recipe.ID+"/cook", "")
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &recipe))
	assert.Equal(t, 1, recipe.TimesCooked)
}

func TestRecipeSuggest(t *testing.T) {
	ts := setupTestServer(t)

	w, env := ts.do(t, "POST", "/api/recipes/suggest", `{"ingredients":["chicken","broccoli"]}`)
	assert.Equal(t, 200, w.Code)
	var data struct {
		Suggestion string `json:"suggestion"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Make a stir fry.", data.Suggestion)

	w, _ = ts.do(t, "POST", "/api/recipes/suggest", `{"ingredients":[]}`)
	assert.Equal(t, 400, w.Code)
}

func TestTodoCompleteGeneratesSuccessor(t *testing.T) {
	ts := setupTestServer(t)

	due := time.Now().UTC().AddDate(0, 0, -1).Format(time.RFC3339)
	body := `{"title":"water plants","dueDate":"` + due + `","recurring":{"frequency":"daily","interval":1}}`
	w, env := ts.do(t, "POST", "/api/todos", body)
	assert.Equal(t, 201, w.Code)
	var todo internal.Todo
	assert.NoError(t, json.Unmarshal(env.Data, &todo))

	w, env = ts.do(t, "POST", "/api/todos/"+todo.ID+"/complete", "")
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &todo))
	assert.True(t, todo.Completed)
	assert.Contains(t, env.Meta, "generated")
}

func TestPomodoroFlow(t *testing.T) {
	ts := setupTestServer(t)

	w, env := ts.do(t, "POST", "/api/pomodoro/sessions", `{"timerId":"t1","taskDescription":"write report"}`)
	assert.Equal(t, 201, w.Code)
	var session internal.PomodoroSession
	assert.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, 4, session.PomodoroCount)
	assert.Equal(t, internal.PomodoroInProgress, session.Status)

	update := `{"status":"completed","completedPomodoros":4,"actualDuration":6000}`
	w, env = ts.do(t, "PUT", "/api/pomodoro/sessions/"+session.ID, update)
	assert.Equal(t, 200, w.Code)
	assert.NoError(t, json.Unmarshal(env.Data, &session))
	assert.NotNil(t, session.CompletedAt)

	w, env = ts.do(t, "GET", "/api/pomodoro/stats", "")
	assert.Equal(t, 200, w.Code)
	var stats service.PomodoroStats
	assert.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 4, stats.TotalPomodoros)
	assert.Equal(t, 100, stats.TotalDuration)
}

func TestUploadImage(t *testing.T) {
	ts := setupTestServer(t)

	buildUpload := func(filename string) (*bytes.Buffer, string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", filename)
		assert.NoError(t, err)
		_, err = fw.Write([]byte("fake image bytes"))
		assert.NoError(t, err)
		assert.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	body, contentType := buildUpload("photo.png")
	req, _ := http.NewRequest("POST", "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, 201, w.Code)

	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var data struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.True(t, strings.HasPrefix(data.URL, "/uploads/"))
	_, err := os.Stat(filepath.Join(ts.uploadDir, data.Filename))
	assert.NoError(t, err)

	body, contentType = buildUpload("notes.txt")
	req, _ = http.NewRequest("POST", "/api/upload/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	w = httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestHomeDashboard(t *testing.T) {
	ts := setupTestServer(t)

	// No images yet: the random endpoint 404s but the dashboard still works.
	w, _ := ts.do(t, "GET", "/api/home/images", "")
	assert.Equal(t, 404, w.Code)

	w, _ = ts.do(t, "POST", "/api/home/images", `{"imageUrl":"/uploads/a.png","caption":"morning"}`)
	assert.Equal(t, 201, w.Code)

	w, env := ts.do(t, "GET", "/api/home/dashboard", "")
	assert.Equal(t, 200, w.Code)
	var dash struct {
		Image   *internal.HomeImage `json:"image"`
		Weather map[string]any      `json:"weather"`
	}
	assert.NoError(t, json.Unmarshal(env.Data, &dash))
	assert.NotNil(t, dash.Image)
	assert.Equal(t, "/uploads/a.png", dash.Image.ImageURL)
	// Weather endpoint unset: field stays null, request still succeeds.
	assert.Nil(t, dash.Weather)
}

func TestFashionEndpoints(t *testing.T) {
	ts := setupTestServer(t)

	w, env := ts.do(t, "POST", "/api/fashion/items", `{"imageUrl":"/uploads/top.png","category":"top","color":"navy"}`)
	assert.Equal(t, 201, w.Code)
	var item internal.FashionItem
	assert.NoError(t, json.Unmarshal(env.Data, &item))

	w, _ = ts.do(t, "POST", "/api/fashion/items", `{"category":"top"}`)
	assert.Equal(t, 400, w.Code)

	body := `{"date":"2026-03-18","items":["` + item.ID + `"],"weather":"sunny"}`
	w, _ = ts.do(t, "POST", "/api/fashion/outfits", body)
	assert.Equal(t, 201, w.Code)

	w, env = ts.do(t, "GET", "/api/fashion/outfits", "")
	assert.Equal(t, 200, w.Code)
	var outfits []internal.Outfit
	assert.NoError(t, json.Unmarshal(env.Data, &outfits))
	assert.Len(t, outfits, 1)
	assert.Equal(t, []string{item.ID}, outfits[0].Items)
}
