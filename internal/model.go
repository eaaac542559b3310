package internal

import "time"

// Well-known document ids, mirrored by every storage backend.
const (
	SettingsID  = "app-settings"
	StopwatchID = "stopwatch-fixed"
)

// Timer types.
const (
	TimerCountdown = "countdown"
	TimerStopwatch = "stopwatch"
)

// Pomodoro session statuses.
const (
	PomodoroInProgress  = "in_progress"
	PomodoroCompleted   = "completed"
	PomodoroInterrupted = "interrupted"
)

type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Timer struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Duration         int               `json:"duration"` // seconds
	Image            string            `json:"image,omitempty"`
	Type             string            `json:"type"` // countdown | stopwatch
	Order            int               `json:"order"`
	IsFavorite       bool              `json:"isFavorite"`
	IsPomodoroMode   bool              `json:"isPomodoroMode,omitempty"`
	PomodoroSettings *PomodoroSettings `json:"pomodoroSettings,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
}

type PomodoroSettings struct {
	WorkDuration           int `json:"workDuration"` // minutes
	ShortBreak             int `json:"shortBreak"`
	LongBreak              int `json:"longBreak"`
	SessionsUntilLongBreak int `json:"sessionsUntilLongBreak"`
}

type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Record is a persisted, completed timer interval. TimerName is a
// denormalized copy taken at stop time; it is not kept in sync with the
// timer afterwards.
type Record struct {
	ID        string    `json:"id"`
	TimerID   string    `json:"timerId"`
	TimerName string    `json:"timerName"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Duration  int       `json:"duration"` // seconds
	Date      string    `json:"date"`     // YYYY-MM-DD
	Tag       string    `json:"tag,omitempty"`
	Stamp     string    `json:"stamp,omitempty"`
	Comment   string    `json:"comment,omitempty"`
}

type PomodoroSession struct {
	ID                 string     `json:"id"`
	TimerID            string     `json:"timerId"`
	TaskDescription    string     `json:"taskDescription"`
	PomodoroCount      int        `json:"pomodoroCount"`
	CompletedPomodoros int        `json:"completedPomodoros"`
	Status             string     `json:"status"`
	StartedAt          time.Time  `json:"startedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	ActualDuration     int        `json:"actualDuration,omitempty"` // seconds
	Note               string     `json:"note,omitempty"`
}

type Subtask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// RecurringRule describes how a todo regenerates after completion.
// GeneratedFor records the due date a successor was already derived from,
// so the batch sweep does not produce duplicates.
type RecurringRule struct {
	Frequency    string     `json:"frequency"` // daily | weekly | monthly
	Interval     int        `json:"interval"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	GeneratedFor *time.Time `json:"generatedFor,omitempty"`
}

type Todo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Priority    string         `json:"priority"` // high | medium | low
	DueDate     *time.Time     `json:"dueDate,omitempty"`
	Category    string         `json:"category,omitempty"`
	Tags        []string       `json:"tags"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	Subtasks    []Subtask      `json:"subtasks"`
	Recurring   *RecurringRule `json:"recurring,omitempty"`
}

// Settings is a singleton document with the fixed id SettingsID.
type Settings struct {
	ID           string `json:"id"`
	Theme        string `json:"theme"`
	SoundEnabled bool   `json:"soundEnabled"`
	OpenAIAPIKey string `json:"openaiApiKey,omitempty"`
}

// DefaultSettings are returned when the settings document is absent.
func DefaultSettings() *Settings {
	return &Settings{ID: SettingsID, Theme: "purple", SoundEnabled: true}
}

type Recipe struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	CookingTime int       `json:"cookingTime,omitempty"` // minutes
	Source      string    `json:"source,omitempty"`
	Tags        []string  `json:"tags"`
	IsFavorite  bool      `json:"isFavorite"`
	TimesCooked int       `json:"timesCooked"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FashionItem struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Category  string    `json:"category"` // top, bottom, shoes, ...
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

type Outfit struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Items     []string  `json:"items"`
	Weather   string    `json:"weather,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type HomeImage struct {
	ID        string    `json:"id"`
	ImageURL  string    `json:"imageUrl"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
