package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kearth1516-lgtm/my-app/internal"
	"github.com/kearth1516-lgtm/my-app/internal/storage"
)

type SubtaskRequest struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title" validate:"required"`
	Completed bool   `json:"completed"`
}

type RecurringRequest struct {
	Frequency string     `json:"frequency" validate:"required,oneof=daily weekly monthly"`
	Interval  int        `json:"interval" validate:"gte=1"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type TodoCreateRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description,omitempty"`
	Priority    string            `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	Category    string            `json:"category,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Subtasks    []SubtaskRequest  `json:"subtasks,omitempty" validate:"dive"`
	Recurring   *RecurringRequest `json:"recurring,omitempty"`
}

type TodoUpdateRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Priority    *string           `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Subtasks    []SubtaskRequest  `json:"subtasks,omitempty" validate:"dive"`
	Completed   *bool             `json:"completed,omitempty"`
	Recurring   *RecurringRequest `json:"recurring,omitempty"`
}

func buildSubtasks(reqs []SubtaskRequest) []internal.Subtask {
	subtasks := make([]internal.Subtask, 0, len(reqs))
	for _, r := range reqs {
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		subtasks = append(subtasks, internal.Subtask{ID: id, Title: r.Title, Completed: r.Completed})
	}
	return subtasks
}

func buildRecurring(req *RecurringRequest) *internal.RecurringRule {
	if req == nil {
		return nil
	}
	interval := req.Interval
	if interval == 0 {
		interval = 1
	}
	return &internal.RecurringRule{
		Frequency: req.Frequency,
		Interval:  interval,
		EndDate:   req.EndDate,
	}
}

func CreateTodo(ctx context.Context, todos storage.TodoRepository, req *TodoCreateRequest, now time.Time) (*internal.Todo, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	todo := &internal.Todo{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		DueDate:     req.DueDate,
		Category:    req.Category,
		Tags:        tags,
		Completed:   false,
		CreatedAt:   now,
		Subtasks:    buildSubtasks(req.Subtasks),
		Recurring:   buildRecurring(req.Recurring),
	}
	if err := todos.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func UpdateTodo(ctx context.Context, todos storage.TodoRepository, id string, req *TodoUpdateRequest, now time.Time) (*internal.Todo, error) {
	if err := validate.Struct(req); err != nil {
		return nil, internal.ErrInvalidState(err.Error())
	}
	todo, err := todos.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Description != nil {
		todo.Description = *req.Description
	}
	if req.Priority != nil {
		todo.Priority = *req.Priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}
	if req.Category != nil {
		todo.Category = *req.Category
	}
	if req.Tags != nil {
		todo.Tags = req.Tags
	}
	if req.Subtasks != nil {
		todo.Subtasks = buildSubtasks(req.Subtasks)
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
		if *req.Completed {
			at := now
			todo.CompletedAt = &at
		} else {
			todo.CompletedAt = nil
		}
	}
	if req.Recurring != nil {
		todo.Recurring = buildRecurring(req.Recurring)
	}

	if err := todos.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// NextDueDate advances base by the rule's interval. Monthly recurrence is a
// fixed 30-day-per-interval approximation, not calendar-month arithmetic.
func NextDueDate(base time.Time, rule *internal.RecurringRule) (time.Time, bool) {
	var next time.Time
	switch rule.Frequency {
	case "daily":
		next = base.AddDate(0, 0, rule.Interval)
	case "weekly":
		next = base.AddDate(0, 0, 7*rule.Interval)
	case "monthly":
		next = base.AddDate(0, 0, 30*rule.Interval)
	default:
		return time.Time{}, false
	}
	if rule.EndDate != nil && next.After(*rule.EndDate) {
		return time.Time{}, false
	}
	return next, true
}

// deriveSuccessor builds the next occurrence of a recurring todo: same
// title, description, priority, category, tags and rule; subtasks reset to
// incomplete with fresh ids.
func deriveSuccessor(todo *internal.Todo, nextDue, now time.Time) *internal.Todo {
	subtasks := make([]internal.Subtask, 0, len(todo.Subtasks))
	for _, st := range todo.Subtasks {
		subtasks = append(subtasks, internal.Subtask{
			ID:    uuid.NewString(),
			Title: st.Title,
		})
	}
	due := nextDue
	return &internal.Todo{
		ID:          uuid.NewString(),
		Title:       todo.Title,
		Description: todo.Description,
		Priority:    todo.Priority,
		DueDate:     &due,
		Category:    todo.Category,
		Tags:        todo.Tags,
		Completed:   false,
		CreatedAt:   now,
		Subtasks:    subtasks,
		Recurring: &internal.RecurringRule{
			Frequency: todo.Recurring.Frequency,
			Interval:  todo.Recurring.Interval,
			EndDate:   todo.Recurring.EndDate,
		},
	}
}

// generateNext derives and persists the successor of a completed recurring
// todo, stamping the source so the sweep never derives from the same due
// date twice. Returns the successor, or nil when the rule produced none.
func generateNext(ctx context.Context, todos storage.TodoRepository, todo *internal.Todo, now time.Time) (*internal.Todo, error) {
	base := now
	if todo.DueDate != nil {
		base = *todo.DueDate
	}

	stamp := base
	todo.Recurring.GeneratedFor = &stamp
	if err := todos.SaveTodo(ctx, todo); err != nil {
		return nil, err
	}

	next, ok := NextDueDate(base, todo.Recurring)
	if !ok {
		return nil, nil
	}

	successor := deriveSuccessor(todo, next, now)
	if err := todos.SaveTodo(ctx, successor); err != nil {
		return nil, err
	}
	return successor, nil
}

// CompleteTodo marks a todo done and, when it carries a recurring rule,
// synchronously generates the next occurrence.
func CompleteTodo(ctx context.Context, todos storage.TodoRepository, id string, now time.Time) (*internal.Todo, *internal.Todo, error) {
	todo, err := todos.GetTodo(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	todo.Completed = true
	at := now
	todo.CompletedAt = &at
	if err := todos.SaveTodo(ctx, todo); err != nil {
		return nil, nil, err
	}

	if todo.Recurring == nil {
		return todo, nil, nil
	}
	successor, err := generateNext(ctx, todos, todo, now)
	if err != nil {
		return nil, nil, err
	}
	return todo, successor, nil
}

// GenerateRecurringTodos sweeps completed recurring todos whose due date
// has passed and derives their successors. The GeneratedFor stamp makes
// repeated sweeps idempotent.
func GenerateRecurringTodos(ctx context.Context, todos storage.TodoRepository, now time.Time) (int, error) {
	completed := true
	all, err := todos.ListTodos(ctx, storage.TodoFilter{Completed: &completed})
	if err != nil {
		return 0, err
	}

	generated := 0
	for i := range all {
		todo := &all[i]
		if todo.Recurring == nil || todo.DueDate == nil {
			continue
		}
		if !todo.DueDate.Before(now) {
			continue
		}
		if todo.Recurring.GeneratedFor != nil && todo.Recurring.GeneratedFor.Equal(*todo.DueDate) {
			continue
		}
		successor, err := generateNext(ctx, todos, todo, now)
		if err != nil {
			return generated, err
		}
		if successor != nil {
			generated++
		}
	}
	return generated, nil
}

// TodoCategories returns the distinct non-empty categories.
func TodoCategories(todos []internal.Todo) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range todos {
		if t.Category != "" && !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// TodoTags returns the union of all todo tags.
func TodoTags(todos []internal.Todo) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range todos {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	return out
}
