package storage

import (
	"sort"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// Filter matching is shared by the file backend and by the postgres
// backend's in-memory fallbacks, so both answer queries identically.

func (f RecordFilter) Matches(r *internal.Record) bool {
	if f.TimerID != "" && r.TimerID != f.TimerID {
		return false
	}
	if f.Tag != "" && r.Tag != f.Tag {
		return false
	}
	if f.StartDate != "" && r.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && r.Date > f.EndDate {
		return false
	}
	return true
}

func (f SessionFilter) Matches(s *internal.PomodoroSession) bool {
	if f.TimerID != "" && s.TimerID != f.TimerID {
		return false
	}
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	return true
}

func (f TodoFilter) Matches(t *internal.Todo) bool {
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, tag := range t.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	return true
}

func sortRecordsDesc(records []internal.Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].StartTime.After(records[j].StartTime)
	})
}

func sortSessionsDesc(sessions []internal.PomodoroSession) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})
}

// sortTodos orders incomplete todos first, then by due date ascending with
// undated todos last.
func sortTodos(todos []internal.Todo) {
	sort.Slice(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		default:
			return a.DueDate.Before(*b.DueDate)
		}
	})
}

// sortTimers orders by the user-assigned order index, creation time as a
// tiebreaker.
func sortTimers(timers []internal.Timer) {
	sort.Slice(timers, func(i, j int) bool {
		if timers[i].Order != timers[j].Order {
			return timers[i].Order < timers[j].Order
		}
		return timers[i].CreatedAt.Before(timers[j].CreatedAt)
	})
}

func sortTagsByCreation(tags []internal.Tag) {
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].CreatedAt.Before(tags[j].CreatedAt)
	})
}

func sortRecipesByCreationDesc(recipes []internal.Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
}

func sortFashionItemsByCreationDesc(items []internal.FashionItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sortOutfitsByDateDesc(outfits []internal.Outfit) {
	sort.Slice(outfits, func(i, j int) bool {
		return outfits[i].Date > outfits[j].Date
	})
}

func limitCount[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
