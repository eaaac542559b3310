package service

import (
	"sync"
	"time"
)

// ActiveSessions tracks the start time of running timers. It is in-memory
// only: in-progress sessions are lost on restart. Starting an already
// running timer overwrites its start time (restart semantics).
type ActiveSessions struct {
	mu      sync.Mutex
	started map[string]time.Time
}

func NewActiveSessions() *ActiveSessions {
	return &ActiveSessions{started: make(map[string]time.Time)}
}

func (a *ActiveSessions) Start(timerID string, at time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.started[timerID] = at
}

// Stop removes and returns the active entry for timerID.
func (a *ActiveSessions) Stop(timerID string) (time.Time, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	start, ok := a.started[timerID]
	if ok {
		delete(a.started, timerID)
	}
	return start, ok
}

func (a *ActiveSessions) IsActive(timerID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, ok := a.started[timerID]
	return ok
}
