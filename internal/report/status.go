package report

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mcoot/turkeybot/internal/dependencies/clock"
)

// Status is a point-in-time view of the session for the status API
type Status struct {
	SessionID     string     `json:"session_id,omitempty"`
	State         string     `json:"state"`
	Players       []string   `json:"players"`
	Shots         int        `json:"shots"`
	Skips         int        `json:"skips"`
	Unrecognized  int        `json:"unrecognized"`
	GameState     string     `json:"game_state,omitempty"`
	Results       []string   `json:"results,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	LastEventAt   *time.Time `json:"last_event_at,omitempty"`
	LastEventType EventType  `json:"last_event_type,omitempty"`
	Uptime        string     `json:"uptime"`
}

// StatusTracker folds events into a Status. It is safe for concurrent use:
// the engine writes while HTTP handlers read.
type StatusTracker struct {
	mu     sync.RWMutex
	clock  clock.Clock
	status Status
}

// NewStatusTracker creates a tracker whose start time is now
func NewStatusTracker(clk clock.Clock) *StatusTracker {
	return &StatusTracker{
		clock: clk,
		status: Status{
			State:     "Disconnected",
			Players:   []string{},
			StartedAt: clk.Now(),
		},
	}
}

// Report updates the snapshot from the event
func (t *StatusTracker) Report(_ context.Context, event Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if event.SessionID != "" {
		t.status.SessionID = event.SessionID
	}
	at := event.Time
	t.status.LastEventAt = &at
	t.status.LastEventType = event.Type

	switch event.Type {
	case EventStateChanged:
		t.status.State = event.State
	case EventGameStarted:
		t.status.Players = slices.Clone(event.Players)
	case EventShot:
		t.status.Shots++
	case EventSkipped:
		t.status.Skips++
	case EventUnrecognized:
		t.status.Unrecognized++
	case EventGameFinished:
		t.status.GameState = event.GameState
	case EventPlayerResult:
		t.status.Results = append(t.status.Results, event.Line)
	}
}

// Snapshot returns a copy of the current status
func (t *StatusTracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s := t.status
	s.Players = slices.Clone(t.status.Players)
	s.Results = slices.Clone(t.status.Results)
	if t.status.LastEventAt != nil {
		at := *t.status.LastEventAt
		s.LastEventAt = &at
	}
	s.Uptime = clock.Since(t.clock, t.status.StartedAt).String()
	return s
}
