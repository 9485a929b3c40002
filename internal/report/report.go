package report

import (
	"context"
	"time"
)

// EventType identifies what happened during a session
type EventType string

const (
	EventStateChanged EventType = "state_changed"
	EventJoined       EventType = "joined"
	EventGameStarted  EventType = "game_started"
	EventShot         EventType = "shot"
	EventSkipped      EventType = "skipped"
	EventGameFinished EventType = "game_finished"
	EventPlayerResult EventType = "player_result"
	EventUnrecognized EventType = "unrecognized"
	EventDisconnected EventType = "disconnected"
)

// Event is a session occurrence surfaced to the outside world
type Event struct {
	Type        EventType `json:"type"`
	SessionID   string    `json:"session_id,omitempty"`
	Time        time.Time `json:"time"`
	State       string    `json:"state,omitempty"`
	Player      string    `json:"player,omitempty"`
	Target      string    `json:"target,omitempty"`
	X           int       `json:"x,omitempty"`
	Y           int       `json:"y,omitempty"`
	Players     []string  `json:"players,omitempty"`
	GameState   string    `json:"game_state,omitempty"`
	Turns       int       `json:"turns,omitempty"`
	PlayerCount int       `json:"player_count,omitempty"`
	Line        string    `json:"line,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// Reporter receives session events. Reporting never fails the session.
type Reporter interface {
	Report(ctx context.Context, event Event)
}

// Multi fans an event out to several reporters in order
type Multi []Reporter

// Report forwards the event to every reporter
func (m Multi) Report(ctx context.Context, event Event) {
	for _, r := range m {
		r.Report(ctx, event)
	}
}

// Nop discards every event
type Nop struct{}

// Report does nothing
func (Nop) Report(context.Context, Event) {}
