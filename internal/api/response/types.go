package response

import (
	"time"

	"github.com/mcoot/turkeybot/internal/report"
)

// Health is the body of the health endpoint
type Health struct {
	Status string `json:"status"`
}

// Status represents the bot session in API responses
type Status struct {
	SessionID     string     `json:"session_id,omitempty"`
	State         string     `json:"state"`
	Players       []string   `json:"players"`
	Shots         int        `json:"shots"`
	Skips         int        `json:"skips"`
	Unrecognized  int        `json:"unrecognized"`
	GameState     string     `json:"game_state,omitempty"`
	Results       []string   `json:"results"`
	StartedAt     time.Time  `json:"started_at"`
	LastEventAt   *time.Time `json:"last_event_at,omitempty"`
	LastEventType string     `json:"last_event_type,omitempty"`
	Uptime        string     `json:"uptime"`
}

// StatusFromReport converts a tracker snapshot
func StatusFromReport(s report.Status) Status {
	results := s.Results
	if results == nil {
		results = []string{}
	}
	players := s.Players
	if players == nil {
		players = []string{}
	}
	return Status{
		SessionID:     s.SessionID,
		State:         s.State,
		Players:       players,
		Shots:         s.Shots,
		Skips:         s.Skips,
		Unrecognized:  s.Unrecognized,
		GameState:     s.GameState,
		Results:       results,
		StartedAt:     s.StartedAt,
		LastEventAt:   s.LastEventAt,
		LastEventType: string(s.LastEventType),
		Uptime:        s.Uptime,
	}
}
