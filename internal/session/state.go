package session

import (
	"maps"
	"slices"
)

// State tracks what the bot knows during one session. It is owned by the
// engine loop and is not safe for concurrent use.
type State struct {
	id        string
	selfName  string
	selfBoard string
	boards    map[string]string
}

// New creates the state for a session that joined as selfName with selfBoard
func New(id, selfName, selfBoard string) *State {
	return &State{
		id:        id,
		selfName:  selfName,
		selfBoard: selfBoard,
		boards:    make(map[string]string),
	}
}

// ID returns the session identifier used to correlate logs and events
func (s *State) ID() string { return s.id }

// SelfName returns the name the bot joined with
func (s *State) SelfName() string { return s.selfName }

// SelfBoard returns the board descriptor sent at join
func (s *State) SelfBoard() string { return s.selfBoard }

// RecordBoard stores the latest board reported for a player
func (s *State) RecordBoard(player, board string) {
	s.boards[player] = board
}

// BoardOf returns the last board reported for a player
func (s *State) BoardOf(player string) (string, bool) {
	board, ok := s.boards[player]
	return board, ok
}

// Players returns every player with a reported board, sorted by name
func (s *State) Players() []string {
	return slices.Sorted(maps.Keys(s.boards))
}

// OtherPlayers returns every known player except the bot, sorted by name
func (s *State) OtherPlayers() []string {
	others := make([]string, 0, len(s.boards))
	for _, name := range s.Players() {
		if name != s.selfName {
			others = append(others, name)
		}
	}
	return others
}
