package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/turkeybot/internal/model"
)

// minimum field counts, tag included
const (
	minGameInfoFields     = 1
	minJoinFields         = 1
	minBoardInfoFields    = 6
	minNextTurnFields     = 2
	minGameStartedFields  = 3
	minGameFinishedFields = 4
)

// TagOf returns the leading field of a raw line
func TagOf(line string) Tag {
	tag, _, _ := strings.Cut(line, Separator)
	return Tag(tag)
}

// Decode classifies a raw server line into a typed message. Unknown tags
// decode to Unrecognized; only a recognized tag with missing or non-numeric
// fields is an error.
func Decode(line string) (Message, error) {
	parts := strings.Split(line, Separator)
	tag := Tag(parts[0])

	switch tag {
	case TagGameInfo:
		if err := requireFields("game info", parts, minGameInfoFields, line); err != nil {
			return nil, err
		}
		var values []string
		if len(parts) > 1 {
			values = parts[1:]
		}
		return GameInfo{Values: values}, nil

	case TagJoin:
		if err := requireFields("join", parts, minJoinFields, line); err != nil {
			return nil, err
		}
		return JoinAck{Username: part(parts, 1)}, nil

	case TagBoardInfo:
		if err := requireFields("board info", parts, minBoardInfoFields, line); err != nil {
			return nil, err
		}
		score, err := parseInt("board info", "score", parts[4], line)
		if err != nil {
			return nil, err
		}
		skips, err := parseInt("board info", "skips", parts[5], line)
		if err != nil {
			return nil, err
		}
		return BoardInfo{
			Player: parts[1],
			Status: parts[2],
			Board:  parts[3],
			Score:  score,
			Skips:  skips,
		}, nil

	case TagNextTurn:
		if err := requireFields("next turn", parts, minNextTurnFields, line); err != nil {
			return nil, err
		}
		return NextTurn{Player: parts[1]}, nil

	case TagGameStarted:
		if err := requireFields("game started", parts, minGameStartedFields, line); err != nil {
			return nil, err
		}
		return GameStarted{Players: parts[1:]}, nil

	case TagGameFinished:
		if err := requireFields("game finished", parts, minGameFinishedFields, line); err != nil {
			return nil, err
		}
		turns, err := parseCount("game finished", "turn count", parts[2], line)
		if err != nil {
			return nil, err
		}
		players, err := parseCount("game finished", "player count", parts[3], line)
		if err != nil {
			return nil, err
		}
		return GameFinished{State: parts[1], Turns: turns, PlayerCount: players}, nil

	case TagYourBoard, TagPlayerLeft, TagHit, TagTextMessage, TagSkip:
		return Ignored{MessageTag: tag, Line: line}, nil
	}

	return Unrecognized{Line: line}, nil
}

// Encode serializes a message into a raw line without the trailing newline
func Encode(m Message) string {
	switch v := m.(type) {
	case Ignored:
		return v.Line
	case Unrecognized:
		return v.Line
	}
	fields := m.Fields()
	if len(fields) == 0 {
		return string(m.Tag())
	}
	return string(m.Tag()) + Separator + strings.Join(fields, Separator)
}

func requireFields(kind string, parts []string, want int, line string) error {
	if len(parts) < want {
		return fmt.Errorf("%w: invalid %s message, need %d fields: %q", model.ErrMalformedMessage, kind, want, line)
	}
	return nil
}

func parseInt(kind, field, value, line string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s message, %s %q is not a number: %q", model.ErrMalformedMessage, kind, field, value, line)
	}
	return n, nil
}

func parseCount(kind, field, value, line string) (int, error) {
	n, err := parseInt(kind, field, value, line)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: invalid %s message, negative %s: %q", model.ErrMalformedMessage, kind, field, line)
	}
	return n, nil
}

func part(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// Tag and Fields implementations

func (m GameInfo) Tag() Tag { return TagGameInfo }
func (m GameInfo) Fields() []string { return m.Values }

func (m JoinAck) Tag() Tag { return TagJoin }
func (m JoinAck) Fields() []string { return []string{m.Username} }

func (m BoardInfo) Tag() Tag { return TagBoardInfo }
func (m BoardInfo) Fields() []string {
	return []string{m.Player, m.Status, m.Board, strconv.Itoa(m.Score), strconv.Itoa(m.Skips)}
}

func (m NextTurn) Tag() Tag { return TagNextTurn }
func (m NextTurn) Fields() []string { return []string{m.Player} }

func (m GameStarted) Tag() Tag { return TagGameStarted }
func (m GameStarted) Fields() []string { return m.Players }

func (m GameFinished) Tag() Tag { return TagGameFinished }
func (m GameFinished) Fields() []string {
	return []string{m.State, strconv.Itoa(m.Turns), strconv.Itoa(m.PlayerCount)}
}

func (m Ignored) Tag() Tag { return m.MessageTag }
func (m Ignored) Fields() []string {
	parts := strings.Split(m.Line, Separator)
	return parts[1:]
}

func (m Unrecognized) Tag() Tag { return TagOf(m.Line) }
func (m Unrecognized) Fields() []string {
	parts := strings.Split(m.Line, Separator)
	return parts[1:]
}

func (m JoinRequest) Tag() Tag { return TagJoin }
func (m JoinRequest) Fields() []string { return []string{m.Username, m.Board} }

func (m Shoot) Tag() Tag { return TagShoot }
func (m Shoot) Fields() []string {
	return []string{m.Target, strconv.Itoa(m.Coordinate.X + 1), strconv.Itoa(m.Coordinate.Y + 1)}
}

func (m Skip) Tag() Tag { return TagSkip }
func (m Skip) Fields() []string { return []string{m.Username} }
