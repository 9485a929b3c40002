package protocol

import "github.com/mcoot/turkeybot/internal/model"

// Tag is the leading field of every protocol line
type Tag string

const (
	// Server -> Client
	TagGameInfo     Tag = "G"
	TagJoin         Tag = "J"
	TagBoardInfo    Tag = "B"
	TagNextTurn     Tag = "N"
	TagGameStarted  Tag = "S"
	TagGameFinished Tag = "F"
	TagYourBoard    Tag = "Y"
	TagPlayerLeft   Tag = "L"
	TagHit          Tag = "H"
	TagTextMessage  Tag = "M"
	TagSkip         Tag = "K"

	// Client -> Server; S is shared with the inbound game-start broadcast
	TagShoot Tag = "S"
)

// Separator joins the fields of a line
const Separator = "|"

// Message is a decoded or outgoing protocol line
type Message interface {
	// Tag returns the leading field of the line
	Tag() Tag
	// Fields returns the fields after the tag, in wire order
	Fields() []string
}

// GameInfo is the first line sent by the server after connecting
type GameInfo struct {
	Values []string
}

// JoinAck confirms a join, or announces another player joining during play
type JoinAck struct {
	Username string
}

// BoardInfo is a snapshot of one player's board as the server discloses it
type BoardInfo struct {
	Player string
	Status string
	Board  string
	Score  int
	Skips  int
}

// NextTurn names the player whose turn it is to shoot
type NextTurn struct {
	Player string
}

// GameStarted lists the players in turn order
type GameStarted struct {
	Players []string
}

// GameFinished is followed by PlayerCount raw result lines
type GameFinished struct {
	State       string
	Turns       int
	PlayerCount int
}

// Ignored is a known message type the bot does not act on
type Ignored struct {
	MessageTag Tag
	Line       string
}

// Unrecognized is a line whose tag is not part of the protocol
type Unrecognized struct {
	Line string
}

// JoinRequest registers the bot and its board with the server
type JoinRequest struct {
	Username string
	Board    string
}

// Shoot fires at a cell on the target's board. Coordinate is zero-based; the
// wire form is one-based
type Shoot struct {
	Target     string
	Coordinate model.Coordinate
}

// Skip gives up the current turn
type Skip struct {
	Username string
}
