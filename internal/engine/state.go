package engine

// State is a point in the session lifecycle
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateAwaitingGameInfo
	StateJoining
	StateAwaitingJoinAck
	StateInGame
	StateFinished
)

var stateNames = map[State]string{
	StateDisconnected:     "Disconnected",
	StateConnecting:       "Connecting",
	StateAwaitingGameInfo: "AwaitingGameInfo",
	StateJoining:          "Joining",
	StateAwaitingJoinAck:  "AwaitingJoinAck",
	StateInGame:           "InGame",
	StateFinished:         "Finished",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Connected reports whether the state holds an open transport
func (s State) Connected() bool {
	return s != StateDisconnected && s != StateFinished
}
