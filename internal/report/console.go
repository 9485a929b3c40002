package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Console prints events for a human at a terminal, or as JSON lines
type Console struct {
	out     io.Writer
	errOut  io.Writer
	format  string
	verbose bool
}

// NewConsole creates a console reporter. Text mode prints the game lifecycle;
// verbose text mode also prints shots and skips. JSON mode prints everything.
func NewConsole(out, errOut io.Writer, format string, verbose bool) *Console {
	return &Console{out: out, errOut: errOut, format: format, verbose: verbose}
}

// Report prints the event in the configured format
func (c *Console) Report(_ context.Context, event Event) {
	if c.format == FormatJSON {
		data, err := json.Marshal(event)
		if err != nil {
			return
		}
		_, _ = fmt.Fprintln(c.out, string(data))
		return
	}
	c.printText(event)
}

func (c *Console) printText(event Event) {
	switch event.Type {
	case EventGameStarted:
		_, _ = fmt.Fprintln(c.out, "game started")
		for i, player := range event.Players {
			_, _ = fmt.Fprintf(c.out, "  player %d: %s\n", i+1, player)
		}
	case EventGameFinished:
		_, _ = fmt.Fprintln(c.out, "game finished")
		if c.verbose {
			_, _ = fmt.Fprintf(c.out, "  status: %s, turns: %d, players: %d\n", event.GameState, event.Turns, event.PlayerCount)
		}
	case EventPlayerResult:
		_, _ = fmt.Fprintf(c.out, "  %s\n", event.Line)
	case EventUnrecognized:
		_, _ = fmt.Fprintf(c.errOut, "Server Error: %s\n", event.Line)
	case EventJoined:
		if c.verbose {
			_, _ = fmt.Fprintf(c.out, "joined as %s\n", event.Player)
		}
	case EventShot:
		if c.verbose {
			_, _ = fmt.Fprintf(c.out, "shot at %s %d,%d\n", event.Target, event.X, event.Y)
		}
	case EventSkipped:
		if c.verbose {
			_, _ = fmt.Fprintf(c.out, "skipped turn: %s\n", strings.TrimSpace(event.Reason))
		}
	}
}
