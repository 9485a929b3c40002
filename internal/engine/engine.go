package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/turkeybot/internal/dependencies/clock"
	"github.com/mcoot/turkeybot/internal/model"
	"github.com/mcoot/turkeybot/internal/protocol"
	"github.com/mcoot/turkeybot/internal/report"
	"github.com/mcoot/turkeybot/internal/services/targeting"
	"github.com/mcoot/turkeybot/internal/session"
	"github.com/mcoot/turkeybot/internal/transport"
)

// Dialer opens the line transport to the server
type Dialer interface {
	Dial(ctx context.Context, address string) (transport.Transport, error)
}

// BoardGenerator produces the fleet layout sent at join
type BoardGenerator interface {
	Generate() (model.Board, error)
}

// Engine drives one bot session: connect, join, play until the game ends.
// Login, Play and Run must be called from a single goroutine; State and
// Disconnect are safe to call from others.
type Engine struct {
	cfg       Config
	dialer    Dialer
	generator BoardGenerator
	strategy  targeting.Strategy
	reporter  report.Reporter
	clock     clock.Clock
	logger    *slog.Logger

	newSessionID func() string

	mu        sync.Mutex
	state     State
	tr        transport.Transport
	sessionID string

	// owned by the goroutine running Login/Play
	session *session.State
}

// New creates an engine in the Disconnected state
func New(
	cfg Config,
	dialer Dialer,
	generator BoardGenerator,
	strategy targeting.Strategy,
	reporter report.Reporter,
	clk clock.Clock,
	logger *slog.Logger,
) *Engine {
	if reporter == nil {
		reporter = report.Nop{}
	}
	return &Engine{
		cfg:          cfg,
		dialer:       dialer,
		generator:    generator,
		strategy:     strategy,
		reporter:     reporter,
		clock:        clk,
		logger:       logger.With(slog.String("component", "engine")),
		newSessionID: uuid.NewString,
		state:        StateDisconnected,
	}
}

// State returns the current lifecycle state
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SessionID returns the identifier of the current or most recent session
func (e *Engine) SessionID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

// Run logs in and plays one game. The transport is released on every path.
// Cancelling ctx aborts a blocked receive and Run returns ctx.Err().
func (e *Engine) Run(ctx context.Context) error {
	defer func() { _ = e.Disconnect() }()

	if err := e.Login(ctx); err != nil {
		return err
	}
	return e.Play(ctx)
}

// Login connects and performs the join handshake. On failure the session
// is disconnected before the error is returned.
func (e *Engine) Login(ctx context.Context) (err error) {
	if state := e.State(); state != StateDisconnected {
		return fmt.Errorf("%w: cannot log in from %s", model.ErrInvalidState, state)
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stop := context.AfterFunc(ctx, e.abort)
	defer stop()

	defer func() {
		if err != nil {
			_ = e.Disconnect()
		}
	}()

	e.mu.Lock()
	e.sessionID = e.newSessionID()
	e.mu.Unlock()

	address := e.cfg.Address()
	e.logger.Info("connecting", slog.String("address", address), slog.String("username", e.cfg.Username))
	e.setState(ctx, StateConnecting)

	tr, err := e.dialer.Dial(ctx, address)
	if err != nil {
		return e.transportError(ctx, "connect to "+address, err)
	}
	e.mu.Lock()
	e.tr = tr
	e.mu.Unlock()
	// abort may have run before the transport was installed
	if err := ctx.Err(); err != nil {
		return err
	}

	e.setState(ctx, StateAwaitingGameInfo)

	// A fresh board for every login attempt
	board, err := e.generator.Generate()
	if err != nil {
		return fmt.Errorf("generate board: %w", err)
	}
	e.session = session.New(e.SessionID(), e.cfg.Username, board.String())

	line, err := e.receive(ctx)
	if err != nil {
		return e.handshakeReceiveError(ctx, "game info", err)
	}
	if protocol.TagOf(line) != protocol.TagGameInfo {
		return fmt.Errorf("%w: expected game info, got %q", model.ErrHandshake, line)
	}

	e.setState(ctx, StateJoining)
	join := protocol.JoinRequest{Username: e.cfg.Username, Board: board.String()}
	if err := e.send(ctx, join); err != nil {
		return err
	}
	e.setState(ctx, StateAwaitingJoinAck)

	line, err = e.receive(ctx)
	if err != nil {
		return e.handshakeReceiveError(ctx, "join ack", err)
	}
	if want := protocol.Encode(protocol.JoinAck{Username: e.cfg.Username}); line != want {
		return fmt.Errorf("%w: expected %q, got %q", model.ErrHandshake, want, line)
	}

	e.setState(ctx, StateInGame)
	e.logger.Info("joined game", slog.String("session_id", e.SessionID()))
	e.emit(ctx, report.Event{Type: report.EventJoined, Player: e.cfg.Username})
	return nil
}

// Play runs the receive-dispatch loop until the game finishes, the server
// closes the stream, or a fatal error occurs. The session is disconnected
// when Play returns.
func (e *Engine) Play(ctx context.Context) error {
	switch state := e.State(); state {
	case StateInGame:
	case StateDisconnected:
		return model.ErrNotConnected
	default:
		return fmt.Errorf("%w: cannot play from %s", model.ErrInvalidState, state)
	}

	stop := context.AfterFunc(ctx, e.abort)
	defer stop()
	defer func() { _ = e.Disconnect() }()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := e.receive(ctx)
		if errors.Is(err, io.EOF) {
			e.logger.Info("server closed the connection")
			return nil
		}
		if err != nil {
			return err
		}

		msg, err := protocol.Decode(line)
		if err != nil {
			e.logger.Error("malformed message", slog.String("line", line), slog.Any("error", err))
			return err
		}

		done, err := e.dispatch(ctx, msg)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Disconnect closes the transport. It is safe to call repeatedly and from
// any goroutine. A finished session stays Finished.
func (e *Engine) Disconnect() error {
	e.mu.Lock()
	tr := e.tr
	e.tr = nil
	prev := e.state
	e.mu.Unlock()

	if tr == nil && (prev == StateDisconnected || prev == StateFinished) {
		return nil
	}

	var err error
	if tr != nil {
		if err = tr.Close(); err != nil {
			e.logger.Warn("error closing transport", slog.Any("error", err))
		}
	}

	ctx := context.Background()
	if prev != StateFinished {
		e.setState(ctx, StateDisconnected)
	}
	e.emit(ctx, report.Event{Type: report.EventDisconnected, State: e.State().String()})
	e.logger.Info("disconnected")
	return err
}

func (e *Engine) dispatch(ctx context.Context, msg protocol.Message) (bool, error) {
	switch m := msg.(type) {
	case protocol.BoardInfo:
		e.session.RecordBoard(m.Player, m.Board)
		e.logger.Debug("board updated",
			slog.String("player", m.Player),
			slog.String("status", m.Status),
			slog.Int("score", m.Score),
			slog.Int("skips", m.Skips),
		)

	case protocol.NextTurn:
		if m.Player != e.session.SelfName() {
			e.logger.Debug("turn", slog.String("player", m.Player))
			return false, nil
		}
		return false, e.takeTurn(ctx)

	case protocol.GameStarted:
		e.logger.Info("game started", slog.Any("players", m.Players))
		e.emit(ctx, report.Event{Type: report.EventGameStarted, Players: m.Players})

	case protocol.GameFinished:
		return true, e.finish(ctx, m)

	case protocol.GameInfo, protocol.JoinAck, protocol.Ignored:
		e.logger.Debug("ignored message", slog.String("line", protocol.Encode(m)))

	case protocol.Unrecognized:
		e.logger.Warn("unrecognized message", slog.String("line", m.Line))
		e.emit(ctx, report.Event{Type: report.EventUnrecognized, Line: m.Line})
	}
	return false, nil
}

func (e *Engine) takeTurn(ctx context.Context) error {
	target, coord, err := e.chooseShot()
	if err != nil {
		if !e.cfg.SkipOnNoTarget {
			return fmt.Errorf("choose shot: %w", err)
		}
		e.logger.Warn("no shot available, skipping turn", slog.Any("error", err))
		if err := e.send(ctx, protocol.Skip{Username: e.cfg.Username}); err != nil {
			return err
		}
		e.emit(ctx, report.Event{Type: report.EventSkipped, Player: e.cfg.Username, Reason: err.Error()})
		return nil
	}

	shot := protocol.Shoot{Target: target, Coordinate: coord}
	if err := e.send(ctx, shot); err != nil {
		return err
	}
	e.logger.Debug("shot fired", slog.String("target", target), slog.Int("x", coord.X), slog.Int("y", coord.Y))
	e.emit(ctx, report.Event{
		Type:   report.EventShot,
		Player: e.cfg.Username,
		Target: target,
		X:      coord.X + 1,
		Y:      coord.Y + 1,
	})
	return nil
}

func (e *Engine) chooseShot() (string, model.Coordinate, error) {
	opponent, err := e.strategy.ChooseOpponent(e.session)
	if err != nil {
		return "", model.Coordinate{}, err
	}
	board, ok := e.session.BoardOf(opponent)
	if !ok {
		return "", model.Coordinate{}, fmt.Errorf("%w: no board for %q", model.ErrNoTargets, opponent)
	}
	coord, err := e.strategy.ChooseTarget(board)
	if err != nil {
		return "", model.Coordinate{}, err
	}
	return opponent, coord, nil
}

func (e *Engine) finish(ctx context.Context, m protocol.GameFinished) error {
	e.setState(ctx, StateFinished)
	e.logger.Info("game finished",
		slog.String("state", m.State),
		slog.Int("turns", m.Turns),
		slog.Int("players", m.PlayerCount),
	)
	e.emit(ctx, report.Event{
		Type:        report.EventGameFinished,
		GameState:   m.State,
		Turns:       m.Turns,
		PlayerCount: m.PlayerCount,
	})

	for i := range m.PlayerCount {
		line, err := e.receive(ctx)
		if errors.Is(err, io.EOF) {
			e.logger.Warn("stream ended before all results arrived",
				slog.Int("received", i),
				slog.Int("expected", m.PlayerCount),
			)
			return nil
		}
		if err != nil {
			return err
		}
		e.emit(ctx, report.Event{Type: report.EventPlayerResult, Line: line})
	}
	return nil
}

func (e *Engine) send(ctx context.Context, msg protocol.Message) error {
	tr := e.transport()
	if tr == nil {
		return e.transportError(ctx, "send", transport.ErrClosed)
	}
	line := protocol.Encode(msg)
	if err := tr.SendLine(line); err != nil {
		return e.transportError(ctx, "send", err)
	}
	return nil
}

// receive returns io.EOF unwrapped so callers can treat end of stream as
// a normal outcome
func (e *Engine) receive(ctx context.Context) (string, error) {
	tr := e.transport()
	if tr == nil {
		return "", e.transportError(ctx, "receive", transport.ErrClosed)
	}
	line, err := tr.ReceiveLine()
	if err != nil {
		if errors.Is(err, io.EOF) && ctx.Err() == nil {
			return "", io.EOF
		}
		return "", e.transportError(ctx, "receive", err)
	}
	return line, nil
}

func (e *Engine) handshakeReceiveError(ctx context.Context, expecting string, err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: connection closed while waiting for %s", model.ErrHandshake, expecting)
	}
	return err
}

// transportError prefers the context error when the failure came from an
// abort
func (e *Engine) transportError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, model.ErrTransport) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", model.ErrTransport, op, err)
}

func (e *Engine) transport() transport.Transport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tr
}

// abort unblocks a pending receive by closing the transport. Cleanup of
// state is left to the goroutine running the session.
func (e *Engine) abort() {
	if tr := e.transport(); tr != nil {
		_ = tr.Close()
	}
}

func (e *Engine) setState(ctx context.Context, next State) {
	e.mu.Lock()
	prev := e.state
	e.state = next
	e.mu.Unlock()

	if prev == next {
		return
	}
	e.logger.Debug("state changed", slog.String("from", prev.String()), slog.String("to", next.String()))
	e.emit(ctx, report.Event{Type: report.EventStateChanged, State: next.String()})
}

func (e *Engine) emit(ctx context.Context, event report.Event) {
	event.SessionID = e.SessionID()
	event.Time = e.clock.Now()
	e.reporter.Report(ctx, event)
}
