package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/turkeybot/internal/model"
)

var (
	ErrEmptyLine = errors.New("cannot send empty line")
	ErrMultiLine = errors.New("cannot send multi-line message")
	ErrClosed    = errors.New("transport closed")
)

// Transport exchanges newline-terminated lines with the game server
type Transport interface {
	// SendLine writes one line; the newline is appended
	SendLine(line string) error
	// ReceiveLine blocks for the next line, returning io.EOF at end of stream
	ReceiveLine() (string, error)
	// Close releases the connection; closing twice is a no-op
	Close() error
}

// Conn is a Transport over a stream connection
type Conn struct {
	conn   net.Conn
	reader *bufio.Reader
	writer *bufio.Writer

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
	closed    chan struct{}
}

var _ Transport = (*Conn)(nil)

// NewConn wraps an established connection
func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
		closed: make(chan struct{}),
	}
}

// ValidateLine rejects payloads the server cannot frame as a single line
func ValidateLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return ErrEmptyLine
	}
	if strings.ContainsAny(line, "\r\n") {
		return ErrMultiLine
	}
	return nil
}

// SendLine writes line followed by a newline and flushes
func (c *Conn) SendLine(line string) error {
	if err := ValidateLine(line); err != nil {
		return err
	}
	if c.isClosed() {
		return ErrClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if _, err := c.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return c.writer.Flush()
}

// ReceiveLine reads up to the next newline. A trailing line without a
// newline is returned before io.EOF.
func (c *Conn) ReceiveLine() (string, error) {
	if c.isClosed() {
		return "", ErrClosed
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if c.isClosed() {
			return "", ErrClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Close flushes pending output and closes the connection. Both steps are
// attempted even if one fails. A send in flight on another goroutine skips
// the flush rather than blocking the close.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		var flushErr error
		if c.writeMu.TryLock() {
			if err := c.writer.Flush(); err != nil {
				flushErr = fmt.Errorf("flush writer: %w", err)
			}
			c.writeMu.Unlock()
		}
		connErr := c.conn.Close()
		if connErr != nil {
			connErr = fmt.Errorf("close connection: %w", connErr)
		}
		c.closeErr = errors.Join(flushErr, connErr)
	})
	return c.closeErr
}

func (c *Conn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Dialer opens TCP transports
type Dialer struct {
	Timeout time.Duration
}

// Dial connects to address ("host:port")
func (d Dialer) Dial(ctx context.Context, address string) (Transport, error) {
	nd := net.Dialer{Timeout: d.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: connect to %s: %w", model.ErrTransport, address, err)
	}
	return NewConn(conn), nil
}
