package mocks

import (
	"context"
	"io"
	"sync"

	"github.com/mcoot/turkeybot/internal/transport"
)

// MockTransport replays scripted server lines and records what the client sends
type MockTransport struct {
	mu sync.Mutex

	incoming []string
	next     int

	// Sent holds every line passed to SendLine
	Sent []string
	// Receives counts ReceiveLine calls, including the one that hit end of stream
	Receives int
	// CloseCalls counts Close calls
	CloseCalls int

	// ReceiveErr is returned instead of io.EOF once the script is exhausted
	ReceiveErr error
	// SendErr is returned by every SendLine when set
	SendErr error
	// BlockWhenEmpty makes ReceiveLine wait for Close once the script is exhausted
	BlockWhenEmpty bool

	closed chan struct{}
}

var _ transport.Transport = (*MockTransport)(nil)

// NewMockTransport creates a transport that will deliver lines in order
func NewMockTransport(lines ...string) *MockTransport {
	return &MockTransport{
		incoming: lines,
		closed:   make(chan struct{}),
	}
}

// QueueLines appends lines to the script
func (t *MockTransport) QueueLines(lines ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.incoming = append(t.incoming, lines...)
}

// SendLine records the line after applying the real transport's validation
func (t *MockTransport) SendLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.isClosed() {
		return transport.ErrClosed
	}
	if err := transport.ValidateLine(line); err != nil {
		return err
	}
	if t.SendErr != nil {
		return t.SendErr
	}
	t.Sent = append(t.Sent, line)
	return nil
}

// ReceiveLine returns the next scripted line
func (t *MockTransport) ReceiveLine() (string, error) {
	t.mu.Lock()
	t.Receives++
	if t.isClosed() {
		t.mu.Unlock()
		return "", transport.ErrClosed
	}
	if t.next < len(t.incoming) {
		line := t.incoming[t.next]
		t.next++
		t.mu.Unlock()
		return line, nil
	}
	block := t.BlockWhenEmpty
	err := t.ReceiveErr
	t.mu.Unlock()

	if block {
		<-t.closed
		return "", transport.ErrClosed
	}
	if err != nil {
		return "", err
	}
	return "", io.EOF
}

// Close marks the transport closed; later calls are no-ops
func (t *MockTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.CloseCalls++
	if !t.isClosed() {
		close(t.closed)
	}
	return nil
}

// IsClosed reports whether Close has been called
func (t *MockTransport) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isClosed()
}

// SentLines returns a copy of the lines sent so far
func (t *MockTransport) SentLines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.Sent...)
}

// ReceiveCount returns the number of ReceiveLine calls so far
func (t *MockTransport) ReceiveCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Receives
}

func (t *MockTransport) isClosed() bool {
	select {
	case <-t.closed:
		return true
	default:
		return false
	}
}

// MockDialer hands out a prepared transport
type MockDialer struct {
	Transport *MockTransport
	Err       error
	// Addresses records every address dialed
	Addresses []string
}

// NewMockDialer creates a dialer returning tr
func NewMockDialer(tr *MockTransport) *MockDialer {
	return &MockDialer{Transport: tr}
}

// Dial returns the prepared transport or Err
func (d *MockDialer) Dial(_ context.Context, address string) (transport.Transport, error) {
	d.Addresses = append(d.Addresses, address)
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Transport, nil
}
