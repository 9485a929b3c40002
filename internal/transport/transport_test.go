package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/turkeybot/internal/model"
)

type ConnSuite struct {
	suite.Suite
	server net.Conn
	client *Conn
}

func TestConnSuite(t *testing.T) {
	suite.Run(t, new(ConnSuite))
}

func (s *ConnSuite) SetupTest() {
	server, client := net.Pipe()
	s.server = server
	s.client = NewConn(client)
}

func (s *ConnSuite) TearDownTest() {
	_ = s.client.Close()
	_ = s.server.Close()
}

func (s *ConnSuite) TestSendLineAppendsNewline() {
	received := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(s.server).ReadString('\n')
		received <- line
	}()

	s.Require().NoError(s.client.SendLine("J|bob|board"))
	s.Equal("J|bob|board\n", <-received)
}

func (s *ConnSuite) TestSendLineRejectsBadPayloads() {
	s.ErrorIs(s.client.SendLine(""), ErrEmptyLine)
	s.ErrorIs(s.client.SendLine("   \t"), ErrEmptyLine)
	s.ErrorIs(s.client.SendLine("S|a|1|1\nS|a|2|2"), ErrMultiLine)
	s.ErrorIs(s.client.SendLine("S|a|1|1\r"), ErrMultiLine)
}

func (s *ConnSuite) TestReceiveLineStripsTerminators() {
	go func() {
		_, _ = io.WriteString(s.server, "G|1\r\nB|bob|ok\nlast")
		_ = s.server.Close()
	}()

	for _, want := range []string{"G|1", "B|bob|ok", "last"} {
		line, err := s.client.ReceiveLine()
		s.Require().NoError(err)
		s.Equal(want, line)
	}

	_, err := s.client.ReceiveLine()
	s.ErrorIs(err, io.EOF)
}

func (s *ConnSuite) TestCloseIsIdempotent() {
	s.NoError(s.client.Close())
	s.NoError(s.client.Close())

	s.ErrorIs(s.client.SendLine("K|bob"), ErrClosed)
	_, err := s.client.ReceiveLine()
	s.ErrorIs(err, ErrClosed)
}

func (s *ConnSuite) TestCloseUnblocksReceive() {
	errCh := make(chan error, 1)
	go func() {
		_, err := s.client.ReceiveLine()
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	s.Require().NoError(s.client.Close())

	select {
	case err := <-errCh:
		s.ErrorIs(err, ErrClosed)
	case <-time.After(2 * time.Second):
		s.Fail("receive did not unblock after close")
	}
}

func TestDialerConnects(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		_, _ = io.WriteString(conn, "G|1\n")
		_ = conn.Close()
	}()

	tr, err := Dialer{Timeout: time.Second}.Dial(context.Background(), ln.Addr().String())
	require.NoError(t, err)
	defer func() { _ = tr.Close() }()

	line, err := tr.ReceiveLine()
	require.NoError(t, err)
	assert.Equal(t, "G|1", line)
}

func TestDialerFailureIsTransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	_ = ln.Close()

	_, err = Dialer{Timeout: time.Second}.Dial(context.Background(), addr)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrTransport)
	assert.Contains(t, err.Error(), addr)
}
