package factory

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/turkeybot/internal/engine"
	"github.com/mcoot/turkeybot/internal/model"
	"github.com/mcoot/turkeybot/internal/report"
	reportredis "github.com/mcoot/turkeybot/internal/report/redis"
	"github.com/mcoot/turkeybot/internal/testutil"
)

var openBoard = strings.Repeat("X", 17) + strings.Repeat(".", 83)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	app, err := NewTestApp(Config{Logger: testutil.NopLogger()})
	s.Require().NoError(err)
	s.app = app
	s.ctx = context.Background()
}

// Test: Complete session from handshake to results
func (s *IntegrationSuite) TestCompleteSession() {
	s.app.MockTransport.QueueLines(
		"G|battleship|1.0",
		"J|turkey",
		"S|turkey|carol",
		"B|carol|ok|"+openBoard+"|0|0",
		"N|carol",
		"N|turkey",
		"F|over|2|2",
		"turkey 1",
		"carol 0",
	)

	err := s.app.Run(s.ctx)
	s.Require().NoError(err)

	s.Equal(engine.StateFinished, s.app.Engine.State())
	s.Equal([]string{"localhost:7948"}, s.app.MockDialer.Addresses)

	sent := s.app.MockTransport.SentLines()
	s.Require().Len(sent, 2)
	s.True(strings.HasPrefix(sent[0], "J|turkey|"))
	s.True(strings.HasPrefix(sent[1], "S|carol|"))

	status := s.app.Tracker.Snapshot()
	s.Equal("Finished", status.State)
	s.Equal([]string{"turkey", "carol"}, status.Players)
	s.Equal(1, status.Shots)
	s.Equal("over", status.GameState)
	s.Equal([]string{"turkey 1", "carol 0"}, status.Results)
	s.Equal(s.app.Engine.SessionID(), status.SessionID)
}

func (s *IntegrationSuite) TestDefaultsAreApplied() {
	s.NotNil(s.app.Generator)
	s.NotNil(s.app.Strategy)
	s.Nil(s.app.StatusServer)
	s.Nil(s.app.Publisher)
	s.NoError(s.app.Close())
}

func (s *IntegrationSuite) TestGeneratedBoardIsValid() {
	board, err := s.app.Generator.Generate()
	s.Require().NoError(err)
	s.Equal(model.FleetCells, board.OccupiedCount())
}

func TestNewRejectsUnknownStrategy(t *testing.T) {
	_, err := New(Config{Engine: engine.DefaultConfig(), Strategy: "psychic"})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestNewRejectsInvalidEngineConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Port = 0
	_, err := New(Config{Engine: cfg})
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}

func TestNewFailsWhenRedisUnreachable(t *testing.T) {
	mini := miniredis.RunT(t)
	addr := mini.Addr()
	mini.Close()

	redisCfg := reportredis.DefaultConfig()
	redisCfg.URL = "redis://" + addr
	_, err := New(Config{Engine: engine.DefaultConfig(), Redis: &redisCfg})
	assert.Error(t, err)
}

// fakeServer plays one scripted game over real TCP
type fakeServer struct {
	listener net.Listener
	shot     chan string
	errs     chan error
}

func startFakeServer(t *testing.T, opponent string) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	fs := &fakeServer{listener: ln, shot: make(chan string, 1), errs: make(chan error, 1)}
	go fs.serve(opponent)
	return fs
}

func (fs *fakeServer) port() int {
	return fs.listener.Addr().(*net.TCPAddr).Port
}

func (fs *fakeServer) serve(opponent string) {
	conn, err := fs.listener.Accept()
	if err != nil {
		fs.errs <- err
		return
	}
	defer func() { _ = conn.Close() }()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	send := func(lines ...string) {
		for _, l := range lines {
			_, _ = w.WriteString(l + "\n")
		}
		_ = w.Flush()
	}
	recv := func() string {
		line, _ := r.ReadString('\n')
		return strings.TrimRight(line, "\r\n")
	}

	send("G|fake")
	join := strings.Split(recv(), "|")
	if len(join) != 3 || join[0] != "J" {
		fs.errs <- fmt.Errorf("bad join %v", join)
		return
	}
	user := join[1]

	send("J|"+user, "S|"+user+"|"+opponent, "B|"+opponent+"|ok|"+openBoard+"|0|0", "N|"+user)
	fs.shot <- recv()

	send("X|mystery", "F|over|1|2", user+" 1", opponent+" 0")
	fs.errs <- nil
}

func TestRunAgainstTCPServer(t *testing.T) {
	server := startFakeServer(t, "carol")

	mini := miniredis.RunT(t)
	redisCfg := reportredis.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	engineCfg := engine.DefaultConfig()
	engineCfg.Host = "127.0.0.1"
	engineCfg.Port = server.port()

	var out, errOut bytes.Buffer
	app, err := New(Config{
		Engine:      engineCfg,
		DialTimeout: 2 * time.Second,
		Output:      &out,
		ErrOutput:   &errOut,
		Redis:       &redisCfg,
		StatusAddr:  "127.0.0.1:0",
		Logger:      testutil.NopLogger(),
	})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, app.Run(ctx))
	require.NoError(t, <-server.errs)

	shot := strings.Split(<-server.shot, "|")
	require.Len(t, shot, 4)
	assert.Equal(t, "S", shot[0])
	assert.Equal(t, "carol", shot[1])
	x, err := strconv.Atoi(shot[2])
	require.NoError(t, err)
	y, err := strconv.Atoi(shot[3])
	require.NoError(t, err)
	assert.Equal(t, byte('.'), openBoard[model.Coordinate{X: x - 1, Y: y - 1}.Index()])

	assert.Contains(t, out.String(), "game started\n  player 1: turkey\n  player 2: carol\n")
	assert.Contains(t, out.String(), "game finished\n  turkey 1\n  carol 0\n")
	assert.Equal(t, "Server Error: X|mystery\n", errOut.String())

	assert.Equal(t, engine.StateFinished, app.Engine.State())
	assert.Equal(t, "Finished", app.Tracker.Snapshot().State)

	// the status server only lives for the session
	_, err = http.Get(fmt.Sprintf("http://%s/api/v1/health", app.StatusServer.Addr()))
	assert.Error(t, err)
}

func TestStatusServerDuringSession(t *testing.T) {
	app, err := NewTestApp(Config{StatusAddr: "127.0.0.1:0", Logger: testutil.NopLogger()})
	require.NoError(t, err)

	app.MockTransport.QueueLines("G|1", "J|turkey", "S|turkey|carol")
	app.MockTransport.BlockWhenEmpty = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	require.Eventually(t, func() bool {
		return app.Tracker.Snapshot().State == "InGame" && len(app.Tracker.Snapshot().Players) == 2
	}, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://%s/api/v1/status", app.StatusServer.Addr()))
	require.NoError(t, err)
	var body report.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	_ = resp.Body.Close()

	assert.Equal(t, "InGame", body.State)
	assert.Equal(t, []string{"turkey", "carol"}, body.Players)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
