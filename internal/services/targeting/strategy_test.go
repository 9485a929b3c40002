package targeting_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/turkeybot/internal/dependencies/mocks"
	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/model"
	"github.com/mcoot/turkeybot/internal/services/targeting"
	"github.com/mcoot/turkeybot/internal/session"
)

type StrategySuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *targeting.RandomStrategy
	state      *session.State
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = targeting.NewRandomStrategy(s.mockRandom)
	s.state = session.New("session-1", "bob", strings.Repeat(".", 100))
}

func (s *StrategySuite) TestChooseOpponent_NeverSelf() {
	s.state.RecordBoard("bob", strings.Repeat(".", 100))
	s.state.RecordBoard("alice", strings.Repeat(".", 100))
	s.state.RecordBoard("carol", strings.Repeat(".", 100))
	s.mockRandom.QueueIntn(1)

	opponent, err := s.strategy.ChooseOpponent(s.state)
	s.Require().NoError(err)
	// Others sorted: alice, carol
	s.Equal("carol", opponent)
	s.Equal([]int{2}, s.mockRandom.Calls)
}

func (s *StrategySuite) TestChooseOpponent_NoneKnown() {
	_, err := s.strategy.ChooseOpponent(s.state)
	s.ErrorIs(err, model.ErrNoOpponents)
}

func (s *StrategySuite) TestChooseOpponent_OnlySelfKnown() {
	s.state.RecordBoard("bob", strings.Repeat(".", 100))
	_, err := s.strategy.ChooseOpponent(s.state)
	s.ErrorIs(err, model.ErrNoOpponents)
}

func (s *StrategySuite) TestChooseTarget_EmptyBoard() {
	// 100 open cells, random picks index 23
	s.mockRandom.QueueIntn(23)

	coord, err := s.strategy.ChooseTarget(strings.Repeat(".", 100))
	s.Require().NoError(err)
	s.Equal(model.Coordinate{X: 3, Y: 2}, coord)
}

func (s *StrategySuite) TestChooseTarget_SkipsResolvedCells() {
	board := []byte(strings.Repeat("x", 100))
	board[7] = '.'
	board[93] = '.'
	s.mockRandom.QueueIntn(1)

	coord, err := s.strategy.ChooseTarget(string(board))
	s.Require().NoError(err)
	s.Equal(model.Coordinate{X: 3, Y: 9}, coord)
	s.Equal([]int{2}, s.mockRandom.Calls)
}

func (s *StrategySuite) TestChooseTarget_NoneOpen() {
	_, err := s.strategy.ChooseTarget(strings.Repeat("X", 100))
	s.ErrorIs(err, model.ErrNoTargets)
}

func (s *StrategySuite) TestChooseTarget_EmptyDescriptor() {
	_, err := s.strategy.ChooseTarget("")
	s.ErrorIs(err, model.ErrNoTargets)
}

func (s *StrategySuite) TestChooseTarget_IgnoresCellsPastTheGrid() {
	board := strings.Repeat("X", 100) + "...."
	_, err := s.strategy.ChooseTarget(board)
	s.ErrorIs(err, model.ErrNoTargets)
}

func TestChooseTargetIsRoughlyUniform(t *testing.T) {
	strategy := targeting.NewRandomStrategy(random.New())

	board := []byte(strings.Repeat("*", 100))
	open := []int{0, 11, 45, 78, 99}
	for _, i := range open {
		board[i] = '.'
	}

	const trials = 5000
	counts := make(map[model.Coordinate]int)
	for range trials {
		coord, err := strategy.ChooseTarget(string(board))
		require.NoError(t, err)
		require.Equal(t, model.Unoccupied, board[coord.Index()])
		counts[coord]++
	}

	require.Len(t, counts, len(open))
	expected := trials / len(open)
	for coord, n := range counts {
		assert.InDelta(t, expected, n, float64(expected)/4, "cell %v", coord)
	}
}

func TestForName(t *testing.T) {
	strategy, err := targeting.ForName(targeting.StrategyRandom, random.New())
	require.NoError(t, err)
	assert.IsType(t, &targeting.RandomStrategy{}, strategy)

	_, err = targeting.ForName("clever", random.New())
	assert.ErrorIs(t, err, model.ErrInvalidConfig)
}
