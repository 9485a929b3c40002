package targeting

import (
	"fmt"

	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/model"
)

// RandomStrategy picks a random opponent and a random unresolved cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

var _ Strategy = (*RandomStrategy)(nil)

// ChooseOpponent returns a uniformly random player other than the bot
func (s *RandomStrategy) ChooseOpponent(players PlayerSource) (string, error) {
	others := players.OtherPlayers()
	if len(others) == 0 {
		return "", model.ErrNoOpponents
	}
	return others[s.random.Intn(len(others))], nil
}

// ChooseTarget picks a uniformly random unoccupied cell. Only the first 100
// cells of the descriptor are considered.
func (s *RandomStrategy) ChooseTarget(board string) (model.Coordinate, error) {
	var open []model.Coordinate
	for i := 0; i < len(board) && i < model.BoardCells; i++ {
		if board[i] == model.Unoccupied {
			open = append(open, model.CoordinateFromIndex(i))
		}
	}
	if len(open) == 0 {
		return model.Coordinate{}, fmt.Errorf("%w: board has no unoccupied cells", model.ErrNoTargets)
	}
	return open[s.random.Intn(len(open))], nil
}
