package targeting

import (
	"fmt"

	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/model"
)

// Strategy names
const (
	StrategyRandom = "random"
)

// ValidStrategies returns all valid strategy names
func ValidStrategies() []string {
	return []string{StrategyRandom}
}

// PlayerSource exposes the opponents the bot currently knows about
type PlayerSource interface {
	OtherPlayers() []string
}

// Strategy defines how a bot picks who and where to shoot
type Strategy interface {
	// ChooseOpponent selects the player to shoot at
	ChooseOpponent(players PlayerSource) (string, error)
	// ChooseTarget selects a cell on the opponent's last-known board
	ChooseTarget(board string) (model.Coordinate, error)
}

// ForName returns the named strategy
func ForName(name string, rnd random.Random) (Strategy, error) {
	switch name {
	case StrategyRandom:
		return NewRandomStrategy(rnd), nil
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", model.ErrInvalidConfig, name)
	}
}
