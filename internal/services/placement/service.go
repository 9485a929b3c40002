package placement

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/turkeybot/internal/dependencies/random"
	"github.com/mcoot/turkeybot/internal/model"
)

// Config bounds the rejection sampling used to place ships
type Config struct {
	// MaxResamples is the number of start-cell draws allowed per ship
	MaxResamples int
	// MaxRestarts is the number of times the whole board may be started over
	MaxRestarts int
}

// DefaultConfig returns limits that are never reached with the standard fleet
func DefaultConfig() Config {
	return Config{
		MaxResamples: 1000,
		MaxRestarts:  100,
	}
}

// Generator produces random boards holding the standard fleet
type Generator struct {
	random random.Random
	fleet  []model.Ship
	cfg    Config
	logger *slog.Logger
}

// New creates a Generator for the standard fleet
func New(rnd random.Random, cfg Config, logger *slog.Logger) *Generator {
	if cfg.MaxResamples <= 0 {
		cfg.MaxResamples = DefaultConfig().MaxResamples
	}
	if cfg.MaxRestarts < 0 {
		cfg.MaxRestarts = DefaultConfig().MaxRestarts
	}
	return &Generator{
		random: rnd,
		fleet:  model.StandardFleet(),
		cfg:    cfg,
		logger: logger.With(slog.String("component", "placement")),
	}
}

// Generate returns a board with every ship of the fleet placed without overlap
func (g *Generator) Generate() (model.Board, error) {
	for attempt := 0; attempt <= g.cfg.MaxRestarts; attempt++ {
		board, ok := g.tryGenerate()
		if ok {
			return board, nil
		}
		g.logger.Warn("board generation exhausted, restarting",
			slog.Int("attempt", attempt+1),
			slog.Int("max_resamples", g.cfg.MaxResamples),
		)
	}
	return model.Board{}, fmt.Errorf("%w: gave up after %d restarts", model.ErrPlacementExhausted, g.cfg.MaxRestarts)
}

// tryGenerate places the fleet on an empty board, reporting false if any ship
// ran out of start-cell draws
func (g *Generator) tryGenerate() (model.Board, bool) {
	board := model.NewBoard()
	for _, ship := range g.fleet {
		if !g.placeShip(&board, ship) {
			return board, false
		}
	}
	return board, true
}

func (g *Generator) placeShip(board *model.Board, ship model.Ship) bool {
	for range g.cfg.MaxResamples {
		start := model.Coordinate{X: g.random.Intn(model.GridSize), Y: g.random.Intn(model.GridSize)}
		if !board.IsEmpty(start) {
			continue
		}

		directions := model.AllDirections()
		random.Shuffle(g.random, len(directions), func(i, j int) {
			directions[i], directions[j] = directions[j], directions[i]
		})

		for _, dir := range directions {
			if Fits(board, start, dir, ship.Length) {
				stamp(board, start, dir, ship)
				return true
			}
		}
	}
	return false
}

// Fits reports whether a ship of the given length starting at start and
// extending in dir stays in bounds and only covers unoccupied cells
func Fits(board *model.Board, start model.Coordinate, dir model.Direction, length int) bool {
	coord := start
	if !coord.IsValid() || !board.IsEmpty(coord) {
		return false
	}
	for i := 1; i < length; i++ {
		coord = coord.Move(dir)
		if !coord.IsValid() || !board.IsEmpty(coord) {
			return false
		}
	}
	return true
}

func stamp(board *model.Board, start model.Coordinate, dir model.Direction, ship model.Ship) {
	coord := start
	for range ship.Length {
		board.Set(coord, ship.Letter)
		coord = coord.Move(dir)
	}
}
