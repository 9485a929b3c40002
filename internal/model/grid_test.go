package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/turkeybot/internal/model"
)

func TestCoordinateIndexRoundTrip(t *testing.T) {
	for i := range model.BoardCells {
		c := model.CoordinateFromIndex(i)
		require.True(t, c.IsValid(), "index %d", i)
		assert.Equal(t, i, c.Index())
		assert.Equal(t, c.Y*10+c.X, i)
	}
}

func TestCoordinateIsValid(t *testing.T) {
	tests := []struct {
		name  string
		coord model.Coordinate
		valid bool
	}{
		{"origin", model.Coordinate{X: 0, Y: 0}, true},
		{"far corner", model.Coordinate{X: 9, Y: 9}, true},
		{"negative x", model.Coordinate{X: -1, Y: 3}, false},
		{"negative y", model.Coordinate{X: 3, Y: -1}, false},
		{"x too large", model.Coordinate{X: 10, Y: 0}, false},
		{"y too large", model.Coordinate{X: 0, Y: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.coord.IsValid())
		})
	}
}

func TestCoordinateMove(t *testing.T) {
	start := model.Coordinate{X: 4, Y: 4}

	assert.Equal(t, model.Coordinate{X: 4, Y: 3}, start.Move(model.North))
	assert.Equal(t, model.Coordinate{X: 5, Y: 4}, start.Move(model.East))
	assert.Equal(t, model.Coordinate{X: 4, Y: 5}, start.Move(model.South))
	assert.Equal(t, model.Coordinate{X: 3, Y: 4}, start.Move(model.West))
	// Move returns a copy
	assert.Equal(t, model.Coordinate{X: 4, Y: 4}, start)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "North", model.North.String())
	assert.Equal(t, "West", model.West.String())
	assert.Equal(t, "Unknown", model.Direction(9).String())
}
