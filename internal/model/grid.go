package model

// GridSize is the width and height of every board
const GridSize = 10

// Coordinate identifies a cell on the grid, zero-based
type Coordinate struct {
	X int // column, 0-indexed from left
	Y int // row, 0-indexed from top
}

// IsValid returns true if the coordinate is within the grid
func (c Coordinate) IsValid() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

// Move returns the coordinate one step away in the given direction
func (c Coordinate) Move(d Direction) Coordinate {
	switch d {
	case North:
		c.Y--
	case East:
		c.X++
	case South:
		c.Y++
	case West:
		c.X--
	}
	return c
}

// Index returns the row-major cell index of the coordinate
func (c Coordinate) Index() int {
	return c.Y*GridSize + c.X
}

// CoordinateFromIndex converts a row-major cell index back into a coordinate
func CoordinateFromIndex(i int) Coordinate {
	return Coordinate{X: i % GridSize, Y: i / GridSize}
}

// Direction is a unit step on the grid
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns the four directions in declaration order
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}
