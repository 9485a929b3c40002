package model

import (
	"fmt"
	"strings"
)

// BoardCells is the number of cells on a board
const BoardCells = GridSize * GridSize

// Unoccupied is the symbol for an empty or unknown cell
const Unoccupied byte = '.'

// Board is a row-major grid of cell symbols: index = y*10 + x
type Board [BoardCells]byte

// NewBoard creates a board with every cell unoccupied
func NewBoard() Board {
	var b Board
	for i := range b {
		b[i] = Unoccupied
	}
	return b
}

// ParseBoard reads a 100-character board descriptor
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != BoardCells {
		return b, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, BoardCells, len(s))
	}
	copy(b[:], s)
	return b, nil
}

// At returns the symbol at the given coordinate, or Unoccupied if out of bounds
func (b *Board) At(c Coordinate) byte {
	if !c.IsValid() {
		return Unoccupied
	}
	return b[c.Index()]
}

// Set writes a symbol at the given coordinate
func (b *Board) Set(c Coordinate, symbol byte) {
	if c.IsValid() {
		b[c.Index()] = symbol
	}
}

// IsEmpty returns true if the cell at the given coordinate is unoccupied
func (b *Board) IsEmpty(c Coordinate) bool {
	return b.At(c) == Unoccupied
}

// OccupiedCount returns the number of cells holding a ship
func (b *Board) OccupiedCount() int {
	count := 0
	for _, sym := range b {
		if sym != Unoccupied {
			count++
		}
	}
	return count
}

// Rows returns the board split into one string per row, top to bottom
func (b *Board) Rows() []string {
	rows := make([]string, GridSize)
	for y := range GridSize {
		rows[y] = string(b[y*GridSize : (y+1)*GridSize])
	}
	return rows
}

// String returns the 100-character wire descriptor
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardCells)
	sb.Write(b[:])
	return sb.String()
}
