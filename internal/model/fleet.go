package model

// Ship is one entry of the fleet: the letter stamped on the board and its length
type Ship struct {
	Letter byte
	Length int
}

// FleetCells is the number of cells occupied by the standard fleet
const FleetCells = 5 + 4 + 3 + 3 + 2

// StandardFleet returns the fixed fleet, largest ship first
func StandardFleet() []Ship {
	return []Ship{
		{Letter: 'A', Length: 5},
		{Letter: 'B', Length: 4},
		{Letter: 'C', Length: 3},
		{Letter: 'D', Length: 3},
		{Letter: 'E', Length: 2},
	}
}
