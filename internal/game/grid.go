package game

import "math/rand"

// Position is a cell address on the grid.
type Position struct {
	X, Y int
}

// Add returns the cell one step from p in direction d.
func (p Position) Add(d Direction) Position {
	dx, dy := d.Vector()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Manhattan returns |dx| + |dy| between p and q.
func (p Position) Manhattan(q Position) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

// Grid is the fixed square playfield, CellCount cells per side.
type Grid struct {
	CellCount int
}

// InBounds reports whether p lies on the grid.
func (g Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.CellCount && p.Y < g.CellCount
}

// Cells returns the total number of cells.
func (g Grid) Cells() int {
	return g.CellCount * g.CellCount
}

// index maps an in-bounds position to a flat slice index.
func (g Grid) index(p Position) int {
	return p.Y*g.CellCount + p.X
}

// RandomCell returns a uniformly random in-bounds cell.
func (g Grid) RandomCell(rng *rand.Rand) Position {
	return Position{X: rng.Intn(g.CellCount), Y: rng.Intn(g.CellCount)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
