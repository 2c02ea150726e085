package game

// Occupancy is a dense blocked-cell grid where true = a snake is there.
// It is the obstacle set shared by the pathfinder, the greedy scorer and
// food placement.
type Occupancy struct {
	grid    Grid
	blocked []bool
}

// NewOccupancy builds the obstacle set from every cell of every given snake.
// Cells outside the grid are ignored.
func NewOccupancy(grid Grid, snakes ...*Snake) *Occupancy {
	occ := &Occupancy{
		grid:    grid,
		blocked: make([]bool, grid.Cells()),
	}
	for _, s := range snakes {
		if s == nil || !s.Alive {
			continue
		}
		for _, p := range s.Body {
			occ.Mark(p)
		}
	}
	return occ
}

// Mark blocks p. Out-of-bounds cells are ignored.
func (o *Occupancy) Mark(p Position) {
	if o.grid.InBounds(p) {
		o.blocked[o.grid.index(p)] = true
	}
}

// Unmark frees p.
func (o *Occupancy) Unmark(p Position) {
	if o.grid.InBounds(p) {
		o.blocked[o.grid.index(p)] = false
	}
}

// IsBlocked returns true if p is occupied or off the grid.
func (o *Occupancy) IsBlocked(p Position) bool {
	if !o.grid.InBounds(p) {
		return true
	}
	return o.blocked[o.grid.index(p)]
}

// FreeNeighbours counts the in-bounds, unoccupied cells around p.
func (o *Occupancy) FreeNeighbours(p Position) int {
	n := 0
	for _, d := range searchOrder {
		if !o.IsBlocked(p.Add(d)) {
			n++
		}
	}
	return n
}

// --- BFS pathfinding ---

// noParent marks a cell that has not been reached yet.
const noParent = -1

// FindPath returns the moves of a shortest route from start to goal that
// avoids every blocked cell. The start cell is never treated as blocked.
// Neighbours are expanded in search order from a FIFO frontier, so among
// equally short routes the one discovered first wins.
// Returns nil, false if no route exists.
func FindPath(grid Grid, start, goal Position, occ *Occupancy) ([]Direction, bool) {
	if !grid.InBounds(start) || !grid.InBounds(goal) {
		return nil, false
	}
	if start == goal {
		return []Direction{}, true
	}

	// parent[i] holds the direction taken to enter cell i.
	parent := make([]int8, grid.Cells())
	for i := range parent {
		parent[i] = noParent
	}
	visited := make([]bool, grid.Cells())
	visited[grid.index(start)] = true

	queue := make([]Position, 0, grid.Cells())
	queue = append(queue, start)

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		if cur == goal {
			return buildPath(grid, start, goal, parent), true
		}
		for _, d := range searchOrder {
			next := cur.Add(d)
			if occ.IsBlocked(next) {
				continue
			}
			k := grid.index(next)
			if visited[k] {
				continue
			}
			visited[k] = true
			parent[k] = int8(d)
			queue = append(queue, next)
		}
	}
	return nil, false
}

func buildPath(grid Grid, start, goal Position, parent []int8) []Direction {
	var steps []Direction
	for p := goal; p != start; {
		d := Direction(parent[grid.index(p)])
		steps = append(steps, d)
		p = p.Add(d.Opposite())
	}
	// Reverse
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}
	return steps
}

// PathCells expands a move list into the cells it visits, excluding start.
func PathCells(start Position, steps []Direction) []Position {
	cells := make([]Position, len(steps))
	p := start
	for i, d := range steps {
		p = p.Add(d)
		cells[i] = p
	}
	return cells
}
