package game

// Direction is one of the four cardinal moves.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirDown
	DirUp
)

// searchOrder is the neighbour enumeration used by the pathfinder and the
// greedy scorer. It decides tie-breaks, so it must not change.
var searchOrder = [4]Direction{DirRight, DirLeft, DirDown, DirUp}

// Directions returns the four directions in search order.
func Directions() [4]Direction {
	return searchOrder
}

// Vector returns the unit step for d. Y grows downwards.
func (d Direction) Vector() (int, int) {
	switch d {
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	case DirDown:
		return 0, 1
	case DirUp:
		return 0, -1
	default:
		return 0, 0
	}
}

// Opposite returns the 180° reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case DirRight:
		return DirLeft
	case DirLeft:
		return DirRight
	case DirDown:
		return DirUp
	default:
		return DirDown
	}
}

// IsReverseOf reports whether d points exactly against o.
func (d Direction) IsReverseOf(o Direction) bool {
	return d == o.Opposite()
}

// Horizontal reports whether d moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirRight || d == DirLeft
}

// Perpendicular reports whether d and o lie on different axes.
func (d Direction) Perpendicular(o Direction) bool {
	return d.Horizontal() != o.Horizontal()
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	case DirUp:
		return "up"
	default:
		return "unknown"
	}
}
