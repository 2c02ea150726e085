package game

import "image/color"

// initialLength is the body length of every snake at spawn.
const initialLength = 3

// Kind distinguishes the player snake from computer-driven ones.
type Kind int

const (
	KindPlayer Kind = iota
	KindAI
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindAI:
		return "ai"
	default:
		return "unknown"
	}
}

// SnakeStats are running counters kept per snake.
type SnakeStats struct {
	FoodEaten   int
	MaxLength   int
	PathMoves   int // decisions taken from a BFS route
	GreedyMoves int // decisions taken from the fallback scorer
	HoldMoves   int // decisions that kept the current direction
	Crashes     int
}

// Snake is a body of grid cells, head first.
type Snake struct {
	ID    int
	Label string
	Kind  Kind
	Color color.RGBA

	Body    []Position
	Dir     Direction // active direction, used for the last move
	Pending Direction // committed into Dir before the next move
	Alive   bool

	// Target is the food cell the brain aimed at on its last decision.
	// It is a position, not a reference: the food may be gone by now.
	Target    Position
	HasTarget bool

	// Spawn layout, used by Reset and AI respawn.
	spawnHead Position
	spawnDir  Direction
	respawnIn int

	Stats SnakeStats
}

// NewSnake creates a snake of initialLength cells with its head at head,
// body trailing away from dir.
func NewSnake(id int, label string, kind Kind, head Position, dir Direction, c color.RGBA) *Snake {
	s := &Snake{
		ID:        id,
		Label:     label,
		Kind:      kind,
		Color:     c,
		spawnHead: head,
		spawnDir:  dir,
	}
	s.respawn()
	return s
}

// spawnBody returns the cells a fresh snake occupies.
func spawnBody(head Position, dir Direction) []Position {
	body := make([]Position, initialLength)
	back := dir.Opposite()
	p := head
	for i := range body {
		body[i] = p
		p = p.Add(back)
	}
	return body
}

func (s *Snake) respawn() {
	s.Body = spawnBody(s.spawnHead, s.spawnDir)
	s.Dir = s.spawnDir
	s.Pending = s.spawnDir
	s.Alive = true
	s.HasTarget = false
	s.respawnIn = 0
	if len(s.Body) > s.Stats.MaxLength {
		s.Stats.MaxLength = len(s.Body)
	}
}

// Head returns the first body cell.
func (s *Snake) Head() Position {
	return s.Body[0]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any body cell equals p.
func (s *Snake) Occupies(p Position) bool {
	for _, c := range s.Body {
		if c == p {
			return true
		}
	}
	return false
}

// HitsSelf reports whether the head overlaps another body cell.
func (s *Snake) HitsSelf() bool {
	if len(s.Body) == 0 {
		return false
	}
	head := s.Body[0]
	for _, c := range s.Body[1:] {
		if c == head {
			return true
		}
	}
	return false
}

// commit moves the pending direction into the active one.
func (s *Snake) commit() {
	s.Dir = s.Pending
}

// advance prepends the next head cell in the active direction and returns it.
// The tail is left in place; call dropTail when nothing was eaten.
func (s *Snake) advance() Position {
	head := s.Head().Add(s.Dir)
	s.Body = append(s.Body, Position{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = head
	if len(s.Body) > s.Stats.MaxLength {
		s.Stats.MaxLength = len(s.Body)
	}
	return head
}

func (s *Snake) dropTail() {
	s.Body = s.Body[:len(s.Body)-1]
}

// crash clears an AI snake off the board.
func (s *Snake) crash(respawnTicks int) {
	s.Alive = false
	s.Body = nil
	s.HasTarget = false
	s.Stats.Crashes++
	s.respawnIn = respawnTicks
}

// Clone returns a deep copy safe to hand to readers.
func (s *Snake) Clone() *Snake {
	c := *s
	c.Body = append([]Position(nil), s.Body...)
	return &c
}
