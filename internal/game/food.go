package game

import "math/rand"

// Default retry budgets for food placement.
const (
	defaultFoodAttemptsPerItem  = 100
	defaultFoodAttemptsPerBatch = 1000
)

// FoodField owns the food pool: placement, replenishment and the periodic
// one-cell drift. Positions are kept in a slice; its order is the order the
// brain scans when breaking nearest-food ties.
type FoodField struct {
	grid     Grid
	target   int
	perItem  int
	perBatch int
	rng      *rand.Rand
	items    []Position
}

// NewFoodField creates an empty pool that aims to hold target items.
func NewFoodField(grid Grid, target, perItem, perBatch int, rng *rand.Rand) *FoodField {
	if perItem <= 0 {
		perItem = defaultFoodAttemptsPerItem
	}
	if perBatch <= 0 {
		perBatch = defaultFoodAttemptsPerBatch
	}
	return &FoodField{
		grid:     grid,
		target:   target,
		perItem:  perItem,
		perBatch: perBatch,
		rng:      rng,
		items:    make([]Position, 0, target),
	}
}

// Target returns the configured pool size.
func (f *FoodField) Target() int {
	return f.target
}

// Len returns how many food items are on the board.
func (f *FoodField) Len() int {
	return len(f.items)
}

// Positions returns a copy of the food cells.
func (f *FoodField) Positions() []Position {
	return append([]Position(nil), f.items...)
}

// IndexAt returns the slice index of the food at p, or -1.
func (f *FoodField) IndexAt(p Position) int {
	for i, it := range f.items {
		if it == p {
			return i
		}
	}
	return -1
}

// Remove deletes the food at p and reports whether there was one.
func (f *FoodField) Remove(p Position) bool {
	i := f.IndexAt(p)
	if i < 0 {
		return false
	}
	f.items = append(f.items[:i], f.items[i+1:]...)
	return true
}

// Set replaces the pool contents. Used by the test harness and scenarios.
func (f *FoodField) Set(ps []Position) {
	f.items = append(f.items[:0], ps...)
}

// PlaceInitial discards the pool and fills it from scratch.
// Returns the number of slots that could not be filled.
func (f *FoodField) PlaceInitial(occ *Occupancy) int {
	f.items = f.items[:0]
	return f.Replenish(occ)
}

// Replenish tops the pool back up to its target size. Each item gets
// perItem sampling attempts; the whole call stops after perBatch items
// have been tried. Returns the remaining shortfall, which is retried on
// the next call.
func (f *FoodField) Replenish(occ *Occupancy) int {
	for attempts := 0; len(f.items) < f.target && attempts < f.perBatch; attempts++ {
		if p, ok := f.sample(occ); ok {
			f.items = append(f.items, p)
		}
	}
	return f.target - len(f.items)
}

// sample draws random cells until one is free of snakes and food.
func (f *FoodField) sample(occ *Occupancy) (Position, bool) {
	for i := 0; i < f.perItem; i++ {
		p := f.grid.RandomCell(f.rng)
		if occ.IsBlocked(p) || f.IndexAt(p) >= 0 {
			continue
		}
		return p, true
	}
	return Position{}, false
}

// Relocate nudges every food item one cell in a random direction. A move
// that would leave the grid, land on a snake or on another food is
// skipped for this pass. Returns how many items moved.
func (f *FoodField) Relocate(occ *Occupancy) int {
	moved := 0
	for i := range f.items {
		d := searchOrder[f.rng.Intn(len(searchOrder))]
		dst := f.items[i].Add(d)
		if occ.IsBlocked(dst) {
			continue
		}
		if j := f.IndexAt(dst); j >= 0 && j != i {
			continue
		}
		f.items[i] = dst
		moved++
	}
	return moved
}
