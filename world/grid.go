package world

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
)

// maxStepPerTick is the per-axis movement budget: one cell per tick.
const maxStepPerTick = 1.0

// Grid owns the exclusive occupancy mapping from cell to creature. At most
// one creature occupies a cell, and a creature's stored position component
// must always equal the key of the entry holding it; a mismatch means the
// caller's bookkeeping diverged from world state and is unrecoverable.
type Grid struct {
	boundary Size
	cells    map[Position]ecs.Entity
}

// NewGrid creates an empty occupancy grid with the given boundary.
func NewGrid(boundary Size) *Grid {
	return &Grid{
		boundary: boundary,
		cells:    make(map[Position]ecs.Entity),
	}
}

// Boundary returns the world boundary.
func (g *Grid) Boundary() Size {
	return g.boundary
}

// Occupied reports whether a creature occupies the cell. Positions outside
// the boundary are never occupied.
func (g *Grid) Occupied(p Position) bool {
	_, ok := g.cells[p]
	return ok
}

// At returns the entity occupying the cell, if any.
func (g *Grid) At(p Position) (ecs.Entity, bool) {
	e, ok := g.cells[p]
	return e, ok
}

// Len returns the number of occupied cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Spawn places a creature on an unoccupied cell inside the boundary.
// Reports false if the cell is occupied or outside.
func (g *Grid) Spawn(e ecs.Entity, p Position) bool {
	if !g.boundary.Inside(p) || g.Occupied(p) {
		return false
	}
	g.cells[p] = e
	return true
}

// Remove deletes the creature's occupancy entry (creature death).
// Panics on desync, like MoveCreature.
func (g *Grid) Remove(e ecs.Entity, p Position) {
	g.mustOccupy(e, p)
	delete(g.cells, p)
}

// MoveCreature resolves a desired continuous move for the creature whose
// position component pos points at. The delta is clamped to one cell per
// axis and floored; a candidate cell that is occupied or outside the
// boundary rejects the move silently. A committed move updates the
// occupancy entry and *pos together. Reports whether the creature moved.
//
// Panics if the creature is not where its position component claims: the
// occupancy map and the creature roster have diverged and no further
// simulation step can be trusted.
func (g *Grid) MoveCreature(e ecs.Entity, pos *Position, desired DeltaPosition) bool {
	g.mustOccupy(e, *pos)

	next := pos.MoveDelta(desired, maxStepPerTick)
	if next == *pos {
		return false
	}
	if g.Occupied(next) {
		// The creature can't move onto an already occupied cell.
		return false
	}
	if !g.boundary.Inside(next) {
		// The move has to stay inside the boundary.
		return false
	}

	// The move is legal: the occupancy entry and the creature's stored
	// position change together.
	delete(g.cells, *pos)
	*pos = next
	g.cells[next] = e

	return true
}

// mustOccupy panics unless e occupies exactly the cell p.
func (g *Grid) mustOccupy(e ecs.Entity, p Position) {
	occupant, ok := g.cells[p]
	if !ok {
		panic(fmt.Sprintf("world: position desync: no creature at %+v; how did world state get out of sync with the roster?", p))
	}
	if occupant != e {
		panic(fmt.Sprintf("world: position desync: cell %+v is held by another creature", p))
	}
}
