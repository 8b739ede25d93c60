// Package world implements the shared 2-D grid: integer positions inside an
// axis-aligned boundary, compass directions, continuous movement deltas, and
// the exclusive-occupancy grid that resolves creature moves.
//
// The coordinate system has (0, 0) at the bottom left: X grows east, Y grows
// north.
package world

import (
	"math"
	"math/rand"
)

// Position is an integer cell coordinate inside the world boundary.
type Position struct {
	X, Y int
}

// Size is the world boundary: the half-open rectangle [0, Width) x [0, Height).
type Size struct {
	Width, Height int
}

// Inside reports whether p lies within the boundary.
func (s Size) Inside(p Position) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Direction is one of the four compass headings.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// String returns the heading name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	}
	return "West"
}

// RandomDirection picks a uniformly random heading.
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.Intn(4))
}

// RotateLeft returns the heading 90 degrees counterclockwise.
func (d Direction) RotateLeft() Direction {
	return (d + 3) % 4
}

// RotateRight returns the heading 90 degrees clockwise.
func (d Direction) RotateRight() Direction {
	return (d + 1) % 4
}

// Unit returns the axis step for one cell along the heading.
func (d Direction) Unit() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	}
	return -1, 0
}

// MoveDirection steps the position along a heading. It refuses to step
// outside the boundary, reporting ok=false instead of wrapping.
func (p Position) MoveDirection(d Direction, step int, boundary Size) (Position, bool) {
	dx, dy := d.Unit()
	next := Position{X: p.X + dx*step, Y: p.Y + dy*step}
	if !boundary.Inside(next) {
		return Position{}, false
	}
	return next, true
}

// DeltaPosition is a continuous movement accumulator. Output neurons sum
// their contributions into one delta before the grid quantizes it.
type DeltaPosition struct {
	X, Y float64
}

// Add returns the component-wise sum of the two deltas.
func (d DeltaPosition) Add(o DeltaPosition) DeltaPosition {
	return DeltaPosition{X: d.X + o.X, Y: d.Y + o.Y}
}

// MoveDirection accumulates a step along a heading. A negative step moves
// against the heading.
func (d DeltaPosition) MoveDirection(dir Direction, step float64) DeltaPosition {
	dx, dy := dir.Unit()
	return DeltaPosition{X: d.X + float64(dx)*step, Y: d.Y + float64(dy)*step}
}

// MoveDelta resolves a continuous delta into a candidate cell: each axis is
// clamped to the per-tick movement budget, added to the position, and
// floored. The result may lie outside the boundary; the grid rejects it.
func (p Position) MoveDelta(delta DeltaPosition, maxStep float64) Position {
	x := math.Floor(float64(p.X) + clamp(delta.X, -maxStep, maxStep))
	y := math.Floor(float64(p.Y) + clamp(delta.Y, -maxStep, maxStep))
	return Position{X: int(x), Y: int(y)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
