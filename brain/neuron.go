// Package brain implements the layered, staged neural-activation engine
// that turns a genome and sensor readings into actuator values.
package brain

import (
	"math/rand"

	"github.com/gianluca-venturini/vita/world"
)

// SensorKind enumerates the closed set of input neuron slots. Each kind has
// exactly one entry in sensorFuncs; the catalog order fixes the input slot
// layout, and NumInputs is a constant of this set.
type SensorKind uint8

const (
	// SenseBlockForward reads 1 if the cell directly ahead is occupied or
	// outside the boundary.
	SenseBlockForward SensorKind = iota
	// SenseBlockLeftRight reads 1 if either lateral neighbor cell is
	// occupied.
	SenseBlockLeftRight
	// SenseLastMoveX and SenseLastMoveY read the previous tick's committed
	// move delta, already in [-1, 1].
	SenseLastMoveX
	SenseLastMoveY
	// SenseBorderDistX and SenseBorderDistY read the normalized distance to
	// the nearest border on that axis: 0 at a border, 1 at the center.
	SenseBorderDistX
	SenseBorderDistY
	// SenseRandom reads a fresh uniform value in [-1, 1] each tick.
	SenseRandom

	numSensors
)

// ActuatorKind enumerates the closed set of output neuron slots, one
// movement contribution per kind.
type ActuatorKind uint8

const (
	// ActMoveForward contributes value cells along the facing, only for
	// positive values; it never reverses.
	ActMoveForward ActuatorKind = iota
	// ActMoveReverse mirrors ActMoveForward: positive values contribute
	// cells against the facing.
	ActMoveReverse
	// ActMoveLeftRight contributes value cells to the creature's right;
	// negative values go left.
	ActMoveLeftRight
	// ActMoveEastWest and ActMoveNorthSouth contribute value directly along
	// the world axes, independent of facing.
	ActMoveEastWest
	ActMoveNorthSouth
	// ActMoveRandom contributes a uniform random vector in [-1, 1]^2 scaled
	// by the value's magnitude.
	ActMoveRandom

	numActuators
)

// Network dimensions fixed by the sensor and actuator catalogs. The
// internal neuron count is per-creature (see New).
const (
	NumInputs  = int(numSensors)
	NumOutputs = int(numActuators)
)

// View is the read-only world surface sensors observe. world.Grid
// implements it; tests can substitute a fixture.
type View interface {
	Occupied(world.Position) bool
	Boundary() world.Size
}

// SenseContext carries one creature's frozen observation state for a tick.
// The rng must be private to the creature so sensing stays deterministic
// under parallel computation.
type SenseContext struct {
	View     View
	Pos      world.Position
	Facing   world.Direction
	LastMove world.DeltaPosition
	Rng      *rand.Rand
}
