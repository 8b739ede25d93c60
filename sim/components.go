// Package sim drives the tick loop over a population of creatures: sensing
// and brain computation run over a frozen world snapshot, moves commit
// sequentially, and generations end with survival selection and
// reproduction.
package sim

import (
	"github.com/gianluca-venturini/vita/genome"
	"github.com/gianluca-venturini/vita/world"
)

// Pose holds a creature's heading and the move committed on the previous
// tick. The heading is fixed at spawn; facing-relative sensors and
// actuators rotate around it.
type Pose struct {
	Facing   world.Direction
	LastMove world.DeltaPosition
}

// Creature is the roster component: a stable ID for brain lookup, the
// genome driving the brain, and liveness.
type Creature struct {
	ID     uint32
	Alive  bool
	Genome genome.Genome
}
