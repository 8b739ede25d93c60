package brain

import (
	"math/rand"

	"github.com/gianluca-venturini/vita/world"
)

// actuatorFuncs is the dispatch table over actuator kinds: each maps an
// output neuron's value and the creature's facing to a movement
// contribution. Like sensorFuncs, the array length keeps the catalog
// exhaustive.
var actuatorFuncs = [numActuators]func(value float64, facing world.Direction, rng *rand.Rand) world.DeltaPosition{
	ActMoveForward:    actMoveForward,
	ActMoveReverse:    actMoveReverse,
	ActMoveLeftRight:  actMoveLeftRight,
	ActMoveEastWest:   actMoveEastWest,
	ActMoveNorthSouth: actMoveNorthSouth,
	ActMoveRandom:     actMoveRandom,
}

func actMoveForward(value float64, facing world.Direction, _ *rand.Rand) world.DeltaPosition {
	if value <= 0 {
		return world.DeltaPosition{}
	}
	return world.DeltaPosition{}.MoveDirection(facing, value)
}

func actMoveReverse(value float64, facing world.Direction, _ *rand.Rand) world.DeltaPosition {
	if value <= 0 {
		return world.DeltaPosition{}
	}
	return world.DeltaPosition{}.MoveDirection(facing, -value)
}

func actMoveLeftRight(value float64, facing world.Direction, _ *rand.Rand) world.DeltaPosition {
	return world.DeltaPosition{}.MoveDirection(facing.RotateRight(), value)
}

func actMoveEastWest(value float64, _ world.Direction, _ *rand.Rand) world.DeltaPosition {
	return world.DeltaPosition{X: value}
}

func actMoveNorthSouth(value float64, _ world.Direction, _ *rand.Rand) world.DeltaPosition {
	return world.DeltaPosition{Y: value}
}

// actMoveRandom scales a uniform random vector by the value's magnitude, so
// a silent neuron contributes nothing and a saturated one a full random
// step. The sign of the value carries no meaning here.
func actMoveRandom(value float64, _ world.Direction, rng *rand.Rand) world.DeltaPosition {
	mag := value
	if mag < 0 {
		mag = -mag
	}
	return world.DeltaPosition{
		X: (rng.Float64()*2 - 1) * mag,
		Y: (rng.Float64()*2 - 1) * mag,
	}
}
