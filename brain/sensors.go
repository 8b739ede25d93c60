package brain

// sensorFuncs is the dispatch table over sensor kinds. The array length is
// tied to the catalog, so adding a kind without a function is a compile
// error.
var sensorFuncs = [numSensors]func(*SenseContext) float64{
	SenseBlockForward:   senseBlockForward,
	SenseBlockLeftRight: senseBlockLeftRight,
	SenseLastMoveX:      func(ctx *SenseContext) float64 { return ctx.LastMove.X },
	SenseLastMoveY:      func(ctx *SenseContext) float64 { return ctx.LastMove.Y },
	SenseBorderDistX:    senseBorderDistX,
	SenseBorderDistY:    senseBorderDistY,
	SenseRandom:         func(ctx *SenseContext) float64 { return ctx.Rng.Float64()*2 - 1 },
}

func senseBlockForward(ctx *SenseContext) float64 {
	ahead, ok := ctx.Pos.MoveDirection(ctx.Facing, 1, ctx.View.Boundary())
	if !ok || ctx.View.Occupied(ahead) {
		return 1
	}
	return 0
}

// senseBlockLeftRight reports lateral occupancy only: a boundary to the
// side does not read as blocked.
func senseBlockLeftRight(ctx *SenseContext) float64 {
	boundary := ctx.View.Boundary()
	if left, ok := ctx.Pos.MoveDirection(ctx.Facing.RotateLeft(), 1, boundary); ok && ctx.View.Occupied(left) {
		return 1
	}
	if right, ok := ctx.Pos.MoveDirection(ctx.Facing.RotateRight(), 1, boundary); ok && ctx.View.Occupied(right) {
		return 1
	}
	return 0
}

func senseBorderDistX(ctx *SenseContext) float64 {
	return borderDistance(ctx.Pos.X, ctx.View.Boundary().Width)
}

func senseBorderDistY(ctx *SenseContext) float64 {
	return borderDistance(ctx.Pos.Y, ctx.View.Boundary().Height)
}

// borderDistance normalizes the distance to the nearest border on one axis
// into [0, 1]: 0 on a border cell, 1 at the axis center.
func borderDistance(coord, extent int) float64 {
	if extent <= 1 {
		return 0
	}
	d := coord
	if opposite := extent - 1 - coord; opposite < d {
		d = opposite
	}
	v := float64(d) / (float64(extent-1) / 2)
	if v > 1 {
		return 1
	}
	return v
}
