package brain

import (
	"math/rand"
	"testing"

	"github.com/gianluca-venturini/vita/world"
)

// stubView is a minimal View fixture.
type stubView struct {
	size     world.Size
	occupied map[world.Position]bool
}

func (v *stubView) Occupied(p world.Position) bool { return v.occupied[p] }
func (v *stubView) Boundary() world.Size           { return v.size }

func newStubView(w, h int, occupied ...world.Position) *stubView {
	v := &stubView{
		size:     world.Size{Width: w, Height: h},
		occupied: make(map[world.Position]bool),
	}
	for _, p := range occupied {
		v.occupied[p] = true
	}
	return v
}

func senseCtx(v *stubView, pos world.Position, facing world.Direction) *SenseContext {
	return &SenseContext{
		View:   v,
		Pos:    pos,
		Facing: facing,
		Rng:    rand.New(rand.NewSource(5)),
	}
}

func TestSenseBlockForward(t *testing.T) {
	tests := []struct {
		name   string
		view   *stubView
		pos    world.Position
		facing world.Direction
		want   float64
	}{
		{"clear ahead", newStubView(8, 8), world.Position{X: 4, Y: 4}, world.North, 0},
		{"occupied ahead", newStubView(8, 8, world.Position{X: 4, Y: 5}), world.Position{X: 4, Y: 4}, world.North, 1},
		{"boundary ahead", newStubView(8, 8), world.Position{X: 4, Y: 7}, world.North, 1},
		{"occupied east", newStubView(8, 8, world.Position{X: 5, Y: 4}), world.Position{X: 4, Y: 4}, world.East, 1},
		{"occupied behind is ignored", newStubView(8, 8, world.Position{X: 4, Y: 3}), world.Position{X: 4, Y: 4}, world.North, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := senseBlockForward(senseCtx(tt.view, tt.pos, tt.facing)); got != tt.want {
				t.Errorf("senseBlockForward = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSenseBlockLeftRight(t *testing.T) {
	tests := []struct {
		name   string
		view   *stubView
		pos    world.Position
		facing world.Direction
		want   float64
	}{
		{"clear sides", newStubView(8, 8), world.Position{X: 4, Y: 4}, world.North, 0},
		{"occupied left", newStubView(8, 8, world.Position{X: 3, Y: 4}), world.Position{X: 4, Y: 4}, world.North, 1},
		{"occupied right", newStubView(8, 8, world.Position{X: 5, Y: 4}), world.Position{X: 4, Y: 4}, world.North, 1},
		{"occupied ahead is ignored", newStubView(8, 8, world.Position{X: 4, Y: 5}), world.Position{X: 4, Y: 4}, world.North, 0},
		// A lateral boundary does not read as blocked, unlike forward.
		{"boundary beside", newStubView(8, 8), world.Position{X: 0, Y: 4}, world.North, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := senseBlockLeftRight(senseCtx(tt.view, tt.pos, tt.facing)); got != tt.want {
				t.Errorf("senseBlockLeftRight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBorderDistance(t *testing.T) {
	tests := []struct {
		coord, extent int
		want          float64
	}{
		{0, 129, 0},     // on the border
		{128, 129, 0},   // on the far border
		{64, 129, 1},    // center
		{32, 129, 0.5},  // halfway
		{0, 1, 0},       // degenerate axis
	}
	for _, tt := range tests {
		if got := borderDistance(tt.coord, tt.extent); got != tt.want {
			t.Errorf("borderDistance(%d, %d) = %v, want %v", tt.coord, tt.extent, got, tt.want)
		}
	}
}

func TestSenseInputsFillsEverySlot(t *testing.T) {
	b := New(2)
	view := newStubView(8, 8, world.Position{X: 4, Y: 5})
	ctx := senseCtx(view, world.Position{X: 4, Y: 4}, world.North)
	ctx.LastMove = world.DeltaPosition{X: -1, Y: 1}

	b.SenseInputs(ctx)

	if got := b.input[SenseBlockForward]; got != 1 {
		t.Errorf("BlockForward = %v, want 1", got)
	}
	if got := b.input[SenseLastMoveX]; got != -1 {
		t.Errorf("LastMoveX = %v, want -1", got)
	}
	if got := b.input[SenseLastMoveY]; got != 1 {
		t.Errorf("LastMoveY = %v, want 1", got)
	}
	if got := b.input[SenseRandom]; got < -1 || got > 1 {
		t.Errorf("Random = %v, outside [-1, 1]", got)
	}
	for i, v := range b.input {
		if v < -1 || v > 1 {
			t.Errorf("input %d = %v, outside the sensor convention range", i, v)
		}
	}
}
