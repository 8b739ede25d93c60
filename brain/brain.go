package brain

import (
	"math"
	"math/rand"

	"github.com/gianluca-venturini/vita/genome"
	"github.com/gianluca-venturini/vita/world"
)

// activationLimit keeps neuron values strictly inside the open interval
// (-1, 1). The saturating update recovers the pre-activation level with
// atanh, which is undefined at exactly +/-1, so values are clamped to the
// limit both before the inverse and after the update.
const activationLimit = 1 - 1e-12

// connection is a gene decoded against the brain's own topology. Derived
// per compute cycle, never stored.
type connection struct {
	src    genome.NeuronRef
	dst    genome.NeuronRef
	weight float64
}

// Brain owns the three neuron value arrays and the staged propagation
// algorithm. It is created once per creature with a fixed internal neuron
// count; the value arrays are mutated every tick, never resized.
type Brain struct {
	top genome.Topology

	input    []float64
	internal []float64
	output   []float64

	// Scratch buffers reused across compute cycles so steady-state ticks
	// do not allocate.
	conns       []connection
	accInternal []float64
	accOutput   []float64
	hitInternal []bool
	hitOutput   []bool
}

// New creates a brain with the catalog-fixed input/output slots and the
// given internal neuron count.
func New(numInternal int) *Brain {
	return &Brain{
		top: genome.Topology{
			NumInput:    NumInputs,
			NumInternal: numInternal,
			NumOutput:   NumOutputs,
		},
		input:       make([]float64, NumInputs),
		internal:    make([]float64, numInternal),
		output:      make([]float64, NumOutputs),
		accInternal: make([]float64, numInternal),
		accOutput:   make([]float64, NumOutputs),
		hitInternal: make([]bool, numInternal),
		hitOutput:   make([]bool, NumOutputs),
	}
}

// Topology returns the neuron counts genes are decoded against.
func (b *Brain) Topology() genome.Topology {
	return b.top
}

// SetInput sets one input neuron value directly. Input values are raw
// sensor readings and may lie outside (-1, 1).
func (b *Brain) SetInput(i int, v float64) {
	b.input[i] = v
}

// Internal returns an internal neuron's value.
func (b *Brain) Internal(i int) float64 {
	return b.internal[i]
}

// Output returns an output neuron's value.
func (b *Brain) Output(i int) float64 {
	return b.output[i]
}

// SenseInputs fills every input slot from its sensor function against the
// frozen world view in ctx.
func (b *Brain) SenseInputs(ctx *SenseContext) {
	for i, sense := range sensorFuncs {
		b.input[i] = sense(ctx)
	}
}

// Compute runs one propagation cycle: internal and output values are
// zeroed (inputs are left as sensed), every gene is decoded against the
// brain's own topology, and four source-layer/destination-layer stages run
// in a fixed order:
//
//	Input -> Internal, Input -> Output, Internal -> Internal, Internal -> Output
//
// Within a stage, all contributions are summed into a scratch accumulator
// before any destination is updated, so connection order never matters and
// a neuron's own update cannot feed back into the same stage.
func (b *Brain) Compute(g genome.Genome) {
	for i := range b.internal {
		b.internal[i] = 0
	}
	for i := range b.output {
		b.output[i] = 0
	}

	b.conns = b.conns[:0]
	for _, gene := range g {
		b.conns = append(b.conns, connection{
			src:    gene.SourceNeuron(b.top),
			dst:    gene.DestinationNeuron(b.top),
			weight: gene.ScaledWeight(),
		})
	}

	b.runStage(genome.LayerInput, genome.LayerInternal)
	b.runStage(genome.LayerInput, genome.LayerOutput)
	b.runStage(genome.LayerInternal, genome.LayerInternal)
	b.runStage(genome.LayerInternal, genome.LayerOutput)
}

// runStage accumulates sourceValue * weight per destination index for all
// connections on the src->dst layer pair, then commits each touched
// destination with the saturating update. Source values are read as they
// stood before the stage: the Internal -> Internal stage sums entirely from
// pre-stage values because commits happen after the accumulation loop.
func (b *Brain) runStage(src, dst genome.Layer) {
	acc, hit := b.accOutput, b.hitOutput
	if dst == genome.LayerInternal {
		acc, hit = b.accInternal, b.hitInternal
	}
	for i := range acc {
		acc[i] = 0
		hit[i] = false
	}

	srcValues := b.layerValues(src)
	for _, c := range b.conns {
		if c.src.Layer != src || c.dst.Layer != dst {
			continue
		}
		acc[c.dst.Index] += srcValues[c.src.Index] * c.weight
		hit[c.dst.Index] = true
	}

	dstValues := b.layerValues(dst)
	for i, touched := range hit {
		if touched {
			dstValues[i] = saturate(dstValues[i], acc[i])
		}
	}
}

func (b *Brain) layerValues(l genome.Layer) []float64 {
	switch l {
	case genome.LayerInput:
		return b.input
	case genome.LayerInternal:
		return b.internal
	}
	return b.output
}

// saturate treats the current value as a saturation level, recovers the
// pre-activation quantity with atanh, adds the stage's linear contribution,
// and re-saturates. The result stays strictly inside (-1, 1).
func saturate(v, delta float64) float64 {
	v = clampActivation(v)
	return clampActivation(math.Tanh(math.Atanh(v) + delta))
}

func clampActivation(v float64) float64 {
	if v > activationLimit {
		return activationLimit
	}
	if v < -activationLimit {
		return -activationLimit
	}
	return v
}

// DesiredMove sums every output neuron's movement contribution into one
// continuous delta. The grid later clamps and quantizes it.
func (b *Brain) DesiredMove(facing world.Direction, rng *rand.Rand) world.DeltaPosition {
	var delta world.DeltaPosition
	for i, act := range actuatorFuncs {
		delta = delta.Add(act(b.output[i], facing, rng))
	}
	return delta
}
