// Package genome implements the packed binary encoding of neural
// connections. Each gene is a 4-byte record: one byte selecting the source
// neuron, one byte selecting the destination neuron, and a signed 16-bit
// weight. The high bit of each selector byte picks the layer, the low 7
// bits pick the neuron index modulo the layer's neuron count.
package genome

import (
	"errors"
	"fmt"
)

// Layer identifies which neuron array a gene endpoint addresses.
type Layer uint8

const (
	LayerInput Layer = iota
	LayerInternal
	LayerOutput
)

// String returns the layer name for logging and genedump output.
func (l Layer) String() string {
	switch l {
	case LayerInput:
		return "Input"
	case LayerInternal:
		return "Internal"
	case LayerOutput:
		return "Output"
	}
	return fmt.Sprintf("Layer(%d)", uint8(l))
}

// Topology holds the neuron counts genes are decoded against. Input and
// output counts are fixed by the sensor and actuator catalogs; the internal
// count is a per-creature configuration value.
type Topology struct {
	NumInput    int
	NumInternal int
	NumOutput   int
}

// Count returns the neuron count for the given layer.
func (t Topology) Count(l Layer) int {
	switch l {
	case LayerInput:
		return t.NumInput
	case LayerInternal:
		return t.NumInternal
	}
	return t.NumOutput
}

// NeuronRef is a decoded gene endpoint: a layer and an index valid for
// that layer under the topology the gene was decoded against.
type NeuronRef struct {
	Layer Layer
	Index int
}

var (
	// ErrInvalidGeneTopology rejects genes whose source is an Output
	// neuron or whose destination is an Input neuron.
	ErrInvalidGeneTopology = errors.New("genome: gene source cannot be Output and destination cannot be Input")

	// ErrBitIndexOutOfRange rejects mutation of a bit outside the gene's
	// 32-bit representation.
	ErrBitIndexOutOfRange = errors.New("genome: mutation bit index out of range")
)

const (
	layerBit  = 0x80
	indexMask = 0x7f

	// WeightScale maps the signed 16-bit weight range to roughly [-4, 4].
	WeightScale = 8192.0
)

// Gene is one packed neural connection. The source byte's high bit selects
// Input (0) or Internal (1); the destination byte's high bit selects
// Internal (0) or Output (1).
type Gene struct {
	Source      uint8
	Destination uint8
	Weight      int16
}

// NewGene packs a connection descriptor. Indexes are stored in the low 7
// bits as given; they are reduced modulo the layer count only at decode
// time, so a gene is valid under any topology.
func NewGene(srcLayer Layer, srcIndex int, dstLayer Layer, dstIndex int, weight int16) (Gene, error) {
	if srcLayer == LayerOutput || dstLayer == LayerInput {
		return Gene{}, ErrInvalidGeneTopology
	}

	src := uint8(srcIndex) & indexMask
	if srcLayer == LayerInternal {
		src |= layerBit
	}
	dst := uint8(dstIndex) & indexMask
	if dstLayer == LayerOutput {
		dst |= layerBit
	}

	return Gene{Source: src, Destination: dst, Weight: weight}, nil
}

// SourceLayer returns the layer selected by the source byte's high bit.
func (g Gene) SourceLayer() Layer {
	if g.Source&layerBit == 0 {
		return LayerInput
	}
	return LayerInternal
}

// DestinationLayer returns the layer selected by the destination byte's
// high bit.
func (g Gene) DestinationLayer() Layer {
	if g.Destination&layerBit == 0 {
		return LayerInternal
	}
	return LayerOutput
}

// SourceNeuron decodes the source endpoint against a topology. The raw
// 7-bit index wraps modulo the layer's neuron count, so distinct raw bytes
// can alias to the same neuron; that aliasing keeps every byte pattern
// meaningful.
func (g Gene) SourceNeuron(t Topology) NeuronRef {
	l := g.SourceLayer()
	return NeuronRef{Layer: l, Index: int(g.Source&indexMask) % t.Count(l)}
}

// DestinationNeuron decodes the destination endpoint against a topology.
func (g Gene) DestinationNeuron(t Topology) NeuronRef {
	l := g.DestinationLayer()
	return NeuronRef{Layer: l, Index: int(g.Destination&indexMask) % t.Count(l)}
}

// ScaledWeight returns the connection weight mapped into roughly [-4, 4].
func (g Gene) ScaledWeight() float64 {
	return float64(g.Weight) / WeightScale
}

// packed returns the gene as a single 32-bit value:
// source<<24 | destination<<16 | weight-as-unsigned.
func (g Gene) packed() uint32 {
	return uint32(g.Source)<<24 | uint32(g.Destination)<<16 | uint32(uint16(g.Weight))
}

// fromPacked splits a 32-bit value back into the three fields.
func fromPacked(raw uint32) Gene {
	return Gene{
		Source:      uint8(raw >> 24),
		Destination: uint8(raw >> 16),
		Weight:      int16(uint16(raw)),
	}
}

// Mutate flips exactly one bit of the packed 32-bit representation.
// Flipping the same bit twice returns the original gene.
func (g Gene) Mutate(bit int) (Gene, error) {
	if bit < 0 || bit >= 32 {
		return Gene{}, fmt.Errorf("%w: %d", ErrBitIndexOutOfRange, bit)
	}
	return fromPacked(g.packed() ^ (1 << uint(bit))), nil
}
