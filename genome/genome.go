package genome

import "math/rand"

// Genome is the ordered gene sequence belonging to one creature. It is
// immutable for the creature's lifetime; reproduction copies it.
type Genome []Gene

// NewRandom creates a genome of n uniformly random genes. Every 32-bit
// pattern is a valid gene (the layer bits select among the legal layer
// pairs), so random bytes need no validation.
func NewRandom(rng *rand.Rand, n int) Genome {
	g := make(Genome, n)
	for i := range g {
		g[i] = fromPacked(rng.Uint32())
	}
	return g
}

// Clone returns an independent copy of the genome.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// Reproduce returns a copy with each gene independently mutated with
// probability rate. A mutated gene gets exactly one random bit flip.
func (g Genome) Reproduce(rng *rand.Rand, rate float64) Genome {
	child := g.Clone()
	for i, gene := range child {
		if rng.Float64() >= rate {
			continue
		}
		// Intn(32) keeps the bit index in range, so Mutate cannot fail.
		mutated, err := gene.Mutate(rng.Intn(32))
		if err != nil {
			panic(err)
		}
		child[i] = mutated
	}
	return child
}
