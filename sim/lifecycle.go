package sim

import (
	"log/slog"

	"github.com/gianluca-venturini/vita/brain"
	"github.com/gianluca-venturini/vita/genome"
	"github.com/gianluca-venturini/vita/telemetry"
	"github.com/gianluca-venturini/vita/world"
)

// SpawnPopulation fills an empty world with founder creatures carrying
// fresh random genomes.
func (s *Sim) SpawnPopulation() {
	genomes := make([]genome.Genome, s.cfg.Population.Size)
	for i := range genomes {
		genomes[i] = genome.NewRandom(s.rng, s.cfg.Population.GenesPerGenome)
	}
	s.spawnGeneration(genomes)
}

// spawnGeneration places one creature per genome at a random free cell with
// a random heading. Placement draws from the root rng, so a given seed
// always produces the same layout.
func (s *Sim) spawnGeneration(genomes []genome.Genome) {
	for _, g := range genomes {
		s.spawnCreature(g)
	}
}

func (s *Sim) spawnCreature(g genome.Genome) {
	pos := s.randomFreeCell()
	pose := Pose{Facing: world.RandomDirection(s.rng)}
	creature := Creature{ID: s.nextID, Alive: true, Genome: g}
	s.nextID++

	entity := s.mapper.NewEntity(&pos, &pose, &creature)
	if !s.grid.Spawn(entity, pos) {
		panic("sim: spawn cell occupied after free-cell search")
	}

	s.brains[creature.ID] = brain.New(s.cfg.Population.InternalNeurons)
	s.rngs[creature.ID] = s.creatureRng(creature.ID)
	s.order = append(s.order, entity)
}

// randomFreeCell samples uniformly until it hits an unoccupied cell. The
// config validator guarantees the population fits the world, so the loop
// terminates.
func (s *Sim) randomFreeCell() world.Position {
	boundary := s.grid.Boundary()
	for {
		p := world.Position{
			X: s.rng.Intn(boundary.Width),
			Y: s.rng.Intn(boundary.Height),
		}
		if !s.grid.Occupied(p) {
			return p
		}
	}
}

// RunGeneration steps the configured number of ticks, applies survival
// selection, and returns the generation's stats alongside the survivor
// genomes in spawn order.
func (s *Sim) RunGeneration() (telemetry.GenerationStats, []genome.Genome) {
	for t := 0; t < s.cfg.Run.TicksPerGeneration; t++ {
		s.Step()
	}

	survivors := s.selectSurvivors()
	stats := s.collector.Flush(
		s.generation,
		len(s.order),
		len(survivors),
		s.finalXPositions(),
		s.countUniqueGenomes(),
	)
	s.logGeneration(stats)

	return stats, survivors
}

// selectSurvivors returns the genomes of creatures that finished inside the
// eastmost survival zone, in spawn order.
func (s *Sim) selectSurvivors() []genome.Genome {
	var survivors []genome.Genome
	for _, e := range s.order {
		c := s.creatureMap.Get(e)
		if c == nil || !c.Alive {
			continue
		}
		if s.posMap.Get(e).X >= s.cfg.Derived.SelectionMinX {
			survivors = append(survivors, c.Genome)
		}
	}
	return survivors
}

func (s *Sim) finalXPositions() []float64 {
	xs := make([]float64, 0, len(s.order))
	for _, e := range s.order {
		c := s.creatureMap.Get(e)
		if c == nil || !c.Alive {
			continue
		}
		xs = append(xs, float64(s.posMap.Get(e).X))
	}
	return xs
}

func (s *Sim) countUniqueGenomes() int {
	seen := make(map[string]struct{}, len(s.order))
	query := s.filter.Query()
	for query.Next() {
		_, _, c := query.Get()
		seen[c.Genome.Text()] = struct{}{}
	}
	return len(seen)
}

// NextGeneration clears the world and spawns the next population bred from
// the given survivors. Parents are taken round-robin in survivor order;
// with no survivors the population restarts from fresh random genomes.
func (s *Sim) NextGeneration(survivors []genome.Genome) {
	s.clearPopulation()
	s.generation++
	s.tick = 0

	genomes := make([]genome.Genome, s.cfg.Population.Size)
	if len(survivors) == 0 {
		slog.Warn("no survivors, restarting from random genomes", "generation", s.generation)
		for i := range genomes {
			genomes[i] = genome.NewRandom(s.rng, s.cfg.Population.GenesPerGenome)
		}
	} else {
		for i := range genomes {
			parent := survivors[i%len(survivors)]
			genomes[i] = parent.Reproduce(s.rng, s.cfg.Mutation.Rate)
		}
	}

	s.spawnGeneration(genomes)
}

// clearPopulation despawns every creature and resets per-creature storage.
func (s *Sim) clearPopulation() {
	for _, e := range s.order {
		c := s.creatureMap.Get(e)
		pos := s.posMap.Get(e)
		if c != nil && pos != nil {
			s.grid.Remove(e, *pos)
		}
		s.mapper.Remove(e)
	}

	s.order = s.order[:0]
	clear(s.brains)
	clear(s.rngs)
}

// Close releases the worker pool.
func (s *Sim) Close() {
	s.stopParallelWorkers()
}
