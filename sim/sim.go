package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/gianluca-venturini/vita/brain"
	"github.com/gianluca-venturini/vita/config"
	"github.com/gianluca-venturini/vita/telemetry"
	"github.com/gianluca-venturini/vita/world"
)

// Options configures a simulation run.
type Options struct {
	Seed int64
}

// Sim holds the complete simulation state.
type Sim struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	ecsWorld *ecs.World

	// Entity mappers for the three creature components
	mapper *ecs.Map3[world.Position, Pose, Creature]
	filter *ecs.Filter3[world.Position, Pose, Creature]

	// Individual component mappers for lookups
	posMap      *ecs.Map1[world.Position]
	poseMap     *ecs.Map1[Pose]
	creatureMap *ecs.Map1[Creature]

	// Occupancy
	grid *world.Grid

	// Brain and per-creature rng storage (per entity by ID)
	brains map[uint32]*brain.Brain
	rngs   map[uint32]*rand.Rand

	// Commit order: ascending spawn order. When two creatures contend for
	// the same destination cell, the earlier-spawned one wins.
	order []ecs.Entity

	collector *telemetry.Collector
	parallel  *parallelState

	tick       int
	generation int
	nextID     uint32
}

// New creates a simulation with an empty world. Call SpawnPopulation (or
// Run) to populate it.
func New(cfg *config.Config, opts Options) *Sim {
	ecsWorld := ecs.NewWorld()

	s := &Sim{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		seed:        opts.Seed,
		ecsWorld:    ecsWorld,
		mapper:      ecs.NewMap3[world.Position, Pose, Creature](ecsWorld),
		filter:      ecs.NewFilter3[world.Position, Pose, Creature](ecsWorld),
		posMap:      ecs.NewMap1[world.Position](ecsWorld),
		poseMap:     ecs.NewMap1[Pose](ecsWorld),
		creatureMap: ecs.NewMap1[Creature](ecsWorld),
		grid:        world.NewGrid(world.Size{Width: cfg.World.Width, Height: cfg.World.Height}),
		brains:      make(map[uint32]*brain.Brain),
		rngs:        make(map[uint32]*rand.Rand),
		collector:   telemetry.NewCollector(),
		parallel:    newParallelState(),
	}

	return s
}

// Tick returns the tick counter within the current generation.
func (s *Sim) Tick() int {
	return s.tick
}

// Generation returns the current generation number.
func (s *Sim) Generation() int {
	return s.generation
}

// Grid exposes the occupancy grid (read-only use).
func (s *Sim) Grid() *world.Grid {
	return s.grid
}

// Step advances the simulation one tick: every creature senses and
// computes over the frozen pre-move world, then moves commit sequentially
// in spawn order.
func (s *Sim) Step() {
	s.computeIntents()
	s.commitMoves()
	s.tick++
	s.collector.RecordTick()
}

// commitMoves applies the computed desired moves. Snapshots were built in
// spawn order, so the earlier-spawned creature wins when two contend for a
// cell. This phase is the single writer of the occupancy grid and must stay
// sequential.
func (s *Sim) commitMoves() {
	for i := range s.parallel.snapshots {
		snap := &s.parallel.snapshots[i]

		pos := s.posMap.Get(snap.Entity)
		pose := s.poseMap.Get(snap.Entity)
		before := *pos

		moved := s.grid.MoveCreature(snap.Entity, pos, s.parallel.intents[i].desired)
		if moved {
			pose.LastMove = world.DeltaPosition{
				X: float64(pos.X - before.X),
				Y: float64(pos.Y - before.Y),
			}
			s.collector.RecordMove()
		} else {
			pose.LastMove = world.DeltaPosition{}
			s.collector.RecordBlockedMove()
		}
	}
}

// creatureRng derives a private rng for one creature. Sensing and acting
// draw only from it, so results do not depend on how the compute phase is
// scheduled across workers.
func (s *Sim) creatureRng(id uint32) *rand.Rand {
	return rand.New(rand.NewSource(int64(uint64(s.seed) ^ uint64(id)*0x9E3779B97F4A7C15)))
}

// logGeneration emits the per-generation summary.
func (s *Sim) logGeneration(stats telemetry.GenerationStats) {
	slog.Info("generation complete",
		"generation", stats.Generation,
		"population", stats.Population,
		"survivors", stats.Survivors,
		"survival_rate", stats.SurvivalRate,
		"move_rate", stats.MoveRate,
		"mean_final_x", stats.MeanFinalX,
		"unique_genomes", stats.UniqueGenomes,
	)
}
