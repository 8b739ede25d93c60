package sim

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/gianluca-venturini/vita/brain"
	"github.com/gianluca-venturini/vita/genome"
	"github.com/gianluca-venturini/vita/world"
)

// creatureSnapshot captures read-only state for parallel processing. Each
// creature's brain and rng belong to it alone, so workers never share
// mutable state.
type creatureSnapshot struct {
	Entity   ecs.Entity
	ID       uint32
	Pos      world.Position
	Facing   world.Direction
	LastMove world.DeltaPosition
	Genome   genome.Genome
	Brain    *brain.Brain
	Rng      *rand.Rand
}

// intent captures the computed desired move to apply after the compute
// phase.
type intent struct {
	desired world.DeltaPosition
}

// workChunk represents a range of snapshots for a worker to process.
type workChunk struct {
	start, end int
}

// parallelState holds resources for parallel brain computation.
type parallelState struct {
	snapshots  []creatureSnapshot
	intents    []intent
	numWorkers int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

func newParallelState() *parallelState {
	return &parallelState{
		numWorkers: runtime.GOMAXPROCS(0),
		snapshots:  make([]creatureSnapshot, 0, 256),
		intents:    make([]intent, 0, 256),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(s *Sim) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *parallelState) worker(s *Sim) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			s.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// computeIntents runs the read-only half of the tick: snapshot every living
// creature in spawn order, then sense, propagate, and read the desired move
// for each. The occupancy grid is not written here, so every creature
// observes the same pre-move world regardless of worker scheduling.
func (s *Sim) computeIntents() {
	s.parallel.snapshots = s.parallel.snapshots[:0]

	for _, e := range s.order {
		c := s.creatureMap.Get(e)
		if c == nil || !c.Alive {
			continue
		}

		b, ok := s.brains[c.ID]
		if !ok {
			continue
		}

		pose := s.poseMap.Get(e)
		s.parallel.snapshots = append(s.parallel.snapshots, creatureSnapshot{
			Entity:   e,
			ID:       c.ID,
			Pos:      *s.posMap.Get(e),
			Facing:   pose.Facing,
			LastMove: pose.LastMove,
			Genome:   c.Genome,
			Brain:    b,
			Rng:      s.rngs[c.ID],
		})
	}

	n := len(s.parallel.snapshots)
	if n == 0 {
		return
	}

	if cap(s.parallel.intents) < n {
		s.parallel.intents = make([]intent, n)
	}
	s.parallel.intents = s.parallel.intents[:n]

	if n < s.cfg.Parallel.Threshold {
		s.computeChunk(0, n)
	} else {
		s.computeParallel(n)
	}
}

// computeParallel dispatches snapshot ranges to the worker pool.
func (s *Sim) computeParallel(n int) {
	if !s.parallel.running {
		s.parallel.startWorkers(s)
	}

	numWorkers := s.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	chunksDispatched := 0
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		s.parallel.workChan <- workChunk{start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-s.parallel.doneChan
	}
}

// computeChunk processes a range of snapshots for a single worker.
func (s *Sim) computeChunk(i0, i1 int) {
	for i := i0; i < i1; i++ {
		snap := &s.parallel.snapshots[i]

		ctx := brain.SenseContext{
			View:     s.grid,
			Pos:      snap.Pos,
			Facing:   snap.Facing,
			LastMove: snap.LastMove,
			Rng:      snap.Rng,
		}
		snap.Brain.SenseInputs(&ctx)
		snap.Brain.Compute(snap.Genome)

		s.parallel.intents[i].desired = snap.Brain.DesiredMove(snap.Facing, snap.Rng)
	}
}

// stopParallelWorkers should be called when shutting down the simulation.
func (s *Sim) stopParallelWorkers() {
	if s.parallel != nil {
		s.parallel.stopWorkers()
	}
}
