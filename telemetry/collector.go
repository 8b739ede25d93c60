package telemetry

// Collector accumulates events within one generation and produces
// GenerationStats. Events are recorded by the move-commit phase, which is
// single-threaded, so the collector needs no locking.
type Collector struct {
	ticks        int
	moves        int
	blockedMoves int
}

// NewCollector creates an empty stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordTick records one completed simulation tick.
func (c *Collector) RecordTick() {
	c.ticks++
}

// RecordMove records a committed relocation.
func (c *Collector) RecordMove() {
	c.moves++
}

// RecordBlockedMove records a move rejected by occupancy or boundary.
func (c *Collector) RecordBlockedMove() {
	c.blockedMoves++
}

// Flush produces a GenerationStats and resets the counters for the next
// generation. The caller provides end-of-generation snapshots: final X
// coordinates of the population and the number of distinct genome texts.
func (c *Collector) Flush(generation, population, survivors int, finalX []float64, uniqueGenomes int) GenerationStats {
	stats := GenerationStats{
		Generation:    generation,
		Ticks:         c.ticks,
		Population:    population,
		Survivors:     survivors,
		Moves:         c.moves,
		BlockedMoves:  c.blockedMoves,
		UniqueGenomes: uniqueGenomes,
	}
	if population > 0 {
		stats.SurvivalRate = float64(survivors) / float64(population)
	}
	if attempts := c.moves + c.blockedMoves; attempts > 0 {
		stats.MoveRate = float64(c.moves) / float64(attempts)
	}
	stats.MeanFinalX, stats.StdFinalX = distribution(finalX)

	c.ticks = 0
	c.moves = 0
	c.blockedMoves = 0

	return stats
}
