// Package telemetry aggregates per-generation simulation statistics and
// writes them as CSV for offline analysis.
package telemetry

import "gonum.org/v1/gonum/stat"

// GenerationStats holds aggregated statistics for one generation.
type GenerationStats struct {
	Generation   int     `csv:"generation"`
	Ticks        int     `csv:"ticks"`
	Population   int     `csv:"population"`
	Survivors    int     `csv:"survivors"`
	SurvivalRate float64 `csv:"survival_rate"`

	// Movement during the generation
	Moves        int     `csv:"moves"`
	BlockedMoves int     `csv:"blocked_moves"`
	MoveRate     float64 `csv:"move_rate"`

	// Final horizontal distribution (selection pressure is east-west)
	MeanFinalX float64 `csv:"mean_final_x"`
	StdFinalX  float64 `csv:"std_final_x"`

	// Genome diversity
	UniqueGenomes int `csv:"unique_genomes"`
}

// distribution summarizes a sample with gonum. A sample below two elements
// has no spread; report zero rather than NaN.
func distribution(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		std = stat.StdDev(xs, nil)
	}
	return mean, std
}
