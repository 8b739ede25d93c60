package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()

	for i := 0; i < 10; i++ {
		c.RecordTick()
	}
	for i := 0; i < 6; i++ {
		c.RecordMove()
	}
	for i := 0; i < 2; i++ {
		c.RecordBlockedMove()
	}

	stats := c.Flush(3, 100, 40, []float64{10, 20, 30}, 95)

	if stats.Generation != 3 || stats.Ticks != 10 {
		t.Errorf("generation/ticks = %d/%d, want 3/10", stats.Generation, stats.Ticks)
	}
	if stats.SurvivalRate != 0.4 {
		t.Errorf("SurvivalRate = %v, want 0.4", stats.SurvivalRate)
	}
	if stats.MoveRate != 0.75 {
		t.Errorf("MoveRate = %v, want 0.75", stats.MoveRate)
	}
	if stats.MeanFinalX != 20 {
		t.Errorf("MeanFinalX = %v, want 20", stats.MeanFinalX)
	}
	if stats.StdFinalX != 10 {
		t.Errorf("StdFinalX = %v, want 10", stats.StdFinalX)
	}
	if stats.UniqueGenomes != 95 {
		t.Errorf("UniqueGenomes = %d, want 95", stats.UniqueGenomes)
	}
}

func TestCollectorFlushResets(t *testing.T) {
	c := NewCollector()
	c.RecordMove()
	c.RecordTick()
	c.Flush(0, 1, 1, nil, 1)

	stats := c.Flush(1, 1, 0, nil, 1)
	if stats.Ticks != 0 || stats.Moves != 0 || stats.BlockedMoves != 0 {
		t.Errorf("counters not reset: %+v", stats)
	}
	if stats.MoveRate != 0 {
		t.Errorf("MoveRate = %v after reset, want 0", stats.MoveRate)
	}
}

func TestDistributionEdgeCases(t *testing.T) {
	mean, std := distribution(nil)
	if mean != 0 || std != 0 {
		t.Errorf("empty sample: mean/std = %v/%v, want 0/0", mean, std)
	}

	mean, std = distribution([]float64{7})
	if mean != 7 || std != 0 {
		t.Errorf("single sample: mean/std = %v/%v, want 7/0", mean, std)
	}
	if math.IsNaN(std) {
		t.Error("single-sample std is NaN")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteGeneration(GenerationStats{Generation: 0, Population: 10, Survivors: 5, SurvivalRate: 0.5}); err != nil {
		t.Fatalf("WriteGeneration: %v", err)
	}
	if err := om.WriteGeneration(GenerationStats{Generation: 1, Population: 10, Survivors: 7, SurvivalRate: 0.7}); err != nil {
		t.Fatalf("WriteGeneration: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatalf("reading generations.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("generations.csv has %d lines, want header + 2 records", len(lines))
	}
	if !strings.Contains(lines[0], "generation") || !strings.Contains(lines[0], "survival_rate") {
		t.Errorf("header missing expected columns: %q", lines[0])
	}
	if strings.Contains(lines[1], "generation") {
		t.Errorf("second line repeats the header: %q", lines[1])
	}
}

func TestNilOutputManagerIsDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\"): %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	// All methods must be safe on the nil manager.
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Errorf("nil WriteGeneration: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("nil Dir() = %q", om.Dir())
	}
}
