package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.World.Width != 128 || cfg.World.Height != 128 {
		t.Errorf("world = %dx%d, want 128x128", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Population.Size != 200 {
		t.Errorf("population size = %d, want 200", cfg.Population.Size)
	}
	if cfg.Mutation.Rate != 0.04 {
		t.Errorf("mutation rate = %v, want 0.04", cfg.Mutation.Rate)
	}
	if cfg.Derived.SelectionMinX != 64 {
		t.Errorf("SelectionMinX = %d, want 64", cfg.Derived.SelectionMinX)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	userYAML := []byte("world:\n  width: 64\n  height: 32\nselection:\n  east_fraction: 0.25\n")
	if err := os.WriteFile(path, userYAML, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Width != 64 || cfg.World.Height != 32 {
		t.Errorf("world = %dx%d, want 64x32", cfg.World.Width, cfg.World.Height)
	}
	// Keys absent from the user file keep their defaults.
	if cfg.Population.Size != 200 {
		t.Errorf("population size = %d, want default 200", cfg.Population.Size)
	}
	if cfg.Derived.SelectionMinX != 48 {
		t.Errorf("SelectionMinX = %d, want 48", cfg.Derived.SelectionMinX)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	writeAndLoad := func(t *testing.T, body string) error {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		return err
	}

	if err := writeAndLoad(t, "world:\n  width: 1\n"); err == nil {
		t.Error("degenerate world accepted")
	}
	if err := writeAndLoad(t, "population:\n  size: 0\n"); err == nil {
		t.Error("empty population accepted")
	}
	if err := writeAndLoad(t, "world:\n  width: 4\n  height: 4\n"); err == nil {
		t.Error("population larger than the world accepted")
	}
	if err := writeAndLoad(t, "mutation:\n  rate: 1.5\n"); err == nil {
		t.Error("mutation rate above 1 accepted")
	}
	if err := writeAndLoad(t, "population:\n  internal_neurons: 128\n"); err == nil {
		t.Error("internal neuron count above the 7-bit index space accepted")
	}
}
