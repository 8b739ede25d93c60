package archive

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/gianluca-venturini/vita/genome"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "archive.db"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	runID := NewRunID()
	if err := s.SaveRun(ctx, runID, 1234); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	seed, err := s.GetRunSeed(ctx, runID)
	if err != nil {
		t.Fatalf("GetRunSeed: %v", err)
	}
	if seed != 1234 {
		t.Errorf("seed = %d, want 1234", seed)
	}

	if _, err := s.GetRunSeed(ctx, "no-such-run"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("unknown run: got %v, want ErrRunNotFound", err)
	}
}

func TestSurvivorsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(9))

	runID := NewRunID()
	if err := s.SaveRun(ctx, runID, 9); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	want := []genome.Genome{
		genome.NewRandom(rng, 8),
		genome.NewRandom(rng, 8),
		genome.NewRandom(rng, 8),
	}
	if err := s.SaveSurvivors(ctx, runID, 2, want); err != nil {
		t.Fatalf("SaveSurvivors: %v", err)
	}

	got, err := s.LoadSurvivors(ctx, runID, 2)
	if err != nil {
		t.Fatalf("LoadSurvivors: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d genomes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Text() != want[i].Text() {
			t.Errorf("genome %d: got %s, want %s", i, got[i].Text(), want[i].Text())
		}
	}

	// A generation with no rows loads as empty, not as an error.
	empty, err := s.LoadSurvivors(ctx, runID, 7)
	if err != nil {
		t.Fatalf("LoadSurvivors(empty): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty generation returned %d genomes", len(empty))
	}
}

func TestSaveSurvivorsUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(10))

	runID := NewRunID()
	if err := s.SaveRun(ctx, runID, 10); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	first := []genome.Genome{genome.NewRandom(rng, 4)}
	second := []genome.Genome{genome.NewRandom(rng, 4)}
	if err := s.SaveSurvivors(ctx, runID, 0, first); err != nil {
		t.Fatalf("SaveSurvivors: %v", err)
	}
	if err := s.SaveSurvivors(ctx, runID, 0, second); err != nil {
		t.Fatalf("SaveSurvivors (overwrite): %v", err)
	}

	got, err := s.LoadSurvivors(ctx, runID, 0)
	if err != nil {
		t.Fatalf("LoadSurvivors: %v", err)
	}
	if len(got) != 1 || got[0].Text() != second[0].Text() {
		t.Errorf("overwrite did not take: got %v", got)
	}
}

func TestUninitializedStore(t *testing.T) {
	s := NewStore("unused.db")
	if err := s.SaveRun(context.Background(), "r", 0); err == nil {
		t.Error("SaveRun on an uninitialized store: expected error")
	}
}
