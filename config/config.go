// Package config provides configuration loading and access for the
// simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Run        RunConfig        `yaml:"run"`
	Selection  SelectionConfig  `yaml:"selection"`
	Parallel   ParallelConfig   `yaml:"parallel"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid boundary dimensions in cells.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds creature creation parameters.
type PopulationConfig struct {
	Size            int `yaml:"size"`             // Creatures per generation
	GenesPerGenome  int `yaml:"genes_per_genome"` // Genome length for founders
	InternalNeurons int `yaml:"internal_neurons"` // Internal neuron slots per brain
}

// MutationConfig holds reproduction mutation parameters.
type MutationConfig struct {
	Rate float64 `yaml:"rate"` // Per-gene probability of a single bit flip
}

// RunConfig holds generation loop parameters.
type RunConfig struct {
	Generations        int `yaml:"generations"`
	TicksPerGeneration int `yaml:"ticks_per_generation"`
}

// SelectionConfig holds the survival-selection policy parameters.
// Survivors are the creatures that finish a generation inside the eastmost
// fraction of the world.
type SelectionConfig struct {
	EastFraction float64 `yaml:"east_fraction"`
}

// ParallelConfig holds brain-computation parallelism parameters.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // Minimum population for the worker pool
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SelectionMinX int // Lowest X that counts as inside the survival zone
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.Width < 2 || c.World.Height < 2 {
		return fmt.Errorf("config: world must be at least 2x2 cells, got %dx%d", c.World.Width, c.World.Height)
	}
	if c.Population.Size < 1 {
		return fmt.Errorf("config: population size must be positive, got %d", c.Population.Size)
	}
	if c.Population.Size > c.World.Width*c.World.Height {
		return fmt.Errorf("config: population %d cannot fit a %dx%d world",
			c.Population.Size, c.World.Width, c.World.Height)
	}
	if c.Population.InternalNeurons < 1 || c.Population.InternalNeurons > 127 {
		return fmt.Errorf("config: internal neurons must be in [1, 127], got %d", c.Population.InternalNeurons)
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		return fmt.Errorf("config: mutation rate must be in [0, 1], got %v", c.Mutation.Rate)
	}
	if c.Selection.EastFraction <= 0 || c.Selection.EastFraction > 1 {
		return fmt.Errorf("config: selection east fraction must be in (0, 1], got %v", c.Selection.EastFraction)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SelectionMinX = int(float64(c.World.Width) * (1 - c.Selection.EastFraction))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
