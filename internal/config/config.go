// Package config provides configuration structures and defaults for arenalist.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultMaxHeight     = 12
	defaultBranching     = 4
	defaultBlockSize     = 4096
	defaultMaxBufferSize = 32 * 1024 * 1024
)

// Config holds all tunable parameters for the skiplist and its arena.
type Config struct {
	// MaxHeight bounds the height of any node's forward-link tower.
	MaxHeight int `yaml:"max_height"`
	// Branching is the inverse probability of promoting a node one level up.
	Branching int `yaml:"branching"`
	// BlockSize is the standard arena block size in bytes.
	BlockSize int `yaml:"block_size"`
	// RandSeed seeds the height RNG. Zero means seed from entropy; tests that
	// need deterministic structure set a fixed seed.
	RandSeed uint64 `yaml:"rand_seed"`
	// MaxBufferSize is the arena usage threshold at which a write buffer
	// reports itself full and should be rotated by its owner.
	MaxBufferSize int64 `yaml:"max_buffer_size"`
}

// DefaultConfig returns a Config struct populated with default values.
func DefaultConfig() *Config {
	return &Config{
		MaxHeight:     defaultMaxHeight,
		Branching:     defaultBranching,
		BlockSize:     defaultBlockSize,
		MaxBufferSize: defaultMaxBufferSize,
	}
}

// FillDefaults sets any zero-value fields in the Config to their default values.
func (c *Config) FillDefaults() {
	def := DefaultConfig()
	if c.MaxHeight == 0 {
		c.MaxHeight = def.MaxHeight
	}
	if c.Branching == 0 {
		c.Branching = def.Branching
	}
	if c.BlockSize == 0 {
		c.BlockSize = def.BlockSize
	}
	if c.MaxBufferSize == 0 {
		c.MaxBufferSize = def.MaxBufferSize
	}
}

// Load reads a YAML config file and fills any missing fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.FillDefaults()
	return cfg, nil
}
