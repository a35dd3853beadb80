// Package config handles voxmesh configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all voxmesh settings.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Mesher  MesherConfig  `yaml:"mesher"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig describes the generated test world.
type WorldConfig struct {
	Generator string  `yaml:"generator"` // hills, slab, noise or simplex
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Depth     int     `yaml:"depth"`
	Seed      int64   `yaml:"seed"`
	Fill      float64 `yaml:"fill"` // fraction of cells set by the noise generator
}

// MesherConfig selects the meshing algorithm.
type MesherConfig struct {
	Greedy bool `yaml:"greedy"`
}

// OutputConfig holds where generated files go.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Generator: "hills",
			Width:     32,
			Height:    8,
			Depth:     32,
			Seed:      1,
			Fill:      0.3,
		},
		Mesher: MesherConfig{
			Greedy: true,
		},
		Output: OutputConfig{
			Dir:  ".",
			Name: "world",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var generators = map[string]bool{"hills": true, "slab": true, "noise": true, "simplex": true}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width < 1 || c.World.Height < 1 || c.World.Depth < 1 {
		errs = append(errs, fmt.Errorf("world: dimensions must be positive, got %dx%dx%d",
			c.World.Width, c.World.Height, c.World.Depth))
	}
	if c.World.Width > 0xFFFF || c.World.Height > 0xFFFF || c.World.Depth > 0xFFFF {
		errs = append(errs, errors.New("world: dimensions must not exceed 65535"))
	}
	if !generators[c.World.Generator] {
		errs = append(errs, fmt.Errorf("world: unknown generator %q", c.World.Generator))
	}
	if c.World.Fill < 0 || c.World.Fill > 1 {
		errs = append(errs, fmt.Errorf("world: fill must be in [0,1], got %g", c.World.Fill))
	}
	if c.Output.Name == "" {
		errs = append(errs, errors.New("output: name must not be empty"))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}
