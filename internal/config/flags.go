package config

import (
	"flag"

	"github.com/pixelito/voxmesh/voxel"
)

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagGreedy    = flag.Bool("greedy", false, "Use the greedy mesher")
	flagNaive     = flag.Bool("naive", false, "Use the naive mesher")
	flagAlgorithm = flag.String("algorithm", "", "Mesher to use (naive, greedy)")
	flagGenerator = flag.String("generator", "", "World generator (hills, slab, noise, simplex)")
	flagSeed      = flag.Int64("seed", 0, "World seed")
	flagOut       = flag.String("out", "", "Output directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config. -greedy and -naive
// override -algorithm, and -naive wins over -greedy when both are set.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAlgorithm != "" {
		alg, err := voxel.ParseAlgorithm(*flagAlgorithm)
		if err != nil {
			return err
		}
		cfg.Mesher.Greedy = alg == voxel.AlgorithmGreedy
	}
	if *flagGreedy {
		cfg.Mesher.Greedy = true
	}
	if *flagNaive {
		cfg.Mesher.Greedy = false
	}
	if *flagGenerator != "" {
		cfg.World.Generator = *flagGenerator
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	return nil
}
