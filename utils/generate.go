package utils

import (
	"os"
	"path/filepath"

	"github.com/pixelito/voxmesh/internal/config"
	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/internal/terrain"
	"github.com/pixelito/voxmesh/voxel"
	"github.com/pixelito/voxmesh/vxg"
	"go.uber.org/zap"
)

func terrainOptions(w config.WorldConfig) terrain.Options {
	return terrain.Options{
		Width:  w.Width,
		Height: w.Height,
		Depth:  w.Depth,
		Seed:   w.Seed,
		Fill:   w.Fill,
	}
}

// generateWorld builds the world described by cfg.
func generateWorld(cfg *config.Config) (*voxel.Grid, error) {
	g, err := terrain.Generate(cfg.World.Generator, terrainOptions(cfg.World))
	if err != nil {
		return nil, err
	}
	dims := g.Dims()
	logger.Debug("world generated",
		zap.String("generator", cfg.World.Generator),
		zap.Ints("dims", dims[:]),
		zap.Int64("seed", cfg.World.Seed),
		zap.Int("solid", g.Count(voxel.Type.Solid)),
	)
	return g, nil
}

// RunGenerate generates the configured world and saves it to outPath. An empty
// outPath means <output.dir>/<output.name>.vxg.
func RunGenerate(cfg *config.Config, outPath string) (string, error) {
	g, err := generateWorld(cfg)
	if err != nil {
		return "", err
	}
	if outPath == "" {
		outPath = filepath.Join(cfg.Output.Dir, cfg.Output.Name+".vxg")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	if err := vxg.Save(g, outPath); err != nil {
		return "", err
	}
	logger.Info("wrote grid", zap.String("path", outPath), zap.Uint64("digest", g.Digest()))
	return outPath, nil
}
