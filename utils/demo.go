package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixelito/voxmesh/export"
	"github.com/pixelito/voxmesh/internal/config"
	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/voxel"
	"github.com/pixelito/voxmesh/vxg"
	"go.uber.org/zap"
)

// DemoResult lists what RunDemo wrote.
type DemoResult struct {
	GridPath string
	GLBPath  string
	Stats    voxel.Stats
}

// RunDemo generates the configured world, meshes it with the configured
// algorithm and writes both the grid and the mesh to the output directory.
func RunDemo(cfg *config.Config) (DemoResult, error) {
	g, err := generateWorld(cfg)
	if err != nil {
		return DemoResult{}, err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return DemoResult{}, err
	}

	alg := voxel.AlgorithmFor(cfg.Mesher.Greedy)
	m := buildMesh(g, alg)
	res := DemoResult{
		GridPath: filepath.Join(cfg.Output.Dir, cfg.Output.Name+".vxg"),
		GLBPath:  filepath.Join(cfg.Output.Dir, cfg.Output.Name+".glb"),
		Stats:    m.Stats(),
	}
	if err := vxg.Save(g, res.GridPath); err != nil {
		return DemoResult{}, err
	}
	if err := export.SaveGLB(m, cfg.Output.Name, res.GLBPath); err != nil {
		return DemoResult{}, fmt.Errorf("%s: %w", res.GLBPath, err)
	}
	logger.Info("demo written",
		zap.Stringer("algorithm", alg),
		zap.String("grid", res.GridPath),
		zap.String("glb", res.GLBPath),
	)
	return res, nil
}
