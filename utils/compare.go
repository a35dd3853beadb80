package utils

import (
	"github.com/pixelito/voxmesh/api"
	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/internal/profiling"
	"github.com/pixelito/voxmesh/vxg"
	"go.uber.org/zap"
)

// RunCompare meshes a .vxg file with both algorithms and logs the difference.
func RunCompare(inPath string) (api.Comparison, error) {
	g, err := vxg.Load(inPath)
	if err != nil {
		return api.Comparison{}, err
	}
	var c api.Comparison
	report := profiling.Measure("compare", func() { c = api.CompareGrid(g) })
	fields := append(report.Fields(),
		zap.String("path", inPath),
		zap.Int("naive_quads", c.Naive.Quads),
		zap.Int("greedy_quads", c.Greedy.Quads),
		zap.Float64("area", c.Naive.Area),
		zap.Float64("reduction", c.Reduction()),
	)
	logger.Info("comparison", fields...)
	return c, nil
}
