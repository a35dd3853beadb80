package utils

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pixelito/voxmesh/export"
	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/internal/profiling"
	"github.com/pixelito/voxmesh/voxel"
	"github.com/pixelito/voxmesh/vxg"
	"go.uber.org/zap"
)

// buildMesh meshes g and logs timing and output size.
func buildMesh(g *voxel.Grid, alg voxel.Algorithm) *voxel.Mesh {
	var m *voxel.Mesh
	report := profiling.Measure(alg.String(), func() { m = voxel.Build(g, alg) })
	st := m.Stats()
	dims := g.Dims()
	fields := append(report.Fields(),
		zap.Ints("dims", dims[:]),
		zap.Int("quads", st.Quads),
		zap.Int("vertices", st.Vertices),
		zap.Int("triangles", st.Triangles),
	)
	logger.Info("mesh built", fields...)
	return m
}

// RunGrid2GLB meshes a .vxg file and writes it as .glb.
func RunGrid2GLB(inPath, outPath string, alg voxel.Algorithm) error {
	g, err := vxg.Load(inPath)
	if err != nil {
		return err
	}
	m := buildMesh(g, alg)
	name := strings.TrimSuffix(filepath.Base(inPath), ".vxg")
	if err := export.SaveGLB(m, name, outPath); err != nil {
		return fmt.Errorf("%s: %w", outPath, err)
	}
	logger.Info("wrote glb", zap.String("path", outPath))
	return nil
}

// RunPack2GLB meshes every entry of a .vxgpack into one .glb, one node per
// entry, laid out side by side on the XZ plane. Empty entries are skipped.
func RunPack2GLB(inPath, outPath string, alg voxel.Algorithm) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	pack, _, err := vxg.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if len(pack.Entries) == 0 {
		return fmt.Errorf("%s: pack has no entries", inPath)
	}

	grids := make([]*voxel.Grid, len(pack.Entries))
	stepX, stepZ := 0, 0
	for i, e := range pack.Entries {
		g, err := vxg.Decode(e.Data)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		grids[i] = g
		stepX = max(stepX, g.Width())
		stepZ = max(stepZ, g.Depth())
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(grids)))))
	scene := export.NewScene()
	for i, g := range grids {
		m := buildMesh(g, alg)
		if m.QuadCount() == 0 {
			logger.Warn("skipping empty entry", zap.String("entry", pack.Entries[i].Name))
			continue
		}
		offset := [3]float64{float64((i % cols) * stepX), 0, float64((i / cols) * stepZ)}
		if err := scene.Add(pack.Entries[i].Name, m, offset); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, pack.Entries[i].Name, err)
		}
	}
	return scene.Save(outPath)
}
