package utils

import (
	"os"

	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/vxg"
	"go.uber.org/zap"
)

// RunApplyEdits applies the edit stream in editsPath to the grid in inPath
// and writes the result to outPath.
func RunApplyEdits(inPath, editsPath, outPath string) error {
	g, err := vxg.Load(inPath)
	if err != nil {
		return err
	}
	edits, err := os.ReadFile(editsPath)
	if err != nil {
		return err
	}
	if err := vxg.ApplyEdits(g, edits); err != nil {
		return err
	}
	logger.Info("edits applied", zap.String("grid", inPath), zap.String("edits", editsPath))
	return vxg.Save(g, outPath)
}

// RunDiff writes the edit stream that turns grid a into grid b.
func RunDiff(aPath, bPath, outPath string) error {
	a, err := vxg.Load(aPath)
	if err != nil {
		return err
	}
	b, err := vxg.Load(bPath)
	if err != nil {
		return err
	}
	edits, err := vxg.Diff(a, b)
	if err != nil {
		return err
	}
	logger.Info("diff", zap.Int("edits", len(edits)))
	return os.WriteFile(outPath, vxg.EncodeEdits(a.Len(), edits), 0o644)
}
