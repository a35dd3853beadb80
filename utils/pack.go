package utils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/internal/profiling"
	"github.com/pixelito/voxmesh/voxel"
	"github.com/pixelito/voxmesh/vxg"
	"go.uber.org/zap"
)

// RunPack reads .vxg files and writes them into one .vxgpack. Entries are
// named after the input file names without extension.
func RunPack(outPath string, inPaths []string, comp vxg.Compression) error {
	if len(inPaths) == 0 {
		return errors.New("no .vxg files provided")
	}
	grids := make([]*voxel.Grid, len(inPaths))
	errs := make([]error, len(inPaths))

	var wg sync.WaitGroup
	for i, path := range inPaths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			grids[i], errs[i] = vxg.Load(path)
		}(i, path)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return err
	}

	var pack vxg.Pack
	for i, g := range grids {
		name := strings.TrimSuffix(filepath.Base(inPaths[i]), ".vxg")
		if err := pack.Add(name, g); err != nil {
			return err
		}
	}

	var data []byte
	var err error
	report := profiling.Measure("pack", func() { data, err = pack.Marshal(comp) })
	if err != nil {
		return err
	}
	logger.Info("packed",
		append(report.Fields(),
			zap.Int("entries", len(pack.Entries)),
			zap.Int("blobs", pack.BlobCount()),
			zap.Stringer("compression", comp),
			zap.Int("bytes", len(data)),
		)...)
	return os.WriteFile(outPath, data, 0o644)
}

// RunUnpack writes every entry of a .vxgpack to outDir as <name>.vxg.
func RunUnpack(inPath, outDir string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	pack, _, err := vxg.UnmarshalPack(data)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(pack.Entries))
	for _, e := range pack.Entries {
		wg.Add(1)
		go func(e vxg.PackEntry) {
			defer wg.Done()
			path := filepath.Join(outDir, filepath.Base(e.Name)+".vxg")
			if err := os.WriteFile(path, e.Data, 0o644); err != nil {
				errCh <- err
			}
		}(e)
	}
	wg.Wait()
	close(errCh)
	if err := <-errCh; err != nil {
		return err
	}
	logger.Info("unpacked", zap.Int("entries", len(pack.Entries)), zap.String("dir", outDir))
	return nil
}

// ParseCompression maps a name to a pack compression mode.
func ParseCompression(s string) (vxg.Compression, error) {
	for _, c := range []vxg.Compression{vxg.CompNone, vxg.CompZlib, vxg.CompZstd} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, errors.New("unknown compression " + s + " (none, zlib, zstd)")
}
