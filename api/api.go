// Package api exposes byte-in/byte-out conversions shared by the CLI and the
// wasm build.
package api

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pixelito/voxmesh/export"
	"github.com/pixelito/voxmesh/voxel"
	"github.com/pixelito/voxmesh/vxg"
)

// GridToGLB decodes a .vxg grid, meshes it and returns a .glb.
func GridToGLB(gridBytes []byte, greedy bool) ([]byte, error) {
	g, err := vxg.Decode(gridBytes)
	if err != nil {
		return nil, err
	}
	alg := voxel.AlgorithmFor(greedy)
	return export.GLB(voxel.Build(g, alg), alg.String())
}

// Comparison holds the output statistics of both meshers for one grid.
type Comparison struct {
	Naive  voxel.Stats
	Greedy voxel.Stats
}

// Reduction is the fraction of naive quads the greedy mesher saved.
func (c Comparison) Reduction() float64 {
	if c.Naive.Quads == 0 {
		return 0
	}
	return 1 - float64(c.Greedy.Quads)/float64(c.Naive.Quads)
}

// Compare meshes the grid with both algorithms.
func Compare(gridBytes []byte) (Comparison, error) {
	g, err := vxg.Decode(gridBytes)
	if err != nil {
		return Comparison{}, err
	}
	return CompareGrid(g), nil
}

// CompareGrid meshes g with both algorithms.
func CompareGrid(g *voxel.Grid) Comparison {
	return Comparison{
		Naive:  voxel.Naive(g).Stats(),
		Greedy: voxel.Greedy(g).Stats(),
	}
}

// ApplyEdits applies an edit stream to a .vxg grid and returns the new grid.
func ApplyEdits(gridBytes, edits []byte) ([]byte, error) {
	g, err := vxg.Decode(gridBytes)
	if err != nil {
		return nil, err
	}
	if err := vxg.ApplyEdits(g, edits); err != nil {
		return nil, err
	}
	return vxg.Encode(g)
}

// PackGrids builds a zstd-compressed .vxgpack from named .vxg blobs. Entries
// are stored in name order.
func PackGrids(files map[string][]byte) ([]byte, error) {
	if len(files) == 0 {
		return nil, errors.New("api: no files")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var pack vxg.Pack
	for _, name := range names {
		g, err := vxg.Decode(files[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := pack.Add(name, g); err != nil {
			return nil, err
		}
	}
	return pack.Marshal(vxg.CompZstd)
}

// UnpackToMemory returns a map of entry name to .vxg bytes.
func UnpackToMemory(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := vxg.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for _, e := range pack.Entries {
		out[e.Name] = e.Data
	}
	return out, nil
}
