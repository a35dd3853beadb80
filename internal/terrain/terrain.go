// Package terrain builds test worlds for the meshers.
package terrain

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/pixelito/voxmesh/voxel"
)

// Options sizes and seeds a generated world.
type Options struct {
	Width, Height, Depth int
	Seed                 int64
	Fill                 float64 // fraction of cells set by Noise
}

// Generator builds a world from options.
type Generator func(Options) (*voxel.Grid, error)

var generators = map[string]Generator{
	"hills":   Hills,
	"slab":    Slab,
	"noise":   Noise,
	"simplex": Simplex,
}

// Names lists the registered generators in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generate runs the generator registered under name.
func Generate(name string, opts Options) (*voxel.Grid, error) {
	gen, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("terrain: unknown generator %q", name)
	}
	return gen(opts)
}

// Hills is a rolling sine landscape: stone below, one layer of dirt, a grass
// cap at the surface height and nothing above.
func Hills(opts Options) (*voxel.Grid, error) {
	g, err := voxel.New(opts.Width, opts.Height, opts.Depth)
	if err != nil {
		return nil, err
	}
	for x := 0; x < opts.Width; x++ {
		for z := 0; z < opts.Depth; z++ {
			top := 2 + int(math.Sin(float64(x)*0.3)*1.5+math.Cos(float64(z)*0.3)*1.5)
			for y := 0; y < opts.Height; y++ {
				switch {
				case y < top-1:
					_ = g.Set(x, y, z, voxel.Stone)
				case y < top:
					_ = g.Set(x, y, z, voxel.Dirt)
				case y == top:
					_ = g.Set(x, y, z, voxel.Grass)
				}
			}
		}
	}
	return g, nil
}

// Slab fills the whole grid with dirt.
func Slab(opts Options) (*voxel.Grid, error) {
	g, err := voxel.New(opts.Width, opts.Height, opts.Depth)
	if err != nil {
		return nil, err
	}
	g.Fill(voxel.Dirt)
	return g, nil
}

// noiseTypes are the types scattered by Noise.
var noiseTypes = []voxel.Type{voxel.Dirt, voxel.Stone, voxel.Grass, voxel.Sand, voxel.Wood, voxel.Brick}

// Noise sets exactly round(Fill*Len) randomly chosen cells to random solid
// types. The same seed always yields the same grid.
func Noise(opts Options) (*voxel.Grid, error) {
	g, err := voxel.New(opts.Width, opts.Height, opts.Depth)
	if err != nil {
		return nil, err
	}
	fill := math.Max(0, math.Min(1, opts.Fill))
	total := g.Len()
	want := int(float64(total)*fill + 0.5)

	r := rand.New(rand.NewSource(opts.Seed))
	idx := make([]int, total)
	for i := range idx {
		idx[i] = i
	}
	// partial Fisher-Yates: only the first want slots are needed
	for i := 0; i < want; i++ {
		j := i + r.Intn(total-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	for _, i := range idx[:want] {
		if err := g.SetIndex(i, noiseTypes[r.Intn(len(noiseTypes))]); err != nil {
			return nil, err
		}
	}
	return g, nil
}
