package terrain

import (
	"github.com/ojrac/opensimplex-go"
	"github.com/pixelito/voxmesh/voxel"
)

const (
	octaves     = 4
	lacunarity  = 2.0
	persistence = 0.5
	heightScale = 48.0
	caveScale   = 12.0
	caveCutoff  = -0.45
)

// fractal sums octaves of 2-D simplex noise. The result lies in roughly
// [-amplitude*2, amplitude*2].
func fractal(n opensimplex.Noise, x, z, amplitude float64) float64 {
	val := 0.0
	for i := 0; i < octaves; i++ {
		val += n.Eval2(x/heightScale, z/heightScale) * amplitude
		x *= lacunarity
		z *= lacunarity
		amplitude *= persistence
	}
	return val
}

// Simplex generates height-mapped terrain from fractal simplex noise with
// carved caves, sand shores and water up to a third of the grid height.
func Simplex(opts Options) (*voxel.Grid, error) {
	g, err := voxel.New(opts.Width, opts.Height, opts.Depth)
	if err != nil {
		return nil, err
	}
	n := opensimplex.New(opts.Seed)
	sea := opts.Height / 3
	mid := float64(opts.Height) / 2
	amp := float64(opts.Height) / 4

	for x := 0; x < opts.Width; x++ {
		for z := 0; z < opts.Depth; z++ {
			top := int(mid + fractal(n, float64(x), float64(z), amp))
			top = max(0, min(opts.Height-1, top))
			for y := 0; y < opts.Height; y++ {
				t := voxel.Empty
				switch {
				case y < top-3:
					t = voxel.Stone
					if y > 0 && n.Eval3(float64(x)/caveScale, float64(y)/caveScale, float64(z)/caveScale) < caveCutoff {
						t = voxel.Empty
					}
				case y < top:
					t = voxel.Dirt
				case y == top && top <= sea:
					t = voxel.Sand
				case y == top:
					t = voxel.Grass
				case y <= sea:
					t = voxel.Water
				}
				if t != voxel.Empty {
					_ = g.Set(x, y, z, t)
				}
			}
		}
	}
	return g, nil
}
