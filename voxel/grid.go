// Package voxel turns a dense grid of typed voxels into a triangle mesh.
//
// Two meshers are provided. Naive emits one quad per exposed voxel face and
// serves as the reference output. Greedy merges adjacent coplanar faces of the
// same type into rectangles and tiles the atlas cell across each merged quad.
// Both cover exactly the same exposed surface.
package voxel

import (
	"encoding/binary"
	"errors"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

var (
	ErrInvalidDimensions = errors.New("voxel: grid dimensions must be positive")
	ErrJagged            = errors.New("voxel: nested grid is not rectangular")
	ErrOutOfBounds       = errors.New("voxel: coordinate out of bounds")
	ErrUnknownType       = errors.New("voxel: unknown voxel type")
)

// Grid is a fixed-size 3-D lattice of voxels stored in one flat buffer,
// indexed x + width*(y + height*z).
type Grid struct {
	width, height, depth int
	cells                []Type
}

// New returns an empty grid of the given dimensions.
func New(width, height, depth int) (*Grid, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, width, height, depth)
	}
	return &Grid{
		width:  width,
		height: height,
		depth:  depth,
		cells:  make([]Type, width*height*depth),
	}, nil
}

// FromNested builds a grid from a [x][y][z] nested slice. Every row must have
// the same length.
func FromNested(src [][][]Type) (*Grid, error) {
	if len(src) == 0 || len(src[0]) == 0 || len(src[0][0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	g, err := New(len(src), len(src[0]), len(src[0][0]))
	if err != nil {
		return nil, err
	}
	for x, plane := range src {
		if len(plane) != g.height {
			return nil, fmt.Errorf("%w: x=%d has %d rows, want %d", ErrJagged, x, len(plane), g.height)
		}
		for y, row := range plane {
			if len(row) != g.depth {
				return nil, fmt.Errorf("%w: x=%d y=%d has %d cells, want %d", ErrJagged, x, y, len(row), g.depth)
			}
			for z, t := range row {
				if !t.Valid() {
					return nil, fmt.Errorf("%w: %d at (%d,%d,%d)", ErrUnknownType, t, x, y, z)
				}
				g.cells[g.Index(x, y, z)] = t
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Depth() int  { return g.depth }

// Dims returns width, height and depth indexed by axis (0=X, 1=Y, 2=Z).
func (g *Grid) Dims() [3]int { return [3]int{g.width, g.height, g.depth} }

// Len is the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.depth
}

// Index returns the flat index of an in-bounds coordinate.
func (g *Grid) Index(x, y, z int) int {
	return x + g.width*(y+g.height*z)
}

// Coords is the inverse of Index.
func (g *Grid) Coords(i int) (x, y, z int) {
	x = i % g.width
	y = (i / g.width) % g.height
	z = i / (g.width * g.height)
	return
}

// At returns the voxel at (x,y,z), or Empty outside the grid.
func (g *Grid) At(x, y, z int) Type {
	if !g.InBounds(x, y, z) {
		return Empty
	}
	return g.cells[g.Index(x, y, z)]
}

func (g *Grid) AtIndex(i int) Type { return g.cells[i] }

// Set stores t at (x,y,z).
func (g *Grid) Set(x, y, z int, t Type) error {
	if !g.InBounds(x, y, z) {
		return fmt.Errorf("%w: (%d,%d,%d)", ErrOutOfBounds, x, y, z)
	}
	return g.SetIndex(g.Index(x, y, z), t)
}

func (g *Grid) SetIndex(i int, t Type) error {
	if i < 0 || i >= len(g.cells) {
		return fmt.Errorf("%w: index %d", ErrOutOfBounds, i)
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownType, uint8(t))
	}
	g.cells[i] = t
	return nil
}

// Solid reports whether (x,y,z) is inside the grid and holds a solid voxel.
func (g *Grid) Solid(x, y, z int) bool {
	return g.At(x, y, z).Solid()
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Type) {
	for i := range g.cells {
		g.cells[i] = t
	}
}

// Count returns the number of cells whose type satisfies pred.
func (g *Grid) Count(pred func(Type) bool) int {
	n := 0
	for _, t := range g.cells {
		if pred(t) {
			n++
		}
	}
	return n
}

func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]Type(nil), g.cells...)
	return &c
}

func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height || g.depth != o.depth {
		return false
	}
	for i, t := range g.cells {
		if o.cells[i] != t {
			return false
		}
	}
	return true
}

// Digest returns an xxhash64 fingerprint of the dimensions and contents.
func (g *Grid) Digest() uint64 {
	d := xxhash.New()
	var hdr [12]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(g.width))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(g.height))
	binary.LittleEndian.PutUint32(hdr[8:], uint32(g.depth))
	_, _ = d.Write(hdr[:])
	buf := make([]byte, len(g.cells))
	for i, t := range g.cells {
		buf[i] = byte(t)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}
