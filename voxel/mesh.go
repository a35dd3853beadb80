package voxel

import (
	"errors"
	"fmt"
	"math"
)

var ErrMalformedMesh = errors.New("voxel: malformed mesh")

// quadIndices is the triangle pattern of every quad, relative to its first vertex.
var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// uvCorners selects (uMax?, vMin?) per quad vertex; it is the same for all faces.
var uvCorners = [4][2]int{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// Mesh is the output of a meshing pass: flat position, texture coordinate and
// index buffers ready for upload as an indexed triangle list.
type Mesh struct {
	Positions []float32 // x,y,z per vertex
	TexCoords []float32 // u,v per vertex
	Indices   []uint32  // 6 per quad
}

func newMesh(quads int) *Mesh {
	return &Mesh{
		Positions: make([]float32, 0, quads*12),
		TexCoords: make([]float32, 0, quads*8),
		Indices:   make([]uint32, 0, quads*6),
	}
}

// Quad is a rectangle of same-type exposed faces. X,Y,Z is the voxel at the
// rectangle's minimum corner; SizeU and SizeV count voxels along the face's
// in-plane axes.
type Quad struct {
	Face  Face
	X     int
	Y     int
	Z     int
	SizeU int
	SizeV int
	Type  Type
}

// Cells calls fn with the coordinates of every voxel whose face q covers.
func (q Quad) Cells(fn func(x, y, z int)) {
	_, u, v := q.Face.Axes()
	for dv := 0; dv < q.SizeV; dv++ {
		for du := 0; du < q.SizeU; du++ {
			p := [3]int{q.X, q.Y, q.Z}
			p[u] += du
			p[v] += dv
			fn(p[0], p[1], p[2])
		}
	}
}

func (q Quad) Area() int { return q.SizeU * q.SizeV }

// AppendQuad emits the four vertices and two triangles of q.
func (m *Mesh) AppendQuad(q Quad) {
	s := faceTable[q.Face]
	base := [3]float32{float32(q.X), float32(q.Y), float32(q.Z)}
	if q.Face.positive() {
		base[s.w]++
	}
	size := [2]float32{float32(q.SizeU), float32(q.SizeV)}
	uMin, vMin, uMax, vMax := UVRect(q.Type, q.SizeU, q.SizeV)
	us := [2]float32{uMin, uMax}
	vs := [2]float32{vMin, vMax}

	first := uint32(m.VertexCount())
	for i, c := range s.corners {
		p := base
		p[s.u] += float32(c[0]) * size[0]
		p[s.v] += float32(c[1]) * size[1]
		m.Positions = append(m.Positions, p[0], p[1], p[2])
		uc := uvCorners[i]
		m.TexCoords = append(m.TexCoords, us[uc[0]], vs[uc[1]])
	}
	for _, idx := range quadIndices {
		m.Indices = append(m.Indices, first+idx)
	}
}

// MeshFromQuads emits quads in order.
func MeshFromQuads(quads []Quad) *Mesh {
	m := newMesh(len(quads))
	for _, q := range quads {
		m.AppendQuad(q)
	}
	return m
}

func (m *Mesh) VertexCount() int   { return len(m.Positions) / 3 }
func (m *Mesh) QuadCount() int     { return len(m.Indices) / 6 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// SurfaceArea sums the area of every quad.
func (m *Mesh) SurfaceArea() float64 {
	var total float64
	for q := 0; q < m.QuadCount(); q++ {
		i := m.Indices[q*6:]
		p0 := m.position(i[0])
		p1 := m.position(i[1])
		p3 := m.position(i[4])
		a := [3]float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		b := [3]float64{p3[0] - p0[0], p3[1] - p0[1], p3[2] - p0[2]}
		c := [3]float64{
			a[1]*b[2] - a[2]*b[1],
			a[2]*b[0] - a[0]*b[2],
			a[0]*b[1] - a[1]*b[0],
		}
		total += math.Sqrt(c[0]*c[0] + c[1]*c[1] + c[2]*c[2])
	}
	return total
}

func (m *Mesh) position(i uint32) [3]float64 {
	p := m.Positions[i*3:]
	return [3]float64{float64(p[0]), float64(p[1]), float64(p[2])}
}

// Validate checks the buffer invariants of a quad mesh.
func (m *Mesh) Validate() error {
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d position floats", ErrMalformedMesh, len(m.Positions))
	}
	n := m.VertexCount()
	if len(m.TexCoords) != n*2 {
		return fmt.Errorf("%w: %d texcoord floats for %d vertices", ErrMalformedMesh, len(m.TexCoords), n)
	}
	if n%4 != 0 {
		return fmt.Errorf("%w: %d vertices is not a multiple of 4", ErrMalformedMesh, n)
	}
	if len(m.Indices) != n/4*6 {
		return fmt.Errorf("%w: %d indices for %d quads", ErrMalformedMesh, len(m.Indices), n/4)
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: index %d at %d exceeds %d vertices", ErrMalformedMesh, idx, i, n)
		}
	}
	return nil
}

// Equal reports whether both meshes hold bit-identical buffers.
func (m *Mesh) Equal(o *Mesh) bool {
	if len(m.Positions) != len(o.Positions) || len(m.TexCoords) != len(o.TexCoords) || len(m.Indices) != len(o.Indices) {
		return false
	}
	for i, p := range m.Positions {
		if math.Float32bits(p) != math.Float32bits(o.Positions[i]) {
			return false
		}
	}
	for i, t := range m.TexCoords {
		if math.Float32bits(t) != math.Float32bits(o.TexCoords[i]) {
			return false
		}
	}
	for i, idx := range m.Indices {
		if idx != o.Indices[i] {
			return false
		}
	}
	return true
}

// Stats summarises a mesh.
type Stats struct {
	Quads     int
	Vertices  int
	Triangles int
	Area      float64
}

func (m *Mesh) Stats() Stats {
	return Stats{
		Quads:     m.QuadCount(),
		Vertices:  m.VertexCount(),
		Triangles: m.TriangleCount(),
		Area:      m.SurfaceArea(),
	}
}
