package voxel

// NaiveQuads returns one unit quad per exposed face, scanning x, then y, then z
// ascending and the faces of each voxel in canonical order.
func NaiveQuads(g *Grid) []Quad {
	quads := make([]Quad, 0, CountVisibleFaces(g))
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for z := 0; z < g.depth; z++ {
				t := g.At(x, y, z)
				if !t.Solid() {
					continue
				}
				for _, f := range Faces {
					if !FaceVisible(g, x, y, z, f) {
						continue
					}
					quads = append(quads, Quad{Face: f, X: x, Y: y, Z: z, SizeU: 1, SizeV: 1, Type: t})
				}
			}
		}
	}
	return quads
}

// Naive meshes g without merging any faces.
func Naive(g *Grid) *Mesh {
	return MeshFromQuads(NaiveQuads(g))
}
