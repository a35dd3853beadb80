package voxel

// FaceVisible reports whether face f of voxel (x,y,z) is exposed: the voxel is
// solid and the neighbour across f is outside the grid, empty, or not solid.
func FaceVisible(g *Grid, x, y, z int, f Face) bool {
	if !g.Solid(x, y, z) {
		return false
	}
	n := faceTable[f].normal
	return !g.Solid(x+n[0], y+n[1], z+n[2])
}

// VisibleMask marks, per cell, whether face f is exposed. The mask uses the
// grid's flat indexing.
func VisibleMask(g *Grid, f Face) []bool {
	mask := make([]bool, g.Len())
	n := faceTable[f].normal
	for z := 0; z < g.depth; z++ {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				i := g.Index(x, y, z)
				if !g.cells[i].Solid() {
					continue
				}
				mask[i] = !g.Solid(x+n[0], y+n[1], z+n[2])
			}
		}
	}
	return mask
}

// CountVisibleFaces returns the number of exposed unit faces over all six
// directions.
func CountVisibleFaces(g *Grid) int {
	n := 0
	for z := 0; z < g.depth; z++ {
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				if !g.Solid(x, y, z) {
					continue
				}
				for _, f := range Faces {
					if FaceVisible(g, x, y, z, f) {
						n++
					}
				}
			}
		}
	}
	return n
}
