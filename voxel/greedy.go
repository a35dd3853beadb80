package voxel

// GreedyQuads merges exposed faces into rectangles, one face direction at a
// time. Each slice along the normal axis is scanned v-major then u; a seed
// cell grows along u as far as the type matches, then along v while the whole
// u span matches. Covered cells are cleared from the mask, so every exposed
// face ends up in exactly one quad.
func GreedyQuads(g *Grid) []Quad {
	var quads []Quad
	dims := g.Dims()

	for _, f := range Faces {
		mask := VisibleMask(g, f)
		s := faceTable[f]
		dimW, dimU, dimV := dims[s.w], dims[s.u], dims[s.v]

		at := func(u, v, w int) int {
			var p [3]int
			p[s.u] = u
			p[s.v] = v
			p[s.w] = w
			return g.Index(p[0], p[1], p[2])
		}
		open := func(i int, t Type) bool {
			return mask[i] && g.cells[i] == t
		}

		for w := 0; w < dimW; w++ {
			for v := 0; v < dimV; v++ {
				for u := 0; u < dimU; u++ {
					seed := at(u, v, w)
					if !mask[seed] {
						continue
					}
					t := g.cells[seed]
					if t == Empty {
						continue
					}

					uEnd := u + 1
					for uEnd < dimU && open(at(uEnd, v, w), t) {
						uEnd++
					}

					vEnd := v + 1
				grow:
					for ; vEnd < dimV; vEnd++ {
						for uu := u; uu < uEnd; uu++ {
							if !open(at(uu, vEnd, w), t) {
								break grow
							}
						}
					}

					for vv := v; vv < vEnd; vv++ {
						for uu := u; uu < uEnd; uu++ {
							mask[at(uu, vv, w)] = false
						}
					}

					x, y, z := g.Coords(seed)
					quads = append(quads, Quad{
						Face:  f,
						X:     x,
						Y:     y,
						Z:     z,
						SizeU: uEnd - u,
						SizeV: vEnd - v,
						Type:  t,
					})
				}
			}
		}
	}
	return quads
}

// Greedy meshes g, merging same-type coplanar faces into rectangles.
func Greedy(g *Grid) *Mesh {
	return MeshFromQuads(GreedyQuads(g))
}
