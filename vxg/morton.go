package vxg

import "sort"

// mortonOrder returns the flat grid indices of a w x h x d grid sorted by
// their Z-order key, so that spatially close voxels sit close in the stream.
func mortonOrder(w, h, d int) []int {
	n := w * h * d
	keys := make([]uint64, n)
	order := make([]int, n)
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := x + w*(y+h*z)
				keys[i] = morton3D(uint32(x), uint32(y), uint32(z))
				order[i] = i
			}
		}
	}
	sort.Slice(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })
	return order
}

func morton3D(x, y, z uint32) uint64 {
	return part1By2(uint64(x)) |
		(part1By2(uint64(y)) << 1) |
		(part1By2(uint64(z)) << 2)
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}
