package voxel

// AtlasSize is the number of cells along each side of the texture atlas.
const AtlasSize = 4

// CellSize is the UV extent of one atlas cell.
const CellSize float32 = 1.0 / AtlasSize

// UVOrigin returns the UV of the atlas cell's origin corner for t.
func UVOrigin(t Type) (u, v float32) {
	ax, ay := t.Atlas()
	return float32(ax) / AtlasSize, float32(ay) / AtlasSize
}

// UVRect returns the UV rectangle for a quad spanning sizeU x sizeV voxels.
// The cell repeats once per voxel, so the renderer must sample with wrapping
// enabled.
func UVRect(t Type, sizeU, sizeV int) (uMin, vMin, uMax, vMax float32) {
	uMin, vMin = UVOrigin(t)
	uMax = uMin + CellSize*float32(sizeU)
	vMax = vMin + CellSize*float32(sizeV)
	return
}
