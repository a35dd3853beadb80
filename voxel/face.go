package voxel

// Face is one of the six axis-aligned voxel face directions.
type Face uint8

const (
	Front  Face = iota // +Z
	Back               // -Z
	Left               // -X
	Right              // +X
	Top                // +Y
	Bottom             // -Y
)

// Faces lists every face in canonical meshing order.
var Faces = [6]Face{Front, Back, Left, Right, Top, Bottom}

const (
	axisX = 0
	axisY = 1
	axisZ = 2
)

type faceSpec struct {
	name   string
	normal [3]int
	w      int // normal axis
	u, v   int // in-plane axes
	// corners holds, per quad vertex, whether it sits at the far end of the
	// u and v spans. Vertices wind counter-clockwise seen from outside.
	corners [4][2]int
}

var faceTable = [6]faceSpec{
	Front:  {"front", [3]int{0, 0, 1}, axisZ, axisX, axisY, [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
	Back:   {"back", [3]int{0, 0, -1}, axisZ, axisX, axisY, [4][2]int{{1, 0}, {0, 0}, {0, 1}, {1, 1}}},
	Left:   {"left", [3]int{-1, 0, 0}, axisX, axisZ, axisY, [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
	Right:  {"right", [3]int{1, 0, 0}, axisX, axisZ, axisY, [4][2]int{{1, 0}, {0, 0}, {0, 1}, {1, 1}}},
	Top:    {"top", [3]int{0, 1, 0}, axisY, axisX, axisZ, [4][2]int{{0, 1}, {1, 1}, {1, 0}, {0, 0}}},
	Bottom: {"bottom", [3]int{0, -1, 0}, axisY, axisX, axisZ, [4][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}},
}

func (f Face) String() string {
	if f > Bottom {
		return "face(?)"
	}
	return faceTable[f].name
}

// Normal returns the unit offset from a voxel to its neighbour across f.
func (f Face) Normal() [3]int { return faceTable[f].normal }

// Axes returns the normal axis and the two in-plane axes (0=X, 1=Y, 2=Z).
func (f Face) Axes() (w, u, v int) {
	s := faceTable[f]
	return s.w, s.u, s.v
}

func (f Face) positive() bool {
	s := faceTable[f]
	return s.normal[s.w] > 0
}
