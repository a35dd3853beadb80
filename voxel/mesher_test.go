package voxel

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

// hillGrid is a small rolling terrain with stone, dirt and a grass cap.
func hillGrid(t testing.TB, w, h, d int) *Grid {
	t.Helper()
	g, err := New(w, h, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for x := 0; x < w; x++ {
		for z := 0; z < d; z++ {
			top := 2 + int(math.Sin(float64(x)*0.3)*1.5+math.Cos(float64(z)*0.3)*1.5)
			for y := 0; y < h; y++ {
				switch {
				case y < top-1:
					_ = g.Set(x, y, z, Stone)
				case y < top:
					_ = g.Set(x, y, z, Dirt)
				case y == top:
					_ = g.Set(x, y, z, Grass)
				}
			}
		}
	}
	return g
}

func randomGrid(t testing.TB, r *rand.Rand, w, h, d int, fill float64, types []Type) *Grid {
	t.Helper()
	g, err := New(w, h, d)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < g.Len(); i++ {
		if r.Float64() < fill {
			_ = g.SetIndex(i, types[r.Intn(len(types))])
		}
	}
	return g
}

func testGrids(t testing.TB) map[string]*Grid {
	r := rand.New(rand.NewSource(42))
	grids := map[string]*Grid{
		"hills":        hillGrid(t, 16, 8, 16),
		"sparse-mixed": randomGrid(t, r, 8, 8, 8, 0.3, []Type{Dirt, Stone, Water, Air}),
		"dense-mixed":  randomGrid(t, r, 10, 5, 7, 0.8, []Type{Dirt, Stone, Grass}),
		"dense-single": randomGrid(t, r, 6, 6, 6, 0.9, []Type{Brick}),
		"thin":         randomGrid(t, r, 1, 12, 1, 0.7, []Type{Sand, Wood}),
	}
	slab, _ := New(5, 1, 4)
	slab.Fill(Dirt)
	grids["slab"] = slab
	return grids
}

func countByFace(quads []Quad, f Face) int {
	n := 0
	for _, q := range quads {
		if q.Face == f {
			n++
		}
	}
	return n
}

func TestSingleVoxelBothMeshers(t *testing.T) {
	g, _ := New(1, 1, 1)
	_ = g.Set(0, 0, 0, Grass)
	for _, a := range []Algorithm{AlgorithmNaive, AlgorithmGreedy} {
		m := Build(g, a)
		if m.QuadCount() != 6 || m.VertexCount() != 24 || len(m.Indices) != 36 {
			t.Errorf("%v: %d quads, %d vertices, %d indices", a, m.QuadCount(), m.VertexCount(), len(m.Indices))
		}
		if err := m.Validate(); err != nil {
			t.Errorf("%v: %v", a, err)
		}
		if m.SurfaceArea() != 6 {
			t.Errorf("%v: area %v, want 6", a, m.SurfaceArea())
		}
	}
}

func TestNaiveFrontFaceLayout(t *testing.T) {
	g, _ := New(1, 1, 1)
	_ = g.Set(0, 0, 0, Stone)
	m := Naive(g)

	wantPos := []float32{0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1}
	for i, p := range wantPos {
		if m.Positions[i] != p {
			t.Fatalf("front positions = %v, want %v", m.Positions[:12], wantPos)
		}
	}
	// stone sits in atlas cell (1,0)
	wantUV := []float32{0.25, 0.25, 0.5, 0.25, 0.5, 0, 0.25, 0}
	for i, uv := range wantUV {
		if m.TexCoords[i] != uv {
			t.Fatalf("front uvs = %v, want %v", m.TexCoords[:8], wantUV)
		}
	}
	wantIdx := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i, idx := range wantIdx {
		if m.Indices[i] != idx {
			t.Fatalf("indices = %v, want prefix %v", m.Indices, wantIdx)
		}
	}
}

func TestFacesWindOutward(t *testing.T) {
	g, _ := New(1, 1, 1)
	_ = g.Set(0, 0, 0, Dirt)
	m := Naive(g)
	for q, f := range Faces {
		p0 := m.position(uint32(q * 4))
		p1 := m.position(uint32(q*4 + 1))
		p2 := m.position(uint32(q*4 + 2))
		a := [3]float64{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		b := [3]float64{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		n := [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
		want := f.Normal()
		for i := range n {
			if n[i] != float64(want[i]) {
				t.Errorf("%v winding normal %v, want %v", f, n, want)
				break
			}
		}
	}
}

func TestSlabFullMerge(t *testing.T) {
	const n, m = 5, 4
	g, _ := New(n, 1, m)
	g.Fill(Dirt)

	naive := NaiveQuads(g)
	greedy := GreedyQuads(g)
	if got := countByFace(naive, Top); got != n*m {
		t.Errorf("naive top quads = %d, want %d", got, n*m)
	}
	if got := countByFace(greedy, Top); got != 1 {
		t.Errorf("greedy top quads = %d, want 1", got)
	}
	if got := countByFace(greedy, Bottom); got != 1 {
		t.Errorf("greedy bottom quads = %d, want 1", got)
	}
	if len(greedy) != 6 {
		t.Errorf("greedy quads = %d, want 6", len(greedy))
	}
	if len(naive) != 2*n*m+2*n+2*m {
		t.Errorf("naive quads = %d, want %d", len(naive), 2*n*m+2*n+2*m)
	}
}

func TestGreedyTopQuadGeometry(t *testing.T) {
	g, _ := New(4, 1, 3)
	g.Fill(Grass)
	m := Greedy(g)

	top := -1
	for i, q := range GreedyQuads(g) {
		if q.Face == Top {
			top = i
		}
	}
	if top < 0 {
		t.Fatal("no top quad")
	}
	wantPos := []float32{0, 1, 3, 4, 1, 3, 4, 1, 0, 0, 1, 0}
	gotPos := m.Positions[top*12 : top*12+12]
	for i := range wantPos {
		if gotPos[i] != wantPos[i] {
			t.Fatalf("top positions = %v, want %v", gotPos, wantPos)
		}
	}
	// grass is atlas cell (2,0); the cell tiles 4 times along u and 3 along v
	wantUV := []float32{0.5, 0.75, 1.5, 0.75, 1.5, 0, 0.5, 0}
	gotUV := m.TexCoords[top*8 : top*8+8]
	for i := range wantUV {
		if gotUV[i] != wantUV[i] {
			t.Fatalf("top uvs = %v, want %v", gotUV, wantUV)
		}
	}
}

func TestGreedyExpandsUBeforeV(t *testing.T) {
	g, _ := New(3, 1, 2)
	for x := 0; x < 3; x++ {
		_ = g.Set(x, 0, 0, Sand)
	}
	_ = g.Set(0, 0, 1, Sand)
	_ = g.Set(1, 0, 1, Sand)

	var tops []Quad
	for _, q := range GreedyQuads(g) {
		if q.Face == Top {
			tops = append(tops, q)
		}
	}
	want := []Quad{
		{Face: Top, X: 0, Y: 0, Z: 0, SizeU: 3, SizeV: 1, Type: Sand},
		{Face: Top, X: 0, Y: 0, Z: 1, SizeU: 2, SizeV: 1, Type: Sand},
	}
	if len(tops) != len(want) {
		t.Fatalf("top quads = %+v, want %+v", tops, want)
	}
	for i := range want {
		if tops[i] != want[i] {
			t.Errorf("quad %d = %+v, want %+v", i, tops[i], want[i])
		}
	}
}

func TestTypeBoundaryNeverMerges(t *testing.T) {
	g, _ := New(2, 1, 1)
	_ = g.Set(0, 0, 0, Dirt)
	_ = g.Set(1, 0, 0, Stone)

	for _, a := range []Algorithm{AlgorithmNaive, AlgorithmGreedy} {
		quads := BuildQuads(g, a)
		if len(quads) != 10 {
			t.Errorf("%v: %d quads, want 10", a, len(quads))
		}
		for _, q := range quads {
			if q.Area() != 1 {
				t.Errorf("%v: merged quad %+v across a type boundary", a, q)
			}
			if q.Face == Right && q.X == 0 || q.Face == Left && q.X == 1 {
				t.Errorf("%v: emitted occluded face %+v", a, q)
			}
		}
	}
}

func TestGreedyMergesSameTypeNeighbours(t *testing.T) {
	g, _ := New(2, 1, 1)
	g.Fill(Dirt)
	quads := GreedyQuads(g)
	if len(quads) != 6 {
		t.Fatalf("greedy quads = %d, want 6", len(quads))
	}
	if got := Greedy(g).SurfaceArea(); got != 10 {
		t.Errorf("area = %v, want 10", got)
	}
}

func TestGreedyMeshesInteriorNegativeSlices(t *testing.T) {
	// a lone voxel in the far corner: its back, left and bottom faces sit in slice 2
	g, _ := New(3, 3, 3)
	_ = g.Set(2, 2, 2, Brick)
	quads := GreedyQuads(g)
	if len(quads) != 6 {
		t.Fatalf("greedy quads = %d, want 6", len(quads))
	}
	for _, f := range Faces {
		if countByFace(quads, f) != 1 {
			t.Errorf("%v: %d quads", f, countByFace(quads, f))
		}
	}
}

func TestVisibleSurfaceEquivalence(t *testing.T) {
	for name, g := range testGrids(t) {
		t.Run(name, func(t *testing.T) {
			naive := Naive(g)
			greedy := Greedy(g)
			if err := naive.Validate(); err != nil {
				t.Fatalf("naive: %v", err)
			}
			if err := greedy.Validate(); err != nil {
				t.Fatalf("greedy: %v", err)
			}
			want := float64(CountVisibleFaces(g))
			if naive.SurfaceArea() != want {
				t.Errorf("naive area %v, want %v", naive.SurfaceArea(), want)
			}
			if greedy.SurfaceArea() != want {
				t.Errorf("greedy area %v, want %v", greedy.SurfaceArea(), want)
			}
			if greedy.QuadCount() > naive.QuadCount() {
				t.Errorf("greedy %d quads > naive %d quads", greedy.QuadCount(), naive.QuadCount())
			}
		})
	}
}

func TestGreedyCoversMaskExactlyOnce(t *testing.T) {
	for name, g := range testGrids(t) {
		t.Run(name, func(t *testing.T) {
			quads := GreedyQuads(g)
			for _, f := range Faces {
				mask := VisibleMask(g, f)
				covered := make([]int, g.Len())
				for _, q := range quads {
					if q.Face != f {
						continue
					}
					q.Cells(func(x, y, z int) {
						if !g.InBounds(x, y, z) {
							t.Fatalf("%v quad %+v leaves the grid", f, q)
						}
						if g.At(x, y, z) != q.Type {
							t.Errorf("%v quad %+v covers a %v voxel", f, q, g.At(x, y, z))
						}
						covered[g.Index(x, y, z)]++
					})
				}
				for i, vis := range mask {
					want := 0
					if vis {
						want = 1
					}
					if covered[i] != want {
						x, y, z := g.Coords(i)
						t.Fatalf("%v face of (%d,%d,%d) covered %d times, want %d", f, x, y, z, covered[i], want)
					}
				}
			}
		})
	}
}

func TestGreedyEqualsNaiveWithoutMerges(t *testing.T) {
	// a 3-D checkerboard never has two same-type faces side by side
	g, _ := New(4, 3, 5)
	for i := 0; i < g.Len(); i++ {
		x, y, z := g.Coords(i)
		if (x+y+z)%2 == 0 {
			_ = g.SetIndex(i, Dirt)
		} else {
			_ = g.SetIndex(i, Stone)
		}
	}
	naive := NaiveQuads(g)
	greedy := GreedyQuads(g)
	if len(naive) != len(greedy) {
		t.Fatalf("naive %d quads, greedy %d quads", len(naive), len(greedy))
	}
	sortQuads(naive)
	sortQuads(greedy)
	for i := range naive {
		if naive[i] != greedy[i] {
			t.Fatalf("quad %d: naive %+v, greedy %+v", i, naive[i], greedy[i])
		}
	}
	if !MeshFromQuads(naive).Equal(MeshFromQuads(greedy)) {
		t.Error("identical quads produced different vertex data")
	}
}

func sortQuads(qs []Quad) {
	sort.Slice(qs, func(i, j int) bool {
		a, b := qs[i], qs[j]
		if a.Face != b.Face {
			return a.Face < b.Face
		}
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
}

func TestMeshersAreDeterministic(t *testing.T) {
	for name, g := range testGrids(t) {
		for _, a := range []Algorithm{AlgorithmNaive, AlgorithmGreedy} {
			if !Build(g, a).Equal(Build(g, a)) {
				t.Errorf("%s/%v: output differs between runs", name, a)
			}
		}
	}
}

func TestMeshersDoNotMutateGrid(t *testing.T) {
	g := hillGrid(t, 8, 6, 8)
	before := g.Digest()
	Naive(g)
	Greedy(g)
	if g.Digest() != before {
		t.Error("meshing modified the grid")
	}
}

func TestEmptyGridMeshesToNothing(t *testing.T) {
	g, _ := New(4, 4, 4)
	g.Fill(Water)
	for _, a := range []Algorithm{AlgorithmNaive, AlgorithmGreedy} {
		m := Build(g, a)
		if m.QuadCount() != 0 || m.VertexCount() != 0 {
			t.Errorf("%v: %d quads from a grid with no solid voxels", a, m.QuadCount())
		}
		if err := m.Validate(); err != nil {
			t.Errorf("%v: %v", a, err)
		}
	}
}

func TestValidateCatchesBadIndex(t *testing.T) {
	g, _ := New(1, 1, 1)
	_ = g.Set(0, 0, 0, Dirt)
	m := Naive(g)
	m.Indices[5] = 99
	if err := m.Validate(); err == nil {
		t.Error("expected an error for an out-of-range index")
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, s := range []string{"greedy", "Greedy", " naive ", "simple"} {
		if _, err := ParseAlgorithm(s); err != nil {
			t.Errorf("ParseAlgorithm(%q): %v", s, err)
		}
	}
	if _, err := ParseAlgorithm("optimal"); err == nil {
		t.Error("expected error")
	}
	if AlgorithmFor(true) != AlgorithmGreedy || AlgorithmFor(false) != AlgorithmNaive {
		t.Error("AlgorithmFor mismatch")
	}
}

func BenchmarkNaive(b *testing.B) {
	g := hillGrid(b, 32, 8, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Naive(g)
	}
}

func BenchmarkGreedy(b *testing.B) {
	g := hillGrid(b, 32, 8, 32)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Greedy(g)
	}
}
