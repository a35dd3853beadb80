package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pixelito/voxmesh/api"
	"github.com/pixelito/voxmesh/internal/config"
	"github.com/pixelito/voxmesh/voxel"
	"github.com/pixelito/voxmesh/vxg"
)

func testConfig(t *testing.T, generator string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.World.Generator = generator
	cfg.World.Width, cfg.World.Height, cfg.World.Depth = 12, 6, 10
	cfg.Output.Dir = t.TempDir()
	return cfg
}

func TestGenerateThenGLB(t *testing.T) {
	cfg := testConfig(t, "hills")
	path, err := RunGenerate(cfg, "")
	if err != nil {
		t.Fatalf("RunGenerate: %v", err)
	}
	if path != filepath.Join(cfg.Output.Dir, "world.vxg") {
		t.Errorf("path = %s", path)
	}
	g, err := vxg.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Dims() != [3]int{12, 6, 10} {
		t.Errorf("dims = %v", g.Dims())
	}

	out := filepath.Join(cfg.Output.Dir, "world.glb")
	if err := RunGrid2GLB(path, out, voxel.AlgorithmGreedy); err != nil {
		t.Fatalf("RunGrid2GLB: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("glTF")) {
		t.Error("output is not a GLB file")
	}
}

func TestGrid2GLBMissingInput(t *testing.T) {
	dir := t.TempDir()
	if err := RunGrid2GLB(filepath.Join(dir, "nope.vxg"), filepath.Join(dir, "x.glb"), voxel.AlgorithmNaive); err == nil {
		t.Error("expected error for a missing input")
	}
}

func TestCompare(t *testing.T) {
	cfg := testConfig(t, "slab")
	path, err := RunGenerate(cfg, "")
	if err != nil {
		t.Fatal(err)
	}
	c, err := RunCompare(path)
	if err != nil {
		t.Fatalf("RunCompare: %v", err)
	}
	if c.Greedy.Quads != 6 {
		t.Errorf("greedy quads for a full box = %d, want 6", c.Greedy.Quads)
	}
	if c.Naive.Area != c.Greedy.Area {
		t.Errorf("areas differ: %v vs %v", c.Naive.Area, c.Greedy.Area)
	}
	g, err := vxg.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := api.CompareGrid(g); c != want {
		t.Errorf("RunCompare = %+v, api.CompareGrid = %+v", c, want)
	}
}

func TestDiffThenApply(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t, "noise")
	aPath, err := RunGenerate(cfg, filepath.Join(dir, "a.vxg"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.World.Seed = 2
	bPath, err := RunGenerate(cfg, filepath.Join(dir, "b.vxg"))
	if err != nil {
		t.Fatal(err)
	}

	editsPath := filepath.Join(dir, "a-to-b.edits")
	if err := RunDiff(aPath, bPath, editsPath); err != nil {
		t.Fatalf("RunDiff: %v", err)
	}
	outPath := filepath.Join(dir, "patched.vxg")
	if err := RunApplyEdits(aPath, editsPath, outPath); err != nil {
		t.Fatalf("RunApplyEdits: %v", err)
	}
	patched, _ := vxg.Load(outPath)
	want, _ := vxg.Load(bPath)
	if !patched.Equal(want) {
		t.Error("patched grid differs from the diff target")
	}
}

func TestPackUnpackAndPack2GLB(t *testing.T) {
	dir := t.TempDir()
	var inputs []string
	for _, gen := range []string{"hills", "slab", "simplex"} {
		cfg := testConfig(t, gen)
		p, err := RunGenerate(cfg, filepath.Join(dir, gen+".vxg"))
		if err != nil {
			t.Fatal(err)
		}
		inputs = append(inputs, p)
	}

	packPath := filepath.Join(dir, "worlds.vxgpack")
	if err := RunPack(packPath, inputs, vxg.CompZstd); err != nil {
		t.Fatalf("RunPack: %v", err)
	}

	outDir := filepath.Join(dir, "unpacked")
	if err := RunUnpack(packPath, outDir); err != nil {
		t.Fatalf("RunUnpack: %v", err)
	}
	for _, in := range inputs {
		want, _ := os.ReadFile(in)
		got, err := os.ReadFile(filepath.Join(outDir, filepath.Base(in)))
		if err != nil {
			t.Fatalf("unpacked file missing: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("%s differs after pack and unpack", filepath.Base(in))
		}
	}

	glbPath := filepath.Join(dir, "worlds.glb")
	if err := RunPack2GLB(packPath, glbPath, voxel.AlgorithmGreedy); err != nil {
		t.Fatalf("RunPack2GLB: %v", err)
	}
	if err := RunPack(packPath, nil, vxg.CompNone); err == nil {
		t.Error("expected error for no inputs")
	}
}

func TestParseCompression(t *testing.T) {
	for _, name := range []string{"none", "zlib", "zstd"} {
		c, err := ParseCompression(name)
		if err != nil || c.String() != name {
			t.Errorf("ParseCompression(%q) = %v, %v", name, c, err)
		}
	}
	if _, err := ParseCompression("lz4"); err == nil {
		t.Error("expected error for lz4")
	}
}

func TestRunDemo(t *testing.T) {
	for _, greedy := range []bool{false, true} {
		cfg := testConfig(t, "hills")
		cfg.Mesher.Greedy = greedy
		res, err := RunDemo(cfg)
		if err != nil {
			t.Fatalf("RunDemo(greedy=%v): %v", greedy, err)
		}
		for _, p := range []string{res.GridPath, res.GLBPath} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("missing output %s", p)
			}
		}
		if res.Stats.Quads == 0 {
			t.Error("demo produced an empty mesh")
		}
	}
}
