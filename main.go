//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pixelito/voxmesh/internal/config"
	"github.com/pixelito/voxmesh/internal/logger"
	"github.com/pixelito/voxmesh/utils"
	"github.com/pixelito/voxmesh/voxel"
	"go.uber.org/zap"
)

var flagComp = flag.String("comp", "zstd", "Pack compression (none, zlib, zstd)")

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: voxmesh [flags] <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  demo                                  (generate the configured world, mesh it, write .vxg and .glb)")
	fmt.Fprintln(os.Stderr, "  gen [output.vxg]                      (generate the configured world)")
	fmt.Fprintln(os.Stderr, "  mesh input.vxg output.glb             (mesh a grid with the configured algorithm)")
	fmt.Fprintln(os.Stderr, "  packglb input.vxgpack output.glb      (mesh every pack entry into one .glb)")
	fmt.Fprintln(os.Stderr, "  compare input.vxg                     (mesh with both algorithms and report)")
	fmt.Fprintln(os.Stderr, "  edit input.vxg edits output.vxg       (apply an edit stream)")
	fmt.Fprintln(os.Stderr, "  diff a.vxg b.vxg output.edits         (write the edits that turn a into b)")
	fmt.Fprintln(os.Stderr, "  pack output.vxgpack input.vxg [...]   (bundle grids, see -comp)")
	fmt.Fprintln(os.Stderr, "  unpack input.vxgpack output_dir       (extract a pack)")
	fmt.Fprintln(os.Stderr, "  config output.yaml                    (write the effective configuration)")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}

// arity holds the minimum and maximum argument count per command. A maximum of
// -1 means unbounded.
var arity = map[string][2]int{
	"demo":    {0, 0},
	"gen":     {0, 1},
	"mesh":    {2, 2},
	"packglb": {2, 2},
	"compare": {1, 1},
	"edit":    {3, 3},
	"diff":    {3, 3},
	"pack":    {2, -1},
	"unpack":  {2, 2},
	"config":  {1, 1},
}

func main() {
	flag.Usage = usage
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}
	cmd, args := args[0], args[1:]
	n, ok := arity[cmd]
	if !ok || len(args) < n[0] || (n[1] >= 0 && len(args) > n[1]) {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, cmd, args); err != nil {
		logger.Error("command failed", zap.String("command", cmd), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, cmd string, args []string) error {
	alg := voxel.AlgorithmFor(cfg.Mesher.Greedy)
	switch cmd {
	case "demo":
		res, err := utils.RunDemo(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("%s mesher: %d quads, %d vertices, %d triangles\n",
			alg, res.Stats.Quads, res.Stats.Vertices, res.Stats.Triangles)
		return nil
	case "gen":
		out := ""
		if len(args) == 1 {
			out = args[0]
		}
		_, err := utils.RunGenerate(cfg, out)
		return err
	case "mesh":
		return utils.RunGrid2GLB(args[0], args[1], alg)
	case "packglb":
		return utils.RunPack2GLB(args[0], args[1], alg)
	case "compare":
		c, err := utils.RunCompare(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("naive:  %d quads, %d vertices\n", c.Naive.Quads, c.Naive.Vertices)
		fmt.Printf("greedy: %d quads, %d vertices (%.1f%% fewer quads)\n",
			c.Greedy.Quads, c.Greedy.Vertices, 100*c.Reduction())
		return nil
	case "edit":
		return utils.RunApplyEdits(args[0], args[1], args[2])
	case "diff":
		return utils.RunDiff(args[0], args[1], args[2])
	case "pack":
		comp, err := utils.ParseCompression(*flagComp)
		if err != nil {
			return err
		}
		return utils.RunPack(args[0], args[1:], comp)
	case "unpack":
		return utils.RunUnpack(args[0], args[1])
	case "config":
		return cfg.SaveTo(args[0])
	}
	return fmt.Errorf("unknown command %q", cmd)
}
