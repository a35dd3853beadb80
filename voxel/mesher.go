package voxel

import (
	"fmt"
	"strings"
)

// Algorithm selects a mesher.
type Algorithm uint8

const (
	AlgorithmNaive Algorithm = iota
	AlgorithmGreedy
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNaive:
		return "naive"
	case AlgorithmGreedy:
		return "greedy"
	}
	return fmt.Sprintf("algorithm(%d)", uint8(a))
}

// AlgorithmFor maps the greedy toggle to an Algorithm.
func AlgorithmFor(greedy bool) Algorithm {
	if greedy {
		return AlgorithmGreedy
	}
	return AlgorithmNaive
}

func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive", "simple":
		return AlgorithmNaive, nil
	case "greedy":
		return AlgorithmGreedy, nil
	}
	return 0, fmt.Errorf("voxel: unknown meshing algorithm %q", s)
}

// BuildQuads runs the selected mesher and returns its quads.
func BuildQuads(g *Grid, a Algorithm) []Quad {
	if a == AlgorithmGreedy {
		return GreedyQuads(g)
	}
	return NaiveQuads(g)
}

// Build runs the selected mesher. Every call is a full rebuild.
func Build(g *Grid, a Algorithm) *Mesh {
	return MeshFromQuads(BuildQuads(g, a))
}
