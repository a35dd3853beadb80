package voxel

import (
	"fmt"
	"strings"
)

// Type identifies the kind of a voxel. The zero value, Empty, marks a cell
// with no voxel in it.
type Type uint8

const (
	Empty Type = iota
	Air
	Dirt
	Stone
	Grass
	Sand
	Wood
	Leaves
	Water
	Brick

	numTypes
)

type typeSpec struct {
	name   string
	solid  bool
	atlasX int
	atlasY int
}

// atlas cells are (column, row) in the AtlasSize x AtlasSize texture
var typeTable = [numTypes]typeSpec{
	Empty:  {"empty", false, 0, 0},
	Air:    {"air", false, 0, 0},
	Dirt:   {"dirt", true, 0, 0},
	Stone:  {"stone", true, 1, 0},
	Grass:  {"grass", true, 2, 0},
	Sand:   {"sand", true, 3, 0},
	Wood:   {"wood", true, 0, 1},
	Leaves: {"leaves", true, 1, 1},
	Water:  {"water", false, 2, 1},
	Brick:  {"brick", true, 3, 1},
}

// Valid reports whether t is one of the known types (Empty included).
func (t Type) Valid() bool { return t < numTypes }

// Solid reports whether the voxel occludes its neighbours and is rendered.
func (t Type) Solid() bool {
	return t.Valid() && typeTable[t].solid
}

// Atlas returns the atlas cell of the type.
func (t Type) Atlas() (x, y int) {
	if !t.Valid() {
		return 0, 0
	}
	s := typeTable[t]
	return s.atlasX, s.atlasY
}

func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("type(%d)", uint8(t))
	}
	return typeTable[t].name
}

// Types returns every non-empty type in declaration order.
func Types() []Type {
	out := make([]Type, 0, numTypes-1)
	for t := Air; t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// ParseType resolves a type by its name, case-insensitively.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t := Empty; t < numTypes; t++ {
		if typeTable[t].name == name {
			return t, nil
		}
	}
	return Empty, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
